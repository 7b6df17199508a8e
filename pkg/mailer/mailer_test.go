package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfirmationBody_MatchesConfiguredExpiry(t *testing.T) {
	body := confirmationBody("reader", "123456", 24)
	assert.Contains(t, body, "Hello, reader!")
	assert.Contains(t, body, "123456")
	assert.Contains(t, body, "expire in 1 day")

	assert.Contains(t, confirmationBody("reader", "123456", 48), "expire in 2 days")
	assert.Contains(t, confirmationBody("reader", "123456", 12), "expire in 12 hours")
}

func TestExpiryWording(t *testing.T) {
	assert.Equal(t, "1 day", expiryWording(24))
	assert.Equal(t, "3 days", expiryWording(72))
	assert.Equal(t, "1 hour", expiryWording(1))
	assert.Equal(t, "6 hours", expiryWording(6))
}
