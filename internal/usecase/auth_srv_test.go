package usecase

import (
	"context"
	"testing"
	"time"

	"yamdb-api/internal/data/repository"
	"yamdb-api/internal/dto/request"
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/token"
	"yamdb-api/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (AuthService, *repository.Repository, *fakeMailer) {
	t.Helper()

	repo := newFakeRepository()
	mail := &fakeMailer{}
	tokens, err := token.NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	config := &utils.Config{
		Code: utils.CodeConfig{ExpiryHours: 24, Length: 6},
	}

	service := NewAuthService(repo, tokens, mail, config, testLogger())
	return service, repo, mail
}

func TestSignup_RegistersAndMailsCode(t *testing.T) {
	service, repo, mail := newAuthFixture(t)
	ctx := context.Background()

	resp, err := service.Signup(ctx, &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "reader", resp.Username)
	assert.Equal(t, "reader@example.com", resp.Email)

	user, err := repo.User.FindByUsername(ctx, "reader")
	require.NoError(t, err)
	require.NotNil(t, user)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "reader@example.com", mail.sent[0])
	assert.Len(t, mail.lastCode, 6)
}

func TestSignup_MeIsReserved(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	for _, username := range []string{"me", "Me", "ME"} {
		_, err := service.Signup(context.Background(), &request.SignupRequest{
			Username: username,
			Email:    "me@example.com",
		})
		assert.True(t, apperr.IsValidation(err), username)
	}
}

func TestSignup_ExactPairIsIdempotent(t *testing.T) {
	service, _, mail := newAuthFixture(t)
	ctx := context.Background()

	req := &request.SignupRequest{Username: "reader", Email: "reader@example.com"}

	_, err := service.Signup(ctx, req)
	require.NoError(t, err)
	firstCode := mail.lastCode

	// Same pair again: no conflict, a fresh code goes out.
	_, err = service.Signup(ctx, req)
	require.NoError(t, err)
	assert.Len(t, mail.sent, 2)
	assert.NotEqual(t, firstCode, mail.lastCode)
}

func TestSignup_ConflictsAreRejected(t *testing.T) {
	service, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := service.Signup(ctx, &request.SignupRequest{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	// Same username, different email
	_, err = service.Signup(ctx, &request.SignupRequest{Username: "reader", Email: "other@example.com"})
	assert.True(t, apperr.IsValidation(err))

	// Same email, different username
	_, err = service.Signup(ctx, &request.SignupRequest{Username: "other", Email: "reader@example.com"})
	assert.True(t, apperr.IsValidation(err))
}

func TestSignup_MailFailurePropagates(t *testing.T) {
	service, _, mail := newAuthFixture(t)
	mail.fail = true

	_, err := service.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	assert.Error(t, err)
}

func TestIssueToken_HappyPath(t *testing.T) {
	service, _, mail := newAuthFixture(t)
	ctx := context.Background()

	_, err := service.Signup(ctx, &request.SignupRequest{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	resp, err := service.IssueToken(ctx, &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: mail.lastCode,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestIssueToken_CodeIsSingleUse(t *testing.T) {
	service, _, mail := newAuthFixture(t)
	ctx := context.Background()

	_, err := service.Signup(ctx, &request.SignupRequest{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	req := &request.TokenRequest{Username: "reader", ConfirmationCode: mail.lastCode}

	_, err = service.IssueToken(ctx, req)
	require.NoError(t, err)

	_, err = service.IssueToken(ctx, req)
	assert.True(t, apperr.IsValidation(err))
}

func TestIssueToken_WrongCode(t *testing.T) {
	service, _, mail := newAuthFixture(t)
	ctx := context.Background()

	_, err := service.Signup(ctx, &request.SignupRequest{Username: "reader", Email: "reader@example.com"})
	require.NoError(t, err)

	wrong := "000000"
	if mail.lastCode == wrong {
		wrong = "000001"
	}

	_, err = service.IssueToken(ctx, &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: wrong,
	})
	assert.True(t, apperr.IsValidation(err))
}

func TestIssueToken_UnknownUserIs404(t *testing.T) {
	service, _, _ := newAuthFixture(t)

	_, err := service.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "123456",
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
