package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func user(role Role) Principal {
	return Principal{ID: uuid.New(), Role: role, Authenticated: true}
}

func TestCan_ContentReadsArePublic(t *testing.T) {
	anon := Anonymous()

	for _, resource := range []Resource{ResourceCategory, ResourceGenre, ResourceTitle, ResourceReview, ResourceComment} {
		assert.True(t, Can(anon, ActionRead, resource), string(resource))
	}
}

func TestCan_CatalogWritesAreAdminOnly(t *testing.T) {
	for _, resource := range []Resource{ResourceCategory, ResourceGenre, ResourceTitle} {
		for _, action := range []Action{ActionCreate, ActionUpdate, ActionDelete} {
			assert.False(t, Can(Anonymous(), action, resource))
			assert.False(t, Can(user(RoleUser), action, resource))
			assert.False(t, Can(user(RoleModerator), action, resource))
			assert.True(t, Can(user(RoleAdmin), action, resource))
		}
	}
}

func TestCan_ReviewCreateRequiresAuth(t *testing.T) {
	assert.False(t, Can(Anonymous(), ActionCreate, ResourceReview))
	assert.True(t, Can(user(RoleUser), ActionCreate, ResourceReview))
	assert.True(t, Can(user(RoleUser), ActionCreate, ResourceComment))
}

func TestCan_UserManagementIsAdminOnly(t *testing.T) {
	assert.False(t, Can(user(RoleUser), ActionRead, ResourceUser))
	assert.False(t, Can(user(RoleModerator), ActionRead, ResourceUser))
	assert.True(t, Can(user(RoleAdmin), ActionRead, ResourceUser))
}

func TestCan_SuperuserActsAsAdmin(t *testing.T) {
	super := Principal{ID: uuid.New(), Role: RoleUser, Superuser: true, Authenticated: true}

	assert.True(t, Can(super, ActionCreate, ResourceCategory))
	assert.True(t, Can(super, ActionDelete, ResourceTitle))
	assert.True(t, Can(super, ActionRead, ResourceUser))
}

func TestCanModify(t *testing.T) {
	author := user(RoleUser)
	other := user(RoleUser)
	moderator := user(RoleModerator)
	admin := user(RoleAdmin)

	assert.True(t, CanModify(author, author.ID))
	assert.False(t, CanModify(other, author.ID))
	assert.True(t, CanModify(moderator, author.ID))
	assert.True(t, CanModify(admin, author.ID))
	assert.False(t, CanModify(Anonymous(), author.ID))
}
