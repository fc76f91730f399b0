package permission

import (
	"testing"

	"anoa.com/yamdbreview/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCanManageCatalog(t *testing.T) {
	assert.True(t, CanManageCatalog(model.RoleAdmin))
	assert.False(t, CanManageCatalog(model.RoleModerator))
	assert.False(t, CanManageCatalog(model.RoleUser))
}

func TestCanModerate(t *testing.T) {
	assert.True(t, CanModerate(model.RoleAdmin))
	assert.True(t, CanModerate(model.RoleModerator))
	assert.False(t, CanModerate(model.RoleUser))
}

func TestCanModifyContent(t *testing.T) {
	authorID := uuid.New()

	owner := &model.User{ID: authorID, Role: model.RoleUser}
	assert.True(t, CanModifyContent(owner, authorID))

	stranger := &model.User{ID: uuid.New(), Role: model.RoleUser}
	assert.False(t, CanModifyContent(stranger, authorID))

	moderator := &model.User{ID: uuid.New(), Role: model.RoleModerator}
	assert.True(t, CanModifyContent(moderator, authorID))

	admin := &model.User{ID: uuid.New(), Role: model.RoleAdmin}
	assert.True(t, CanModifyContent(admin, authorID))

	assert.False(t, CanModifyContent(nil, authorID))
}
