// Package permission defines the authorization predicates as pure
// functions over the closed role set. Endpoint handlers decide which
// predicate applies; predicates never touch the request.
package permission

import (
	"anoa.com/yamdbreview/internal/model"
	"github.com/google/uuid"
)

// CanManageCatalog gates categories, genres, titles and user
// administration.
func CanManageCatalog(role model.Role) bool {
	return role == model.RoleAdmin
}

// CanModerate allows editing and deleting other people's reviews and
// comments.
func CanModerate(role model.Role) bool {
	return role == model.RoleModerator || role == model.RoleAdmin
}

// CanModifyContent is the owner-or-moderation rule for reviews and
// comments.
func CanModifyContent(requester *model.User, authorID uuid.UUID) bool {
	if requester == nil {
		return false
	}
	return requester.ID == authorID || CanModerate(requester.Role)
}

// CanAssignRole decides whether a profile update may change the role
// field. Non-privileged callers have the field silently coerced back.
func CanAssignRole(role model.Role) bool {
	return CanModerate(role)
}
