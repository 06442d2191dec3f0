// Package authz holds the pure permission predicates consulted before
// protected mutations. Predicates never touch the datastore; callers load
// the user and resource first.
package authz

import (
	"github.com/fitgear/storefront-backend/pkg/db/models"
	"github.com/fitgear/storefront-backend/pkg/enums"
	"github.com/google/uuid"
)

// Owns reports whether the user is the owner of the resource.
func Owns(user *models.User, ownerID uuid.UUID) bool {
	if user == nil || ownerID == uuid.Nil {
		return false
	}
	return user.ID == ownerID
}

// HasAny reports whether the user carries at least one of the given tags.
func HasAny(user *models.User, perms ...enums.Permission) bool {
	if user == nil {
		return false
	}
	for _, held := range user.Permissions {
		for _, wanted := range perms {
			if held == string(wanted) {
				return true
			}
		}
	}
	return false
}

// CanModifyItem combines ownership with elevated permissions using OR
// semantics. Deletion passes ADMIN/ITEMDELETE, updates ADMIN/ITEMUPDATE.
func CanModifyItem(user *models.User, ownerID uuid.UUID, elevated ...enums.Permission) bool {
	if Owns(user, ownerID) {
		return true
	}
	return HasAny(user, elevated...)
}

// CanUpdatePermissions gates changes to another user's permission set.
func CanUpdatePermissions(user *models.User) bool {
	return HasAny(user, enums.PermissionAdmin, enums.PermissionPermissionUpdate)
}

// CanViewOrder allows the order's owner plus admins.
func CanViewOrder(user *models.User, orderUserID uuid.UUID) bool {
	if Owns(user, orderUserID) {
		return true
	}
	return HasAny(user, enums.PermissionAdmin)
}
