package enums

import "fmt"

// Permission tags gate protected mutations. A user carries an ordered set of
// these on their row.
type Permission string

const (
	PermissionAdmin            Permission = "ADMIN"
	PermissionUser             Permission = "USER"
	PermissionItemCreate       Permission = "ITEMCREATE"
	PermissionItemUpdate       Permission = "ITEMUPDATE"
	PermissionItemDelete       Permission = "ITEMDELETE"
	PermissionPermissionUpdate Permission = "PERMISSIONUPDATE"
)

var allPermissions = []Permission{
	PermissionAdmin,
	PermissionUser,
	PermissionItemCreate,
	PermissionItemUpdate,
	PermissionItemDelete,
	PermissionPermissionUpdate,
}

// DefaultSignupPermissions is the set granted to every fresh account.
func DefaultSignupPermissions() []Permission {
	return []Permission{
		PermissionUser,
		PermissionItemCreate,
		PermissionItemUpdate,
		PermissionItemDelete,
	}
}

// All returns every known permission tag.
func All() []Permission {
	out := make([]Permission, len(allPermissions))
	copy(out, allPermissions)
	return out
}

func (p Permission) IsValid() bool {
	for _, known := range allPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// ParsePermission validates a raw tag coming off the wire.
func ParsePermission(raw string) (Permission, error) {
	p := Permission(raw)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown permission %q", raw)
	}
	return p, nil
}

// ParsePermissions validates a full set, rejecting the first unknown tag.
func ParsePermissions(raw []string) ([]Permission, error) {
	out := make([]Permission, 0, len(raw))
	for _, r := range raw {
		p, err := ParsePermission(r)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Strings converts a permission set to its storable form.
func Strings(perms []Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
