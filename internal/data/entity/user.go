package entity

import (
	"yamdb-api/pkg/authz"
)

type User struct {
	Base
	Username    string     `db:"username"`
	Email       string     `db:"email"`
	FirstName   *string    `db:"first_name"`
	LastName    *string    `db:"last_name"`
	Bio         *string    `db:"bio"`
	Role        authz.Role `db:"role"`
	IsSuperuser bool       `db:"is_superuser"`
}

// EffectiveRole folds the superuser flag into the role: superusers act as
// admins everywhere, whatever their stored role says.
func (u *User) EffectiveRole() authz.Role {
	if u.IsSuperuser {
		return authz.RoleAdmin
	}
	return u.Role
}

// Principal builds the acting principal for this user.
func (u *User) Principal() authz.Principal {
	return authz.Principal{
		ID:            u.ID,
		Role:          u.Role,
		Superuser:     u.IsSuperuser,
		Authenticated: true,
	}
}
