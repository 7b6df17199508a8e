package authz

import (
	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// Principal is the acting caller of a request. It is always passed
// explicitly into rule checks, never read from ambient state.
type Principal struct {
	ID            uuid.UUID
	Role          Role
	Superuser     bool
	Authenticated bool
}

// Anonymous returns the principal for an unauthenticated caller.
func Anonymous() Principal {
	return Principal{Role: RoleUser}
}

// IsAdmin reports admin capability. The superuser flag and the admin role
// are equivalent for authorization purposes.
func (p Principal) IsAdmin() bool {
	return p.Authenticated && (p.Role == RoleAdmin || p.Superuser)
}

func (p Principal) IsModerator() bool {
	return p.Authenticated && p.Role == RoleModerator
}

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Resource string

const (
	ResourceCategory Resource = "category"
	ResourceGenre    Resource = "genre"
	ResourceTitle    Resource = "title"
	ResourceReview   Resource = "review"
	ResourceComment  Resource = "comment"
	ResourceUser     Resource = "user"
)

// Can is the single resource-level capability check. Instance-level
// authorship rules for reviews and comments go through CanModify.
func Can(p Principal, action Action, resource Resource) bool {
	switch resource {
	case ResourceCategory, ResourceGenre, ResourceTitle:
		if action == ActionRead {
			return true
		}
		return p.IsAdmin()

	case ResourceReview, ResourceComment:
		switch action {
		case ActionRead:
			return true
		case ActionCreate:
			return p.Authenticated
		default:
			// update/delete additionally require CanModify against the author
			return p.Authenticated
		}

	case ResourceUser:
		return p.IsAdmin()
	}

	return false
}

// CanModify reports whether p may update or delete content owned by
// authorID: the author, a moderator, or an admin.
func CanModify(p Principal, authorID uuid.UUID) bool {
	if !p.Authenticated {
		return false
	}
	if p.ID == authorID {
		return true
	}
	return p.IsModerator() || p.IsAdmin()
}
