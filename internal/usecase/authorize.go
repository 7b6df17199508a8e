package usecase

import (
	"yamdb-api/pkg/apperr"
	"yamdb-api/pkg/authz"

	"github.com/google/uuid"
)

// authorize maps the capability check onto the error taxonomy: anonymous
// callers get ErrUnauthenticated, authenticated-but-insufficient get
// ErrPermissionDenied.
func authorize(p authz.Principal, action authz.Action, resource authz.Resource) error {
	if authz.Can(p, action, resource) {
		return nil
	}
	if !p.Authenticated {
		return apperr.ErrUnauthenticated
	}
	return apperr.ErrPermissionDenied
}

// authorizeModify is the instance-level variant for reviews and comments:
// author, moderator or admin.
func authorizeModify(p authz.Principal, authorID uuid.UUID) error {
	if authz.CanModify(p, authorID) {
		return nil
	}
	if !p.Authenticated {
		return apperr.ErrUnauthenticated
	}
	return apperr.ErrPermissionDenied
}
