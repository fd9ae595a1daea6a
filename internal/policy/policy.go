// Package policy is the single authorization decision point. Handlers
// and services describe the requester, the action, and the ownership
// relation; policy answers allow or deny. Keeping every rule here makes
// the access rules auditable in one screenful.
package policy

import (
	"review-catalog/internal/data/entity"
	"review-catalog/pkg/utils"

	"github.com/google/uuid"
)

type Action int

const (
	ActionRead Action = iota
	ActionCreate
	ActionMutate
)

// Subject is the requester as seen by the policy. An unauthenticated
// request is the zero Subject.
type Subject struct {
	Authenticated bool
	UserID        uuid.UUID
	Role          entity.UserRole
	Superuser     bool
}

// FromCurrentUser converts the middleware's context record.
func FromCurrentUser(user utils.CurrentUser) Subject {
	return Subject{
		Authenticated: true,
		UserID:        user.ID,
		Role:          entity.UserRole(user.Role),
		Superuser:     user.Superuser,
	}
}

func (s Subject) isAdmin() bool {
	return s.Authenticated && (s.Role == entity.RoleAdmin || s.Superuser)
}

func (s Subject) isModerator() bool {
	return s.Authenticated && s.Role == entity.RoleModerator
}

// CanManageUsers gates the /users collection: list, create, retrieve,
// update and delete by username all require an admin or superuser.
func CanManageUsers(s Subject) bool {
	return s.isAdmin()
}

// CanManageCatalog gates titles, categories and genres: reads are
// public, mutation requires an admin.
func CanManageCatalog(s Subject, action Action) bool {
	if action == ActionRead {
		return true
	}
	return s.isAdmin()
}

// CanModerateContent gates reviews and comments. Reads are public,
// creating requires authentication, and mutating an existing object
// requires moderator rights or authorship.
func CanModerateContent(s Subject, authorID uuid.UUID, action Action) bool {
	switch action {
	case ActionRead:
		return true
	case ActionCreate:
		return s.Authenticated
	default:
		if !s.Authenticated {
			return false
		}
		return s.isAdmin() || s.isModerator() || s.UserID == authorID
	}
}

// CanChangeRole decides whether an update request that names a role is
// acceptable: only admins assign roles; a self-update carrying a role
// key is always denied.
func CanChangeRole(s Subject) bool {
	return s.isAdmin()
}
