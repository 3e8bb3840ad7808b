package service

import (
	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

// Policy is an authorization rule applied to an authenticated caller.
type Policy int

const (
	// Authenticated admits any caller with a valid token.
	Authenticated Policy = iota
	// AdminOnly admits only admins.
	AdminOnly
	// SelfOrAdmin admits the owner of the resource, or any admin.
	SelfOrAdmin
)

func (p Policy) String() string {
	switch p {
	case Authenticated:
		return "authenticated"
	case AdminOnly:
		return "admin-only"
	case SelfOrAdmin:
		return "self-or-admin"
	default:
		return "unknown"
	}
}

// Action names a mutation or privileged read.
type Action string

const (
	ActionContentCreate Action = "content.create"
	ActionContentUpdate Action = "content.update"
	ActionContentDelete Action = "content.delete"
	ActionBlogLike      Action = "blog.like"
	ActionBlogShare     Action = "blog.share"

	ActionCommentCreate Action = "comment.create"
	ActionCommentUpdate Action = "comment.update"
	ActionCommentDelete Action = "comment.delete"

	ActionUserList          Action = "user.list"
	ActionUserUpdate        Action = "user.update"
	ActionUserUpdatePicture Action = "user.updateProfilePic"
	ActionUserDelete        Action = "user.delete"

	ActionMessageCreate Action = "message.create"
	ActionMessageList   Action = "message.list"
	ActionMessageDelete Action = "message.delete"
)

// Policies is the single table every service consults before mutating.
// An action missing from the table is denied.
var Policies = map[Action]Policy{
	ActionContentCreate: AdminOnly,
	ActionContentUpdate: AdminOnly,
	ActionContentDelete: AdminOnly,
	ActionBlogLike:      Authenticated,
	ActionBlogShare:     Authenticated,

	ActionCommentCreate: Authenticated,
	ActionCommentUpdate: SelfOrAdmin,
	ActionCommentDelete: SelfOrAdmin,

	ActionUserList:          AdminOnly,
	ActionUserUpdate:        SelfOrAdmin,
	ActionUserUpdatePicture: SelfOrAdmin,
	ActionUserDelete:        SelfOrAdmin,

	ActionMessageCreate: Authenticated,
	ActionMessageList:   AdminOnly,
	ActionMessageDelete: AdminOnly,
}

// Check evaluates policy p for actor against the resource owner. ownerID is
// ignored by every policy but SelfOrAdmin.
func Check(actor domain.User, p Policy, ownerID string) error {
	if actor.ID == "" {
		return ErrMissingToken
	}
	switch p {
	case Authenticated:
		return nil
	case AdminOnly:
		if actor.IsAdmin() {
			return nil
		}
	case SelfOrAdmin:
		if actor.IsAdmin() || (ownerID != "" && actor.ID == ownerID) {
			return nil
		}
	}
	return ErrForbidden
}

// Authorize looks action up in Policies and checks it.
func Authorize(actor domain.User, action Action, ownerID string) error {
	p, ok := Policies[action]
	if !ok {
		return ErrForbidden
	}
	return Check(actor, p, ownerID)
}
