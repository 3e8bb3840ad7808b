package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, mongo)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
//
// There is no transaction surface. Every mutation touches a single record
// (or a record plus its join rows inside one driver call) and concurrent
// updates are last-write-wins.
type Store interface {
	Users() Users
	Content(kind domain.Kind) Content
	Comments() Comments
	Messages() Messages

	ApplyMigrations() error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// ListOptions selects one page of a listing. Limit <= 0 returns everything.
type ListOptions struct {
	Limit  int
	Offset int
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail and GetUserByUsername expect normalised (lower-case) input.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user. ErrAlreadyExists on a username or email clash.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser replaces every mutable column and bumps updated_at.
	// ErrAlreadyExists on a username or email clash.
	UpdateUser(ctx context.Context, u domain.User) error

	DeleteUser(ctx context.Context, id string) error

	ListUsers(ctx context.Context, opts ListOptions) ([]domain.User, int, error)

	// IsEmpty reports whether no user exists. Used by bootstrap.
	IsEmpty(ctx context.Context) (bool, error)
}

// Content is the repository for one content kind. Every method is scoped to
// that kind: an id of another kind is ErrNotFound.
type Content interface {
	GetContent(ctx context.Context, id string) (domain.Content, error)
	CreateContent(ctx context.Context, c domain.Content) error

	// UpdateContent replaces title, body, image and categories and bumps
	// updated_at. Author and membership sets are left untouched.
	UpdateContent(ctx context.Context, c domain.Content) error

	DeleteContent(ctx context.Context, id string) error
	ListContent(ctx context.Context, opts ListOptions) ([]domain.Content, int, error)

	// ToggleLike adds userID to the like set or removes it when present, in a
	// single atomic step. It reports whether the user likes the entry afterwards.
	ToggleLike(ctx context.Context, id, userID string) (bool, error)

	// AddShare adds userID to the share set. Adding twice is a no-op.
	AddShare(ctx context.Context, id, userID string) error
}

type Comments interface {
	GetComment(ctx context.Context, id string) (domain.Comment, error)
	CreateComment(ctx context.Context, c domain.Comment) error
	UpdateComment(ctx context.Context, c domain.Comment) error
	DeleteComment(ctx context.Context, id string) error
	ListCommentsByBlog(ctx context.Context, blogID string) ([]domain.Comment, error)

	// DeleteCommentsByBlog removes every comment on a blog and reports how many.
	DeleteCommentsByBlog(ctx context.Context, blogID string) (int, error)
}

type Messages interface {
	CreateMessage(ctx context.Context, m domain.Message) error
	DeleteMessage(ctx context.Context, id string) error
	ListMessages(ctx context.Context, opts ListOptions) ([]domain.Message, int, error)
}
