package domain

import (
	"slices"
	"time"
)

// Kind names one of the interchangeable content collections.
type Kind string

const (
	KindBlog    Kind = "blog"
	KindSkill   Kind = "skill"
	KindProject Kind = "project"
)

// Kinds lists every content kind in routing order.
var Kinds = []Kind{KindBlog, KindSkill, KindProject}

// Valid reports whether k is a known content kind.
func (k Kind) Valid() bool { return slices.Contains(Kinds, k) }

// Folder is the media folder uploads for this kind are stored under.
func (k Kind) Folder() string { return string(k) + "s" }

// Content is a blog post, skill or project. The three are structurally
// identical; only blogs collect likes, shares and comments.
type Content struct {
	ID           string
	Kind         Kind
	Title        string
	Body         string
	Image        ImageRef
	AuthorID     string // immutable after creation
	Categories   []string
	LikedBy      []string // set of user ids
	SharedBy     []string // set of user ids
	CommentCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ContentPatch carries the fields of a partial content update.
type ContentPatch struct {
	Title      *string
	Body       *string
	Categories *[]string
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	Total      int
}

// NewPage computes TotalPages from total and size.
func NewPage[T any](items []T, page, size, total int) Page[T] {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	return Page[T]{Items: items, Page: page, TotalPages: pages, Total: total}
}
