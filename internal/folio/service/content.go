package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/idx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

const DefaultPageSize = 5

type ContentInput struct {
	Title      string   `json:"title" validate:"required,min=5,max=200"`
	Body       string   `json:"content" validate:"required,min=15"`
	Categories []string `json:"categories" validate:"omitempty,max=20,dive,min=1,max=50"`
}

func (in *ContentInput) normalize() {
	in.Title = strings.TrimSpace(in.Title)
	in.Body = strings.TrimSpace(in.Body)
	in.Categories = normalizeCategories(in.Categories)
}

// ContentPatch is a partial update: nil fields keep their value.
type ContentPatch struct {
	Title      *string   `json:"title" validate:"omitnil,min=5,max=200"`
	Body       *string   `json:"content" validate:"omitnil,min=15"`
	Categories *[]string `json:"categories" validate:"omitnil,max=20,dive,min=1,max=50"`
}

func (p *ContentPatch) normalize() {
	if p.Title != nil {
		*p.Title = strings.TrimSpace(*p.Title)
	}
	if p.Body != nil {
		*p.Body = strings.TrimSpace(*p.Body)
	}
	if p.Categories != nil {
		c := normalizeCategories(*p.Categories)
		p.Categories = &c
	}
}

func normalizeCategories(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, c := range in {
		c = strings.TrimSpace(c)
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

// ContentService runs the create/update/delete flows for one content kind.
// Blogs, skills and projects differ only in Kind.
type ContentService struct {
	Kind     domain.Kind
	Store    store.Store
	Media    *media.Manager
	PageSize int
}

func (s *ContentService) repo() store.Content { return s.Store.Content(s.Kind) }

func (s *ContentService) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return DefaultPageSize
}

// Get returns one entry. Public.
func (s *ContentService) Get(ctx context.Context, id string) (domain.Content, error) {
	c, err := s.repo().GetContent(ctx, id)
	return c, mapStoreErr(err)
}

// List returns page (1-based) of entries, newest first. Public.
func (s *ContentService) List(ctx context.Context, page int) (domain.Page[domain.Content], error) {
	page = max(page, 1)
	size := s.pageSize()

	items, total, err := s.repo().ListContent(ctx, store.ListOptions{Limit: size, Offset: (page - 1) * size})
	if err != nil {
		return domain.Page[domain.Content]{}, err
	}
	return domain.NewPage(items, page, size, total), nil
}

// Create stores the upload, if any, and persists a new entry authored by actor.
func (s *ContentService) Create(ctx context.Context, actor domain.User, in ContentInput, up *media.Upload) (domain.Content, error) {
	if err := Authorize(actor, ActionContentCreate, ""); err != nil {
		return domain.Content{}, err
	}

	in.normalize()
	if err := validateStruct(in); err != nil {
		return domain.Content{}, err
	}

	now := time.Now().UTC()
	c := domain.Content{
		ID:         idx.NewString(),
		Kind:       s.Kind,
		Title:      in.Title,
		Body:       in.Body,
		AuthorID:   actor.ID,
		Categories: in.Categories,
		LikedBy:    []string{},
		SharedBy:   []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := replaceImage(ctx, s.Media, s.Kind.Folder(), domain.DefaultImage, up, func(next domain.ImageRef) error {
		c.Image = next
		return mapStoreErr(s.repo().CreateContent(ctx, c))
	})
	if err != nil {
		return domain.Content{}, err
	}

	slogx.FromContext(ctx).Info("content created",
		slog.String("kind", string(s.Kind)), slog.String("id", c.ID))
	return c, nil
}

// Update applies patch and, when up is given, swaps the image. The previous
// image is deleted only after the new state is persisted.
func (s *ContentService) Update(ctx context.Context, actor domain.User, id string, patch ContentPatch, up *media.Upload) (domain.Content, error) {
	c, err := s.repo().GetContent(ctx, id)
	if err != nil {
		return domain.Content{}, mapStoreErr(err)
	}
	if err := Authorize(actor, ActionContentUpdate, c.AuthorID); err != nil {
		return domain.Content{}, err
	}

	patch.normalize()
	if err := validateStruct(patch); err != nil {
		return domain.Content{}, err
	}

	if patch.Title != nil {
		c.Title = *patch.Title
	}
	if patch.Body != nil {
		c.Body = *patch.Body
	}
	if patch.Categories != nil {
		c.Categories = *patch.Categories
	}
	c.UpdatedAt = time.Now().UTC()

	err = replaceImage(ctx, s.Media, s.Kind.Folder(), c.Image, up, func(next domain.ImageRef) error {
		c.Image = next
		return mapStoreErr(s.repo().UpdateContent(ctx, c))
	})
	if err != nil {
		return domain.Content{}, err
	}
	return c, nil
}

// Delete removes the entry and releases its image. Deleting a blog also
// deletes its comments.
func (s *ContentService) Delete(ctx context.Context, actor domain.User, id string) error {
	l := slogx.FromContext(ctx)

	c, err := s.repo().GetContent(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if err := Authorize(actor, ActionContentDelete, c.AuthorID); err != nil {
		return err
	}

	if s.Kind == domain.KindBlog {
		n, err := s.Store.Comments().DeleteCommentsByBlog(ctx, c.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			l.Info("deleted blog comments", slog.String("id", c.ID), slog.Int("count", n))
		}
	}

	err = deleteWithImage(ctx, s.Media, c.Image, func() error {
		return mapStoreErr(s.repo().DeleteContent(ctx, c.ID))
	})
	if err != nil {
		return err
	}

	l.Info("content deleted", slog.String("kind", string(s.Kind)), slog.String("id", c.ID))
	return nil
}

// Like toggles actor's like on a blog.
func (s *ContentService) Like(ctx context.Context, actor domain.User, id string) (domain.Content, error) {
	if err := s.requireBlog(actor, ActionBlogLike); err != nil {
		return domain.Content{}, err
	}
	if _, err := s.repo().ToggleLike(ctx, id, actor.ID); err != nil {
		return domain.Content{}, mapStoreErr(err)
	}
	return s.Get(ctx, id)
}

// Share records that actor shared a blog. Sharing again changes nothing.
func (s *ContentService) Share(ctx context.Context, actor domain.User, id string) (domain.Content, error) {
	if err := s.requireBlog(actor, ActionBlogShare); err != nil {
		return domain.Content{}, err
	}
	if err := s.repo().AddShare(ctx, id, actor.ID); err != nil {
		return domain.Content{}, mapStoreErr(err)
	}
	return s.Get(ctx, id)
}

func (s *ContentService) requireBlog(actor domain.User, action Action) error {
	if err := Authorize(actor, action, ""); err != nil {
		return err
	}
	if s.Kind != domain.KindBlog {
		return ErrNotFound
	}
	return nil
}
