package service

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/idx"
)

type CommentInput struct {
	BlogID string `json:"blogId" validate:"required"`
	Text   string `json:"text" validate:"required,max=2000"`
}

type CommentUpdateInput struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type CommentService struct {
	Store store.Store
}

// Create adds a comment to an existing blog.
func (s *CommentService) Create(ctx context.Context, actor domain.User, in CommentInput) (domain.Comment, error) {
	if err := Authorize(actor, ActionCommentCreate, ""); err != nil {
		return domain.Comment{}, err
	}

	in.BlogID = strings.TrimSpace(in.BlogID)
	in.Text = strings.TrimSpace(in.Text)
	if err := validateStruct(in); err != nil {
		return domain.Comment{}, err
	}
	// Comments attach to blogs only; the foreign key alone admits any kind.
	if _, err := s.Store.Content(domain.KindBlog).GetContent(ctx, in.BlogID); err != nil {
		return domain.Comment{}, mapStoreErr(err)
	}

	now := time.Now().UTC()
	c := domain.Comment{
		ID:        idx.NewString(),
		BlogID:    in.BlogID,
		AuthorID:  actor.ID,
		Text:      in.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Comments().CreateComment(ctx, c); err != nil {
		return domain.Comment{}, mapStoreErr(err)
	}
	return c, nil
}

// ListByBlog returns the comments on a blog, oldest first. Public.
func (s *CommentService) ListByBlog(ctx context.Context, blogID string) ([]domain.Comment, error) {
	if _, err := s.Store.Content(domain.KindBlog).GetContent(ctx, blogID); err != nil {
		return nil, mapStoreErr(err)
	}
	return s.Store.Comments().ListCommentsByBlog(ctx, blogID)
}

// Update edits the text of a comment. Author or admin.
func (s *CommentService) Update(ctx context.Context, actor domain.User, id string, in CommentUpdateInput) (domain.Comment, error) {
	c, err := s.Store.Comments().GetComment(ctx, id)
	if err != nil {
		return domain.Comment{}, mapStoreErr(err)
	}
	if err := Authorize(actor, ActionCommentUpdate, c.AuthorID); err != nil {
		return domain.Comment{}, err
	}

	in.Text = strings.TrimSpace(in.Text)
	if err := validateStruct(in); err != nil {
		return domain.Comment{}, err
	}

	c.Text = in.Text
	c.UpdatedAt = time.Now().UTC()
	if err := s.Store.Comments().UpdateComment(ctx, c); err != nil {
		return domain.Comment{}, mapStoreErr(err)
	}
	return c, nil
}

// Delete removes a comment. Author or admin.
func (s *CommentService) Delete(ctx context.Context, actor domain.User, id string) error {
	c, err := s.Store.Comments().GetComment(ctx, id)
	if err != nil {
		return mapStoreErr(err)
	}
	if err := Authorize(actor, ActionCommentDelete, c.AuthorID); err != nil {
		return err
	}
	return mapStoreErr(s.Store.Comments().DeleteComment(ctx, c.ID))
}
