package service

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/idx"
)

type MessageInput struct {
	Text string `json:"text" validate:"required,max=5000"`
}

type MessageService struct {
	Store store.Store
}

// Create records a message from actor to the site owner.
func (s *MessageService) Create(ctx context.Context, actor domain.User, in MessageInput) (domain.Message, error) {
	if err := Authorize(actor, ActionMessageCreate, ""); err != nil {
		return domain.Message{}, err
	}

	in.Text = strings.TrimSpace(in.Text)
	if err := validateStruct(in); err != nil {
		return domain.Message{}, err
	}

	m := domain.Message{
		ID:        idx.NewString(),
		UserID:    actor.ID,
		Text:      in.Text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Store.Messages().CreateMessage(ctx, m); err != nil {
		return domain.Message{}, mapStoreErr(err)
	}
	return m, nil
}

// List returns every message, newest first. Admin only.
func (s *MessageService) List(ctx context.Context, actor domain.User) ([]domain.Message, error) {
	if err := Authorize(actor, ActionMessageList, ""); err != nil {
		return nil, err
	}
	msgs, _, err := s.Store.Messages().ListMessages(ctx, store.ListOptions{})
	return msgs, err
}

// Delete removes a message. Admin only.
func (s *MessageService) Delete(ctx context.Context, actor domain.User, id string) error {
	if err := Authorize(actor, ActionMessageDelete, ""); err != nil {
		return err
	}
	return mapStoreErr(s.Store.Messages().DeleteMessage(ctx, id))
}
