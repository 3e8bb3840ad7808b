package mongo

import (
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
)

type userDocument struct {
	ID           string          `bson:"_id"`
	FirstName    string          `bson:"firstName"`
	LastName     string          `bson:"lastName"`
	Username     string          `bson:"username"`
	Email        string          `bson:"email"`
	Phone        string          `bson:"phone"`
	PasswordHash string          `bson:"passwordHash"`
	Role         string          `bson:"role"`
	Image        domain.ImageRef `bson:"image"`
	CreatedAt    time.Time       `bson:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt"`
}

func toUserDocument(u domain.User) userDocument {
	return userDocument{
		ID:           u.ID,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		Email:        u.Email,
		Phone:        u.Phone,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Image:        u.Image.Normalize(),
		CreatedAt:    nowOr(u.CreatedAt),
		UpdatedAt:    nowOr(u.UpdatedAt),
	}
}

func (d userDocument) toDomain() domain.User {
	return domain.User{
		ID:           d.ID,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Username:     d.Username,
		Email:        d.Email,
		Phone:        d.Phone,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
		Image:        d.Image.Normalize(),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type contentDocument struct {
	ID         string          `bson:"_id"`
	Kind       string          `bson:"kind"`
	Title      string          `bson:"title"`
	Body       string          `bson:"content"`
	Image      domain.ImageRef `bson:"image"`
	AuthorID   string          `bson:"author"`
	Categories []string        `bson:"categories"`
	LikedBy    []string        `bson:"likedBy"`
	SharedBy   []string        `bson:"sharedBy"`
	CreatedAt  time.Time       `bson:"createdAt"`
	UpdatedAt  time.Time       `bson:"updatedAt"`
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func toContentDocument(kind domain.Kind, c domain.Content) contentDocument {
	return contentDocument{
		ID:         c.ID,
		Kind:       string(kind),
		Title:      c.Title,
		Body:       c.Body,
		Image:      c.Image.Normalize(),
		AuthorID:   c.AuthorID,
		Categories: nonNil(c.Categories),
		LikedBy:    nonNil(c.LikedBy),
		SharedBy:   nonNil(c.SharedBy),
		CreatedAt:  nowOr(c.CreatedAt),
		UpdatedAt:  nowOr(c.UpdatedAt),
	}
}

func (d contentDocument) toDomain(comments int) domain.Content {
	return domain.Content{
		ID:           d.ID,
		Kind:         domain.Kind(d.Kind),
		Title:        d.Title,
		Body:         d.Body,
		Image:        d.Image.Normalize(),
		AuthorID:     d.AuthorID,
		Categories:   d.Categories,
		LikedBy:      nonNil(d.LikedBy),
		SharedBy:     nonNil(d.SharedBy),
		CommentCount: comments,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

type commentDocument struct {
	ID        string    `bson:"_id"`
	BlogID    string    `bson:"blogId"`
	AuthorID  string    `bson:"author"`
	Text      string    `bson:"text"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d commentDocument) toDomain() domain.Comment {
	return domain.Comment{
		ID:        d.ID,
		BlogID:    d.BlogID,
		AuthorID:  d.AuthorID,
		Text:      d.Text,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type messageDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user"`
	Text      string    `bson:"message"`
	CreatedAt time.Time `bson:"createdAt"`
}

func (d messageDocument) toDomain() domain.Message {
	return domain.Message{ID: d.ID, UserID: d.UserID, Text: d.Text, CreatedAt: d.CreatedAt.UTC()}
}
