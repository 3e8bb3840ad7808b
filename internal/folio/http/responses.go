package http

import (
	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
)

func (r *Router) userResponse(u domain.User) foliosdk.UserResponse {
	return foliosdk.UserResponse{
		ID:         u.ID,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Username:   u.Username,
		Email:      u.Email,
		Phone:      u.Phone,
		Role:       string(u.Role),
		ProfilePic: r.Media.URL(u.Image),
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func (r *Router) contentResponse(c domain.Content) foliosdk.ContentResponse {
	return foliosdk.ContentResponse{
		ID:           c.ID,
		Kind:         foliosdk.Kind(c.Kind),
		Title:        c.Title,
		Content:      c.Body,
		Image:        r.Media.URL(c.Image),
		Author:       c.AuthorID,
		Categories:   nonNil(c.Categories),
		LikedBy:      nonNil(c.LikedBy),
		SharedBy:     nonNil(c.SharedBy),
		Likes:        len(c.LikedBy),
		Shares:       len(c.SharedBy),
		CommentCount: c.CommentCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func (r *Router) contentPage(p domain.Page[domain.Content]) foliosdk.ContentPage {
	items := make([]foliosdk.ContentResponse, len(p.Items))
	for i, c := range p.Items {
		items[i] = r.contentResponse(c)
	}
	return foliosdk.ContentPage{Items: items, Page: p.Page, TotalPages: p.TotalPages, Total: p.Total}
}

func commentResponse(c domain.Comment) foliosdk.CommentResponse {
	return foliosdk.CommentResponse{
		ID:        c.ID,
		BlogID:    c.BlogID,
		Author:    c.AuthorID,
		Text:      c.Text,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func messageResponse(m domain.Message) foliosdk.ContactResponse {
	return foliosdk.ContactResponse{
		ID:        m.ID,
		User:      m.UserID,
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

// nonNil keeps empty sets serialised as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
