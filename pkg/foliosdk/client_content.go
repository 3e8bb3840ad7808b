package foliosdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// ListContent returns one page (1-based) of a collection.
func (c *Client) ListContent(ctx context.Context, kind Kind, page int) (*ContentPage, error) {
	path := "/api/" + string(kind)
	if page > 0 {
		path += "?page=" + strconv.Itoa(page)
	}

	var out ContentPage
	if err := c.doJSON(ctx, "", http.MethodGet, path, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetContent returns one entry.
func (c *Client) GetContent(ctx context.Context, kind Kind, id string) (*ContentResponse, error) {
	var out ContentResponse
	err := c.doJSON(ctx, "", http.MethodGet, "/api/"+string(kind)+"/"+url.PathEscape(id), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComments returns the comments on a blog, oldest first.
func (c *Client) ListComments(ctx context.Context, blogID string) ([]CommentResponse, error) {
	var out []CommentResponse
	err := c.doJSON(ctx, "", http.MethodGet, "/api/comments/"+url.PathEscape(blogID), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func contentFields(req ContentRequest) map[string][]string {
	fields := map[string][]string{}
	if req.Title != "" {
		fields["title"] = []string{req.Title}
	}
	if req.Content != "" {
		fields["content"] = []string{req.Content}
	}
	if len(req.Categories) > 0 {
		fields["categories"] = req.Categories
	}
	return fields
}

// CreateContent creates an entry. With a nil image the request is sent as
// JSON and the entry gets the default image. Admin only.
func (s *Session) CreateContent(ctx context.Context, kind Kind, req ContentRequest, image *File) (*ContentResponse, error) {
	b := jsonBody(req)
	if image != nil {
		b = multipartBody(contentFields(req), "image", image)
	}

	var out ContentResponse
	if err := s.client.do(ctx, s.token, http.MethodPost, "/api/"+string(kind), b, nil, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateContent patches an entry and, when image is given, replaces its
// image. Admin only.
func (s *Session) UpdateContent(ctx context.Context, kind Kind, id string, req ContentRequest, image *File) (*ContentResponse, error) {
	b := jsonBody(req)
	if image != nil {
		b = multipartBody(contentFields(req), "image", image)
	}

	var out ContentResponse
	path := "/api/" + string(kind) + "/" + url.PathEscape(id)
	if err := s.client.do(ctx, s.token, http.MethodPut, path, b, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteContent removes an entry and its image. Admin only.
func (s *Session) DeleteContent(ctx context.Context, kind Kind, id string) error {
	path := "/api/" + string(kind) + "/" + url.PathEscape(id)
	return s.client.doJSON(ctx, s.token, http.MethodDelete, path, nil, nil, http.StatusOK)
}

// LikeBlog toggles the caller's like.
func (s *Session) LikeBlog(ctx context.Context, id string) (*ContentResponse, error) {
	var out ContentResponse
	err := s.client.doJSON(ctx, s.token, http.MethodPost, "/api/blog/like/"+url.PathEscape(id), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ShareBlog records that the caller shared a blog.
func (s *Session) ShareBlog(ctx context.Context, id string) (*ContentResponse, error) {
	var out ContentResponse
	err := s.client.doJSON(ctx, s.token, http.MethodPost, "/api/blog/share/"+url.PathEscape(id), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateComment comments on a blog.
func (s *Session) CreateComment(ctx context.Context, req CommentRequest) (*CommentResponse, error) {
	var out CommentResponse
	if err := s.client.doJSON(ctx, s.token, http.MethodPost, "/api/comments", req, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateComment edits a comment. Author or admin.
func (s *Session) UpdateComment(ctx context.Context, id, text string) (*CommentResponse, error) {
	var out CommentResponse
	err := s.client.doJSON(ctx, s.token, http.MethodPut, "/api/comments/"+url.PathEscape(id),
		CommentUpdateRequest{Text: text}, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteComment removes a comment. Author or admin.
func (s *Session) DeleteComment(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, s.token, http.MethodDelete, "/api/comments/"+url.PathEscape(id), nil, nil, http.StatusOK)
}
