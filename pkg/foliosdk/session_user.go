package foliosdk

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the caller's account.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	var out UserResponse
	if err := s.client.doJSON(ctx, s.token, http.MethodGet, "/api/user/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers returns every account. Admin only.
func (s *Session) ListUsers(ctx context.Context) ([]UserResponse, error) {
	var out []UserResponse
	if err := s.client.doJSON(ctx, s.token, http.MethodGet, "/api/user", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser patches an account and, when image is given, replaces its
// profile picture in the same request. Self or admin.
func (s *Session) UpdateUser(ctx context.Context, id string, req UserUpdateRequest, image *File) (*UserResponse, error) {
	b := jsonBody(req)
	if image != nil {
		b = multipartBody(userFields(req), "profilePic", image)
	}

	var out UserResponse
	err := s.client.do(ctx, s.token, http.MethodPut, "/api/user/update/"+url.PathEscape(id), b, nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfilePicture uploads a new profile picture. Self or admin.
func (s *Session) UpdateProfilePicture(ctx context.Context, id string, image File) (*UserResponse, error) {
	var out UserResponse
	err := s.client.do(ctx, s.token, http.MethodPut, "/api/user/updateProfilePic/"+url.PathEscape(id),
		multipartBody(nil, "profilePic", &image), nil, &out, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes an account. Self or admin.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, s.token, http.MethodDelete, "/api/user/delete/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

// SendMessage leaves a message for the site owner.
func (s *Session) SendMessage(ctx context.Context, text string) (*ContactResponse, error) {
	var out ContactResponse
	err := s.client.doJSON(ctx, s.token, http.MethodPost, "/api/messages", ContactRequest{Text: text}, &out, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMessages returns every message. Admin only.
func (s *Session) ListMessages(ctx context.Context) ([]ContactResponse, error) {
	var out []ContactResponse
	if err := s.client.doJSON(ctx, s.token, http.MethodGet, "/api/messages", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMessage removes a message. Admin only.
func (s *Session) DeleteMessage(ctx context.Context, id string) error {
	return s.client.doJSON(ctx, s.token, http.MethodDelete, "/api/messages/"+url.PathEscape(id), nil, nil, http.StatusOK)
}

func userFields(req UserUpdateRequest) map[string][]string {
	fields := map[string][]string{}
	for name, v := range map[string]*string{
		"firstName": req.FirstName,
		"lastName":  req.LastName,
		"username":  req.Username,
		"email":     req.Email,
		"phone":     req.Phone,
		"password":  req.Password,
		"role":      req.Role,
	} {
		if v != nil {
			fields[name] = []string{*v}
		}
	}
	return fields
}
