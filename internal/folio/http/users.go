package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

// UsersHandler handles account endpoints.
type UsersHandler struct {
	UserService *service.UserService
	router      *Router
}

// HandleRegister handles POST /api/user/register
//
//	@Summary		Register
//	@Description	Creates an account with the user role and the default profile picture.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foliosdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	foliosdk.UserResponse
//	@Failure		400		{object}	foliosdk.ErrorResponse	"validation_error or conflict"
//	@Failure		429		{object}	foliosdk.ErrorResponse
//	@Router			/api/user/register [post].
func (h *UsersHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserService.Register(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.router.userResponse(u))
}

// HandleLogin handles POST /api/user/login
//
//	@Summary		Log in
//	@Description	Exchanges email and password for a bearer token valid for 24 hours.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Param			request	body		foliosdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	foliosdk.LoginResponse
//	@Failure		400		{object}	foliosdk.ErrorResponse	"invalid_credentials"
//	@Failure		429		{object}	foliosdk.ErrorResponse
//	@Router			/api/user/login [post].
func (h *UsersHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var in service.LoginInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	sess, err := h.UserService.Login(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foliosdk.LoginResponse{Token: sess.Token, ExpiresAt: sess.ExpiresAt})
}

// HandleLogout handles POST /api/user/logout
//
//	@Summary		Log out
//	@Description	Tokens are stateless; the client discards its token. Always succeeds.
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	foliosdk.MessageResponse
//	@Router			/api/user/logout [post].
func (h *UsersHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, foliosdk.MessageResponse{
		Message: "Logout successful. Please delete the token on the client side.",
	})
}

// HandleMe handles GET /api/user/me
//
//	@Summary		Current user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	foliosdk.UserResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Router			/api/user/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.router.userResponse(actor(r)))
}

// HandleList handles GET /api/user
//
//	@Summary		List users
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		foliosdk.UserResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Failure		403	{object}	foliosdk.ErrorResponse
//	@Router			/api/user [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.List(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]foliosdk.UserResponse, len(users))
	for i, u := range users {
		out[i] = h.router.userResponse(u)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate handles PUT /api/user/update/{id}
//
//	@Summary		Update user
//	@Description	Patches an account. A multipart body may carry a new "profilePic", which replaces the old one. Only admins may change a role.
//	@Tags			Users
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string						true	"User ID"
//	@Param			request		body		foliosdk.UserUpdateRequest	false	"Fields to change"
//	@Param			profilePic	formData	file						false	"New profile picture (multipart only)"
//	@Success		200			{object}	foliosdk.UserResponse
//	@Failure		400			{object}	foliosdk.ErrorResponse
//	@Failure		401			{object}	foliosdk.ErrorResponse
//	@Failure		403			{object}	foliosdk.ErrorResponse
//	@Failure		404			{object}	foliosdk.ErrorResponse
//	@Failure		502			{object}	foliosdk.ErrorResponse	"storage_error"
//	@Router			/api/user/update/{id} [put].
func (h *UsersHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	in, up, err := decodeUserUpdate(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	u, err := h.UserService.Update(r.Context(), actor(r), r.PathValue("id"), in, up)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.router.userResponse(u))
}

// HandleUpdateProfilePicture handles PUT /api/user/updateProfilePic/{id}
//
//	@Summary		Replace profile picture
//	@Description	Stores the new picture, records it, then deletes the previous one unless it is the default.
//	@Tags			Users
//	@Accept			mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id			path		string	true	"User ID"
//	@Param			profilePic	formData	file	true	"Image (jpg, jpeg, png, gif, webp; max 5MB)"
//	@Success		200			{object}	foliosdk.UserResponse
//	@Failure		400			{object}	foliosdk.ErrorResponse
//	@Failure		401			{object}	foliosdk.ErrorResponse
//	@Failure		403			{object}	foliosdk.ErrorResponse
//	@Failure		502			{object}	foliosdk.ErrorResponse	"storage_error"
//	@Router			/api/user/updateProfilePic/{id} [put].
func (h *UsersHandler) HandleUpdateProfilePicture(w http.ResponseWriter, r *http.Request) {
	var up *media.Upload
	if isMultipart(r) {
		if err := parseMultipart(w, r, media.ProfileLimits); err != nil {
			writeError(w, r, err)
			return
		}
		var err error
		if up, err = formUpload(r, "profilePic", media.ProfileLimits); err != nil {
			writeError(w, r, err)
			return
		}
	}

	u, err := h.UserService.UpdateProfilePicture(r.Context(), actor(r), r.PathValue("id"), up)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.router.userResponse(u))
}

// HandleDelete handles DELETE /api/user/delete/{id}
//
//	@Summary		Delete user
//	@Tags			Users
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"User ID"
//	@Success		200	{object}	foliosdk.MessageResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Failure		403	{object}	foliosdk.ErrorResponse
//	@Failure		404	{object}	foliosdk.ErrorResponse
//	@Router			/api/user/delete/{id} [delete].
func (h *UsersHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.UserService.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foliosdk.MessageResponse{Message: "User deleted successfully."})
}
