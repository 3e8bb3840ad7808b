package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

// ContentHandler serves one content kind. The same handler type backs
// /api/blog, /api/skill and /api/project.
type ContentHandler struct {
	ContentService *service.ContentService
	router         *Router
}

// HandleList handles GET /api/{kind}
//
//	@Summary		List content
//	@Description	Returns one page of blogs, skills or projects, newest first.
//	@Tags			Content
//	@Produce		json
//	@Param			kind	path		string	true	"blog, skill or project"
//	@Param			page	query		int		false	"1-based page number"
//	@Success		200		{object}	foliosdk.ContentPage
//	@Failure		400		{object}	foliosdk.ErrorResponse
//	@Router			/api/{kind} [get].
func (h *ContentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			httpx.WriteJSON(w, http.StatusBadRequest, foliosdk.ErrorResponse{
				Error:            foliosdk.ErrorCodeInvalidRequest,
				ErrorDescription: "page must be a positive integer",
			})
			return
		}
		page = n
	}

	p, err := h.ContentService.List(r.Context(), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.router.contentPage(p))
}

// HandleGet handles GET /api/{kind}/{id}
//
//	@Summary		Get content
//	@Tags			Content
//	@Produce		json
//	@Param			kind	path		string	true	"blog, skill or project"
//	@Param			id		path		string	true	"Content ID"
//	@Success		200		{object}	foliosdk.ContentResponse
//	@Failure		404		{object}	foliosdk.ErrorResponse
//	@Router			/api/{kind}/{id} [get].
func (h *ContentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContentService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.router.contentResponse(c))
}

// HandleCreate handles POST /api/{kind}
//
//	@Summary		Create content
//	@Description	Accepts JSON, or multipart/form-data with an optional "image" file (max 10MB).
//	@Tags			Content
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			kind	path		string					true	"blog, skill or project"
//	@Param			request	body		foliosdk.ContentRequest	true	"Content"
//	@Success		201		{object}	foliosdk.ContentResponse
//	@Failure		400		{object}	foliosdk.ErrorResponse
//	@Failure		401		{object}	foliosdk.ErrorResponse
//	@Failure		403		{object}	foliosdk.ErrorResponse
//	@Failure		502		{object}	foliosdk.ErrorResponse	"storage_error"
//	@Router			/api/{kind} [post].
func (h *ContentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	patch, up, err := decodeContent(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.ContentService.Create(r.Context(), actor(r), contentInput(patch), up)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, h.router.contentResponse(c))
}

// HandleUpdate handles PUT /api/{kind}/{id}
//
//	@Summary		Update content
//	@Description	Patches the given fields. A new "image" replaces the old one, which is deleted after the update is saved.
//	@Tags			Content
//	@Accept			json,mpfd
//	@Produce		json
//	@Security		BearerAuth
//	@Param			kind	path		string					true	"blog, skill or project"
//	@Param			id		path		string					true	"Content ID"
//	@Param			request	body		foliosdk.ContentRequest	true	"Fields to change"
//	@Success		200		{object}	foliosdk.ContentResponse
//	@Failure		400		{object}	foliosdk.ErrorResponse
//	@Failure		401		{object}	foliosdk.ErrorResponse
//	@Failure		403		{object}	foliosdk.ErrorResponse
//	@Failure		404		{object}	foliosdk.ErrorResponse
//	@Failure		502		{object}	foliosdk.ErrorResponse	"storage_error"
//	@Router			/api/{kind}/{id} [put].
func (h *ContentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	patch, up, err := decodeContent(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.ContentService.Update(r.Context(), actor(r), r.PathValue("id"), patch, up)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.router.contentResponse(c))
}

// HandleDelete handles DELETE /api/{kind}/{id}
//
//	@Summary		Delete content
//	@Tags			Content
//	@Produce		json
//	@Security		BearerAuth
//	@Param			kind	path		string	true	"blog, skill or project"
//	@Param			id		path		string	true	"Content ID"
//	@Success		200		{object}	foliosdk.MessageResponse
//	@Failure		401		{object}	foliosdk.ErrorResponse
//	@Failure		403		{object}	foliosdk.ErrorResponse
//	@Failure		404		{object}	foliosdk.ErrorResponse
//	@Router			/api/{kind}/{id} [delete].
func (h *ContentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ContentService.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foliosdk.MessageResponse{
		Message: string(h.ContentService.Kind) + " deleted successfully.",
	})
}

// HandleLike handles POST /api/blog/like/{id}
//
//	@Summary		Toggle like
//	@Description	Likes the blog, or removes the like if the caller already liked it.
//	@Tags			Content
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Blog ID"
//	@Success		200	{object}	foliosdk.ContentResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Failure		404	{object}	foliosdk.ErrorResponse
//	@Router			/api/blog/like/{id} [post].
func (h *ContentHandler) HandleLike(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContentService.Like(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.router.contentResponse(c))
}

// HandleShare handles POST /api/blog/share/{id}
//
//	@Summary		Share
//	@Description	Records that the caller shared the blog. Repeating it changes nothing.
//	@Tags			Content
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Blog ID"
//	@Success		200	{object}	foliosdk.ContentResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Failure		404	{object}	foliosdk.ErrorResponse
//	@Router			/api/blog/share/{id} [post].
func (h *ContentHandler) HandleShare(w http.ResponseWriter, r *http.Request) {
	c, err := h.ContentService.Share(r.Context(), actor(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.router.contentResponse(c))
}
