package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type CommentsHandler struct {
	CommentService *service.CommentService
}

// HandleCreate handles POST /api/comments
//
//	@Summary		Comment on a blog
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		foliosdk.CommentRequest	true	"Comment"
//	@Success		201		{object}	foliosdk.CommentResponse
//	@Failure		400		{object}	foliosdk.ErrorResponse
//	@Failure		401		{object}	foliosdk.ErrorResponse
//	@Failure		404		{object}	foliosdk.ErrorResponse	"blog not found"
//	@Router			/api/comments [post].
func (h *CommentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.CommentInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.CommentService.Create(r.Context(), actor(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, commentResponse(c))
}

// HandleList handles GET /api/comments/{blogId}
//
//	@Summary		List comments
//	@Tags			Comments
//	@Produce		json
//	@Param			blogId	path		string	true	"Blog ID"
//	@Success		200		{array}		foliosdk.CommentResponse
//	@Failure		404		{object}	foliosdk.ErrorResponse
//	@Router			/api/comments/{blogId} [get].
func (h *CommentsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	comments, err := h.CommentService.ListByBlog(r.Context(), r.PathValue("blogId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]foliosdk.CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = commentResponse(c)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate handles PUT /api/comments/{id}
//
//	@Summary		Edit comment
//	@Tags			Comments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string							true	"Comment ID"
//	@Param			request	body		foliosdk.CommentUpdateRequest	true	"New text"
//	@Success		200		{object}	foliosdk.CommentResponse
//	@Failure		400		{object}	foliosdk.ErrorResponse
//	@Failure		401		{object}	foliosdk.ErrorResponse
//	@Failure		403		{object}	foliosdk.ErrorResponse
//	@Failure		404		{object}	foliosdk.ErrorResponse
//	@Router			/api/comments/{id} [put].
func (h *CommentsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.CommentUpdateInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.CommentService.Update(r.Context(), actor(r), r.PathValue("id"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, commentResponse(c))
}

// HandleDelete handles DELETE /api/comments/{id}
//
//	@Summary		Delete comment
//	@Tags			Comments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Comment ID"
//	@Success		200	{object}	foliosdk.MessageResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Failure		403	{object}	foliosdk.ErrorResponse
//	@Failure		404	{object}	foliosdk.ErrorResponse
//	@Router			/api/comments/{id} [delete].
func (h *CommentsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.CommentService.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foliosdk.MessageResponse{Message: "Comment deleted successfully!"})
}
