package http

import (
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

type MessagesHandler struct {
	MessageService *service.MessageService
}

// HandleCreate handles POST /api/messages
//
//	@Summary		Contact the site owner
//	@Tags			Messages
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		foliosdk.ContactRequest	true	"Message"
//	@Success		201		{object}	foliosdk.ContactResponse
//	@Failure		400		{object}	foliosdk.ErrorResponse
//	@Failure		401		{object}	foliosdk.ErrorResponse
//	@Router			/api/messages [post].
func (h *MessagesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.MessageInput
	if err := httpx.DecodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}

	m, err := h.MessageService.Create(r.Context(), actor(r), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, messageResponse(m))
}

// HandleList handles GET /api/messages
//
//	@Summary		List messages
//	@Tags			Messages
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		foliosdk.ContactResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Failure		403	{object}	foliosdk.ErrorResponse
//	@Router			/api/messages [get].
func (h *MessagesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.MessageService.List(r.Context(), actor(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]foliosdk.ContactResponse, len(msgs))
	for i, m := range msgs {
		out[i] = messageResponse(m)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDelete handles DELETE /api/messages/{id}
//
//	@Summary		Delete message
//	@Tags			Messages
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Message ID"
//	@Success		200	{object}	foliosdk.MessageResponse
//	@Failure		401	{object}	foliosdk.ErrorResponse
//	@Failure		403	{object}	foliosdk.ErrorResponse
//	@Failure		404	{object}	foliosdk.ErrorResponse
//	@Router			/api/messages/{id} [delete].
func (h *MessagesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.MessageService.Delete(r.Context(), actor(r), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, foliosdk.MessageResponse{Message: "Message deleted successfully."})
}
