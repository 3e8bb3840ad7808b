package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// BootstrapTokenHeader carries the pre-shared bootstrap token.
const BootstrapTokenHeader = "X-Bootstrap-Token"

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
	router           *Router
}

// ServeHTTP handles the bootstrap endpoint for initial system setup.
//
//	@Summary		Bootstrap the first administrator
//	@Description	Creates the first admin account. Only available when a bootstrap token is configured and while no users exist.
//	@Tags			Bootstrap
//	@Accept			json
//	@Produce		json
//	@Param			X-Bootstrap-Token	header		string						true	"Bootstrap token"
//	@Param			request				body		foliosdk.BootstrapRequest	true	"Admin account"
//	@Success		201					{object}	foliosdk.UserResponse
//	@Failure		400					{object}	foliosdk.ErrorResponse	"Invalid request body or validation failed"
//	@Failure		401					{object}	foliosdk.ErrorResponse	"Missing or invalid bootstrap token, or already bootstrapped"
//	@Failure		404					{object}	foliosdk.ErrorResponse	"Bootstrap not enabled"
//	@Router			/api/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	l := slogx.FromContext(r.Context())

	// 1. Check if enabled
	if !h.BootstrapService.Enabled() {
		httpx.WriteJSON(w, http.StatusNotFound, foliosdk.ErrorResponse{
			Error:            foliosdk.ErrorCodeNotFound,
			ErrorDescription: "Bootstrap endpoint is not enabled",
		})
		return
	}

	// 2. Require bootstrap token header
	token := r.Header.Get(BootstrapTokenHeader)
	if token == "" {
		httpx.WriteJSON(w, http.StatusUnauthorized, foliosdk.ErrorResponse{
			Error:            "unauthorized",
			ErrorDescription: "Bootstrap token is required in X-Bootstrap-Token header",
		})
		return
	}

	// 3. Parse request body
	var req foliosdk.BootstrapRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	// 4. Perform bootstrap
	admin, err := h.BootstrapService.Bootstrap(r.Context(), token, domain.BootstrapData{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyBootstrapped):
			httpx.WriteJSON(w, http.StatusUnauthorized, foliosdk.ErrorResponse{
				Error:            "unauthorized",
				ErrorDescription: "System has already been bootstrapped",
			})
		case errors.Is(err, service.ErrBootstrapDenied):
			httpx.WriteJSON(w, http.StatusUnauthorized, foliosdk.ErrorResponse{
				Error:            "unauthorized",
				ErrorDescription: "Invalid bootstrap token",
			})
		default:
			writeError(w, r, err)
		}
		return
	}

	l.Info("bootstrap complete", "admin_id", admin.ID)
	httpx.WriteJSON(w, http.StatusCreated, h.router.userResponse(admin))
}
