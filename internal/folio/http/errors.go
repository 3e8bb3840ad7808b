package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"
)

// writeError maps err onto a status and a stable error kind. Unknown errors
// are logged and answered with a generic 500.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		httpx.WriteJSON(w, http.StatusBadRequest, foliosdk.ErrorResponse{
			Error:            foliosdk.ErrorCodeValidation,
			ErrorDescription: verr.Error(),
			Fields:           verr.Fields,
		})
		return
	}

	var serr *media.StorageError
	if errors.As(err, &serr) {
		slogx.FromContext(r.Context()).Error("storage failure", slog.Any("error", err))
		httpx.WriteJSON(w, http.StatusBadGateway, foliosdk.ErrorResponse{
			Error:            foliosdk.ErrorCodeStorage,
			ErrorDescription: "Image storage is unavailable, please retry",
		})
		return
	}

	code, kind, desc := classify(err)
	if code == http.StatusUnauthorized {
		httpx.SetBearerChallenge(w, "invalid_token", desc)
	}
	if code == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", slog.Any("error", err))
	}
	httpx.WriteJSON(w, code, foliosdk.ErrorResponse{Error: kind, ErrorDescription: desc})
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, httpx.ErrBadJSON):
		return http.StatusBadRequest, foliosdk.ErrorCodeInvalidRequest, "Request body must be valid JSON"
	case errors.Is(err, errBadForm):
		return http.StatusBadRequest, foliosdk.ErrorCodeInvalidRequest, err.Error()
	case errors.Is(err, media.ErrInvalidUpload):
		return http.StatusBadRequest, foliosdk.ErrorCodeValidation, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest, foliosdk.ErrorCodeInvalidCredentials, "Invalid email or password"
	case errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest, foliosdk.ErrorCodeConflict, "A record with the same unique field already exists"
	case errors.Is(err, service.ErrMissingToken):
		return http.StatusUnauthorized, foliosdk.ErrorCodeMissingToken, "No token provided. Please authenticate."
	case errors.Is(err, service.ErrTokenExpired):
		return http.StatusUnauthorized, foliosdk.ErrorCodeTokenExpired, "Token has expired"
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized, foliosdk.ErrorCodeInvalidToken, "Please authenticate (use a valid token)"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusUnauthorized, foliosdk.ErrorCodeUserNotFound, "The token's user no longer exists"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, foliosdk.ErrorCodeForbidden, "You do not have permission to perform this action"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, foliosdk.ErrorCodeNotFound, "Resource not found"
	default:
		return http.StatusInternalServerError, foliosdk.ErrorCodeServerError, "An internal error occurred"
	}
}
