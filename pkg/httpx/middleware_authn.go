package httpx

import (
	"context"
	"net/http"
	"strings"
)

// Authenticator resolves the raw Authorization header into an enriched
// context. It returns an error when the caller cannot be identified.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (context.Context, error)
}

// AuthnErrorFunc renders an authentication failure.
type AuthnErrorFunc func(w http.ResponseWriter, r *http.Request, err error)

// AuthnMiddleware rejects requests the Authenticator refuses and passes the
// enriched context on otherwise.
func AuthnMiddleware(a Authenticator, onError AuthnErrorFunc) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := a.Authenticate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				onError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively per RFC 6750.
func BearerToken(authorization string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorization), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SetBearerChallenge adds the RFC 6750 WWW-Authenticate header for a 401.
func SetBearerChallenge(w http.ResponseWriter, code, desc string) {
	if code == "" {
		w.Header().Set("WWW-Authenticate", `Bearer realm="folio"`)
		return
	}
	w.Header().Set("WWW-Authenticate",
		`Bearer realm="folio", error="`+code+`", error_description="`+desc+`"`)
}
