package http_test

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	folhttp "github.com/aussiebroadwan/folio/internal/folio/http"
	"github.com/aussiebroadwan/folio/pkg/foliosdk"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	live, err := s.client.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := s.client.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)

	req := foliosdk.BootstrapRequest{
		FirstName: "Site",
		LastName:  "Owner",
		Username:  "owner",
		Email:     "owner@x.com",
		Phone:     "+61 400 000 001",
		Password:  "Admin123!",
	}

	_, err := s.client.Bootstrap(ctx, "wrong", req)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	admin, err := s.client.Bootstrap(ctx, bootstrapToken, req)
	require.NoError(t, err)
	require.Equal(t, "admin", admin.Role)

	_, err = s.client.Bootstrap(ctx, bootstrapToken, req)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestBootstrapDisabled(t *testing.T) {
	s := newTestServer(t, func(r *folhttp.Router) { r.BootstrapService.Token = "" })

	_, err := s.client.Bootstrap(context.Background(), "anything", foliosdk.BootstrapRequest{})
	requireAPIError(t, err, http.StatusNotFound, foliosdk.ErrorCodeNotFound)
}

func TestLoginRateLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, func(r *folhttp.Router) {
		r.Limits.Login = httpx.RateLimitConfig{RequestsPerWindow: 3, Window: 15 * time.Minute, Burst: 3}
	})

	for range 3 {
		_, err := s.client.Login(ctx, "nobody@x.com", "Wrong1!pass")
		requireAPIError(t, err, http.StatusBadRequest, foliosdk.ErrorCodeInvalidCredentials)
	}

	_, err := s.client.Login(ctx, "nobody@x.com", "Wrong1!pass")
	requireAPIError(t, err, http.StatusTooManyRequests, foliosdk.ErrorCodeRateLimited)
}

func TestCORS(t *testing.T) {
	s := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, s.URL+"/api/blog", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://folio.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "https://folio.example", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMediaIsServedWithoutListing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "blogs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blogs", "a.png"), []byte("png"), 0o644))

	s := newTestServer(t, func(r *folhttp.Router) { r.MediaDir = dir })

	resp, err := http.Get(s.URL + "/api/Media/blogs/a.png")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(s.URL + "/api/Media/blogs/")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t)
	admin := s.admin(t)

	_, err := s.client.GetContent(ctx, foliosdk.KindBlog, "not-an-id")
	requireAPIError(t, err, http.StatusNotFound, foliosdk.ErrorCodeNotFound)

	_, err = s.client.ListComments(ctx, "bad id")
	requireAPIError(t, err, http.StatusNotFound, foliosdk.ErrorCodeNotFound)

	err = admin.DeleteContent(ctx, foliosdk.KindProject, "42")
	requireAPIError(t, err, http.StatusNotFound, foliosdk.ErrorCodeNotFound)

	// Authentication still runs first.
	_, err = s.client.NewSession("").UpdateUser(ctx, "42", foliosdk.UserUpdateRequest{}, nil)
	requireAPIError(t, err, http.StatusUnauthorized, foliosdk.ErrorCodeMissingToken)
}
