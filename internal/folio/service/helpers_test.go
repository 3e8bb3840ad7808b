package service_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/media/mediatest"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/internal/folio/store/drivers/sqlite"
	"github.com/aussiebroadwan/folio/pkg/cryptox"
	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type env struct {
	store    *sqlite.Store
	backend  *mediatest.Backend
	media    *media.Manager
	tokens   *service.TokenService
	guard    *service.Guard
	users    *service.UserService
	blogs    *service.ContentService
	skills   *service.ContentService
	comments *service.CommentService
	messages *service.MessageService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	hs, err := jwtx.NewHS256([]byte(testSecret), jwtx.VerifyOptions{Issuer: "folio"})
	require.NoError(t, err)

	backend := mediatest.New()
	mgr := media.NewManager(backend, "/default.webp", time.Second)
	tokens := &service.TokenService{Signer: hs, Verifier: hs, Issuer: "folio", TTL: time.Hour}

	return &env{
		store:    st,
		backend:  backend,
		media:    mgr,
		tokens:   tokens,
		guard:    &service.Guard{Store: st, Tokens: tokens},
		users:    &service.UserService{Store: st, Media: mgr, Tokens: tokens},
		blogs:    &service.ContentService{Kind: domain.KindBlog, Store: st, Media: mgr},
		skills:   &service.ContentService{Kind: domain.KindSkill, Store: st, Media: mgr},
		comments: &service.CommentService{Store: st},
		messages: &service.MessageService{Store: st},
	}
}

func registerInput(name string) service.RegisterInput {
	return service.RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Username:  name,
		Email:     name + "@x.com",
		Phone:     "+61 400 000 000",
		Password:  "Password1!",
	}
}

// register creates a user and, for admins, promotes it directly in the store.
func (e *env) register(t *testing.T, name string, role domain.Role) domain.User {
	t.Helper()
	ctx := context.Background()

	u, err := e.users.Register(ctx, registerInput(name))
	require.NoError(t, err)

	if role == domain.RoleAdmin {
		u.Role = domain.RoleAdmin
		require.NoError(t, e.store.Users().UpdateUser(ctx, u))
	}
	return u
}

func (e *env) blog(t *testing.T, admin domain.User, up *media.Upload) domain.Content {
	t.Helper()
	c, err := e.blogs.Create(context.Background(), admin, service.ContentInput{
		Title: "A blog title",
		Body:  "A body that is comfortably long enough",
	}, up)
	require.NoError(t, err)
	return c
}

func upload() *media.Upload {
	up := mediatest.Upload()
	return &up
}

func strptr(s string) *string { return &s }
