package http

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/folio/internal/folio/domain"
	"github.com/aussiebroadwan/folio/internal/folio/media"
	"github.com/aussiebroadwan/folio/internal/folio/service"
	"github.com/aussiebroadwan/folio/internal/folio/store"
	"github.com/aussiebroadwan/folio/pkg/httpx"
	"github.com/aussiebroadwan/folio/pkg/slogx"

	_ "github.com/aussiebroadwan/folio/api/folio" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	Guard            *service.Guard
	UserService      *service.UserService
	ContentServices  map[domain.Kind]*service.ContentService
	CommentService   *service.CommentService
	MessageService   *service.MessageService
	BootstrapService *service.BootstrapService
	Media            *media.Manager

	// MediaDir, when set, is served read-only under MediaPrefix. Only the
	// local storage backend sets it.
	MediaDir    string
	MediaPrefix string

	Limits RateLimits
}

// RateLimits are the per-route budgets, one per class of endpoint.
type RateLimits struct {
	Login    httpx.RateLimitConfig // password checks, per IP
	Strict   httpx.RateLimitConfig // registration and bootstrap, per IP
	Moderate httpx.RateLimitConfig // authenticated calls, per user
	Public   httpx.RateLimitConfig // anonymous reads, per IP
}

// DefaultRateLimits returns the httpx profiles, including any environment
// overrides they picked up.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Login:    httpx.LoginLimit,
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Public:   httpx.PublicLimit,
	}
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	corsOrigins []string,
) *Router {
	r := &Router{
		Mux:             http.NewServeMux(),
		buildVersion:    buildVersion,
		startTime:       time.Now(),
		logger:          logger,
		store:           st,
		ContentServices: make(map[domain.Kind]*service.ContentService),
		MediaPrefix:     "/api/Media",
		Limits:          DefaultRateLimits(),
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(httpx.DefaultCORSConfig(corsOrigins...)),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerContent()
	r.registerComments()
	r.registerMessages()
	r.registerBootstrap()
	r.registerSystem()
	r.registerMedia()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Folio Portfolio API
//	@version		0.1.0
//	@description	Blog posts, skills, projects, comments, messages and user accounts for a personal portfolio.
//	@description
//	@description				Mutations require a bearer token issued by POST /api/user/login (HS256, 24 hour lifetime).
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/folio
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:5000
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService, router: r}

	// Account creation and password checks are limited per IP
	r.Mux.Handle("POST /api/user/register", public(http.HandlerFunc(h.HandleRegister), r.Limits.Strict))
	r.Mux.Handle("POST /api/user/login", public(http.HandlerFunc(h.HandleLogin), r.Limits.Login))
	r.Mux.Handle("POST /api/user/logout", public(http.HandlerFunc(h.HandleLogout), r.Limits.Public))

	r.Mux.Handle("GET /api/user/me", r.authenticated(http.HandlerFunc(h.HandleMe), r.Limits.Public))
	r.Mux.Handle("GET /api/user", r.authenticated(http.HandlerFunc(h.HandleList), r.Limits.Moderate))
	r.Mux.Handle("PUT /api/user/update/{id}", r.authenticated(http.HandlerFunc(h.HandleUpdate), r.Limits.Moderate))
	r.Mux.Handle("PUT /api/user/updateProfilePic/{id}",
		r.authenticated(http.HandlerFunc(h.HandleUpdateProfilePicture), r.Limits.Moderate))
	r.Mux.Handle("DELETE /api/user/delete/{id}", r.authenticated(http.HandlerFunc(h.HandleDelete), r.Limits.Moderate))
}

func (r *Router) registerContent() {
	for _, kind := range domain.Kinds {
		svc, ok := r.ContentServices[kind]
		if !ok {
			continue
		}
		h := &ContentHandler{ContentService: svc, router: r}
		base := "/api/" + string(kind)

		// Reads are public
		r.Mux.Handle("GET "+base, public(http.HandlerFunc(h.HandleList), r.Limits.Public))
		r.Mux.Handle("GET "+base+"/{id}", public(http.HandlerFunc(h.HandleGet), r.Limits.Public))

		// Writes are admin only, enforced by the service policy table
		r.Mux.Handle("POST "+base, r.authenticated(http.HandlerFunc(h.HandleCreate), r.Limits.Moderate))
		r.Mux.Handle("PUT "+base+"/{id}", r.authenticated(http.HandlerFunc(h.HandleUpdate), r.Limits.Moderate))
		r.Mux.Handle("DELETE "+base+"/{id}", r.authenticated(http.HandlerFunc(h.HandleDelete), r.Limits.Moderate))

		if kind == domain.KindBlog {
			r.Mux.Handle("POST "+base+"/like/{id}", r.authenticated(http.HandlerFunc(h.HandleLike), r.Limits.Moderate))
			r.Mux.Handle("POST "+base+"/share/{id}", r.authenticated(http.HandlerFunc(h.HandleShare), r.Limits.Moderate))
		}
	}
}

func (r *Router) registerComments() {
	h := &CommentsHandler{CommentService: r.CommentService}

	r.Mux.Handle("POST /api/comments", r.authenticated(http.HandlerFunc(h.HandleCreate), r.Limits.Moderate))
	r.Mux.Handle("GET /api/comments/{blogId}", public(http.HandlerFunc(h.HandleList), r.Limits.Public))
	r.Mux.Handle("PUT /api/comments/{id}", r.authenticated(http.HandlerFunc(h.HandleUpdate), r.Limits.Moderate))
	r.Mux.Handle("DELETE /api/comments/{id}", r.authenticated(http.HandlerFunc(h.HandleDelete), r.Limits.Moderate))
}

func (r *Router) registerMessages() {
	h := &MessagesHandler{MessageService: r.MessageService}

	r.Mux.Handle("POST /api/messages", r.authenticated(http.HandlerFunc(h.HandleCreate), r.Limits.Moderate))
	r.Mux.Handle("GET /api/messages", r.authenticated(http.HandlerFunc(h.HandleList), r.Limits.Moderate))
	r.Mux.Handle("DELETE /api/messages/{id}", r.authenticated(http.HandlerFunc(h.HandleDelete), r.Limits.Moderate))
}

func (r *Router) registerBootstrap() {
	// POST /api/bootstrap - very strict rate limit by IP (one-time setup endpoint)
	h := &BootstrapHandler{BootstrapService: r.BootstrapService, router: r}
	r.Mux.Handle("POST /api/bootstrap", public(h, r.Limits.Strict))
}

func (r *Router) registerSystem() {
	// Monitoring systems may poll frequently
	r.Mux.Handle("GET /livez", public(LivezHandler(r.startTime, r.buildVersion), r.Limits.Public))
	r.Mux.Handle("GET /readyz", public(ReadyzHandler(r.startTime, r.buildVersion, r.store), r.Limits.Public))
}

func (r *Router) registerMedia() {
	if r.MediaDir == "" {
		return
	}
	prefix := strings.TrimSuffix(r.MediaPrefix, "/") + "/"
	files := http.StripPrefix(prefix, http.FileServer(noListing{http.Dir(r.MediaDir)}))
	r.Mux.Handle("GET "+prefix, public(files, r.Limits.Public))
}

// noListing hides directory indexes of the media folder.
type noListing struct {
	fs http.FileSystem
}

func (n noListing) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if st.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}
	return f, nil
}
