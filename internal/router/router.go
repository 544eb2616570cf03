package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/akielkucki/digitalmarketplace/internal/config"
	"github.com/akielkucki/digitalmarketplace/internal/handler"
	"github.com/akielkucki/digitalmarketplace/internal/middleware"
	"github.com/akielkucki/digitalmarketplace/internal/model"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Audit  *handler.AuditHandler
	Guilds *handler.GuildsHandler
	Pages  *handler.PageHandler
}

func New(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	gate *middleware.AuthGate,
	h Handlers,
	healthCheck func(ctx context.Context) error,
) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if healthCheck != nil {
			if err := healthCheck(req.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("degraded"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/signup", h.Auth.Signup)
			auth.Post("/login", h.Auth.Login)
			auth.Post("/logout", h.Auth.Logout)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Get("/guilds", h.Guilds.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRole(model.RoleAdmin)).Get("/users", h.User.List)
		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRole(model.RoleAdmin)).Get("/audit", h.Audit.List)
	})

	// Page routes sit behind the auth gate; the gate redirects, never 401s.
	r.Group(func(pages chi.Router) {
		pages.Use(gate.Handler)

		pages.Get("/", h.Pages.Serve("DevMarket"))
		pages.Get("/login", h.Pages.Serve("Login"))
		pages.Get("/signup", h.Pages.Serve("Sign Up"))
		pages.Get("/dashboard", h.Pages.Serve("Dashboard"))
		pages.Get("/profile", h.Pages.Serve("Profile"))
		pages.Get("/settings", h.Pages.Serve("Settings"))
	})

	return r
}
