package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jmoiron/sqlx"

	"github.com/erazemk/reviewit/internal/auth"
	"github.com/erazemk/reviewit/internal/metrics"
	"github.com/erazemk/reviewit/internal/realtime"
	"github.com/erazemk/reviewit/internal/service"
)

// Options configures the router.
type Options struct {
	DB           *sqlx.DB
	Tokens       auth.Config
	RequirePhone bool
	BcryptCost   int
	CORSOrigins  []string
	// LoginRateLimit is the number of register/login requests allowed per
	// IP per minute. Zero disables the limit.
	LoginRateLimit int
	Metrics        bool
	// Hub receives new notifications. Without it the websocket route is
	// not mounted.
	Hub *realtime.Hub
}

// NewRouter creates the API router with all endpoints registered.
func NewRouter(opts Options) http.Handler {
	authSvc := &service.AuthService{
		DB:           opts.DB,
		Tokens:       opts.Tokens,
		RequirePhone: opts.RequirePhone,
		BcryptCost:   opts.BcryptCost,
	}
	notifications := &service.NotificationService{DB: opts.DB}
	if opts.Hub != nil {
		notifications.Publisher = opts.Hub
	}
	catalog := &service.CatalogService{DB: opts.DB}

	authHandler := &AuthHandler{Auth: authSvc}
	categoriesHandler := &CategoriesHandler{Catalog: catalog}
	itemsHandler := &ItemsHandler{Catalog: catalog}
	reviewsHandler := &ReviewsHandler{
		Reviews:   &service.ReviewService{DB: opts.DB, Notifications: notifications},
		Reactions: &service.ReactionService{DB: opts.DB, Notifications: notifications},
	}
	notificationsHandler := &NotificationsHandler{Notifications: notifications, Hub: opts.Hub}

	requireAuth := AuthMiddleware(authSvc)
	optionalAuth := OptionalAuth(authSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware)
	if opts.Metrics {
		r.Use(metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", health(opts.DB))
	if opts.Metrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(loginLimiter(opts.LoginRateLimit))
				r.Post("/register", authHandler.Register)
				r.Post("/login", authHandler.Login)
			})
			r.With(requireAuth).Post("/logout", authHandler.Logout)
			r.With(requireAuth).Get("/me", authHandler.Me)
		})

		r.Get("/categories", categoriesHandler.List)
		r.Get("/categories/{id}", categoriesHandler.Get)

		r.Route("/items", func(r chi.Router) {
			r.Get("/", itemsHandler.List)
			r.With(requireAuth).Post("/", itemsHandler.Create)
			r.Get("/{id}", itemsHandler.Get)
			r.Get("/{id}/image", itemsHandler.GetImage)
			r.With(requireAuth).Put("/{id}/image", itemsHandler.UploadImage)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.With(optionalAuth).Get("/", reviewsHandler.List)
			r.With(requireAuth).Post("/", reviewsHandler.Create)
			r.With(requireAuth).Post("/reaction", reviewsHandler.React)
		})

		r.Get("/comments/review/{reviewId}", reviewsHandler.Comments)
		r.With(requireAuth).Post("/comments", reviewsHandler.Comment)

		r.Route("/notifications", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", notificationsHandler.List)
			r.Delete("/", notificationsHandler.Delete)
			r.Get("/unread-count", notificationsHandler.UnreadCount)
			r.Put("/read-all", notificationsHandler.MarkAllRead)
			r.Put("/{id}/read", notificationsHandler.MarkRead)
			if opts.Hub != nil {
				r.Get("/ws", notificationsHandler.Stream)
			}
		})
	})

	return r
}

func loginLimiter(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			jsonError(w, http.StatusTooManyRequests, "Too many attempts. Please try again later.")
		}),
	)
}

func health(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			jsonError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
