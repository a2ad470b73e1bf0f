package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"creatoriq/internal/http/handlers"
	"creatoriq/internal/middleware"
)

// Options carries router construction parameters.
type Options struct {
	App             *handlers.App
	Logger          zerolog.Logger
	JWTSecret       string
	AllowedOrigins  []string
	RateLimitPerMin int
}

// NewRouter wires middleware and routes.
func NewRouter(opts Options) stdhttp.Handler {
	app := opts.App

	r := chi.NewRouter()
	r.Use(
		chimw.RealIP,
		middleware.RequestID,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/healthz", app.Health)

	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", app.Signup)
		r.Post("/login", app.Login)
		r.With(middleware.AuthJWT(opts.JWTSecret)).Get("/me", app.Me)
	})

	r.Route("/idea", func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.JWTSecret))
		r.Post("/generate-idea", app.GenerateIdea)
		r.Get("/", app.GetIdeas)
	})

	r.With(middleware.AuthJWT(opts.JWTSecret)).Get("/analytics", app.AnalyticsDashboard)

	return r
}
