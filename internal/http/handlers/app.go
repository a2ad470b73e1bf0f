package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"creatoriq/internal/domain"
	"creatoriq/internal/idea"
	"creatoriq/internal/middleware"
)

// App bundles the dependencies shared by all HTTP handlers.
type App struct {
	Ideas      *idea.Service
	Users      domain.UserRepository
	Analytics  domain.AnalyticsRepository
	Logger     zerolog.Logger
	JWTSecret  string
	BcryptCost int

	validate *validator.Validate
}

// Options carries App construction parameters.
type Options struct {
	Ideas      *idea.Service
	Users      domain.UserRepository
	Analytics  domain.AnalyticsRepository
	Logger     zerolog.Logger
	JWTSecret  string
	BcryptCost int
}

// NewApp constructs the handler container.
func NewApp(opts Options) *App {
	return &App{
		Ideas:      opts.Ideas,
		Users:      opts.Users,
		Analytics:  opts.Analytics,
		Logger:     opts.Logger,
		JWTSecret:  opts.JWTSecret,
		BcryptCost: opts.BcryptCost,
		validate:   validator.New(),
	}
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}
