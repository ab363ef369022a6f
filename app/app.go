// Package app assembles the service: database, analytics engine and the
// HTTP API, started and stopped as one unit.
package app

import (
	"context"
	"fmt"

	"log/slog"

	"github.com/go-chi/jwtauth/v5"

	"github.com/technovapc/store-manager/config"
	"github.com/technovapc/store-manager/internal/analytics"
	httpapi "github.com/technovapc/store-manager/internal/api/http"
	"github.com/technovapc/store-manager/internal/apisrv/financial"
	"github.com/technovapc/store-manager/internal/store"
)

// App is the main application
type App struct {
	hs   *httpapi.Server
	db   *store.MYSQLStore
	c    *config.Config
	done chan struct{}
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting store manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		return fmt.Errorf("couldn't connect to mysql: %w", err)
	}

	if a.c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is not set")
	}
	auth := jwtauth.New("HS256", []byte(a.c.Auth.JWTSecret), nil)

	svc := analytics.New(a.db, a.c.Analytics)
	financialS := financial.New(svc)

	a.hs = httpapi.New(&a.c.HTTP, auth)
	if err = a.hs.Start(ctx, financialS, a.db); err != nil {
		return fmt.Errorf("cannot start http server: %w", err)
	}

	go func() {
		<-a.hs.Done()
		close(a.done)
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() <-chan struct{} {
	return a.done
}
