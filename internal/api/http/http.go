// Package httpapi hosts the JSON API. It wires CORS, client
// identification, per-IP rate limiting and admin token checks around the
// financial endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"github.com/technovapc/store-manager/internal/apierr"
	"github.com/technovapc/store-manager/internal/apisrv/financial"
	"github.com/technovapc/store-manager/internal/auth/jwt"
	"github.com/technovapc/store-manager/internal/middleware"
	"github.com/technovapc/store-manager/internal/ratelimit"
)

// Config is the configuration for the http server
type Config struct {
	Port              string   `mapstructure:"port"`
	Address           string   `mapstructure:"address"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute"`
}

// Pinger reports data-source health for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	hs      *http.Server
	c       *Config
	auth    *jwtauth.JWTAuth
	limiter *ratelimit.Limiter
	done    chan struct{}
}

// New creates a new server
func New(config *Config, auth *jwtauth.JWTAuth) *Server {
	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 120
	}
	return &Server{
		c:       config,
		auth:    auth,
		limiter: ratelimit.NewLimiter(time.Minute, rpm),
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(financialServer *financial.Server, pinger Pinger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(middleware.ClientIdentifier)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(s.rateLimit)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				slog.Default().ErrorContext(r.Context(), "health check failed",
					slog.String("err", err.Error()),
				)
				writeError(w, http.StatusServiceUnavailable, "UNAVAILABLE", "data source unreachable")
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/financial", func(r chi.Router) {
		r.Use(jwtauth.Verifier(s.auth))
		r.Use(s.adminOnly)
		r.Mount("/", financialServer.Routes())
	})

	return r
}

// adminOnly rejects requests without a valid token (401) and valid
// tokens without the admin role claim (403).
func (s *Server) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			ae := apierr.Unauthorized()
			writeError(w, ae.Status, ae.Code, ae.Message)
			return
		}
		if !jwt.IsAdmin(claims) {
			ae := apierr.Forbidden()
			writeError(w, ae.Status, ae.Code, ae.Message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := middleware.GetClientIP(r.Context())
		if !s.limiter.Allow(ip) {
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}

// Start starts the server
func (s *Server) Start(ctx context.Context, financialServer *financial.Server, pinger Pinger) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.router(financialServer, pinger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("store-manager new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down, letting in-flight requests drain.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(ctx)
}
