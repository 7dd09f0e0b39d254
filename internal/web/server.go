package web

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"github.com/hpungsan/tally/internal/config"
	"github.com/hpungsan/tally/internal/metrics"
	"github.com/hpungsan/tally/internal/store"
)

// NewHandler builds the routed, fully wrapped HTTP handler.
func NewHandler(st store.Store, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics, version string) http.Handler {
	h := &Handlers{
		store:     st,
		cfg:       cfg,
		log:       log,
		metrics:   m,
		version:   version,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax. /strings/{value} is served by
	// valueRoutes ahead of the mux.
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("POST /strings", h.HandleCreate)
	mux.HandleFunc("GET /strings", h.HandleList)
	mux.HandleFunc("GET /strings/filter-by-natural-language", h.HandleSearch)
	mux.HandleFunc("GET /health", h.HandleHealth)
	mux.Handle("GET /metrics", m.Handler())
	mux.HandleFunc("/", h.HandleNotFound)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	return h.instrument(c.Handler(securityHeaders(h.valueRoutes(mux))))
}

const (
	valuePrefix      = "/strings/"
	searchSegment    = "filter-by-natural-language"
	getValueRoute    = "GET /strings/{value}"
	deleteValueRoute = "DELETE /strings/{value}"
)

// valueRoutes serves GET and DELETE /strings/{value} from the escaped path.
// ServeMux cleans paths before matching, so values such as ".", ".." or "/"
// never reach a {value} pattern. Everything else, including the
// natural-language route, goes to next.
func (h *Handlers) valueRoutes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		segment, ok := strings.CutPrefix(r.URL.EscapedPath(), valuePrefix)
		if !ok || segment == "" || strings.Contains(segment, "/") {
			next.ServeHTTP(w, r)
			return
		}
		value, err := url.PathUnescape(segment)
		if err != nil || value == searchSegment {
			next.ServeHTTP(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead:
			r.Pattern = getValueRoute
			r.SetPathValue("value", value)
			h.HandleGet(w, r)
		case http.MethodDelete:
			r.Pattern = deleteValueRoute
			r.SetPathValue("value", value)
			h.HandleDelete(w, r)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// NewServer creates and configures the HTTP server.
func NewServer(st store.Store, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics, version string) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           NewHandler(st, cfg, log, m, version),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, log zerolog.Logger, shutdownTimeout time.Duration) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info().Str("event", "server_start").Str("addr", srv.Addr).Msg("tally listening")

	if strings.HasPrefix(srv.Addr, "0.0.0.0:") || strings.HasPrefix(srv.Addr, "[::]:") || strings.HasPrefix(srv.Addr, ":") {
		log.Warn().Msg("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info().Str("event", "server_shutdown").Str("signal", sig.String()).Msg("shutting down")
		if shutdownTimeout <= 0 {
			shutdownTimeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
