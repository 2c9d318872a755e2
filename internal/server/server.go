// Package server assembles the HTTP handler: Connect services, health and metrics
// endpoints, and the static frontend.
package server

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/gameochtend/internal/auth"
	"github.com/mmynk/gameochtend/internal/middleware"
	"github.com/mmynk/gameochtend/internal/service"
	"github.com/mmynk/gameochtend/pkg/api/apiconnect"
)

// apiPrefix is the path prefix shared by every Connect procedure.
const apiPrefix = "/gameochtend.v1."

// Services are the RPC implementations to mount.
type Services struct {
	Auth       *service.AuthService
	Groups     *service.GroupService
	Invites    *service.InvitationService
	Checklist  *service.ChecklistService
	Notes      *service.NoteService
	Attendance *service.AttendanceService
}

// Options configure New.
type Options struct {
	JWT *auth.JWTManager

	// StaticDir is served for every non-API path. Empty disables it.
	StaticDir string

	// Registry receives the RPC metrics and backs /metrics. Nil uses a fresh registry.
	Registry *prometheus.Registry

	Logger *slog.Logger
}

// New builds the root handler.
func New(svcs Services, opts Options) (http.Handler, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	metrics, err := middleware.NewMetrics(reg)
	if err != nil {
		return nil, err
	}

	// Register and Login are public; the other AuthService calls check the session themselves.
	public := connect.WithInterceptors(
		middleware.OptionalAuth(opts.JWT),
		middleware.LoggingInterceptor(logger),
		metrics.Interceptor(),
	)
	private := connect.WithInterceptors(
		middleware.RequireAuth(opts.JWT),
		middleware.LoggingInterceptor(logger),
		metrics.Interceptor(),
	)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(logger))
	r.Use(cors)

	mount := func(path string, h http.Handler) {
		r.Handle(path+"*", h)
	}
	mount(apiconnect.NewAuthServiceHandler(svcs.Auth, public))
	mount(apiconnect.NewGroupServiceHandler(svcs.Groups, private))
	mount(apiconnect.NewInvitationServiceHandler(svcs.Invites, private))
	mount(apiconnect.NewChecklistServiceHandler(svcs.Checklist, private))
	mount(apiconnect.NewNoteServiceHandler(svcs.Notes, private))
	mount(apiconnect.NewAttendanceServiceHandler(svcs.Attendance, private))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	if opts.StaticDir != "" {
		staticDir, err := filepath.Abs(opts.StaticDir)
		if err != nil {
			return nil, err
		}
		logger.Info("Serving static files", "path", staticDir)
		r.NotFound(staticHandler(staticDir))
	}

	return r, nil
}

// staticHandler serves files from dir, falling back to index.html for unknown paths.
func staticHandler(dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, apiPrefix) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}
		filePath := filepath.Join(dir, filepath.Clean("/"+urlPath))

		if info, err := os.Stat(filePath); err != nil || info.IsDir() {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}
		http.ServeFile(w, r, filePath)
	}
}

// requestLogger logs each request once it completes.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Debug("Request completed",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"request_id", chimw.GetReqID(r.Context()),
				"remote_addr", r.RemoteAddr,
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

// cors adds CORS headers for browser access
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
