package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/treedoctor/treedoctor-api/internal/badge"
	"github.com/treedoctor/treedoctor-api/internal/calendar"
	"github.com/treedoctor/treedoctor-api/internal/handler"
	"github.com/treedoctor/treedoctor-api/internal/logger"
	"github.com/treedoctor/treedoctor-api/internal/metrics"
	"github.com/treedoctor/treedoctor-api/internal/student"
	"github.com/treedoctor/treedoctor-api/internal/tree"
)

// Services groups the domain services the HTTP layer exposes.
type Services struct {
	Students student.Service
	Trees    tree.Service
	Badges   badge.Service
	Calendar calendar.Service
}

// Options carries listener and security settings.
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	// Readiness dependencies reported by /readyz, keyed by name.
	Readiness map[string]handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(opts Options, svcs Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, svcs),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       ReadTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
	}
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(opts Options, svcs Services) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(opts.Readiness))

	catalogVersion := ""
	if svcs.Badges != nil {
		catalogVersion = svcs.Badges.GetCatalog().Version()
	}
	r.Get("/version", handler.HandleVersion(catalogVersion))

	r.Handle("/metrics", promhttp.Handler())

	studentHandler := handler.NewStudentHandler(svcs.Students)
	treeHandler := handler.NewTreeHandler(svcs.Trees)
	badgeHandler := handler.NewBadgeHandler(svcs.Badges)
	calendarHandler := handler.NewCalendarHandler(svcs.Calendar)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/badges/catalog", badgeHandler.GetCatalog)

		r.Route("/students", func(r chi.Router) {
			r.Post("/", studentHandler.Register)

			r.Route("/{userID}", func(r chi.Router) {
				r.Get("/", studentHandler.Get)

				r.Route("/trees", func(r chi.Router) {
					r.Post("/", treeHandler.Plant)
					r.Get("/", treeHandler.List)
					r.Get("/{treeID}", treeHandler.Get)
					r.Post("/{treeID}/water", treeHandler.Water)
					r.Post("/{treeID}/measurements", treeHandler.LogMeasurement)
				})

				r.Get("/badges", badgeHandler.GetUserBadges)
				r.Post("/badges/evaluate", badgeHandler.Evaluate)
				r.Get("/calendar", calendarHandler.GetMonth)
				r.Get("/dashboard", calendarHandler.GetDashboard)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Probes and scrapes are too chatty to log
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		start := time.Now()
		next.ServeHTTP(rw, r)
		duration := time.Since(start)

		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start blocks serving HTTP until Stop is called. A graceful stop is not
// reported as an error.
func (s *Server) Start() error {
	logger.Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	logger.Info(LogMsgServerStopping, "addr", s.httpServer.Addr)
	return s.httpServer.Shutdown(ctx)
}
