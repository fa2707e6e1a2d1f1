// Package server exposes the services over HTTP JSON on the goa runtime.
package server

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	goahttp "goa.design/goa/v3/http"
	"goa.design/goa/v3/http/middleware"

	"fyno/internal/config"
	"fyno/internal/logging"
	"fyno/internal/metrics"
	"fyno/internal/services"
	apperrors "fyno/pkg/errors"
)

// maxBodyBytes bounds request bodies; the largest valid contact form is far
// below this.
const maxBodyBytes = 64 << 10

// Services groups the handlers' dependencies.
type Services struct {
	Contact    *services.ContactService
	Newsletter *services.NewsletterService
	Stories    *services.StoryService
	Catalog    *services.CatalogService
	Health     *services.HealthService
}

type server struct {
	svc    Services
	logger *logging.Logger
}

// New builds the root handler with the middleware chain:
// Prometheus -> Security -> CORS -> Logging -> request ID -> routes.
func New(cfg *config.Config, svc Services, logger *logging.Logger) http.Handler {
	s := &server{svc: svc, logger: logger.Named("http")}

	mux := goahttp.NewMuxer()
	table := []route{
		{http.MethodGet, "/health", s.health},
		{http.MethodPost, "/api/contact", s.submitContact},
		{http.MethodPost, "/api/newsletter", s.subscribeNewsletter},
		{http.MethodGet, "/api/stories", s.listStories},
		{http.MethodGet, "/api/services", s.listCatalog},
		{http.MethodGet, "/api/services/{slug}", s.getCatalogEntry(mux)},
	}
	for _, rt := range table {
		mux.Handle(rt.method, rt.pattern, rt.handler)
	}

	routes := s.dispatch(mux, table)
	routes = middleware.PopulateRequestContext()(routes)
	routes = middleware.RequestID(
		middleware.UseXRequestIDHeaderOption(true),
		middleware.XRequestHeaderLimitOption(128),
	)(routes)

	metricsHandler := promhttp.Handler()
	rootHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			metricsHandler.ServeHTTP(w, r)
			return
		}
		routes.ServeHTTP(w, r)
	})

	return securityHeaders(cors(requestLogging(metrics.PrometheusMiddleware(rootHandler), s.logger), &cfg.CORS), cfg)
}

// route is one registered endpoint. The same table feeds the muxer and the
// 404/405 answers, so both agree on what exists.
type route struct {
	method  string
	pattern string
	handler http.HandlerFunc
}

// matches reports whether path fits the pattern; "{name}" segments match any
// non-empty segment.
func (rt route) matches(path string) bool {
	if !strings.HasPrefix(path, "/") {
		return false
	}
	want := strings.Split(rt.pattern[1:], "/")
	got := strings.Split(path[1:], "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

// dispatch hands known routes to the muxer and answers everything else with
// the JSON error body the handlers use.
func (s *server) dispatch(mux goahttp.Muxer, table []route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.RawPath
		if path == "" {
			path = r.URL.Path
		}

		var allowed []string
		for _, rt := range table {
			if !rt.matches(path) {
				continue
			}
			if rt.method == r.Method {
				mux.ServeHTTP(w, r)
				return
			}
			allowed = append(allowed, rt.method)
		}

		if len(allowed) == 0 {
			s.encodeError(r.Context(), w, apperrors.NotFound("route not found"))
			return
		}
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		s.encode(r.Context(), w, http.StatusMethodNotAllowed, errorResponse{Detail: "method not allowed"})
	})
}
