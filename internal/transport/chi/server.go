package chi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wfsquery/internal/domain"
	getfeatureuc "github.com/kailas-cloud/wfsquery/internal/usecase/getfeature"
	healthuc "github.com/kailas-cloud/wfsquery/internal/usecase/health"
	searchuc "github.com/kailas-cloud/wfsquery/internal/usecase/search"
	"github.com/kailas-cloud/wfsquery/internal/version"
	"github.com/kailas-cloud/wfsquery/internal/wfs"
)

const (
	contentTypeXML  = "application/xml; charset=utf-8"
	contentTypeJSON = "application/json"
	prettyIndent    = 2
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

// Server serves the wfsquery HTTP API.
type Server struct {
	getfeature    *getfeatureuc.Service
	search        *searchuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	getfeature *getfeatureuc.Service,
	search *searchuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		getfeature: getfeature,
		search:     search,
		health:     health,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeProfileNotFound),
		sentinelHandler(domain.ErrInvalidConfig, http.StatusBadRequest, ErrorCodeInvalidConfig),
		sentinelHandler(domain.ErrInvalidTerm, http.StatusBadRequest, ErrorCodeInvalidTerm),
	}
	return s
}

// ListProfiles handles GET /v1/profiles.
func (s *Server) ListProfiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.getfeature.Profiles(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ProfileListResponse{Items: names})
}

// GetProfile handles GET /v1/profiles/{name}.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request, name string) {
	cfg, err := s.getfeature.Profile(r.Context(), name)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

// ProfileGetFeature handles GET /v1/profiles/{name}/getfeature.
func (s *Server) ProfileGetFeature(w http.ResponseWriter, r *http.Request, name string, params GetFeatureParams) {
	doc, ok, err := s.getfeature.ForProfile(r.Context(), name, params.Term)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writeDocument(w, doc, ok, derefBool(params.Pretty))
}

// CombineGetFeature handles POST /v1/getfeature.
func (s *Server) CombineGetFeature(w http.ResponseWriter, r *http.Request, params CombineGetFeatureParams) {
	var req GetFeatureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	doc, ok, err := s.getfeature.ForConfig(r.Context(), req.Config, req.Term)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.writeDocument(w, doc, ok, derefBool(params.Pretty))
}

// BuildFilter handles POST /v1/filter.
func (s *Server) BuildFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Version != "" && req.Version != wfs.Version110 && req.Version != wfs.Version200 {
		writeError(w, http.StatusBadRequest, ErrorCodeInvalidConfig,
			fmt.Sprintf("version %q not recognized, only support %q", req.Version, []string{wfs.Version110, wfs.Version200}))
		return
	}

	expr, ok, err := s.search.BuildFilter(req.Term, req.AttributeDetails)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	b, err := wfs.MarshalFilter(expr, req.Version)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	// 200 even when degraded: the cache is optional.
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:   string(report.Status),
		Version:  version.Version,
		Profiles: report.Profiles,
		Checks:   checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// writeDocument writes the combined request, or 204 when there is nothing to request.
func (s *Server) writeDocument(w http.ResponseWriter, doc *wfs.Document, ok, pretty bool) {
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if pretty {
		doc.Indent(prettyIndent)
	}
	b, err := doc.Bytes()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeXML)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
// Validation sentinels carry their details in the wrapped message, which is safe to return.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, err.Error())
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.logger.Warn("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
