// Package chi exposes the sharded store over a hand-written chi HTTP API.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/memtier/internal/domain"
	"github.com/kailas-cloud/memtier/internal/domain/query/request"
	"github.com/kailas-cloud/memtier/internal/domain/query/result"
	domrec "github.com/kailas-cloud/memtier/internal/domain/record"
	"github.com/kailas-cloud/memtier/internal/logger"
	"github.com/kailas-cloud/memtier/internal/metrics"
	healthuc "github.com/kailas-cloud/memtier/internal/usecase/health"
	queryuc "github.com/kailas-cloud/memtier/internal/usecase/query"
	recorduc "github.com/kailas-cloud/memtier/internal/usecase/record"
)

// Server routes HTTP requests to the query, record, and health usecases.
type Server struct {
	queries *queryuc.Service
	records *recorduc.Service
	health  *healthuc.Service
	logger  *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(
	queries *queryuc.Service,
	records *recorduc.Service,
	health *healthuc.Service,
	log *zap.Logger,
) *Server {
	return &Server{queries: queries, records: records, health: health, logger: log}
}

// Router builds the chi router with middleware and all routes mounted.
func (s *Server) Router(apiKeys []string) chi.Router {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)
	r.Use(metrics.Middleware())
	r.Use(s.loggerMiddleware())
	r.Use(BearerAuthMiddleware(apiKeys))

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Post("/search", s.handleSearch)
		r.Put("/records", s.handlePutRecord)
		r.Get("/tenants/{tenant}/records/{id}", s.handleGetRecord)
		r.Delete("/tenants/{tenant}/records/{id}", s.handleDeleteRecord)
	})

	return r
}

// loggerMiddleware embeds the process logger into every request context.
func (s *Server) loggerMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := logger.ContextWithLogger(r.Context(), s.logger)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// --- DTOs ---

type searchRequest struct {
	Vector     []float32 `json:"vector"`
	Tenant     string    `json:"tenant,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	DeadlineMS int       `json:"deadline_ms,omitempty"`
}

type searchHit struct {
	ID      string  `json:"id"`
	Score   float64 `json:"score"`
	Shard   int     `json:"shard"`
	Tenant  string  `json:"tenant,omitempty"`
	Content string  `json:"content,omitempty"`
	Tier    string  `json:"tier,omitempty"`
}

type searchResponse struct {
	Results  []searchHit            `json:"results"`
	Targeted int                    `json:"targeted_shards"`
	Failures []result.ShardFailure  `json:"failed_shards,omitempty"`
	Degraded bool                   `json:"degraded"`
}

type recordRequest struct {
	ID        string    `json:"id"`
	Tenant    string    `json:"tenant"`
	Content   string    `json:"content,omitempty"`
	Tier      string    `json:"tier,omitempty"`
	Embedding []float32 `json:"embedding"`
}

type recordResponse struct {
	ID       string `json:"id"`
	Tenant   string `json:"tenant"`
	Content  string `json:"content,omitempty"`
	Tier     string `json:"tier"`
	StoredAt string `json:"stored_at"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// --- Handlers ---

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var body searchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}
	if body.Limit == 0 {
		body.Limit = request.DefaultLimit
	}

	req, err := request.New(
		body.Vector, body.Tenant, body.Limit,
		time.Duration(body.DeadlineMS)*time.Millisecond,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	merged, err := s.queries.Search(r.Context(), &req)
	if err != nil {
		s.writeDomainError(w, err, "search failed")
		return
	}

	hits := make([]searchHit, 0, len(merged.Records()))
	for _, rec := range merged.Records() {
		hits = append(hits, searchHit{
			ID:      rec.ID(),
			Score:   rec.Score(),
			Shard:   int(rec.Shard()),
			Tenant:  rec.Tenant(),
			Content: rec.Content(),
			Tier:    rec.Tier(),
		})
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Results:  hits,
		Targeted: merged.Targeted(),
		Failures: merged.Failures(),
		Degraded: merged.Degraded(),
	})
}

func (s *Server) handlePutRecord(w http.ResponseWriter, r *http.Request) {
	var body recordRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid json body")
		return
	}

	rec, err := domrec.New(body.ID, body.Tenant, body.Content, domrec.Tier(body.Tier), body.Embedding)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	if err := s.records.Put(r.Context(), &rec); err != nil {
		s.writeDomainError(w, err, "put record failed")
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(&rec))
}

func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id := chi.URLParam(r, "id")

	rec, err := s.records.Get(r.Context(), tenant, id)
	if err != nil {
		s.writeDomainError(w, err, "get record failed")
		return
	}

	writeJSON(w, http.StatusOK, toRecordResponse(&rec))
}

func (s *Server) handleDeleteRecord(w http.ResponseWriter, r *http.Request) {
	tenant := chi.URLParam(r, "tenant")
	id := chi.URLParam(r, "id")

	if err := s.records.Delete(r.Context(), tenant, id); err != nil {
		s.writeDomainError(w, err, "delete record failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]any{
		"status": report.Status,
		"shards": report.Shards,
		"checks": report.Checks,
	})
}

// --- Error mapping ---

func (s *Server) writeDomainError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "record_not_found", err.Error())
	case errors.Is(err, domain.ErrVectorDimMismatch):
		writeError(w, http.StatusBadRequest, "vector_dim_mismatch", err.Error())
	default:
		s.logger.Error(msg, zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

func toRecordResponse(rec *domrec.Record) recordResponse {
	return recordResponse{
		ID:       rec.ID(),
		Tenant:   rec.Tenant(),
		Content:  rec.Content(),
		Tier:     string(rec.Tier()),
		StoredAt: rec.StoredAt().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
