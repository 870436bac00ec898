// internal/server/server.go

// Package server exposes the chat pipeline over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"dinebot/internal/catalog"
	"dinebot/internal/common/config"
	cerrors "dinebot/internal/common/errors"
	"dinebot/internal/common/logger"
	"dinebot/internal/common/metrics"
	"dinebot/internal/common/observability"
	"dinebot/internal/common/validation"
	"dinebot/internal/models"
	"dinebot/internal/query"
)

// chatRequestSchema validates the chat request body.
var chatRequestSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"message": {
			Type:      "string",
			MinLength: intPtr(1),
			MaxLength: intPtr(500),
		},
	},
	Required: []string{"message"},
}

func intPtr(n int) *int { return &n }

// Server handles the REST API.
type Server struct {
	cfg          *config.Config
	orchestrator *query.Orchestrator
	store        catalog.Store
	errHandler   *cerrors.ErrorHandler
	obs          *observability.Observability
	logger       logger.Logger
}

func New(cfg *config.Config, orch *query.Orchestrator, store catalog.Store, obs *observability.Observability, log logger.Logger) *Server {
	return &Server{
		cfg:          cfg,
		orchestrator: orch,
		store:        store,
		errHandler:   cerrors.NewErrorHandler(log),
		obs:          obs,
		logger: log.With(map[string]interface{}{
			"component": "http-server",
		}),
	}
}

// Handler builds the full middleware-wrapped route tree.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/chat", s.handleChat)
	mux.HandleFunc("/api/menu", s.handleMenu)
	mux.HandleFunc("/api/categories", s.handleCategories)
	mux.HandleFunc("/api/restaurant", s.handleRestaurant)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.Handle("/metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	return c.Handler(s.withRequestID(mux))
}

// withRequestID stamps every request with an id for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)
		r.Header.Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	requestID := r.Header.Get("X-Request-ID")

	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.errHandler.WriteHTTPError(w, requestID, cerrors.NewInvalidRequestError("malformed JSON body"))
		return
	}

	if result := validation.ValidateInput(body, chatRequestSchema); !result.Valid {
		s.errHandler.WriteHTTPError(w, requestID,
			cerrors.NewInvalidRequestError(joinMessages(result.GetErrorMessages())))
		return
	}

	var req chatRequest
	raw, _ := json.Marshal(body)
	_ = json.Unmarshal(raw, &req)

	start := time.Now()
	result, err := s.orchestrator.Handle(r.Context(), req.Message)
	if err != nil {
		metrics.QueriesFailed.WithLabelValues("unknown", errorCode(err)).Inc()
		s.errHandler.WriteHTTPError(w, requestID, err)
		return
	}

	intentLabel := string(result.Intent)
	metrics.QueriesHandled.WithLabelValues(intentLabel).Inc()
	metrics.QueryDuration.WithLabelValues(intentLabel).Observe(time.Since(start).Seconds())
	s.obs.RecordQueryProcessed(r.Context(), intentLabel)
	s.obs.RecordQueryDuration(r.Context(), time.Since(start), intentLabel)

	s.logger.Info("chat handled", map[string]interface{}{
		"request_id": requestID,
		"intent":     intentLabel,
		"confidence": result.Confidence,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	requestID := r.Header.Get("X-Request-ID")

	var items []models.MenuItem
	var err error
	if category := r.URL.Query().Get("category"); category != "" {
		items, err = s.store.GetItemsByCategory(r.Context(), models.NormalizeCategory(category))
	} else {
		items, err = s.store.GetAllItems(r.Context())
	}
	if err != nil {
		s.errHandler.WriteHTTPError(w, requestID, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": models.ViewList(items),
		"count": len(items),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	categories, err := s.store.GetCategories(r.Context())
	if err != nil {
		s.errHandler.WriteHTTPError(w, r.Header.Get("X-Request-ID"), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}

func (s *Server) handleRestaurant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, s.cfg.Restaurant)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// Ready means the catalog answers.
	if _, err := s.store.GetCategories(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func joinMessages(msgs []string) string {
	out := ""
	for i, m := range msgs {
		if i > 0 {
			out += "; "
		}
		out += m
	}
	return out
}

func errorCode(err error) string {
	var stdErr *cerrors.StandardError
	if errors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "INTERNAL_ERROR"
}
