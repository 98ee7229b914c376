// internal/api/server.go

// Package api exposes the engine's two entry points over HTTP.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	stderrors "mentorlink-engine/internal/common/errors"
	"mentorlink-engine/internal/common/logger"
	"mentorlink-engine/internal/models"

	"github.com/google/uuid"
)

// maxBodyBytes caps rank request payloads at 1 MiB.
const maxBodyBytes = 1 << 20

// Ranker is the engine surface the API depends on.
type Ranker interface {
	RankMentors(ctx context.Context, criteria models.MatchingCriteria, limit int) ([]models.MatchScore, error)
	RecommendForStudent(ctx context.Context, studentID string, limit int) ([]models.MatchScore, error)
}

// RankRequest is the POST /v1/recommendations/rank payload.
type RankRequest struct {
	Criteria models.MatchingCriteria `json:"criteria"`
	Limit    int                     `json:"limit,omitempty"`
}

// RankResponse wraps a ranked result list.
type RankResponse struct {
	Recommendations []models.MatchScore `json:"recommendations"`
}

type Server struct {
	ranker   Ranker
	errors   *stderrors.HTTPHandler
	logger   logger.Logger
	validate *requestValidator
}

func NewServer(ranker Ranker, log logger.Logger) *Server {
	return &Server{
		ranker:   ranker,
		errors:   stderrors.NewHTTPHandler(log),
		logger:   log.WithFields(map[string]interface{}{"component": "api"}),
		validate: newRequestValidator(),
	}
}

// Routes registers the API handlers on mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/recommendations/rank", s.handleRank)
	mux.HandleFunc("/v1/students/", s.handleStudentRecommendations)
	mux.HandleFunc("/healthz", s.handleHealth)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := s.requestLogger(r)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.errors.WriteError(w, stderrors.NewInvalidRequestError("failed to read body: "+err.Error()))
		return
	}

	if err := s.validate.validateRankRequest(body); err != nil {
		s.errors.WriteError(w, err)
		return
	}

	var req RankRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errors.WriteError(w, stderrors.NewInvalidRequestError("malformed JSON body: "+err.Error()))
		return
	}

	scores, err := s.ranker.RankMentors(r.Context(), req.Criteria, req.Limit)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}

	log.Info("rank request served", map[string]interface{}{
		"studentId": req.Criteria.StudentID,
		"results":   len(scores),
	})
	s.writeJSON(w, RankResponse{Recommendations: scores})
}

func (s *Server) handleStudentRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	log := s.requestLogger(r)

	// Path shape: /v1/students/{id}/recommendations
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 4 || parts[3] != "recommendations" || parts[2] == "" {
		http.NotFound(w, r)
		return
	}
	studentID := parts[2]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.errors.WriteError(w, stderrors.NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	scores, err := s.ranker.RecommendForStudent(r.Context(), studentID, limit)
	if err != nil {
		s.errors.WriteError(w, err)
		return
	}

	log.Info("student recommendations served", map[string]interface{}{
		"studentId": studentID,
		"results":   len(scores),
	})
	s.writeJSON(w, RankResponse{Recommendations: scores})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) requestLogger(r *http.Request) logger.Logger {
	requestID := r.Header.Get("X-Request-Id")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	return s.logger.WithFields(map[string]interface{}{
		"requestId": requestID,
		"path":      r.URL.Path,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{
			"error": err,
		})
	}
}
