// Package main provides a local HTTP server for development and testing.
// It exposes the same scoring pipeline as the Lambda functions plus a
// Prometheus scrape endpoint.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"retirement-match-engine/internal/app"
	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/handlers"
	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/matcher"
	"retirement-match-engine/internal/utils"
)

// maxUploadBytes bounds multipart CSV uploads.
const maxUploadBytes = 10 << 20

// Server holds all dependencies
type Server struct {
	scorer   handlers.Scorer
	health   *handlers.HealthHandler
	gatherer prometheus.Gatherer
	logger   *zap.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()
	logger := utils.GetLogger()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger, app.Options{Registerer: registry, ConnectDB: true})
	if err != nil {
		logger.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	server := &Server{
		scorer:   a.Matcher,
		health:   handlers.NewHealthHandler(a.Pinger(), cfg.Stage, a.Engine.Version()),
		gatherer: registry,
		logger:   logger,
	}

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%s", cfg.Port),
		Handler:           server.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", httpServer.Addr),
			zap.String("health", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /api/health", s.healthHandler)

	// Scoring
	mux.HandleFunc("POST /api/score", s.scoreHandler)
	mux.HandleFunc("POST /api/upload", s.uploadHandler)
	mux.HandleFunc("GET /api/users/{userId}/matches", s.userMatchesHandler)

	if s.gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response, status := s.health.Check(r.Context())
	writeJSON(w, status, handlers.Response{
		Success: status == http.StatusOK,
		Message: "Retirement match engine is " + response.Status,
		Data:    response,
	})
}

func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxUploadBytes))
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: failed to read body: %v", handlers.ErrBadRequest, err))
		return
	}

	req, err := handlers.DecodeScoreRequest(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.scorer.ScoreRaw(r.Context(), req.Preferences, req.Candidates)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if req.Limit > 0 {
		result.Results = matcher.TopMatches(result.Results, req.Limit)
	}
	s.writeResult(w, result)
}

// uploadHandler scores a multipart upload: a "file" part holding a candidate
// CSV and a "preferences" part holding the profile as JSON.
func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.writeError(w, fmt.Errorf("%w: failed to parse form: %v", handlers.ErrBadRequest, err))
		return
	}

	var prefs models.RawPreferences
	if err := json.Unmarshal([]byte(r.FormValue("preferences")), &prefs); err != nil {
		s.writeError(w, fmt.Errorf("%w: invalid preferences JSON: %v", handlers.ErrBadRequest, err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, fmt.Errorf("%w: no file provided", handlers.ErrBadRequest))
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		s.writeError(w, fmt.Errorf("%w: only CSV files are allowed", handlers.ErrBadRequest))
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		s.writeError(w, fmt.Errorf("failed to read file: %w", err))
		return
	}

	parser := utils.NewCSVParser()
	candidates, rowErrors := parser.ParseCandidates(string(content))
	for _, rowErr := range rowErrors {
		s.logger.Warn("Skipped CSV row", zap.String("file", header.Filename), zap.Error(rowErr))
	}
	if len(candidates) == 0 {
		s.writeError(w, fmt.Errorf("%w: no valid candidates in %s", handlers.ErrBadRequest, header.Filename))
		return
	}

	result, err := s.scorer.ScoreRaw(r.Context(), &prefs, candidates)
	if err != nil {
		s.writeError(w, err)
		return
	}
	for _, rowErr := range rowErrors {
		result.Warnings = append(result.Warnings, rowErr.Error())
	}
	for _, col := range parser.UnknownColumns() {
		result.Warnings = append(result.Warnings, "ignored column "+col)
	}
	s.writeResult(w, result)
}

func (s *Server) userMatchesHandler(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	result, err := s.scorer.ScoreUser(r.Context(), r.PathValue("userId"), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeResult(w, result)
}

func (s *Server) writeResult(w http.ResponseWriter, result *matcher.BatchResult) {
	writeJSON(w, http.StatusOK, handlers.Response{
		Success: true,
		Message: fmt.Sprintf("Scored %d candidates", result.Summary.Total),
		Data:    result,
	})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := handlers.StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", zap.Error(err))
	}
	writeJSON(w, status, handlers.Response{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
