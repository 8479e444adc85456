// Package handlers provides Lambda handlers for the retirement match engine.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

// Pinger reports storage connectivity.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	db      Pinger
	stage   string
	version string
}

// NewHealthHandler creates a new health handler. db may be nil when no
// database is configured.
func NewHealthHandler(db Pinger, stage, scoringVersion string) *HealthHandler {
	return &HealthHandler{db: db, stage: stage, version: scoringVersion}
}

// HealthResponse is the response structure for health checks.
type HealthResponse struct {
	Status         string `json:"status"`
	Timestamp      string `json:"timestamp"`
	Service        string `json:"service"`
	ScoringVersion string `json:"scoringVersion"`
	Stage          string `json:"stage"`
	Database       string `json:"database"`
}

// Check builds the health report and its HTTP status code.
func (h *HealthHandler) Check(ctx context.Context) (HealthResponse, int) {
	response := HealthResponse{
		Status:         "healthy",
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		Service:        "retirement-match-engine",
		ScoringVersion: h.version,
		Stage:          h.stage,
		Database:       "not configured",
	}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := h.db.HealthCheck(ctx); err != nil {
			response.Database = "disconnected"
			response.Status = "degraded"
		} else {
			response.Database = "connected"
		}
	}

	if response.Status != "healthy" {
		return response, http.StatusServiceUnavailable
	}
	return response, http.StatusOK
}

// Handle processes health check requests.
func (h *HealthHandler) Handle(ctx context.Context, _ events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	response, status := h.Check(ctx)
	body, _ := json.Marshal(response)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders(),
		Body:       string(body),
	}, nil
}

func jsonHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin": "*",
		"Content-Type":                "application/json",
	}
}
