package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/matcher"
	"retirement-match-engine/internal/utils"
)

// maxRequestCandidates bounds the candidates accepted in one request body.
const maxRequestCandidates = 5000

// ErrBadRequest marks client input errors.
var ErrBadRequest = errors.New("bad request")

// Scorer is the matching pipeline used by the handlers.
type Scorer interface {
	ScoreRaw(ctx context.Context, raw *models.RawPreferences, candidates []models.RawCandidate) (*matcher.BatchResult, error)
	ScoreUser(ctx context.Context, userID string, limit int) (*matcher.BatchResult, error)
}

// ScoreRequest is the body of a score request.
type ScoreRequest struct {
	Preferences *models.RawPreferences `json:"preferences"`
	Candidates  []models.RawCandidate  `json:"candidates"`
	// Limit keeps only the best matches when positive.
	Limit int `json:"limit,omitempty"`
}

// Response is the standard API response envelope.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// DecodeScoreRequest parses and checks a score request body.
func DecodeScoreRequest(body []byte) (*ScoreRequest, error) {
	var req ScoreRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrBadRequest, err)
	}
	switch {
	case req.Preferences == nil:
		return nil, fmt.Errorf("%w: preferences are required", ErrBadRequest)
	case len(req.Candidates) == 0:
		return nil, fmt.Errorf("%w: at least one candidate is required", ErrBadRequest)
	case len(req.Candidates) > maxRequestCandidates:
		return nil, fmt.Errorf("%w: at most %d candidates per request", ErrBadRequest, maxRequestCandidates)
	}
	return &req, nil
}

// StatusFor maps a pipeline error to an HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, models.ErrNilPreferences):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, matcher.ErrNoRepository):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ScoreHandler serves score requests through API Gateway.
type ScoreHandler struct {
	scorer Scorer
}

// NewScoreHandler creates a new score handler.
func NewScoreHandler(scorer Scorer) *ScoreHandler {
	return &ScoreHandler{scorer: scorer}
}

// Handle scores the posted profile and candidates, or, for a GET with a
// userId path parameter, the stored profile against stored towns.
func (h *ScoreHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()

	var result *matcher.BatchResult
	var err error
	switch {
	case request.HTTPMethod == http.MethodOptions:
		return respond(http.StatusOK, Response{Success: true}), nil
	case strings.EqualFold(request.HTTPMethod, http.MethodGet) && request.PathParameters["userId"] != "":
		limit, _ := strconv.Atoi(request.QueryStringParameters["limit"])
		result, err = h.scorer.ScoreUser(ctx, request.PathParameters["userId"], limit)
	case strings.EqualFold(request.HTTPMethod, http.MethodPost):
		var req *ScoreRequest
		req, err = DecodeScoreRequest([]byte(request.Body))
		if err == nil {
			result, err = h.scorer.ScoreRaw(ctx, req.Preferences, req.Candidates)
			if err == nil && req.Limit > 0 {
				result.Results = matcher.TopMatches(result.Results, req.Limit)
			}
		}
	default:
		return respond(http.StatusMethodNotAllowed, Response{Error: "method not allowed"}), nil
	}

	if err != nil {
		status := StatusFor(err)
		if status >= http.StatusInternalServerError {
			logger.Error("Score request failed", zap.Error(err))
		}
		return respond(status, Response{Error: err.Error()}), nil
	}

	return respond(http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Scored %d candidates", result.Summary.Total),
		Data:    result,
	}), nil
}

func respond(status int, body Response) events.APIGatewayProxyResponse {
	b, _ := json.Marshal(body)
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    jsonHeaders(),
		Body:       string(b),
	}
}
