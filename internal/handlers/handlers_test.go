package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/matcher"
	"retirement-match-engine/internal/services/metrics"
	"retirement-match-engine/internal/services/normalizer"
	"retirement-match-engine/internal/services/scoring"
)

func newScorer(t *testing.T) *matcher.Service {
	t.Helper()
	s := config.DefaultScoring()
	engine, err := scoring.New(s)
	require.NoError(t, err)
	return matcher.NewService(engine, normalizer.New(nil, s.Hobbies), metrics.NewWithRegistry(prometheus.NewRegistry()), nil)
}

type fakePinger struct{ err error }

func (f fakePinger) HealthCheck(context.Context) error { return f.err }

type memoryStore struct {
	objects map[string][]byte
	moved   map[string]string
	failPut bool
}

func newMemoryStore(objects map[string]string) *memoryStore {
	m := &memoryStore{objects: map[string][]byte{}, moved: map[string]string{}}
	for k, v := range objects {
		m.objects[k] = []byte(v)
	}
	return m
}

func (m *memoryStore) DownloadFile(_ context.Context, key string) ([]byte, error) {
	b, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return b, nil
}

func (m *memoryStore) UploadFile(_ context.Context, key string, data []byte, _ string) error {
	if m.failPut {
		return errors.New("access denied")
	}
	m.objects[key] = data
	return nil
}

func (m *memoryStore) MoveFile(_ context.Context, src, dst string) error {
	m.objects[dst] = m.objects[src]
	delete(m.objects, src)
	m.moved[src] = dst
	return nil
}

func s3Event(keys ...string) events.S3Event {
	var e events.S3Event
	for _, k := range keys {
		var r events.S3EventRecord
		r.S3.Bucket.Name = "bucket"
		r.S3.Object.Key = k
		e.Records = append(e.Records, r)
	}
	return e
}

const profileJSON = `{"countries":["Portugal"],"geographicFeatures":["coastal"],"tier1Activities":["golf"],"totalMonthlyBudget":3000}`

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		status   int
		database string
	}{
		{"no database", nil, http.StatusOK, "not configured"},
		{"connected", fakePinger{}, http.StatusOK, "connected"},
		{"down", fakePinger{err: errors.New("refused")}, http.StatusServiceUnavailable, "disconnected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.db, "test", config.ScoringVersion)
			resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body HealthResponse
			require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
			assert.Equal(t, tt.database, body.Database)
			assert.Equal(t, config.ScoringVersion, body.ScoringVersion)
		})
	}
}

func TestDecodeScoreRequest(t *testing.T) {
	_, err := DecodeScoreRequest([]byte(`{`))
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = DecodeScoreRequest([]byte(`{"candidates":[{"id":"a"}]}`))
	assert.ErrorContains(t, err, "preferences are required")

	_, err = DecodeScoreRequest([]byte(`{"preferences":{}}`))
	assert.ErrorContains(t, err, "at least one candidate")

	req, err := DecodeScoreRequest([]byte(`{"preferences":{"userId":"u1"},"candidates":[{"id":"a"}],"limit":5}`))
	require.NoError(t, err)
	assert.Equal(t, "u1", req.Preferences.UserID)
	assert.Equal(t, 5, req.Limit)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(fmt.Errorf("x: %w", ErrBadRequest)))
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("x: %w", models.ErrProfileNotFound)))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(matcher.ErrNoRepository))
	assert.Equal(t, http.StatusGatewayTimeout, StatusFor(context.DeadlineExceeded))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestScoreHandler_Post(t *testing.T) {
	h := NewScoreHandler(newScorer(t))
	body := `{"preferences":` + profileJSON + `,"candidates":[
		{"id":"lagos","country":"Portugal","geographicFeatures":["coast"],"supportedHobbies":["golf"],"costOfLivingUsd":2100},
		{"id":"denver","country":"USA","geographicFeatures":["mountains"],"costOfLivingUsd":4200},
		{"id":"porto","country":"Portugal","geographicFeatures":["river"],"costOfLivingUsd":2400}
	],"limit":2}`

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "POST", Body: body})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	var decoded struct {
		Success bool                `json:"success"`
		Data    matcher.BatchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &decoded))
	assert.True(t, decoded.Success)
	require.Len(t, decoded.Data.Results, 2)
	assert.Equal(t, "lagos", decoded.Data.Results[0].CandidateID)
	assert.Equal(t, 3, decoded.Data.Summary.Total)
}

func TestScoreHandler_Errors(t *testing.T) {
	h := NewScoreHandler(newScorer(t))

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "POST", Body: "nope"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:     "GET",
		PathParameters: map[string]string{"userId": "u1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, err = h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: "DELETE"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestParseBatchKey(t *testing.T) {
	tests := []struct {
		key     string
		profile string
		format  string
		ok      bool
	}{
		{"batches/u1/towns.csv", "u1", "csv", true},
		{"batches/u1/nested/towns.JSON", "u1", "json", true},
		{"batches/u1/towns.xlsx", "", "", false},
		{"batches/towns.csv", "", "", false},
		{"uploads/u1/towns.csv", "", "", false},
	}

	for _, tt := range tests {
		profile, format, err := parseBatchKey(tt.key)
		if !tt.ok {
			assert.ErrorIs(t, err, ErrBadBatchKey, tt.key)
			continue
		}
		require.NoError(t, err, tt.key)
		assert.Equal(t, tt.profile, profile)
		assert.Equal(t, tt.format, format)
	}

	assert.Equal(t, "results/u1/towns.json", resultKey("batches/u1/towns.csv"))
}

func TestBatchHandler_CSV(t *testing.T) {
	store := newMemoryStore(map[string]string{
		"profiles/u1.json": profileJSON,
		"batches/u1/towns.csv": "id,name,country,geographic_features,supported_hobbies,cost_of_living_usd\n" +
			"lagos,Lagos,Portugal,coastal,golf,2100\n" +
			"denver,Denver,USA,mountain,skiing,4200\n" +
			"broken,Broken,Nowhere,,,lots\n",
	})
	h := NewBatchHandler(store, newScorer(t))

	result, err := h.Handle(context.Background(), s3Event("batches/u1/towns.csv"))
	require.NoError(t, err)
	require.Len(t, result.Records, 1)

	rec := result.Records[0]
	assert.Equal(t, "results/u1/towns.json", rec.ResultKey)
	assert.Equal(t, 2, rec.Scored)
	assert.Equal(t, 1, rec.Failed)
	require.Len(t, rec.Errors, 1)
	assert.Contains(t, rec.Errors[0], "cost_of_living_usd")

	var batch matcher.BatchResult
	require.NoError(t, json.Unmarshal(store.objects["results/u1/towns.json"], &batch))
	assert.Equal(t, "u1", batch.ProfileID)
	assert.Len(t, batch.Results, 2)
	assert.Equal(t, "processed/u1/towns.csv", store.moved["batches/u1/towns.csv"])
}

func TestBatchHandler_JSONAndEscapedKey(t *testing.T) {
	store := newMemoryStore(map[string]string{
		"profiles/u 2.json":        profileJSON,
		"batches/u 2/towns 1.json": `[{"id":"lagos","country":"Portugal"},{"id":""}]`,
	})
	h := NewBatchHandler(store, newScorer(t))

	result, err := h.Handle(context.Background(), s3Event("batches/u+2/towns+1.json"))
	require.NoError(t, err)
	rec := result.Records[0]
	assert.Equal(t, 1, rec.Scored)
	assert.Equal(t, 1, rec.Failed)
	assert.Contains(t, store.objects, "results/u 2/towns 1.json")
}

func TestBatchHandler_Failures(t *testing.T) {
	store := newMemoryStore(map[string]string{
		"profiles/u1.json":    profileJSON,
		"batches/u1/a.csv":    "id\nlagos\n",
		"batches/u1/bad.json": `{"not":"a list"}`,
	})
	h := NewBatchHandler(store, newScorer(t))

	result, err := h.Handle(context.Background(), s3Event("other/key.csv", "batches/u1/bad.json", "batches/missing/a.csv"))
	require.Error(t, err, "missing profile is a storage error")
	require.Len(t, result.Records, 3)
	assert.Contains(t, result.Records[0].Errors[0], "batches/<profile>")
	assert.Contains(t, result.Records[1].Errors[0], "invalid candidates JSON")
	assert.ErrorContains(t, err, "failed to load profile")

	store.failPut = true
	_, err = h.Handle(context.Background(), s3Event("batches/u1/a.csv"))
	assert.ErrorContains(t, err, "access denied")

	empty, err := h.Handle(context.Background(), events.S3Event{})
	require.NoError(t, err)
	assert.Empty(t, empty.Records)
}

type recordingNotifier struct {
	keys []string
	err  error
}

func (n *recordingNotifier) NotifyBatch(_ context.Context, resultKey string, batch *matcher.BatchResult) error {
	n.keys = append(n.keys, resultKey+"#"+batch.ProfileID)
	return n.err
}

func TestBatchHandler_Notifier(t *testing.T) {
	store := newMemoryStore(map[string]string{
		"profiles/u1.json": profileJSON,
		"batches/u1/a.csv": "id,country\nlagos,Portugal\n",
		"batches/u1/b.csv": "id,country\nporto,Portugal\n",
	})
	notifier := &recordingNotifier{}
	h := NewBatchHandler(store, newScorer(t)).WithNotifier(notifier)

	_, err := h.Handle(context.Background(), s3Event("batches/u1/a.csv"))
	require.NoError(t, err)
	assert.Equal(t, []string{"results/u1/a.json#u1"}, notifier.keys)

	notifier.err = errors.New("ses throttled")
	result, err := h.Handle(context.Background(), s3Event("batches/u1/b.csv"))
	require.NoError(t, err, "notification failures do not fail the record")
	assert.Equal(t, 1, result.Records[0].Scored)
}
