package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/matcher"
	"retirement-match-engine/internal/utils"
)

// Object key layout of the batch bucket.
const (
	batchPrefix     = "batches/"
	profilePrefix   = "profiles/"
	resultPrefix    = "results/"
	processedPrefix = "processed/"
)

// ErrBadBatchKey is reported for objects outside batches/<profile>/<file>.
var ErrBadBatchKey = errors.New("batch key must look like batches/<profile>/<file>.csv|json")

// ObjectStore is the object storage used by the batch handler.
type ObjectStore interface {
	DownloadFile(ctx context.Context, key string) ([]byte, error)
	UploadFile(ctx context.Context, key string, data []byte, contentType string) error
	MoveFile(ctx context.Context, sourceKey, destKey string) error
}

// Notifier announces a stored batch result.
type Notifier interface {
	NotifyBatch(ctx context.Context, resultKey string, batch *matcher.BatchResult) error
}

// BatchHandler scores candidate files dropped into the batch bucket.
type BatchHandler struct {
	store    ObjectStore
	scorer   Scorer
	notifier Notifier
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(store ObjectStore, scorer Scorer) *BatchHandler {
	return &BatchHandler{store: store, scorer: scorer}
}

// WithNotifier sends a summary after each stored result. Notification
// failures are logged and do not fail the record.
func (h *BatchHandler) WithNotifier(n Notifier) *BatchHandler {
	h.notifier = n
	return h
}

// BatchRecordResult describes one processed object.
type BatchRecordResult struct {
	Key       string   `json:"key"`
	ResultKey string   `json:"resultKey,omitempty"`
	BatchID   string   `json:"batchId,omitempty"`
	Scored    int      `json:"scored"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// BatchProcessResult is the result of one S3 event.
type BatchProcessResult struct {
	Message string              `json:"message"`
	Records []BatchRecordResult `json:"records"`
}

// Handle processes S3 events for uploaded candidate files. Bad input is
// reported per record; storage and scoring failures are returned so the
// event is retried.
func (h *BatchHandler) Handle(ctx context.Context, s3Event events.S3Event) (BatchProcessResult, error) {
	logger := utils.GetLogger()

	if len(s3Event.Records) == 0 {
		return BatchProcessResult{Message: "No records to process", Records: []BatchRecordResult{}}, nil
	}

	result := BatchProcessResult{Records: make([]BatchRecordResult, 0, len(s3Event.Records))}
	var errs []error
	for _, record := range s3Event.Records {
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			key = record.S3.Object.Key
		}

		rec, err := h.processObject(ctx, key)
		if err != nil {
			logger.Error("Failed to process batch object", zap.String("key", key), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		result.Records = append(result.Records, rec)
	}

	result.Message = fmt.Sprintf("Processed %d objects", len(result.Records))
	return result, errors.Join(errs...)
}

func (h *BatchHandler) processObject(ctx context.Context, key string) (BatchRecordResult, error) {
	logger := utils.GetLogger()
	rec := BatchRecordResult{Key: key}

	profileID, format, err := parseBatchKey(key)
	if err != nil {
		rec.Errors = []string{err.Error()}
		return rec, nil
	}

	profileData, err := h.store.DownloadFile(ctx, profilePrefix+profileID+".json")
	if err != nil {
		return rec, fmt.Errorf("failed to load profile: %w", err)
	}
	var prefs models.RawPreferences
	if err := json.Unmarshal(profileData, &prefs); err != nil {
		rec.Errors = []string{fmt.Sprintf("invalid profile %s: %v", profileID, err)}
		return rec, nil
	}
	if prefs.UserID == "" {
		prefs.UserID = profileID
	}

	data, err := h.store.DownloadFile(ctx, key)
	if err != nil {
		return rec, fmt.Errorf("failed to download candidates: %w", err)
	}
	candidates, parseErrors := decodeCandidates(format, data)
	for _, e := range parseErrors {
		rec.Errors = append(rec.Errors, e.Error())
	}
	if len(candidates) == 0 {
		return rec, nil
	}

	batch, err := h.scorer.ScoreRaw(ctx, &prefs, candidates)
	if err != nil {
		return rec, err
	}
	rec.BatchID = batch.BatchID
	rec.Scored = batch.Summary.Scored
	rec.Failed = batch.Summary.Failed + len(parseErrors)

	body, err := json.Marshal(batch)
	if err != nil {
		return rec, fmt.Errorf("failed to encode results: %w", err)
	}
	rec.ResultKey = resultKey(key)
	if err := h.store.UploadFile(ctx, rec.ResultKey, body, "application/json"); err != nil {
		return rec, err
	}

	if err := h.store.MoveFile(ctx, key, processedPrefix+strings.TrimPrefix(key, batchPrefix)); err != nil {
		logger.Warn("Failed to archive batch object", zap.String("key", key), zap.Error(err))
	}

	if h.notifier != nil {
		if err := h.notifier.NotifyBatch(ctx, rec.ResultKey, batch); err != nil {
			logger.Warn("Failed to send batch summary", zap.String("key", key), zap.Error(err))
		}
	}

	logger.Info("Scored batch object",
		zap.String("key", key),
		zap.String("batch_id", rec.BatchID),
		zap.Int("scored", rec.Scored),
		zap.Int("failed", rec.Failed),
	)

	// Keep the response small
	if len(rec.Errors) > 10 {
		rec.Errors = rec.Errors[:10]
	}
	return rec, nil
}

// parseBatchKey extracts the profile ID and file format from
// batches/<profile>/<file>.
func parseBatchKey(key string) (profileID, format string, err error) {
	rest, ok := strings.CutPrefix(key, batchPrefix)
	if !ok {
		return "", "", ErrBadBatchKey
	}
	profileID, file, ok := strings.Cut(rest, "/")
	if !ok || profileID == "" || file == "" {
		return "", "", ErrBadBatchKey
	}
	switch ext := strings.ToLower(path.Ext(file)); ext {
	case ".csv", ".json":
		return profileID, ext[1:], nil
	default:
		return "", "", ErrBadBatchKey
	}
}

// resultKey maps batches/<profile>/<name>.<ext> to results/<profile>/<name>.json.
func resultKey(key string) string {
	rest := strings.TrimPrefix(key, batchPrefix)
	return resultPrefix + strings.TrimSuffix(rest, path.Ext(rest)) + ".json"
}

func decodeCandidates(format string, data []byte) ([]models.RawCandidate, []error) {
	if format == "csv" {
		return utils.NewCSVParser().ParseCandidates(string(data))
	}
	var candidates []models.RawCandidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, []error{fmt.Errorf("invalid candidates JSON: %w", err)}
	}
	return candidates, nil
}
