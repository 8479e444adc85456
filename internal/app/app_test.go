package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/models"
)

func TestNew_Defaults(t *testing.T) {
	cfg := &config.Config{BatchConcurrency: 2}
	a, err := New(context.Background(), cfg, nil, Options{Registerer: prometheus.NewRegistry(), ConnectDB: true})
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.DB)
	assert.Nil(t, a.Pinger())
	assert.NotNil(t, a.Metrics)
	assert.Equal(t, 2, a.Engine.Concurrency())
	assert.Equal(t, config.ScoringVersion, a.Engine.Version())

	result, err := a.Matcher.ScoreRaw(context.Background(), &models.RawPreferences{}, []models.RawCandidate{{ID: "a"}})
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
}

func TestNew_InvalidScoringFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	require.NoError(t, os.WriteFile(path, []byte("weights:\n  region: 95\n"), 0o600))

	_, err := New(context.Background(), &config.Config{ScoringConfigPath: path}, nil, Options{})
	assert.ErrorIs(t, err, config.ErrInvalidScoring)
}
