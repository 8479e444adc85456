package ses

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retirement-match-engine/internal/models"
	"retirement-match-engine/internal/services/matcher"
)

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func sampleBatch() *matcher.BatchResult {
	results := make([]models.MatchResult, 0, 7)
	for i, id := range []string{"a", "b", "c", "d", "e", "f"} {
		results = append(results, models.MatchResult{CandidateID: id, OverallPercent: 50 + i})
	}
	results = append(results, models.MatchResult{CandidateID: "broken", Error: "missing id"})
	results[5].CandidateName = "Funchal"

	return &matcher.BatchResult{
		BatchID:        "batch-1",
		ProfileID:      "user-9",
		ScoringVersion: "2026.10",
		Results:        results,
		Summary:        matcher.Summary{Total: 7, Scored: 6, Failed: 1, TopCandidateID: "f", TopPercent: 55, AveragePercent: 52.5},
	}
}

func TestBuildBatchSummaryParams(t *testing.T) {
	params := BuildBatchSummaryParams("results/user-9/x.json", sampleBatch())

	require.Len(t, params.TopMatches, topMatchCount)
	assert.Equal(t, "Funchal", params.TopMatches[0].Name)
	assert.Equal(t, 55, params.TopMatches[0].OverallPercent)
	assert.Equal(t, "e", params.TopMatches[1].Name)
	assert.Equal(t, "user-9", params.ProfileID)
}

func TestNotifyBatch(t *testing.T) {
	client := &fakeSES{}
	svc := newWithClient(client, "engine@example.com", "ops@example.com")

	require.NoError(t, svc.NotifyBatch(context.Background(), "results/user-9/x.json", sampleBatch()))
	require.Len(t, client.inputs, 1)

	in := client.inputs[0]
	assert.Equal(t, "engine@example.com", aws.ToString(in.Source))
	assert.Equal(t, []string{"ops@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Retirement matches for user-9: 6 scored", aws.ToString(in.Message.Subject.Data))
	assert.Contains(t, aws.ToString(in.Message.Body.Text.Data), "1. Funchal: 55%")
	assert.Contains(t, aws.ToString(in.Message.Body.Text.Data), "Full results: results/user-9/x.json")
	assert.Contains(t, aws.ToString(in.Message.Body.Html.Data), "Funchal")
}

func TestNotifyBatch_SendError(t *testing.T) {
	svc := newWithClient(&fakeSES{err: errors.New("throttled")}, "a@example.com", "b@example.com")

	err := svc.NotifyBatch(context.Background(), "", sampleBatch())
	assert.ErrorContains(t, err, "throttled")
}

func TestRenderBatchSummaryText_Anonymous(t *testing.T) {
	text := renderBatchSummaryText(BatchSummaryParams{BatchID: "b", ScoringVersion: "v"})
	assert.Contains(t, text, "anonymous profile")
	assert.NotContains(t, text, "Top matches")
}
