// Package ses provides email notification services via AWS SES
package ses

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"retirement-match-engine/internal/services/matcher"
	"retirement-match-engine/internal/utils"
)

// topMatchCount is how many matches a batch summary lists.
const topMatchCount = 5

type api interface {
	SendEmail(ctx context.Context, in *ses.SendEmailInput, opts ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Service handles SES email operations
type Service struct {
	client    api
	fromEmail string
	toEmail   string
}

// EmailParams represents parameters for sending an email
type EmailParams struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// BatchSummaryParams contains data for a batch summary email
type BatchSummaryParams struct {
	ProfileID      string
	BatchID        string
	ScoringVersion string
	ResultKey      string
	Summary        matcher.Summary
	TopMatches     []MatchInfo
}

// MatchInfo contains info about a single match for email
type MatchInfo struct {
	CandidateID    string
	Name           string
	OverallPercent int
}

// SendEmailResult contains the result of sending an email
type SendEmailResult struct {
	MessageID string
	SentAt    time.Time
}

// NewService creates a new SES service that sends from fromEmail to toEmail.
func NewService(ctx context.Context, fromEmail, toEmail string) (*Service, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return newWithClient(ses.NewFromConfig(cfg), fromEmail, toEmail), nil
}

func newWithClient(client api, fromEmail, toEmail string) *Service {
	return &Service{client: client, fromEmail: fromEmail, toEmail: toEmail}
}

// SendEmail sends a basic email
func (s *Service) SendEmail(ctx context.Context, params EmailParams) (*SendEmailResult, error) {
	logger := utils.GetLogger()

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromEmail),
		Destination: &types.Destination{
			ToAddresses: []string{params.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(params.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{},
		},
	}
	if params.HTMLBody != "" {
		input.Message.Body.Html = &types.Content{
			Data:    aws.String(params.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if params.TextBody != "" {
		input.Message.Body.Text = &types.Content{
			Data:    aws.String(params.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		logger.Error("Failed to send email",
			zap.String("to", params.To),
			zap.String("subject", params.Subject),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send email: %w", err)
	}

	messageID := aws.ToString(result.MessageId)
	logger.Info("Email sent successfully",
		zap.String("to", params.To),
		zap.String("subject", params.Subject),
		zap.String("messageId", messageID),
	)

	return &SendEmailResult{MessageID: messageID, SentAt: time.Now()}, nil
}

// NotifyBatch emails the summary of a scored batch to the configured
// recipient.
func (s *Service) NotifyBatch(ctx context.Context, resultKey string, batch *matcher.BatchResult) error {
	params := BuildBatchSummaryParams(resultKey, batch)

	htmlBody, err := renderBatchSummaryHTML(params)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Retirement matches for %s: %d scored", displayProfile(params.ProfileID), params.Summary.Scored)
	_, err = s.SendEmail(ctx, EmailParams{
		To:       s.toEmail,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: renderBatchSummaryText(params),
	})
	return err
}

// BuildBatchSummaryParams creates notification params from a batch result
func BuildBatchSummaryParams(resultKey string, batch *matcher.BatchResult) BatchSummaryParams {
	params := BatchSummaryParams{
		ProfileID:      batch.ProfileID,
		BatchID:        batch.BatchID,
		ScoringVersion: batch.ScoringVersion,
		ResultKey:      resultKey,
		Summary:        batch.Summary,
	}
	for _, r := range matcher.TopMatches(batch.Results, topMatchCount) {
		name := r.CandidateName
		if name == "" {
			name = r.CandidateID
		}
		params.TopMatches = append(params.TopMatches, MatchInfo{
			CandidateID:    r.CandidateID,
			Name:           name,
			OverallPercent: r.OverallPercent,
		})
	}
	return params
}

func displayProfile(id string) string {
	if id == "" {
		return "anonymous profile"
	}
	return id
}

var batchSummaryTemplate = template.Must(template.New("batch_summary").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #2f6f5e; color: white; padding: 24px; border-radius: 10px 10px 0 0; }
        .content { background: #f9f9f9; padding: 24px; border-radius: 0 0 10px 10px; }
        .match { background: white; border-radius: 8px; padding: 12px 16px; margin: 10px 0; }
        .score { float: right; font-weight: bold; color: #2f6f5e; }
        .footer { text-align: center; margin-top: 24px; color: #999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Batch {{.BatchID}}</h1>
        <p>{{.Summary.Scored}} of {{.Summary.Total}} towns scored, average {{printf "%.1f" .Summary.AveragePercent}}%</p>
    </div>
    <div class="content">
        {{range .TopMatches}}
        <div class="match"><span class="score">{{.OverallPercent}}%</span>{{.Name}}</div>
        {{end}}
        {{if .ResultKey}}<p>Full results: {{.ResultKey}}</p>{{end}}
    </div>
    <div class="footer">
        <p>Scoring table {{.ScoringVersion}}</p>
    </div>
</body>
</html>`))

func renderBatchSummaryHTML(params BatchSummaryParams) (string, error) {
	var buf bytes.Buffer
	if err := batchSummaryTemplate.Execute(&buf, params); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderBatchSummaryText(params BatchSummaryParams) string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Batch %s for %s\n\n", params.BatchID, displayProfile(params.ProfileID))
	fmt.Fprintf(&buf, "Scored %d of %d towns (%d failed), average %.1f%%.\n\n",
		params.Summary.Scored, params.Summary.Total, params.Summary.Failed, params.Summary.AveragePercent)

	if len(params.TopMatches) > 0 {
		buf.WriteString("Top matches:\n")
		for i, m := range params.TopMatches {
			fmt.Fprintf(&buf, "%d. %s: %d%%\n", i+1, m.Name, m.OverallPercent)
		}
		buf.WriteString("\n")
	}
	if params.ResultKey != "" {
		fmt.Fprintf(&buf, "Full results: %s\n", params.ResultKey)
	}
	fmt.Fprintf(&buf, "Scoring table %s\n", params.ScoringVersion)

	return buf.String()
}
