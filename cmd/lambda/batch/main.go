// S3 batch scoring Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"retirement-match-engine/internal/app"
	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/handlers"
	s3service "retirement-match-engine/internal/services/s3"
	"retirement-match-engine/internal/services/ses"
	"retirement-match-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()
	logger := utils.GetLogger()

	ctx := context.Background()
	a, err := app.New(ctx, cfg, logger, app.Options{ConnectDB: true})
	if err != nil {
		logger.Fatal("Failed to create application", zap.Error(err))
	}
	defer a.Close()

	store, err := s3service.NewService(ctx, cfg.S3Bucket)
	if err != nil {
		logger.Fatal("Failed to create S3 service", zap.Error(err))
	}

	handler := handlers.NewBatchHandler(store, a.Matcher)
	if cfg.NotificationsEnabled() {
		notifier, err := ses.NewService(ctx, cfg.SESSenderEmail, cfg.NotifyEmail)
		if err != nil {
			logger.Fatal("Failed to create SES service", zap.Error(err))
		}
		handler.WithNotifier(notifier)
	}

	lambda.Start(handler.Handle)
}
