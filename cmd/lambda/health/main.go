// Health Check Lambda entry point
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"retirement-match-engine/internal/app"
	"retirement-match-engine/internal/config"
	"retirement-match-engine/internal/handlers"
	"retirement-match-engine/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}

	// Initialize logger
	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	a, err := app.New(context.Background(), cfg, utils.GetLogger(), app.Options{ConnectDB: true})
	if err != nil {
		utils.GetLogger().Fatal("Failed to create application", zap.Error(err))
	}
	defer a.Close()

	handler := handlers.NewHealthHandler(a.Pinger(), cfg.Stage, a.Engine.Version())

	// Start Lambda
	lambda.Start(handler.Handle)
}
