// Booking Webhook Lambda entry point
package main

import (
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"course-booking-functions/internal/config"
	"course-booking-functions/internal/handlers"
	"course-booking-functions/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	_ = utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	// Create handler
	handler := handlers.NewBookingWebhookHandler(cfg)

	// Start Lambda
	lambda.Start(handler.Handle)
}
