// Package main provides a local HTTP server for development and
// testing. It exposes the two Lambda handlers on plain net/http routes
// so the front end can be pointed at localhost.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/cors"

	"course-booking-functions/internal/config"
	"course-booking-functions/internal/handlers"
	"course-booking-functions/internal/utils"
)

// lambdaHandler is the shape both API Gateway handlers share.
type lambdaHandler func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	webhook := handlers.NewBookingWebhookHandler(cfg)
	intent := handlers.NewPaymentIntentHandler(cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("/api/booking-webhook", adapt(webhook.Handle))
	mux.HandleFunc("/api/create-payment-intent", adapt(intent.Handle))

	// The handlers set their own CORS headers for Lambda; locally the
	// cors middleware handles preflight before they run.
	c := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin, "http://localhost:3000"},
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	utils.GetLogger().Info("Local server listening", utils.String("addr", addr))
	if err := http.ListenAndServe(addr, c.Handler(mux)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// adapt bridges an API Gateway handler onto net/http.
func adapt(handle lambdaHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "failed to read body", http.StatusBadRequest)
			return
		}

		request := events.APIGatewayProxyRequest{
			HTTPMethod: r.Method,
			Path:       r.URL.Path,
			Body:       string(body),
		}

		response, err := handle(r.Context(), request)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		for k, v := range response.Headers {
			w.Header().Set(k, v)
		}
		w.WriteHeader(response.StatusCode)
		_, _ = io.WriteString(w, response.Body)
	}
}
