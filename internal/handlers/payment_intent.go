package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	appConfig "course-booking-functions/internal/config"
	"course-booking-functions/internal/models"
	"course-booking-functions/internal/services/payments"
	"course-booking-functions/internal/utils"
)

// PaymentIntentHandler creates payment intents carrying booking
// metadata and returns the client secret to the front end.
type PaymentIntentHandler struct {
	payments      payments.IntentCreator
	allowedOrigin string
}

// NewPaymentIntentHandler creates a new payment intent handler.
func NewPaymentIntentHandler(cfg *appConfig.Config) *PaymentIntentHandler {
	return &PaymentIntentHandler{
		payments:      payments.NewStripeClient(cfg.StripeSecretKey),
		allowedOrigin: cfg.AllowedOrigin,
	}
}

// PaymentIntentResponse carries only the client secret; everything else
// about the intent stays server-side.
type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
}

// Handle processes payment intent creation requests.
func (h *PaymentIntentHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()
	headers := corsHeaders(h.allowedOrigin)

	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return preflightResponse(headers)
	}

	if request.HTTPMethod != http.MethodPost {
		return errorResponse(headers, http.StatusMethodNotAllowed, "Method not allowed", "")
	}

	var req models.PaymentIntentRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return errorResponse(headers, http.StatusInternalServerError, "Failed to create payment intent", err.Error())
	}

	intent, err := h.payments.CreateIntent(ctx, payments.CreateIntentParams{
		Amount:   req.Amount,
		Currency: req.Currency,
		Metadata: req.Metadata(),
	})
	if err != nil {
		logger.Error("Payment intent creation error",
			utils.String("bookingReference", req.BookingReference),
			utils.Error(err))
		return errorResponse(headers, http.StatusInternalServerError, "Failed to create payment intent", err.Error())
	}

	logger.Info("Created payment intent",
		utils.String("intentID", intent.ID),
		utils.String("bookingReference", req.BookingReference))

	return jsonResponse(headers, http.StatusOK, PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
	})
}
