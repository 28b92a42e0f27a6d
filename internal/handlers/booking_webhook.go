package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	appConfig "course-booking-functions/internal/config"
	"course-booking-functions/internal/models"
	"course-booking-functions/internal/services/crm"
	"course-booking-functions/internal/services/marketing"
	"course-booking-functions/internal/utils"
)

// placedOrderEvent is the metric name recorded when a payment completes.
const placedOrderEvent = "Placed Order"

// BookingWebhookHandler relays booking submissions to the CRM webhook
// and, on completed payments, emits a marketing event.
type BookingWebhookHandler struct {
	crm           *crm.Client
	events        marketing.EventSender
	courseName    string
	allowedOrigin string
}

// NewBookingWebhookHandler creates a new booking webhook handler. The
// events sender is nil when no marketing API key is configured; the
// side effect is then skipped.
func NewBookingWebhookHandler(cfg *appConfig.Config) *BookingWebhookHandler {
	timeout := time.Duration(cfg.HTTPTimeoutSeconds) * time.Second
	return &BookingWebhookHandler{
		crm:           crm.NewClient(cfg.CRMWebhookURL, timeout),
		events:        marketing.New(cfg),
		courseName:    cfg.CourseName,
		allowedOrigin: cfg.AllowedOrigin,
	}
}

// WebhookResponse is the success response for a processed booking.
type WebhookResponse struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	ZapierResponse string `json:"zapier_response"`
}

// Handle processes booking-form and payment-status submissions.
func (h *BookingWebhookHandler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger := utils.GetLogger()
	headers := corsHeaders(h.allowedOrigin)

	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return preflightResponse(headers)
	}

	if request.HTTPMethod != http.MethodPost {
		return errorResponse(headers, http.StatusMethodNotAllowed, "Method not allowed", "")
	}

	// Decode twice: the raw map preserves client fields we don't model
	// so they still reach the CRM; the typed struct drives the logic.
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(request.Body), &raw); err != nil {
		return errorResponse(headers, http.StatusInternalServerError, "Internal server error", err.Error())
	}

	var submission models.BookingSubmission
	if err := json.Unmarshal([]byte(request.Body), &submission); err != nil {
		return errorResponse(headers, http.StatusInternalServerError, "Internal server error", err.Error())
	}

	// Email must always be present for the CRM record to be usable.
	if err := submission.Validate(); err != nil {
		logger.Error("Rejected submission without email")
		return errorResponse(headers, http.StatusBadRequest, err.Error(), "")
	}

	isPaymentUpdate := submission.IsPaymentUpdate()
	payload := models.BuildCRMPayload(raw, models.Classify(isPaymentUpdate))

	logger.Info("Forwarding booking to CRM",
		utils.String("email", submission.Email),
		utils.String("bookingReference", submission.BookingReference),
		utils.Bool("isPaymentUpdate", isPaymentUpdate))

	result, err := h.crm.Forward(ctx, payload)
	if err != nil {
		logger.Error("CRM request error", utils.Error(err))
		return errorResponse(headers, http.StatusInternalServerError, "Internal server error", err.Error())
	}

	if !result.Success() {
		logger.Error("CRM request failed",
			utils.Int("statusCode", result.StatusCode),
			utils.String("response", result.Body))
		return jsonResponse(headers, result.StatusCode, map[string]interface{}{
			"error":       "CRM request failed",
			"status_code": result.StatusCode,
			"response":    result.Body,
		})
	}

	// The event fires only on an explicit completed payment. The looser
	// paymentId-only trigger used by earlier revisions caused duplicate
	// sends, so the strict combined condition is the contract.
	if isPaymentUpdate && submission.PaymentStatus == models.PaymentStatusCompleted {
		h.sendMarketingEvent(ctx, &submission)
	}

	message := "Booking processed successfully"
	if isPaymentUpdate {
		message = "Payment updated successfully"
	}

	return jsonResponse(headers, http.StatusOK, WebhookResponse{
		Status:         "success",
		Message:        message,
		ZapierResponse: result.Body,
	})
}

// sendMarketingEvent emits the booking-confirmed event. It is best
// effort: every failure path logs and returns without affecting the
// parent request.
func (h *BookingWebhookHandler) sendMarketingEvent(ctx context.Context, submission *models.BookingSubmission) {
	logger := utils.GetLogger()

	if h.events == nil {
		logger.Warn("Marketing API key not configured, skipping event",
			utils.String("email", submission.Email))
		return
	}

	if submission.Email == "" {
		logger.Error("Cannot send marketing event: email is missing")
		return
	}

	event := marketing.Event{
		Name: placedOrderEvent,
		Profile: marketing.Profile{
			Email:     submission.Email,
			FirstName: submission.FirstName,
			LastName:  submission.LastName,
			Phone:     submission.Phone,
		},
		Properties: map[string]interface{}{
			"booking_reference": submission.BookingReference,
			"course_name":       h.courseName,
			"package":           submission.Package,
			"location":          submission.Location,
			"venue_name":        submission.VenueName,
			"venue_address":     submission.VenueAddress,
			"course_date":       submission.CourseDate,
			"total_price":       submission.TotalPrice.String(),
			"efaw_required":     submission.EfawRequired,
			"efaw_date":         submission.EfawDate,
			"efaw_expiry_date":  submission.EfawExpiryDate,
			"payment_id":        submission.PaymentID,
		},
		Time: time.Now().UTC(),
	}

	if err := h.events.SendEvent(ctx, event); err != nil {
		logger.Error("Failed to send marketing event",
			utils.String("email", submission.Email),
			utils.Error(err))
		return
	}

	logger.Info("Marketing event sent", utils.String("email", submission.Email))
}
