// Package handlers provides the API Gateway handlers for the booking
// functions.
package handlers

import (
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
)

// corsHeaders returns the response headers shared by both endpoints.
// Only the booking site's origin is allowed.
func corsHeaders(origin string) map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  origin,
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Content-Type":                 "application/json",
	}
}

// preflightResponse answers a CORS preflight without touching the body.
func preflightResponse(headers map[string]string) (events.APIGatewayProxyResponse, error) {
	return jsonResponse(headers, 200, map[string]string{
		"message": "CORS preflight successful",
	})
}

// jsonResponse marshals the payload into an API Gateway response.
func jsonResponse(headers map[string]string, statusCode int, payload interface{}) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(payload)
	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers:    headers,
		Body:       string(body),
	}, nil
}

// errorResponse creates an error response. The message is omitted when
// empty so bare errors stay a single field.
func errorResponse(headers map[string]string, statusCode int, errLabel, message string) (events.APIGatewayProxyResponse, error) {
	payload := map[string]string{"error": errLabel}
	if message != "" {
		payload["message"] = message
	}
	return jsonResponse(headers, statusCode, payload)
}
