// Package models defines the data structures for the booking functions.
package models

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// RecordType classifies a CRM record.
type RecordType string

// CRM record types
const (
	RecordTypeLead    RecordType = "lead"
	RecordTypeContact RecordType = "contact"
)

// Payment status values seen on inbound submissions.
const (
	PaymentStatusCompleted = "completed"
)

// BookingSubmission is the booking-form payload posted by the front end.
// Field names mirror the front end's camelCase JSON.
type BookingSubmission struct {
	Email            string      `json:"email" validate:"required"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	FullName         string      `json:"fullName"`
	Phone            string      `json:"phone"`
	FullAddress      string      `json:"fullAddress"`
	Location         string      `json:"location"`
	VenueName        string      `json:"venueName"`
	VenueAddress     string      `json:"venueAddress"`
	CourseDate       string      `json:"courseDate"`
	Package          string      `json:"package"`
	EfawChoice       string      `json:"efawChoice"`
	EfawRequired     bool        `json:"efawRequired"`
	EfawDate         string      `json:"efawDate"`
	EfawExpiryDate   string      `json:"efawExpiryDate"`
	TotalPrice       json.Number `json:"totalPrice"`
	BookingReference string      `json:"bookingReference"`
	PaymentID        string      `json:"paymentId"`
	PaymentStatus    string      `json:"paymentStatus"`
}

var validate = validator.New()

// Validate checks that the submission is usable as a CRM record.
// Email is the only hard requirement: without it the CRM cannot match
// or create a record, so the request must be rejected up front.
func (s *BookingSubmission) Validate() error {
	if err := validate.Struct(s); err != nil {
		return ErrEmailRequired
	}
	return nil
}

// IsPaymentUpdate reports whether the submission carries a completed
// payment rather than an initial form submission.
func (s *BookingSubmission) IsPaymentUpdate() bool {
	return s.PaymentID != "" || s.PaymentStatus == PaymentStatusCompleted
}

// Classification holds the derived CRM fields for a submission.
type Classification struct {
	RecordType     RecordType
	LeadStatus     string
	PaymentStatus  string
	CustomerStatus string
	ContactType    string
	LifecycleStage string
}

// Classify returns the derived CRM fields for a submission. A payment
// update converts the lead into a paid contact; an initial submission
// creates an unpaid lead.
func Classify(isPaymentUpdate bool) Classification {
	if isPaymentUpdate {
		return Classification{
			RecordType:     RecordTypeContact,
			LeadStatus:     "converted",
			PaymentStatus:  "paid",
			CustomerStatus: "paid_customer",
			ContactType:    "customer",
			LifecycleStage: "customer",
		}
	}
	return Classification{
		RecordType:     RecordTypeLead,
		LeadStatus:     "unpaid",
		PaymentStatus:  "pending",
		CustomerStatus: "awaiting_payment",
		LifecycleStage: "lead",
	}
}

// BuildCRMPayload merges the derived classification fields over the raw
// submission fields. Derived values win on key collision, and client
// fields this service does not model still pass through to the CRM.
func BuildCRMPayload(raw map[string]interface{}, c Classification) map[string]interface{} {
	payload := make(map[string]interface{}, len(raw)+6)
	for k, v := range raw {
		payload[k] = v
	}

	payload["recordType"] = string(c.RecordType)
	payload["leadStatus"] = c.LeadStatus
	payload["paymentStatus"] = c.PaymentStatus
	payload["customerStatus"] = c.CustomerStatus
	payload["lifecycle_stage"] = c.LifecycleStage
	if c.ContactType != "" {
		payload["contactType"] = c.ContactType
	}

	return payload
}
