package models

import (
	"encoding/json"
	"fmt"
)

// PaymentIntentRequest is the payload posted by the front end when it
// asks for a payment intent. Amount is in the smallest currency unit.
type PaymentIntentRequest struct {
	Amount           int64       `json:"amount"`
	Currency         string      `json:"currency"`
	BookingReference string      `json:"bookingReference"`
	CustomerEmail    string      `json:"customerEmail"`
	FirstName        string      `json:"firstName"`
	LastName         string      `json:"lastName"`
	FullName         string      `json:"fullName"`
	Phone            string      `json:"phone"`
	FullAddress      string      `json:"fullAddress"`
	Location         string      `json:"location"`
	CourseDate       string      `json:"courseDate"`
	PackageType      string      `json:"packageType"`
	EfawChoice       string      `json:"efawChoice"`
	EfawRequired     bool        `json:"efawRequired"`
	EfawDate         string      `json:"efawDate"`
	TotalPrice       json.Number `json:"totalPrice"`
}

// HasCustomerDetails reports whether the request carries the extended
// booking/customer fields beyond the bare charge parameters.
func (r *PaymentIntentRequest) HasCustomerDetails() bool {
	return r.FirstName != "" || r.LastName != "" || r.FullName != "" ||
		r.Phone != "" || r.FullAddress != "" || r.Location != "" ||
		r.CourseDate != "" || r.PackageType != ""
}

// Metadata builds the flat metadata mapping attached to the payment
// intent. The booking reference and customer email are always present;
// the full booking details are attached only when the front end sent
// them.
func (r *PaymentIntentRequest) Metadata() map[string]string {
	metadata := map[string]string{
		"booking_reference": r.BookingReference,
		"customer_email":    r.CustomerEmail,
	}

	if !r.HasCustomerDetails() {
		return metadata
	}

	efawRequired := "No"
	if r.EfawRequired {
		efawRequired = "Yes"
	}

	// Customer details
	metadata["first_name"] = r.FirstName
	metadata["last_name"] = r.LastName
	metadata["full_name"] = r.FullName
	metadata["phone"] = r.Phone
	metadata["full_address"] = r.FullAddress

	// Course details
	metadata["course_location"] = r.Location
	metadata["course_date"] = r.CourseDate
	metadata["package"] = r.PackageType

	// EFAW details
	metadata["efaw_choice"] = r.EfawChoice
	metadata["efaw_required"] = efawRequired
	metadata["efaw_date"] = r.EfawDate

	// Pricing
	metadata["total_price"] = r.TotalPrice.String()
	metadata["base_price"] = fmt.Sprintf("%.2f", float64(r.Amount)/100)

	return metadata
}
