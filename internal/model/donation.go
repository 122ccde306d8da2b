// Package model defines the payloads exchanged with the donation backend
// and the checkout widget.
// It keeps wire-level types in one place for reuse.
package model

// DonationInput is built from the donation form on every submit.
type DonationInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	BatchYear string `json:"batch_year"`
	Amount    string `json:"amount"` // numeric string, rupees
	Message   string `json:"message"`
}

// OrderResponse is returned by the create-order endpoint.
type OrderResponse struct {
	Success bool   `json:"success"`
	Amount  int64  `json:"amount"` // paise
	OrderID string `json:"order_id"`
	Message string `json:"message,omitempty"`
}

// PaymentResult is handed over by the checkout widget on success.
type PaymentResult struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// VerifyRequest merges the widget result with the original donation
// fields into one flat JSON object.
type VerifyRequest struct {
	PaymentResult
	DonationInput
}

// VerifyResponse is returned by the verify-payment endpoint.
type VerifyResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	DonationID int64  `json:"donation_id,omitempty"`
	EmailSent  bool   `json:"email_sent,omitempty"`
}

// BulkEmailRequest is the admin payload for sending mail to alumni.
type BulkEmailRequest struct {
	Type      string   `json:"type"` // "batch" | "all" | "custom"
	Subject   string   `json:"subject"`
	Message   string   `json:"message"`
	BatchYear string   `json:"batch_year,omitempty"`
	Emails    []string `json:"emails,omitempty"`
}

// BulkEmailResponse is returned by the admin send-email endpoint.
type BulkEmailResponse struct {
	Success bool   `json:"success"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Message string `json:"message,omitempty"`
}
