package model

// StepResult captures the outcome of one step of a donation cycle.
type StepResult struct {
	Name       string `json:"name"`
	Status     string `json:"status"` // "ok" | "error" | "canceled"
	DurationMS int64  `json:"duration_ms"`
	Detail     string `json:"detail,omitempty"` // error kind
}

// CycleReport summarizes a single submit cycle.
type CycleReport struct {
	Steps     []StepResult `json:"steps"`
	OrderID   string       `json:"order_id,omitempty"`
	Amount    int64        `json:"amount,omitempty"` // paise
	PaymentID string       `json:"payment_id,omitempty"`
	ErrorKind string       `json:"error_kind,omitempty"`
}
