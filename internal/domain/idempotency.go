package domain

import "net/http"

type IdempotencyStatus string

const (
	IdempotencyProcessing IdempotencyStatus = "processing"
	IdempotencyCompleted  IdempotencyStatus = "completed"
)

// IdempotentResponse is a recorded response for a request carrying an Idempotency-Key.
type IdempotentResponse struct {
	Status     IdempotencyStatus
	BodyHash   string
	StatusCode int
	Header     http.Header
	Body       []byte
}
