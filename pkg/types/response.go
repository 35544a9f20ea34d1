// Package types holds the wire envelopes every JSON endpoint answers with.
package types

// SuccessEnvelope wraps a successful payload under a single data key.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Details carries structured
// context such as the expected and received totals on an order mismatch.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under a single error key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
