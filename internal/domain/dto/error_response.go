package dto

import "time"

// ErrorResponse is the JSON body returned by every failing API endpoint.
type ErrorResponse struct {
	Message      string    `json:"message" example:"failed to load dashboard"`
	ErrorDetails string    `json:"error,omitempty" example:"network failure"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewErrorResponse builds an ErrorResponse; err may be nil.
func NewErrorResponse(message string, err error) ErrorResponse {
	e := ErrorResponse{Message: message, Timestamp: time.Now().UTC()}
	if err != nil {
		e.ErrorDetails = err.Error()
	}
	return e
}

// Error implements the error interface so responses can travel through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}
