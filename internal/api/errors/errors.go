package errors

import (
	"fmt"
	"net/http"

	apperrors "video2csv/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindBadRequest         ErrorKind = "bad_request"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadGateway         ErrorKind = "bad_gateway"
	KindGatewayTimeout     ErrorKind = "gateway_timeout"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	// Code is the pipeline error class, e.g. "parse" or "timeout"
	Code string `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindBadGateway:
		return http.StatusBadGateway
	case KindGatewayTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// FromPipelineError maps a conversion failure onto an API error. The
// message is shown to the caller as is.
func FromPipelineError(err error) *APIError {
	if err == nil {
		return nil
	}

	code := apperrors.Kind(err)
	apiErr := &APIError{Message: err.Error(), Code: code}
	switch code {
	case "extraction", "empty_transcript":
		apiErr.Kind = KindValidation
	case "timeout":
		apiErr.Kind = KindGatewayTimeout
	case "backend", "parse":
		apiErr.Kind = KindBadGateway
	case "config":
		apiErr.Kind = KindServiceUnavailable
	default:
		apiErr.Kind = KindInternal
	}
	return apiErr
}
