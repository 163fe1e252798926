package dto

import (
	"errors"
	"net/http"

	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/domain/shared"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/apiclient"
	"github.com/EstalynD/only-top-frontend-nest-sub005/internal/infrastructure/cache"
	"github.com/go-playground/validator/v10"
)

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation error codes
const (
	ErrCodeValidation     = "ERR_VALIDATION"
	ErrCodeInvalidInput   = "ERR_INVALID_INPUT"
	ErrCodeBadRequest     = "ERR_BAD_REQUEST"
	ErrCodeEmptySelection = "ERR_EMPTY_SELECTION"
	ErrCodeTooLarge       = "ERR_REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
)

// Resource error codes
const (
	ErrCodeNotFound         = "ERR_NOT_FOUND"
	ErrCodeConflict         = "ERR_CONFLICT"
	ErrCodeAlreadySubmitted = "ERR_ALREADY_SUBMITTED"
	ErrCodeInvalidState     = "ERR_INVALID_STATE"
)

// Remote API error codes
const (
	// ErrCodeUpstream is a 5xx or unexpected answer from the backend
	ErrCodeUpstream = "ERR_UPSTREAM"
	// ErrCodeUpstreamUnavailable means the backend could not be reached
	ErrCodeUpstreamUnavailable = "ERR_UPSTREAM_UNAVAILABLE"
	// ErrCodeUpstreamRejected is a 4xx answer from the backend
	ErrCodeUpstreamRejected = "ERR_UPSTREAM_REJECTED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:     http.StatusBadRequest,
	ErrCodeInvalidInput:   http.StatusBadRequest,
	ErrCodeBadRequest:     http.StatusBadRequest,
	ErrCodeEmptySelection: http.StatusBadRequest,
	ErrCodeTooLarge:       http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeSessionExpired:     http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,

	ErrCodeNotFound:         http.StatusNotFound,
	ErrCodeConflict:         http.StatusConflict,
	ErrCodeAlreadySubmitted: http.StatusConflict,
	ErrCodeInvalidState:     http.StatusUnprocessableEntity,

	ErrCodeUpstream:            http.StatusBadGateway,
	ErrCodeUpstreamUnavailable: http.StatusServiceUnavailable,
	ErrCodeUpstreamRejected:    http.StatusUnprocessableEntity,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to the codes sent to the browser
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":           ErrCodeNotFound,
	"INVALID_INPUT":       ErrCodeInvalidInput,
	"INVALID_STATE":       ErrCodeInvalidState,
	"UNAUTHORIZED":        ErrCodeUnauthorized,
	"FORBIDDEN":           ErrCodeForbidden,
	"EMPTY_SELECTION":     ErrCodeEmptySelection,
	"ALREADY_SUBMITTED":   ErrCodeAlreadySubmitted,
	"SESSION_EXPIRED":     ErrCodeSessionExpired,
	"INVALID_CREDENTIALS": ErrCodeInvalidCredentials,
}

// NormalizeErrorCode converts a domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}

// Messages shown when the error itself carries nothing presentable
const (
	MessageInternal    = "Ocurrió un error inesperado"
	MessageUnavailable = "No fue posible contactar el servidor, intenta de nuevo"
	MessageValidation  = "Revisa los campos del formulario"
)

// ErrorFrom classifies err into a status and the error body shown to the user.
// Backend 4xx answers keep their status (except 5xx which become 502) and
// their message, so the user sees what the API said.
func ErrorFrom(err error) (int, ErrorInfo) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := NormalizeErrorCode(domainErr.Code)
		return GetHTTPStatus(code), ErrorInfo{Code: code, Message: domainErr.Message}
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return upstreamStatus(apiErr.StatusCode), ErrorInfo{Code: upstreamCode(apiErr.StatusCode), Message: apiErr.Message}
	}

	if apiclient.IsTransport(err) {
		return http.StatusServiceUnavailable, ErrorInfo{Code: ErrCodeUpstreamUnavailable, Message: MessageUnavailable}
	}

	if errors.Is(err, cache.ErrTokenUsed) {
		return http.StatusConflict, ErrorInfo{Code: ErrCodeAlreadySubmitted, Message: shared.ErrAlreadySubmitted.Message}
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, ErrorInfo{Code: ErrCodeValidation, Message: MessageValidation}
	}

	return http.StatusInternalServerError, ErrorInfo{Code: ErrCodeInternal, Message: MessageInternal}
}

func upstreamStatus(status int) int {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden,
		status == http.StatusNotFound, status == http.StatusConflict,
		status == http.StatusBadRequest, status == http.StatusUnprocessableEntity,
		status == http.StatusTooManyRequests:
		return status
	case status >= 400 && status < 500:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func upstreamCode(status int) string {
	switch {
	case status == http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case status == http.StatusForbidden:
		return ErrCodeForbidden
	case status == http.StatusNotFound:
		return ErrCodeNotFound
	case status == http.StatusConflict:
		return ErrCodeConflict
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case status >= 400 && status < 500:
		return ErrCodeUpstreamRejected
	default:
		return ErrCodeUpstream
	}
}
