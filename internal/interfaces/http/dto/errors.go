package dto

import (
	"net/http"
	"strings"
)

// General error codes
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeServiceUnavailable is used when a dependency is switched off
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)

// Validation error codes
const (
	// ErrCodeValidation is used when request binding or field validation fails
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "INVALID_INPUT"
	// ErrCodeInvalidID is used when a path ID is not a UUID
	ErrCodeInvalidID = "INVALID_ID"
	// ErrCodePasswordMismatch is used when the password confirmation differs
	ErrCodePasswordMismatch = "PASSWORD_MISMATCH"
	// ErrCodeRequestTooLarge is used when the body exceeds the configured limit
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	// ErrCodeFileTooLarge is used when an upload exceeds the configured limit
	ErrCodeFileTooLarge = "FILE_TOO_LARGE"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeForbidden is used when the admin lacks the required role
	ErrCodeForbidden = "FORBIDDEN"
	// ErrCodeInvalidCredentials is used when login fails
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	// ErrCodeAccountInactive is used when a deactivated admin logs in
	ErrCodeAccountInactive = "ACCOUNT_INACTIVE"
	// ErrCodeAccountLocked is used after too many failed logins
	ErrCodeAccountLocked = "ACCOUNT_LOCKED"
	// ErrCodeTokenExpired is used when the access token has expired
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the token cannot be parsed or verified
	ErrCodeTokenInvalid = "TOKEN_INVALID"
	// ErrCodeTokenRevoked is used when the token was logged out
	ErrCodeTokenRevoked = "TOKEN_REVOKED"
	// ErrCodeTokenMaxRefresh is used when a refresh token reached its rotation limit
	ErrCodeTokenMaxRefresh = "TOKEN_MAX_REFRESH"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "CONFLICT"
	// ErrCodeInUse is used when a resource is still referenced
	ErrCodeInUse = "IN_USE"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for the current state
	ErrCodeInvalidState = "INVALID_STATE"
	// ErrCodeLastSuperAdmin protects the last active super admin
	ErrCodeLastSuperAdmin = "LAST_SUPER_ADMIN"
)

// Upstream error codes
const (
	ErrCodePredictionUnavailable     = "PREDICTION_UNAVAILABLE"
	ErrCodePredictionFailed          = "PREDICTION_FAILED"
	ErrCodePredictionInvalidResponse = "PREDICTION_INVALID_RESPONSE"
	ErrCodePDFRenderingDisabled      = "PDF_RENDERING_DISABLED"
)

// Rate limiting error codes
const (
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,

	// Validation errors -> 400 Bad Request
	ErrCodeValidation:       http.StatusBadRequest,
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	ErrCodeInvalidID:        http.StatusBadRequest,
	ErrCodePasswordMismatch: http.StatusBadRequest,
	"UNSUPPORTED_IMAGE":     http.StatusBadRequest,
	"EMPTY_FILE":            http.StatusBadRequest,
	ErrCodeRequestTooLarge:  http.StatusRequestEntityTooLarge,
	ErrCodeFileTooLarge:     http.StatusRequestEntityTooLarge,
	"IMAGE_TOO_LARGE":       http.StatusRequestEntityTooLarge,

	// Auth errors -> 401 sends the dashboard back to the login page
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeAccountInactive:    http.StatusForbidden,
	ErrCodeAccountLocked:      http.StatusLocked,

	// Resource errors
	ErrCodeNotFound:       http.StatusNotFound,
	ErrCodeAlreadyExists:  http.StatusConflict,
	ErrCodeConflict:       http.StatusConflict,
	ErrCodeInUse:          http.StatusConflict,
	"CATEGORY_IN_USE":     http.StatusConflict,
	"WRITER_HAS_ARTICLES": http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	ErrCodeInvalidState:      http.StatusUnprocessableEntity,
	ErrCodeLastSuperAdmin:    http.StatusUnprocessableEntity,
	"ALREADY_PUBLISHED":      http.StatusUnprocessableEntity,
	"NOT_PUBLISHED":          http.StatusUnprocessableEntity,
	"CANNOT_DELETE_SELF":     http.StatusUnprocessableEntity,
	"CANNOT_DEACTIVATE_SELF": http.StatusUnprocessableEntity,

	// Upstream errors
	ErrCodePredictionUnavailable:     http.StatusBadGateway,
	ErrCodePredictionFailed:          http.StatusBadGateway,
	ErrCodePredictionInvalidResponse: http.StatusBadGateway,
	ErrCodePDFRenderingDisabled:      http.StatusServiceUnavailable,

	// Rate limiting -> 429 Too Many Requests
	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// suffixHTTPStatus covers resource-specific codes such as ARTICLE_NOT_FOUND
var suffixHTTPStatus = []struct {
	suffix string
	status int
}{
	{"_NOT_FOUND", http.StatusNotFound},
	{"_ALREADY_EXISTS", http.StatusConflict},
	{"_IN_USE", http.StatusConflict},
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Exact matches win, then resource suffixes, then the INVALID_ prefix (400).
// Unknown codes return 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	for _, s := range suffixHTTPStatus {
		if strings.HasSuffix(code, s.suffix) {
			return s.status
		}
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
