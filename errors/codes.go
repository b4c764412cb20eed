package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Hub availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the hub is shutting down or not started.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
)

// Authentication/Authorization errors
const (
	// ErrCodeUnauthorized indicates the request carries no usable credential.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates the credential does not cover the requested topic.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeInvalidToken indicates a capability token failed verification.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeMethodNotAllowed indicates the hub does not serve the operation at all.
	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

// Setup and delivery errors
const (
	// ErrCodeConfiguration indicates a missing signing key or no delivery path.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeRemoteHub indicates the remote hub rejected or never received an update.
	ErrCodeRemoteHub ErrorCode = "REMOTE_HUB_ERROR"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// REMOTE_HUB_ERROR is not retryable.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
