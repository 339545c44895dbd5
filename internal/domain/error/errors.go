package error

import (
	"errors"
	"fmt"
)

// Error codes for standardized API responses
const (
	// 4xxx - Client errors
	CodeInvalidAmount      = 4001
	CodeInvalidPhone       = 4002
	CodeInvalidNetwork     = 4003
	CodeInvalidRequest     = 4004
	CodeSignatureInvalid   = 4010
	CodeUserNotFound       = 4040
	CodeTransactionUnknown = 4041

	// 5xxx - Server errors
	CodeInternalServer     = 5000
	CodeGatewayUnavailable = 5020
)

// Base error types
var (
	// ErrInvalidAmount is returned when the contribution amount is zero, negative or malformed
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidPhone is returned when the phone number is not a valid Ghanaian mobile number
	ErrInvalidPhone = errors.New("invalid mobile number")

	// ErrInvalidNetwork is returned when the mobile network is not one of the supported providers
	ErrInvalidNetwork = errors.New("unsupported mobile network")

	// ErrInvalidRequest is returned when the request format is invalid
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUserNotFound is returned when no member account matches the request
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionNotFound is returned when a webhook references an unknown transaction
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrGatewayUnavailable is returned when the payment gateway times out or answers with a 5xx
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrSignatureInvalid is returned when a webhook signature does not match the shared secret
	ErrSignatureInvalid = errors.New("webhook signature invalid")

	// ErrDuplicateWebhook is returned when a webhook targets an already terminal transaction.
	// It is acknowledged as a no-op, never surfaced as a failure to the provider.
	ErrDuplicateWebhook = errors.New("transaction already settled")

	// ErrDuplicateReference is returned when a transaction with the same reference already exists
	ErrDuplicateReference = errors.New("transaction with this reference already exists")

	// ErrDuplicateUser is returned when trying to create a user that already exists
	ErrDuplicateUser = errors.New("user already exists")

	// ErrDatabaseConnection is returned when there's a problem talking to the database
	ErrDatabaseConnection = errors.New("database connection error")

	// ErrInternalServer is returned for unexpected server-side errors
	ErrInternalServer = errors.New("internal server error")
)

// ErrorCode returns standardized error codes for known errors
func ErrorCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return CodeInvalidAmount
	case errors.Is(err, ErrInvalidPhone):
		return CodeInvalidPhone
	case errors.Is(err, ErrInvalidNetwork):
		return CodeInvalidNetwork
	case errors.Is(err, ErrInvalidRequest):
		return CodeInvalidRequest
	case errors.Is(err, ErrUserNotFound):
		return CodeUserNotFound
	case errors.Is(err, ErrTransactionNotFound):
		return CodeTransactionUnknown
	case errors.Is(err, ErrSignatureInvalid):
		return CodeSignatureInvalid
	case errors.Is(err, ErrGatewayUnavailable):
		return CodeGatewayUnavailable
	default:
		return CodeInternalServer
	}
}

// ValidationError carries the rejected field alongside the base validation error
type ValidationError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface for ValidationError
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s=%q: %v", e.Field, e.Value, e.Err)
}

// Unwrap returns the underlying error
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LogFields returns a map of fields for structured logging
func (e *ValidationError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "validation_error",
		"field":      e.Field,
		"value":      e.Value,
		"error":      e.Err.Error(),
		"error_code": ErrorCode(e.Err),
	}
}

// NewValidationError creates a validation error for a specific request field
func NewValidationError(field, value string, err error) error {
	return &ValidationError{Field: field, Value: value, Err: err}
}

// UserResolutionError is returned when neither the member id nor the fallback
// email resolves to an account. No ledger record is created in that case.
type UserResolutionError struct {
	UserID uint64
	Email  string
}

// Error implements the error interface
func (e *UserResolutionError) Error() string {
	if e.Email != "" {
		return fmt.Sprintf("no member account for id %d or email %s", e.UserID, e.Email)
	}
	return fmt.Sprintf("no member account for id %d", e.UserID)
}

// Is checks if the target error is an ErrUserNotFound
func (e *UserResolutionError) Is(target error) bool {
	return target == ErrUserNotFound
}

// LogFields returns a map of fields for structured logging
func (e *UserResolutionError) LogFields() map[string]any {
	return map[string]any{
		"error_type": "user_resolution",
		"user_id":    e.UserID,
		"email":      e.Email,
		"error_code": CodeUserNotFound,
	}
}

// GatewayError wraps a charge failure with the provider context needed for recovery
type GatewayError struct {
	Reference  string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *GatewayError) Error() string {
	return fmt.Sprintf("gateway charge failed for reference %s (http %d): %v",
		e.Reference, e.StatusCode, e.Err)
}

// Unwrap returns the underlying error
func (e *GatewayError) Unwrap() error {
	return e.Err
}

// Is checks if the target error is an ErrGatewayUnavailable
func (e *GatewayError) Is(target error) bool {
	return target == ErrGatewayUnavailable
}

// LogFields returns a map of fields for structured logging
func (e *GatewayError) LogFields() map[string]any {
	return map[string]any{
		"error_type":  "gateway_error",
		"reference":   e.Reference,
		"http_status": e.StatusCode,
		"error":       e.Err.Error(),
		"error_code":  CodeGatewayUnavailable,
	}
}

// NewGatewayUnavailableError creates a gateway error that leaves the ledger
// record recoverable for later reconciliation
func NewGatewayUnavailableError(reference string, statusCode int, err error) error {
	if err == nil {
		err = ErrGatewayUnavailable
	}
	return &GatewayError{Reference: reference, StatusCode: statusCode, Err: err}
}

// IsValidationError checks if the error stems from request validation
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrInvalidNetwork) ||
		errors.Is(err, ErrInvalidRequest)
}

// IsInvalidRequestError checks if the error is a definitive request rejection
func IsInvalidRequestError(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsUserNotFoundError checks if the error is a user resolution failure
func IsUserNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

// IsTransactionNotFoundError checks if the error is an unknown webhook reference
func IsTransactionNotFoundError(err error) bool {
	return errors.Is(err, ErrTransactionNotFound)
}

// IsGatewayUnavailableError checks if the error is a gateway timeout or 5xx
func IsGatewayUnavailableError(err error) bool {
	return errors.Is(err, ErrGatewayUnavailable)
}

// IsSignatureInvalidError checks if the error is a rejected webhook signature
func IsSignatureInvalidError(err error) bool {
	return errors.Is(err, ErrSignatureInvalid)
}

// IsDuplicateWebhookError checks if the error marks an already settled transaction
func IsDuplicateWebhookError(err error) bool {
	return errors.Is(err, ErrDuplicateWebhook)
}
