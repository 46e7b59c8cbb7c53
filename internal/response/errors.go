package response

import "fmt"

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodePolicyViolation    = "POLICY_VIOLATION"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeTooManyRequests    = "TOO_MANY_REQUESTS"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// AppError is the error type returned by the service layer.
// Message is safe to show to clients; Details is for logs only.
type AppError struct {
	Code    string
	Message string
	Details string
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{Code: code, Message: message, Details: details}
}

func NewNotFoundError(message, details string) *AppError {
	return NewAppError(ErrCodeNotFound, message, details)
}

func NewForbiddenError(message, details string) *AppError {
	return NewAppError(ErrCodeForbidden, message, details)
}

func NewValidationError(message, details string) *AppError {
	return NewAppError(ErrCodeValidation, message, details)
}

// NewPolicyError reports a request that is well-formed but breaks a business rule
func NewPolicyError(message, details string) *AppError {
	return NewAppError(ErrCodePolicyViolation, message, details)
}

func NewUnauthorizedError(message, details string) *AppError {
	return NewAppError(ErrCodeUnauthorized, message, details)
}

func NewInternalError(message, details string) *AppError {
	return NewAppError(ErrCodeInternal, message, details)
}

// Messages shared across services
const (
	MsgAccessDenied        = "Access denied"
	MsgUserNotFound        = "User not found"
	MsgProjectNotFound     = "Project not found"
	MsgPositionNotFound    = "Position not found"
	MsgApplicationNotFound = "Application not found"
	MsgOwnerCannotApply    = "The owner cannot apply for positions in his project"
	MsgAlreadyApplied      = "You have already applied to this position"
	MsgNoVacantSlots       = "There are no vacant slots for this position"
	MsgOnlyPendingChange   = `Status change is allowed only for "PENDING" applications`
	MsgCountBelowApproved  = "Count cannot be lower than the number of approved applications"
	MsgEmailRegistered     = "Email already registered"
	MsgUsernameRegistered  = "Username already registered"
	MsgInvalidCredentials  = "Invalid credentials"
	MsgCouldNotValidate    = "Could not validate credentials"
)
