package internal

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type ErrorType string

const (
	ErrorTypeValidation     ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound       ErrorType = "NOT_FOUND"
	ErrorTypeAuthentication ErrorType = "AUTHENTICATION_ERROR"
	ErrorTypeAuthorization  ErrorType = "AUTHORIZATION_ERROR"
	ErrorTypeConflict       ErrorType = "CONFLICT"
	ErrorTypeInternal       ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeMissingEmail     ErrorCode = "MISSING_EMAIL"

	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeUserInactive       ErrorCode = "USER_INACTIVE"
	ErrCodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired       ErrorCode = "TOKEN_EXPIRED"

	ErrCodeSelfOnly               ErrorCode = "SELF_ONLY"
	ErrCodeInsufficientPermission ErrorCode = "INSUFFICIENT_PERMISSION"

	ErrCodeCapabilityNotFound ErrorCode = "CAPABILITY_NOT_FOUND"
	ErrCodeAlreadyRegistered  ErrorCode = "ALREADY_REGISTERED"
	ErrCodeNotRegistered      ErrorCode = "NOT_REGISTERED"
)

type AppError struct {
	Type       ErrorType `json:"type"`
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func (e *AppError) WithCause(cause error) *AppError {
	return &AppError{
		Type:       e.Type,
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Cause:      cause,
	}
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewAuthenticationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthentication,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewAuthorizationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthorization,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewConflictError maps to 400: the API contract reports duplicate
// registrations and non-member removals as bad requests.
func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

var (
	ErrInvalidCredentials = NewAuthenticationError("Incorrect email or password", ErrCodeInvalidCredentials)
	ErrUserInactive       = NewAuthenticationError("User account is inactive", ErrCodeUserInactive)
	ErrInvalidToken       = NewAuthenticationError("Could not validate credentials", ErrCodeInvalidToken)
	ErrTokenExpired       = NewAuthenticationError("Token has expired", ErrCodeTokenExpired)

	ErrSelfOnly               = NewAuthorizationError("Consultants can only register themselves", ErrCodeSelfOnly)
	ErrInsufficientPermission = NewAuthorizationError("Insufficient permissions to register consultants", ErrCodeInsufficientPermission)
	ErrCannotUnregister       = NewAuthorizationError("Only Partners and Managing Directors can unregister consultants", ErrCodeInsufficientPermission)

	ErrCapabilityNotFound = NewNotFoundError("Capability not found", ErrCodeCapabilityNotFound)
	ErrAlreadyRegistered  = NewConflictError("Consultant is already registered for this capability", ErrCodeAlreadyRegistered)
	ErrNotRegistered      = NewConflictError("Consultant is not registered for this capability", ErrCodeNotRegistered)
)

func IsAppError(err error) (*AppError, bool) {
	if appErr, ok := err.(*AppError); ok {
		return appErr, true
	}
	return nil, false
}

type Response struct {
	Error *AppError `json:"error"`
}

func (e *AppError) ToHTTPResponse() (int, interface{}) {
	return e.StatusCode, Response{Error: e}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType `json:"type"`
		Code    ErrorCode `json:"code"`
		Message string    `json:"message"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
	})
}
