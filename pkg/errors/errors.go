package errors

import (
	stderrors "errors"
	"fmt"
)

// Application error types organized by category for better error handling

type ErrorType int

// Domain errors - raised while resolving a request against a forecast
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeLocationNotFound
	ErrorTypeHorizonExceeded
	ErrorTypeHistoricalDate
	ErrorTypeMissingData

	// Infrastructure Errors - errors related to external systems and services
	ErrorTypeDatabase
	ErrorTypeExternalAPI
	ErrorTypeProviderAuth

	// System/Configuration Errors - errors related to system setup and configuration
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeLocationNotFound:
		return "LOCATION_NOT_FOUND_ERROR"
	case ErrorTypeHorizonExceeded:
		return "HORIZON_EXCEEDED_ERROR"
	case ErrorTypeHistoricalDate:
		return "HISTORICAL_DATE_ERROR"
	case ErrorTypeMissingData:
		return "MISSING_DATA_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeExternalAPI:
		return "EXTERNAL_API_ERROR"
	case ErrorTypeProviderAuth:
		return "PROVIDER_AUTH_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Short aliases used by callers that switch on the error type
const (
	ValidationError       = ErrorTypeValidation
	NotFoundError         = ErrorTypeNotFound
	LocationNotFoundError = ErrorTypeLocationNotFound
	HorizonExceededError  = ErrorTypeHorizonExceeded
	HistoricalDateError   = ErrorTypeHistoricalDate
	MissingDataError      = ErrorTypeMissingData
	DatabaseError         = ErrorTypeDatabase
	ExternalAPIError      = ErrorTypeExternalAPI
	ProviderAuthError     = ErrorTypeProviderAuth
	ConfigurationError    = ErrorTypeConfiguration
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	// Details carries values a caller needs to describe the failure back to
	// the user, e.g. the requested day for a horizon error.
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail returns the error with an extra detail value attached
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Domain Error Constructors
func NewValidationError(message string) *AppError {
	return New(ValidationError, message)
}

func NewNotFoundError(message string) *AppError {
	return New(NotFoundError, message)
}

func NewLocationNotFoundError(message string, cause error) *AppError {
	return Wrap(LocationNotFoundError, message, cause)
}

// NewHorizonExceededError reports a forecast beyond the available series; day
// names the requested day so it can be spoken back.
func NewHorizonExceededError(message string, day string) *AppError {
	return New(HorizonExceededError, message).WithDetail("day", day)
}

func NewHistoricalDateError(message string) *AppError {
	return New(HistoricalDateError, message)
}

func NewMissingDataError(message string) *AppError {
	return New(MissingDataError, message)
}

// Infrastructure Error Constructors
func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(DatabaseError, message, cause)
}

func NewExternalAPIError(message string, cause error) *AppError {
	return Wrap(ExternalAPIError, message, cause)
}

func NewProviderAuthError(message string, cause error) *AppError {
	return Wrap(ProviderAuthError, message, cause)
}

// System/Configuration Error Constructors
func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ConfigurationError, message, cause)
}

// TypeOf returns the type of the first AppError in the chain, or
// ErrorTypeUnknown when there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// Helper functions for error type checking
func IsNotFoundError(err error) bool {
	return TypeOf(err) == NotFoundError
}

func IsValidationError(err error) bool {
	return TypeOf(err) == ValidationError
}

func IsLocationNotFoundError(err error) bool {
	return TypeOf(err) == LocationNotFoundError
}

func IsHorizonExceededError(err error) bool {
	return TypeOf(err) == HorizonExceededError
}

func IsHistoricalDateError(err error) bool {
	return TypeOf(err) == HistoricalDateError
}

func IsMissingDataError(err error) bool {
	return TypeOf(err) == MissingDataError
}

func IsProviderAuthError(err error) bool {
	return TypeOf(err) == ProviderAuthError
}

func IsDatabaseError(err error) bool {
	return TypeOf(err) == DatabaseError
}

func IsConfigurationError(err error) bool {
	return TypeOf(err) == ConfigurationError
}
