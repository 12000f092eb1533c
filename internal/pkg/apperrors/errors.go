package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Session errors
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrInvalidFormat = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Storage errors. Never returned to API callers, see repositories.
	ErrPersistenceFailure = errors.New("persistence failure")
)

// Student errors
var (
	ErrStudentNotFound = NewCustomError(ErrResourceNotFound, "student not found").WithCode("STUDENT_NOT_FOUND")
	ErrUnknownStudent  = NewCustomError(ErrResourceNotFound, "unknown student").WithCode("UNKNOWN_STUDENT")
)

// Grading and statistics errors
var (
	ErrNoCredits   = NewCustomError(ErrValidationFailed, "total credits must be greater than zero").WithCode("NO_CREDITS")
	ErrEmptyCohort = NewCustomError(ErrResourceNotFound, "no students to summarize").WithCode("EMPTY_COHORT")
)

// Fee errors
var (
	ErrInvalidAmount       = NewCustomError(ErrValidationFailed, "amount must be greater than zero").WithCode("INVALID_AMOUNT")
	ErrTransactionNotFound = NewCustomError(ErrResourceNotFound, "transaction not found").WithCode("TRANSACTION_NOT_FOUND")
	ErrReceiptIDExhausted  = errors.New("could not generate a unique receipt id")
)

// Hostel errors
var (
	ErrRoomNotFound     = NewCustomError(ErrResourceNotFound, "room not found").WithCode("ROOM_NOT_FOUND")
	ErrOccupantNotFound = NewCustomError(ErrResourceNotFound, "student is not an occupant of this room").WithCode("OCCUPANT_NOT_FOUND")
	ErrCapacityExceeded = NewCustomError(ErrConflict, "room is at full capacity").WithCode("CAPACITY_EXCEEDED")
	ErrAlreadyAllocated = NewCustomError(ErrResourceAlreadyExists, "student is already allocated to a room").WithCode("ALREADY_ALLOCATED")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// Is returns whether err matches target or any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// WithStatusMsg adds a user-friendly status message
func (e *CustomError) WithStatusMsg(msg string) *CustomError {
	e.StatusMsg = msg
	return e
}

// Code extracts the CustomError code from an error chain, if any.
func Code(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// Message returns the most specific user-facing message in the error chain.
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) {
		if ce.StatusMsg != "" {
			return ce.StatusMsg
		}
		return ce.Error()
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
