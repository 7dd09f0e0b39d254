package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a Tally error code.
type ErrorCode string

const (
	ErrInvalidInput        ErrorCode = "INVALID_INPUT"              // 400, or 422 for wrong type
	ErrAmbiguousAddressing ErrorCode = "AMBIGUOUS_ADDRESSING"       // 400
	ErrMalformedFilter     ErrorCode = "MALFORMED_FILTER_PARAMETER" // 400
	ErrNoFiltersParsed     ErrorCode = "NO_FILTERS_PARSED"          // 400
	ErrNotFound            ErrorCode = "NOT_FOUND"                  // 404
	ErrDuplicateValue      ErrorCode = "DUPLICATE_VALUE"            // 409
	ErrValueTooLarge       ErrorCode = "VALUE_TOO_LARGE"            // 413
	ErrConflictingFilters  ErrorCode = "CONFLICTING_FILTERS"        // 422
	ErrInternal            ErrorCode = "INTERNAL"                   // 500
)

// TallyError represents a structured error with code, status, and details.
type TallyError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TallyError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidInput creates a 400 error for missing or empty input.
func NewInvalidInput(msg string) *TallyError {
	return &TallyError{
		Code:    ErrInvalidInput,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidType creates a 422 error for a field that is present but not text.
func NewInvalidType(field string) *TallyError {
	return &TallyError{
		Code:    ErrInvalidInput,
		Status:  422,
		Message: fmt.Sprintf("field %q must be a string", field),
		Details: map[string]any{"field": field},
	}
}

// NewAmbiguousAddressing creates a 400 error for when both id and value are provided.
func NewAmbiguousAddressing() *TallyError {
	return &TallyError{
		Code:    ErrAmbiguousAddressing,
		Status:  400,
		Message: "cannot specify both id and value; use one addressing mode",
	}
}

// NewMalformedFilter creates a 400 error for a query parameter that fails to parse.
func NewMalformedFilter(param, want string) *TallyError {
	return &TallyError{
		Code:    ErrMalformedFilter,
		Status:  400,
		Message: fmt.Sprintf("query parameter %q must be %s", param, want),
		Details: map[string]any{"parameter": param},
	}
}

// NewNoFiltersParsed creates a 400 error when a phrase yields no filters.
func NewNoFiltersParsed(phrase string) *TallyError {
	return &TallyError{
		Code:    ErrNoFiltersParsed,
		Status:  400,
		Message: "unable to parse natural language query",
		Details: map[string]any{"query": phrase},
	}
}

// NewNotFound creates a 404 error for when a string cannot be found.
func NewNotFound(identifier string) *TallyError {
	return &TallyError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "string not found",
		Details: map[string]any{"identifier": identifier},
	}
}

// NewDuplicateValue creates a 409 error when the value is already stored.
func NewDuplicateValue(id string) *TallyError {
	return &TallyError{
		Code:    ErrDuplicateValue,
		Status:  409,
		Message: "string already exists in the system",
		Details: map[string]any{"id": id},
	}
}

// NewValueTooLarge creates a 413 error when a value exceeds the size limit.
func NewValueTooLarge(max, actual int) *TallyError {
	return &TallyError{
		Code:    ErrValueTooLarge,
		Status:  413,
		Message: fmt.Sprintf("value exceeds maximum size: %d chars (max %d)", actual, max),
		Details: map[string]any{"max_chars": max, "actual_chars": actual},
	}
}

// NewBodyTooLarge creates a 413 error when a request body exceeds the byte limit.
func NewBodyTooLarge(limitBytes int64) *TallyError {
	return &TallyError{
		Code:    ErrValueTooLarge,
		Status:  413,
		Message: fmt.Sprintf("request body exceeds %d bytes", limitBytes),
		Details: map[string]any{"max_bytes": limitBytes},
	}
}

// NewConflictingFilters creates a 422 error for an impossible length range.
func NewConflictingFilters(minLength, maxLength int) *TallyError {
	return &TallyError{
		Code:    ErrConflictingFilters,
		Status:  422,
		Message: "conflicting filters: min_length cannot be greater than max_length",
		Details: map[string]any{"min_length": minLength, "max_length": maxLength},
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
// The cause is kept in Details for logging and never shown to clients.
func NewInternal(err error) *TallyError {
	details := map[string]any{}
	if err != nil {
		details["internal_error"] = err.Error()
	}
	return &TallyError{
		Code:    ErrInternal,
		Status:  500,
		Message: "an internal error occurred",
		Details: details,
	}
}

// As returns the TallyError in err's chain, if any.
func As(err error) (*TallyError, bool) {
	var tErr *TallyError
	if stderrors.As(err, &tErr) {
		return tErr, true
	}
	return nil, false
}

// Is checks if an error (or anything it wraps) is a TallyError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := As(err); ok {
		return tErr.Code == code
	}
	return false
}
