package errors

import (
	"fmt"
	"testing"
)

func TestTallyError_Error(t *testing.T) {
	err := &TallyError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "string not found",
	}

	expected := "NOT_FOUND: string not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *TallyError
		code   ErrorCode
		status int
	}{
		{"invalid input", NewInvalidInput("value is required"), ErrInvalidInput, 400},
		{"invalid type", NewInvalidType("value"), ErrInvalidInput, 422},
		{"ambiguous addressing", NewAmbiguousAddressing(), ErrAmbiguousAddressing, 400},
		{"malformed filter", NewMalformedFilter("min_length", "an integer"), ErrMalformedFilter, 400},
		{"no filters parsed", NewNoFiltersParsed("hello"), ErrNoFiltersParsed, 400},
		{"not found", NewNotFound("abc"), ErrNotFound, 404},
		{"duplicate", NewDuplicateValue("abc"), ErrDuplicateValue, 409},
		{"too large", NewValueTooLarge(10, 20), ErrValueTooLarge, 413},
		{"body too large", NewBodyTooLarge(1024), ErrValueTooLarge, 413},
		{"conflicting", NewConflictingFilters(6, 2), ErrConflictingFilters, 422},
		{"internal", NewInternal(nil), ErrInternal, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.code)
			}
			if tt.err.Status != tt.status {
				t.Errorf("Status = %d, want %d", tt.err.Status, tt.status)
			}
		})
	}
}

func TestNewMalformedFilter(t *testing.T) {
	err := NewMalformedFilter("is_palindrome", `"true" or "false"`)

	if err.Message != `query parameter "is_palindrome" must be "true" or "false"` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Details["parameter"] != "is_palindrome" {
		t.Errorf("Details[parameter] = %v, want %q", err.Details["parameter"], "is_palindrome")
	}
}

func TestNewConflictingFilters(t *testing.T) {
	err := NewConflictingFilters(6, 2)

	if err.Details["min_length"] != 6 {
		t.Errorf("Details[min_length] = %v, want 6", err.Details["min_length"])
	}
	if err.Details["max_length"] != 2 {
		t.Errorf("Details[max_length] = %v, want 2", err.Details["max_length"])
	}
}

func TestNewValueTooLarge(t *testing.T) {
	err := NewValueTooLarge(100, 150)

	if err.Details["max_chars"] != 100 {
		t.Errorf("Details[max_chars] = %v, want 100", err.Details["max_chars"])
	}
	if err.Details["actual_chars"] != 150 {
		t.Errorf("Details[actual_chars] = %v, want 150", err.Details["actual_chars"])
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		err := NewInternal(fmt.Errorf("database connection failed"))

		// Message should be generic (not leak internal details)
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details["internal_error"] != "database connection failed" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "database connection failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		if !Is(NewNotFound("x"), ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		if Is(NewNotFound("x"), ErrDuplicateValue) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("plain error", func(t *testing.T) {
		if Is(fmt.Errorf("plain error"), ErrNotFound) {
			t.Error("Is() = true, want false for non-TallyError")
		}
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("lookup: %w", NewNotFound("x"))
		if !Is(wrapped, ErrNotFound) {
			t.Error("Is() = false, want true for wrapped TallyError")
		}
		if Is(wrapped, ErrInternal) {
			t.Error("Is() = true, want false for wrong code on wrapped TallyError")
		}
	})

	t.Run("nil", func(t *testing.T) {
		if Is(nil, ErrNotFound) {
			t.Error("Is(nil) = true, want false")
		}
	})
}
