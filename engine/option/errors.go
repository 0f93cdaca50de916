package option

import "fmt"

// Error codes
const (
	ErrCodeUnknownOption   = "UNKNOWN_OPTION"
	ErrCodeTypeMismatch    = "TYPE_MISMATCH"
	ErrCodeChoiceViolation = "CHOICE_VIOLATION"
	ErrCodeInvalidSchema   = "INVALID_OPTION_SCHEMA"
	ErrCodeDuplicateOption = "DUPLICATE_OPTION"
)

// OptionError names the offending option alongside a stable code so callers
// can report which declaration could not be satisfied.
type OptionError struct {
	Code    string
	Option  string
	Message string
}

func (e *OptionError) Error() string {
	if e.Option == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: option %q: %s", e.Code, e.Option, e.Message)
}

func NewError(code, optionID, message string) *OptionError {
	return &OptionError{Code: code, Option: optionID, Message: message}
}

func NewErrorf(code, optionID, format string, args ...any) *OptionError {
	return &OptionError{Code: code, Option: optionID, Message: fmt.Sprintf(format, args...)}
}

func NewUnknownOptionError(optionID string) *OptionError {
	return NewError(ErrCodeUnknownOption, optionID, "not declared by the contract's option schemas")
}

func NewTypeMismatchError(optionID string, expected ValueType, got any) *OptionError {
	return NewErrorf(ErrCodeTypeMismatch, optionID, "expected %s, got %T (%v)", expected, got, got)
}

func NewChoiceViolationError(optionID string, value any, choices []Value) *OptionError {
	return NewErrorf(ErrCodeChoiceViolation, optionID, "value %v is not in allowed choices %v", value, choices)
}
