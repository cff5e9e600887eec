package assessment

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType is reported for question types that have no
	// grading rule (currently only "binary").
	ErrUnsupportedType = errors.New("unsupported question type")

	// ErrUnknownQuestion is returned when an id is not in the bank.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidBank wraps every structural problem found in a bank.
	ErrInvalidBank = errors.New("invalid question bank")
)

// BankError collects every problem found while validating a bank.
type BankError struct {
	Problems []string
	causes   []error
}

func (e *BankError) Error() string {
	return fmt.Sprintf("question bank validation failed:\n  %s", strings.Join(e.Problems, "\n  "))
}

// Unwrap exposes the sentinel causes so errors.Is can match
// ErrUnsupportedType or ErrInvalidBank.
func (e *BankError) Unwrap() []error { return e.causes }

func (e *BankError) add(cause error, format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
	for _, c := range e.causes {
		if c == cause {
			return
		}
	}
	e.causes = append(e.causes, cause)
}

func (e *BankError) orNil() error {
	if len(e.Problems) == 0 {
		return nil
	}
	return e
}
