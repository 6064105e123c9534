package utils

import (
	"errors"
	"fmt"
)

// ErrDataSource marks failures of the transactional store. These abort the
// whole check request; handlers branch on it with errors.Is.
var ErrDataSource = errors.New("data source failure")

// AppError wraps an operation, human-facing message, and underlying error.
type AppError struct {
	Op  string
	Msg string
	Err error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(op, msg string, err error) error {
	return &AppError{Op: op, Msg: msg, Err: err}
}

// DataSourceError constructs an AppError chained to ErrDataSource so callers
// can detect the hard-failure class without inspecting the driver error.
func DataSourceError(op string, err error) error {
	return &AppError{Op: op, Msg: "data source failure", Err: fmt.Errorf("%w: %v", ErrDataSource, err)}
}
