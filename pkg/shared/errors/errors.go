package errors

import "fmt"

// UsageError represents a condition that makes the whole run meaningless,
// such as an unreadable package root. It carries the process exit code.
type UsageError struct {
	ExitCode int
	Message  string
	Err      error
}

// Error implements the error interface.
func (e *UsageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the wrapped cause.
func (e *UsageError) Unwrap() error {
	return e.Err
}

// NewUsageError creates a UsageError with exit code 2.
func NewUsageError(message string, err error) *UsageError {
	return &UsageError{
		ExitCode: 2,
		Message:  message,
		Err:      err,
	}
}

// ThresholdError signals that at least one finding reached the configured
// fail severity. It is not a malfunction; it only drives the exit status.
type ThresholdError struct {
	Severity string
	Count    int
}

// Error implements the error interface.
func (e *ThresholdError) Error() string {
	return fmt.Sprintf("%d finding(s) at or above severity %q", e.Count, e.Severity)
}

// NewThresholdError creates a ThresholdError for the given severity and count.
func NewThresholdError(severity string, count int) *ThresholdError {
	return &ThresholdError{Severity: severity, Count: count}
}
