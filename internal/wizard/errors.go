package wizard

import (
	"errors"
	"fmt"
	"time"
)

// Error types for different categories of failures
var (
	ErrSchemaNotFound   = errors.New("schema not found")
	ErrNameCollision    = errors.New("file name collision")
	ErrPersistFailed    = errors.New("persistence error")
	ErrReadinessTimeout = errors.New("readiness check timed out")
)

// WizardError represents a structured error with actionable guidance
type WizardError struct {
	Type     error
	Message  string
	Guidance string
	Cause    error
}

func (e *WizardError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%s: %s\n\nSuggestion: %s", e.Type, e.Message, e.Guidance)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *WizardError) Unwrap() error {
	if e.Cause != nil {
		return e.Cause
	}
	return e.Type
}

// Is lets errors.Is match both the sentinel type and the wrapped cause.
func (e *WizardError) Is(target error) bool {
	return errors.Is(e.Type, target)
}

func NewSchemaNotFoundError(strategy string) *WizardError {
	return &WizardError{
		Type:    ErrSchemaNotFound,
		Message: fmt.Sprintf("no configuration schema registered for strategy %q", strategy),
		Guidance: "Register the strategy with the schema catalogue before running the wizard, " +
			"or pick one of the listed strategies.",
	}
}

func NewPersistenceError(path string, cause error) *WizardError {
	return &WizardError{
		Type:    ErrPersistFailed,
		Message: fmt.Sprintf("failed to write configuration file %q", path),
		Guidance: "Check that the configuration directory exists and you have write " +
			"permissions. The directory is set by conf_dir in the wizard configuration.",
		Cause: cause,
	}
}

func NewReadinessTimeoutError(timeout time.Duration) *WizardError {
	return &WizardError{
		Type:    ErrReadinessTimeout,
		Message: fmt.Sprintf("connection check did not complete within %s", timeout),
		Guidance: "Check network connectivity and increase create_timeout in the wizard " +
			"configuration if the checks legitimately need longer.",
	}
}
