package streak

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable is returned (wrapped) when a collaborator, such as the log
// store or the settings store, cannot be reached.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ConfigurationError is returned when a timezone identifier cannot be resolved.
type ConfigurationError struct {
	Zone string
	Err  error
}

func (e *ConfigurationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("configuration: unknown timezone [%s]", e.Zone)
	}
	return fmt.Sprintf("configuration: unknown timezone [%s]: %s", e.Zone, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when malformed settings reach the engine.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
