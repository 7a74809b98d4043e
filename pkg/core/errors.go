// pkg/core/errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is wrapped by every ConfigError.
	ErrConfiguration = errors.New("invalid radar configuration")

	// ErrSensorUnavailable is returned when no heading source can be acquired.
	// The radar falls back to a north-up display.
	ErrSensorUnavailable = errors.New("heading sensor unavailable")

	// ErrTransientReading marks a single unusable sensor reading.
	// The previous offset is kept.
	ErrTransientReading = errors.New("transient sensor reading")

	// ErrPointSetNotFound is returned by stores for unknown set names.
	ErrPointSetNotFound = errors.New("point set not found")
)

// ConfigError reports a fatal problem found at initialization.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrConfiguration, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}
