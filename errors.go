package waterfall

import (
	"errors"
	"fmt"
)

// ErrMeasurementUnavailable is returned by a MeasurementProvider when an item
// has not been committed yet. The engine retries the item on a later pass.
var ErrMeasurementUnavailable = errors.New("waterfall: measurement unavailable")

// ErrCustomDispatcher is returned by Run when the engine was built with
// WithDispatcher, since events then never reach the built-in queue.
var ErrCustomDispatcher = errors.New("waterfall: Run is unavailable with a custom dispatcher")

// ConfigurationError reports an invalid engine setting.
type ConfigurationError struct {
	Field string
	Value any
	// Reason describes the constraint that was violated.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("waterfall: invalid %s %v: %s", e.Field, e.Value, e.Reason)
}
