package expenses

import (
	"fmt"
)

// ConfigurationError reports a deployment problem (credentials, sheet identifiers or a
// worksheet whose header row no longer has the expected columns) rather than a bad request.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%v)", e.Message, e.Err)
	}

	return e.Message
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}
