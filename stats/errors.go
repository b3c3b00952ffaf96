package stats

import (
	"fmt"
	"strings"
)

// ConfigurationError reports required settings that are absent or invalid.
// It is returned before any network I/O takes place.
type ConfigurationError struct {
	Missing []string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing configuration variables: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// ConnectionError wraps any failure while authenticating or talking to Reddit
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}
