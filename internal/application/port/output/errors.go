package output

import "fmt"

// ConfigurationError marks a collaborator misconfiguration (missing
// endpoint, bucket, credentials). It is fatal only for the single
// operation attempted and is reported distinctly from user error.
type ConfigurationError struct {
	Component string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("server configuration error in %s: %s", e.Component, e.Reason)
}
