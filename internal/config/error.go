package config

import (
	"strings"
)

// ConfigError collects everything wrong with one configuration load:
// environment variables that did not resolve and validation failures,
// tied to the file they came from.
type ConfigError struct {
	Path    string   // config file path, when known
	Missing []string // unresolved environment variables
	Errors  []string // validation errors
}

func (e *ConfigError) Error() string {
	if !e.HasErrors() {
		return ""
	}

	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing environment variables: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, err := range e.Errors {
			parts = append(parts, "  - "+err)
		}
	}

	msg := strings.Join(parts, "\n")
	if e.Path != "" {
		return e.Path + ": " + msg
	}
	return msg
}

// HasErrors reports whether anything was collected.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}
