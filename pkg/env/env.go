// Package env reads process environment values that sit outside the
// envconfig-managed tree, such as bootstrap logger settings needed before
// the config is parsed.
package env

import (
	"os"
	"strings"
)

// Get returns the named variable, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
