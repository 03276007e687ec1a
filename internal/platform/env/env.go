// Package env reads process configuration from environment variables.
package env

import (
	"os"
	"strings"
)

// String returns the value of key, or def when key is unset.
func String(key string, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}

// NonEmpty returns the trimmed value of key, or def when key is unset or
// blank. Use it for settings where an empty value is never meaningful, such
// as directories.
func NonEmpty(key string, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return def
}
