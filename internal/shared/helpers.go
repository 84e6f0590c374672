// Package shared provides common utility functions used across multiple
// packages in the apt-archives codebase.
package shared

import (
	"fmt"
	"strings"
)

// HTTPStatusError creates a formatted error for non-2xx HTTP responses.
func HTTPStatusError(status int, url string) error {
	return fmt.Errorf("status=%d url=%s", status, url)
}

// ToolOutputError creates a formatted error carrying an external tool's
// trimmed output and exit code.
func ToolOutputError(output string, exitCode int) error {
	return fmt.Errorf("exit=%d output=%s", exitCode, strings.TrimSpace(output))
}
