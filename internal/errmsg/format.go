// Package errmsg provides consistent error formatting for status-line messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operations reported in the status line.
const (
	OpScan   Op = "scan directory"
	OpSearch Op = "search metadata"
	OpApply  Op = "apply metadata"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}
