package commands

import "fmt"

// Exit codes of the CLI contract.
const (
	// ExitOK: batch passed, or warned without --strict.
	ExitOK = 0
	// ExitFail: at least one FAIL result, or WARN with --strict.
	ExitFail = 1
	// ExitUsage: invocation error (bad path, unreadable schema, bad flags).
	ExitUsage = 2
)

// ExitError carries a process exit code through the cobra error path.
// An empty message means the report already told the user everything.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Message
}

// usageErr wraps an invocation problem as exit code 2.
func usageErr(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}
