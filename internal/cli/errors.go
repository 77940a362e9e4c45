package cli

import "fmt"

// PrintError writes an error block to deps.Stderr and exits with 1.
// Details and Hint lines are left out when err or hint are empty.
func PrintError(deps *Deps, message string, err error, hint string) {
	_, _ = fmt.Fprintf(deps.Stderr, "Error: %s\n", message)
	if err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
	}
	if hint != "" {
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: %s\n", hint)
	}
	deps.Exit(1)
}
