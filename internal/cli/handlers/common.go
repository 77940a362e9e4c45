package handlers

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/xolan/chrono/internal/cli"
)

// fail prints an error with optional details and hint and exits with 1.
func fail(deps *cli.Deps, message string, err error, hint string) {
	cli.PrintError(deps, message, err, hint)
}

// confirm asks a yes/no question on stdout and reads the answer from stdin.
// Anything but "y" or "yes" is a no.
func confirm(deps *cli.Deps, question string) bool {
	_, _ = fmt.Fprintf(deps.Stdout, "%s [y/N]: ", question)
	reader := bufio.NewReader(deps.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func rule(char string) string {
	return strings.Repeat(char, 60)
}
