package main

import (
	"os"

	"github.com/xolan/chrono/cmd"
	"github.com/xolan/chrono/internal/logging"
)

// Version information injected by GoReleaser via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var exitFunc = os.Exit

func main() {
	exitFunc(run())
}

func run() int {
	logging.Setup("warn", "text")
	cmd.SetVersionInfo(version, commit, date)
	if err := cmd.Execute(); err != nil {
		return 1
	}
	return 0
}
