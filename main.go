package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudposse/pathfilter/cmd"
	errUtils "github.com/cloudposse/pathfilter/errors"
)

func main() {
	// Translate termination signals into conventional shell exit codes so a
	// cancelled workflow step reports the signal instead of a success.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		if sig, ok := s.(syscall.Signal); ok {
			errUtils.OsExit(128 + int(sig))
		}
		errUtils.OsExit(130)
	}()

	errUtils.OsExit(run())
}

// run executes the root command. Errors are printed by the command layer,
// only the exit code is decided here.
func run() int {
	if err := cmd.Execute(); err != nil {
		return errUtils.GetExitCode(err)
	}
	return 0
}
