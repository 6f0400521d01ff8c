package errors

import (
	"os"

	log "github.com/cloudposse/pathfilter/pkg/logger"
)

// OsExit is a variable for testing, so we can mock os.Exit.
var OsExit = os.Exit

// CheckErrorAndPrint logs an error message.
func CheckErrorAndPrint(err error) {
	if err == nil {
		return
	}
	log.Error(err)
}

// CheckErrorPrintAndExit logs an error message and exits with the error's exit code.
func CheckErrorPrintAndExit(err error) {
	if err == nil {
		return
	}

	CheckErrorAndPrint(err)
	Exit(GetExitCode(err))
}

// Exit exits the program with the specified exit code.
func Exit(exitCode int) {
	OsExit(exitCode)
}
