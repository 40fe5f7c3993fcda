package engine

import (
	"errors"
	"os/exec"
	"syscall"
)

// Shell exit statuses, matching bash conventions.
const (
	StatusSuccess = 0
	StatusFailure = 1
	// StatusNotExecutable is returned for a command that was found
	// but could not be executed.
	StatusNotExecutable = 126
	// StatusNotFound is returned for a command that no search path
	// entry could resolve, or for an empty command.
	StatusNotFound = 127
	// StatusInterrupt is returned for a command killed by SIGINT.
	StatusInterrupt = 130
	// StatusQuit is returned for a command killed by SIGQUIT.
	StatusQuit = 131
)

// signalBase + signal number is the conventional status for any other
// fatal signal.
const signalBase = 128

// StatusError is an error that carries the shell exit status it
// should resolve to.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// statusFromWait translates the result of waiting on a child process
// into a shell exit status.
func statusFromWait(err error) int {
	if err == nil {
		return StatusSuccess
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		// Wait itself failed; the child's status is unknowable.
		return StatusFailure
	}

	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		switch ws.Signal() {
		case syscall.SIGINT:
			return StatusInterrupt
		case syscall.SIGQUIT:
			return StatusQuit
		default:
			return signalBase + int(ws.Signal())
		}
	}

	return exitErr.ExitCode()
}
