package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValueResponse is the response for get and echo.
type ValueResponse struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Copied bool   `json:"copied,omitempty"`
}

// StatusResponse is the response for commands that change one entry.
type StatusResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Dest   string `json:"dest,omitempty"`
}

// ListResponse is the response for list.
type ListResponse struct {
	Namespace string   `json:"namespace,omitempty"`
	Keys      []string `json:"keys"`
}

// ClearResponse is the response for clear.
type ClearResponse struct {
	Namespace string `json:"namespace,omitempty"`
	Removed   int    `json:"removed"`
}

// exitError carries a process exit code out of a command. The store scope
// has already been closed by the time main sees it.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// withExitCode attaches an exit code to err.
func withExitCode(code int, err error) error {
	return &exitError{code: code, err: err}
}

// exitErrorf builds an exitError from a format string.
func exitErrorf(code int, format string, args ...interface{}) error {
	return withExitCode(code, fmt.Errorf(format, args...))
}

// exitCode returns the process exit code for an error returned by Execute.
// Errors without an attached code (cobra usage errors) map to ExitError.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitError
}

// outputJSON writes a value as formatted JSON.
func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printResult writes v as JSON in JSON mode, otherwise calls human.
func (a *app) printResult(cmd *cobra.Command, v interface{}, human func(w io.Writer)) error {
	if a.jsonOutput {
		return outputJSON(cmd.OutOrStdout(), v)
	}
	human(cmd.OutOrStdout())
	return nil
}

// printError reports a one-line error: JSON on stdout in JSON mode,
// "error: ..." on stderr otherwise.
func (a *app) printError(cmd *cobra.Command, msg string) {
	if a.jsonOutput {
		outputJSON(cmd.OutOrStdout(), ErrorResponse{Error: msg})
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", msg)
}

// warnf writes a warning line to stderr.
func warnf(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), "warning: "+format+"\n", args...)
}

// pluralize returns "1 entry" or "N entries".
func pluralize(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return fmt.Sprintf("%d entries", n)
}
