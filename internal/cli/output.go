// SPDX-License-Identifier: MIT

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // solution or count printed
	ExitFailure      = 1 // search exhausted without a solution
	ExitCommandError = 2 // bad input, flags or configuration
)

// Error codes reported in CLIError.Code.
const (
	ErrCodeGeneric    = "E001" // unexpected failure
	ErrCodeInput      = "E002" // input file missing or malformed
	ErrCodeConfig     = "E003" // config file or resulting config invalid
	ErrCodeNoSolution = "E004" // candidate space exhausted
	ErrCodeFlag       = "E005" // flag or argument value invalid
)

// ExitError is an error carrying the process exit code.
type ExitError struct {
	Code    int    // exit code (ExitFailure or ExitCommandError)
	Message string // error message
	Err     error  // underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// WrapExitError wraps err with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from err. Errors that are not an
// ExitError come from cobra itself (unknown flag, wrong arg count) and map to
// ExitCommandError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCommandError
}

// OutputFormatter renders results as text or as a JSON CLIResponse.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // text-mode errors (defaults to Writer)
	TraceID   string    // run id echoed in JSON responses
}

// CLIResponse is the JSON envelope of every command.
type CLIResponse struct {
	Status  string    `json:"status"`             // "ok" or "error"
	Data    any       `json:"data,omitempty"`     // success payload
	Error   *CLIError `json:"error,omitempty"`    // error details
	TraceID string    `json:"trace_id,omitempty"` // run id
}

// CLIError is the error structure of CLIResponse.
type CLIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Success writes data. Text mode prints it with fmt, so results implement
// fmt.Stringer.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "ok",
			Data:    data,
			TraceID: f.TraceID,
		})
	}

	_, err := fmt.Fprintln(f.Writer, data)
	return err
}

// Error writes an error report. JSON goes to Writer so the output stays
// machine readable; text goes to ErrWriter.
func (f *OutputFormatter) Error(code, message string) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status:  "error",
			Error:   &CLIError{Code: code, Message: message},
			TraceID: f.TraceID,
		})
	}

	w := f.ErrWriter
	if w == nil {
		w = f.Writer
	}
	_, err := fmt.Fprintf(w, "Error [%s]: %s\n", code, message)
	return err
}

// fail reports err through the formatter and returns the matching ExitError.
func (f *OutputFormatter) fail(exitCode int, errCode string, err error) error {
	if werr := f.Error(errCode, err.Error()); werr != nil {
		return WrapExitError(ExitCommandError, "write output", werr)
	}
	return WrapExitError(exitCode, errCode, err)
}
