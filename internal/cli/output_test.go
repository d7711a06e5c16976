// SPDX-License-Identifier: MIT
package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf, TraceID: "run-1"}

	require.NoError(t, f.Success(CrossingsResult{Count: 3}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.TraceID)
	assert.Nil(t, resp.Error)
	assert.Equal(t, map[string]any{"count": 3.0, "area": map[string]any{"min": 0.0, "max": 0.0}}, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, f.Error(ErrCodeInput, "bad line"))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "E002", resp.Error.Code)
	assert.Equal(t, "bad line", resp.Error.Message)
	assert.Empty(t, resp.TraceID)
}

func TestOutputFormatter_Text(t *testing.T) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: out, ErrWriter: errOut}

	require.NoError(t, f.Success(SolveResult{Start: [3]int64{1, 2, 3}, Velocity: [3]int64{-1, 0, 1}, Answer: 6}))
	assert.Equal(t, "Start: 1, 2, 3\nVelocity: -1, 0, 1\nAnswer: 6\n", out.String())

	require.NoError(t, f.Error(ErrCodeGeneric, "boom"))
	assert.Equal(t, "Error [E001]: boom\n", errOut.String())

	// without ErrWriter errors fall back to Writer
	out.Reset()
	f.ErrWriter = nil
	require.NoError(t, f.Error(ErrCodeGeneric, "boom"))
	assert.Equal(t, "Error [E001]: boom\n", out.String())
}

func TestExitError(t *testing.T) {
	base := errors.New("disk on fire")
	err := WrapExitError(ExitFailure, "E004", base)
	assert.Equal(t, "E004: disk on fire", err.Error())
	assert.ErrorIs(t, err, base)
	assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("outer: %w", err)))

	assert.Equal(t, "plain", (&ExitError{Code: ExitCommandError, Message: "plain"}).Error())
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitCommandError, GetExitCode(errors.New("unknown flag")))
}

func TestFailReportsAndWraps(t *testing.T) {
	out := &bytes.Buffer{}
	f := &OutputFormatter{Format: "json", Writer: out}
	cause := errors.New("nothing verified")

	err := f.fail(ExitFailure, ErrCodeNoSolution, cause)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, out.String(), `"message":"nothing verified"`)
}
