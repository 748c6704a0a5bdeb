package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zephyrtronium/notation"
	"github.com/zephyrtronium/notation/internal/config"
	"github.com/zephyrtronium/notation/internal/history"
	"github.com/zephyrtronium/notation/internal/render"
)

// execute runs the root command with args and stdin in a fresh directory and
// returns its output and the path of the history log.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	dir := t.TempDir()
	log := filepath.Join(dir, "all_operations_log.txt")
	t.Setenv("NOTATION_HISTORY_FILE", log)
	t.Setenv("NOTATION_LOG_LEVEL", "error")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", filepath.Join(dir, "notation.yaml"), "--no-color"}, args...))
	err := cmd.ExecuteContext(context.Background())
	shutdown()
	return out.String(), log, err
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPostfixCommand(t *testing.T) {
	out, log, err := execute(t, "", "postfix", "3+4*5")
	require.NoError(t, err)
	assert.Contains(t, out, "Postfix: 3 4 5 * +")
	assert.Contains(t, out, "FINAL POP")
	assert.Contains(t, out, "Result: 23.0000")

	s := readLog(t, log)
	assert.Contains(t, s, "Original Expression (Infix): 3+4*5\n")
	assert.Contains(t, s, "Converted Expression (Postfix): 3 4 5 * +\n")
	assert.Contains(t, s, "Evaluation Steps:")
	assert.Contains(t, s, "Final Numeric Result: 23.0000\n")
}

func TestPrefixSymbolic(t *testing.T) {
	out, log, err := execute(t, "", "prefix", "a+b*c")
	require.NoError(t, err)
	assert.Contains(t, out, "Prefix: + a * b c")
	assert.Contains(t, out, "Verification SUCCESSFUL")

	s := readLog(t, log)
	assert.Contains(t, s, "Converted Expression (Prefix): + a * b c\n")
	assert.NotContains(t, s, "Evaluation Steps:")
	assert.Contains(t, s, "Final Numeric Result: 0.0000\n")
}

func TestInfixCommand(t *testing.T) {
	out, log, err := execute(t, "", "infix", "(2+3)*4")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 20.0000")
	assert.Contains(t, readLog(t, log), "Converted Expression (Direct_Evaluation): \n")
}

func TestInfixRejectsSymbols(t *testing.T) {
	_, log, err := execute(t, "", "infix", "a+b")
	assert.ErrorIs(t, err, errReported)
	assert.NoFileExists(t, log)
}

func TestDivisionByZero(t *testing.T) {
	for _, sub := range []string{"postfix", "prefix", "infix"} {
		t.Run(sub, func(t *testing.T) {
			out, log, err := execute(t, "", sub, "1/0")
			assert.ErrorIs(t, err, errReported)
			assert.Contains(t, out, "division by zero")
			assert.NotContains(t, out, "Result:")
			assert.NoFileExists(t, log)
		})
	}
}

func TestValidateCommand(t *testing.T) {
	out, log, err := execute(t, "", "validate", "a*(b+c)", "3++4")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Valid symbolic expression.")
	assert.Contains(t, out, "  3++4\n    ^")
	assert.NoFileExists(t, log)
}

func TestStdinLines(t *testing.T) {
	out, _, err := execute(t, "1+1\n\n  2*3  \n", "--trace=false", "postfix")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 2.0000")
	assert.Contains(t, out, "Result: 6.0000")
	assert.NotContains(t, out, "Action")
}

func TestContinuesAfterFailure(t *testing.T) {
	out, log, err := execute(t, "", "postfix", "(1+2", "2^3")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "Result: 8.0000")
	assert.Equal(t, 1, strings.Count(readLog(t, log), "OPERATION LOGGED:"))
}

func TestNoHistory(t *testing.T) {
	_, log, err := execute(t, "", "--no-history", "infix", "1+2")
	require.NoError(t, err)
	assert.NoFileExists(t, log)
}

func TestSqrtFlag(t *testing.T) {
	_, _, err := execute(t, "", "infix", "s(16)")
	assert.ErrorIs(t, err, errReported)

	out, _, err := execute(t, "", "--sqrt", "infix", "s(16)")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 4.0000")
}

func TestRepl(t *testing.T) {
	in := "1+2\n:infix\n1/0\n2^3\n:prefix\nx-y\n:bogus\n:quit\n4+4\n"
	out, log, err := execute(t, in, "repl")
	require.NoError(t, err)
	assert.Contains(t, out, "Result: 3.0000")
	assert.Contains(t, out, "Operation aborted.")
	assert.Contains(t, out, "Result: 8.0000")
	assert.Contains(t, out, "Prefix: - x y")
	assert.Contains(t, out, "Unknown command :bogus")
	assert.NotContains(t, out, "+ 4 4")
	assert.Equal(t, 3, strings.Count(readLog(t, log), "OPERATION LOGGED:"))
}

func TestHistoryCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "history.db")
	t.Setenv("NOTATION_HISTORY_DB", db)
	_, _, err := execute(t, "", "postfix", "2*3")
	require.NoError(t, err)
	_, _, err = execute(t, "", "prefix", "p-q")
	require.NoError(t, err)

	out, _, err := execute(t, "", "history", "-n", "5")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "OPERATION LOGGED:"))
	assert.Less(t, strings.Index(out, "- p q"), strings.Index(out, "2 3 *"))
	assert.Contains(t, out, "Final Numeric Result: 6.0000")
}

func TestHistoryCommandNoDatabase(t *testing.T) {
	_, _, err := execute(t, "", "history")
	assert.ErrorContains(t, err, "no history database")
}

func TestConfigCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.yaml")
	out, _, err := execute(t, "", "--sqrt", "config", "--save", path)
	require.NoError(t, err)
	assert.Contains(t, out, "max_len: 255")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.Sqrt)
}

func TestBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644))
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", path, "infix", "1"})
	err := cmd.Execute()
	assert.ErrorContains(t, err, "invalid logging level")
	assert.NotErrorIs(t, err, errReported)
}

// observe installs globals for calling the run functions directly and
// returns the logs they produce.
func observe(t *testing.T, rec history.Recorder) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger = zap.New(core)
	cfg = config.DefaultConfig()
	opts = cfg.Options()
	rend = render.New(false)
	recorder = rec
	t.Cleanup(func() {
		logger, cfg, opts, rend, recorder = nil, nil, nil, nil, nil
	})
	return logs
}

func TestRecordFailureWarns(t *testing.T) {
	logs := observe(t, history.NewFileRecorder(filepath.Join(t.TempDir(), "missing", "log.txt")))
	var out bytes.Buffer
	require.NoError(t, runInfix(context.Background(), &out, "6/3"))
	assert.Contains(t, out.String(), "Result: 2.0000")
	assert.Equal(t, 1, logs.FilterMessage("Failed to record operation").Len())
}

func TestFatalLogged(t *testing.T) {
	logs := observe(t, history.Nop{})
	var out bytes.Buffer
	err := runConversion(context.Background(), &out, "4/(2-2)", notation.Postfix)
	require.Error(t, err)
	entries := logs.FilterMessage("Evaluation aborted").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestRecorded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	logs := observe(t, history.NewFileRecorder(path))
	var out bytes.Buffer
	require.NoError(t, runConversion(context.Background(), &out, "2^3^2", notation.Postfix))
	assert.Contains(t, out.String(), "Result: 512.0000")
	assert.Zero(t, logs.FilterMessage("Failed to record operation").Len())
	assert.Contains(t, readLog(t, path), "Final Numeric Result: 512.0000")
}
