package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikecarlton/dimcalc/pkg/system"
)

// isolate runs the test in an empty directory with its own home, so no
// config file or history database leaks in
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func runCalc(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := execute(cmd, args)
	return stdout.String(), stderr.String(), err
}

func calc(t *testing.T, args ...string) string {
	t.Helper()
	out, _, err := runCalc(t, args...)
	require.NoError(t, err)
	return strings.TrimSpace(out)
}

func TestEvaluate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"speed times time", []string{"10", "m", "2", "s", "/", "5", "s", "x"}, "25 m"},
		{"dot multiplies", []string{"3", "m", "2", "m", "."}, "6 m·m"},
		{"mixed scales", []string{"36", "km", "1", "hr", "/", "30", "min", "*"}, "18 km"},
		{"cancellation", []string{"6", "m", "2", "m", "/"}, "3"},
		{"reciprocal", []string{"4", "m", "r"}, "0.25 1/m"},
		{"conversion", []string{"3", "ft", "in"}, "36 in"},
		{"addition converts", []string{"1", "m", "50", "cm", "+"}, "1.5 m"},
		{"subtraction", []string{"1", "hr", "30", "min", "-"}, "0.5 hr"},
		{"percent", []string{"50", "%", "2", "m", "x"}, "1 m"},
		{"dup", []string{"3", "m", "dup", "x"}, "9 m·m"},
		{"pop", []string{"1", "2", "p"}, "1"},
		{"uk capability", []string{"14", "st", "2", "ft", "/"}, "7 st/ft"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, calc(t, test.args...))
		})
	}
}

func TestPrecision(t *testing.T) {
	isolate(t)

	assert.Equal(t, "0.33333333333333333333333333333333", calc(t, "1", "3", "/"))
	assert.Equal(t, "0.3333", calc(t, "--precision", "4", "1", "3", "/"))
	assert.Equal(t, "0.67", calc(t, "-p", "2", "2", "3", "/"))
	assert.Equal(t, "2", calc(t, "-p", "2", "6", "3", "/"))
}

func TestNegativeOperands(t *testing.T) {
	isolate(t)
	assert.Equal(t, "-6 m", calc(t, "2", "m", "-3", "x"))
	assert.Equal(t, "-3 m", calc(t, "-3", "m"))
	assert.Equal(t, "-7 m", calc(t, "-3.5", "m", "2", "x"))
	assert.Equal(t, "-0.67", calc(t, "-p", "2", "-2", "3", "/"))
	assert.Equal(t, "-0.67", calc(t, "--precision=2", "-2", "3", "/"))
}

func TestOperandArgs(t *testing.T) {
	flags := newRootCmd().PersistentFlags()

	tests := []struct {
		name     string
		args     []string
		expected []string
	}{
		{"leading negative", []string{"-3", "m"}, []string{"--", "-3", "m"}},
		{"after a flag value", []string{"-p", "2", "-3", "m"}, []string{"-p", "2", "--", "-3", "m"}},
		{"after a bool flag", []string{"--verify", "-3", "m"}, []string{"--verify", "--", "-3", "m"}},
		{"after an operand", []string{"5", "-3", "x"}, []string{"5", "-3", "x"}},
		{"already terminated", []string{"--", "-3"}, []string{"--", "-3"}},
		{"subcommand", []string{"units", "--system", "metric"}, []string{"units", "--system", "metric"}},
		{"flags only", []string{"-t"}, []string{"-t"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, operandArgs(flags, test.args))
		})
	}
}

func TestStackPrint(t *testing.T) {
	isolate(t)

	out, _, err := runCalc(t, "1.5", "10", "m")
	require.NoError(t, err)
	assert.Equal(t, "10   m\n 1.5\n", out)
}

func TestErrors(t *testing.T) {
	isolate(t)

	tests := []struct {
		name string
		args []string
		err  error
	}{
		{"metric with imperial", []string{"1", "m", "1", "ft", "x"}, system.ErrIncompatible},
		{"unknown argument", []string{"1", "furlong"}, errUnrecognized},
		{"empty stack", []string{"1", "x"}, errStackEmpty},
		{"swap needs two", []string{"1", "swap"}, errStackEmpty},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := runCalc(t, test.args...)
			assert.ErrorIs(t, err, test.err)
		})
	}

	_, _, err := runCalc(t, "3", "ft", "s")
	assert.Error(t, err)
}

func TestVerifyAndTrace(t *testing.T) {
	isolate(t)

	out, stderr, err := runCalc(t, "--verify", "--trace", "2", "m", "3", "kg", "x")
	require.NoError(t, err)
	assert.Equal(t, "6 m·kg", strings.TrimSpace(out))
	assert.Contains(t, stderr, "rule=MetricATimesMetricB")
}

func TestConfigFile(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dimcalc.yaml"), []byte("precision: 2\n"), 0o644))

	assert.Equal(t, "0.33", calc(t, "1", "3", "/"))
	assert.Equal(t, "0.333", calc(t, "-p", "3", "1", "3", "/"))
}

func TestUnitsCommand(t *testing.T) {
	isolate(t)

	all := calc(t, "units")
	assert.Contains(t, all, "meters")
	assert.Contains(t, all, "stones")
	assert.Contains(t, all, "UKImperial")

	metric := calc(t, "units", "--system", "metric")
	assert.Contains(t, metric, "meters")
	assert.Contains(t, metric, "seconds")
	assert.NotContains(t, metric, "stones")

	_, _, err := runCalc(t, "units", "--system", "martian")
	assert.Error(t, err)
}

func TestRulesCommand(t *testing.T) {
	isolate(t)

	all := calc(t, "rules")
	assert.Contains(t, all, "APerBTimesB")
	assert.Contains(t, all, "ADivB")

	div := calc(t, "rules", "--op", "div")
	assert.Contains(t, div, "ADivB")
	assert.NotContains(t, div, "APerBTimesB")

	qualified := calc(t, "rules", "--qualified")
	assert.Contains(t, qualified, "MetricAndImperialAPerBTimesMetricAndImperialB")
	assert.Contains(t, qualified, "MetricUSAPerBTimesMetricUSB")

	_, _, err := runCalc(t, "rules", "--op", "pow")
	assert.Error(t, err)
}

func TestHistoryCommand(t *testing.T) {
	isolate(t)

	assert.Equal(t, "(no history)", calc(t, "history"))

	assert.Equal(t, "5 m/s", calc(t, "--history", "10", "m", "2", "s", "/"))
	assert.Equal(t, "4", calc(t, "2", "2", "x"))

	recent := calc(t, "history")
	assert.Contains(t, recent, "10 m 2 s /")
	assert.Contains(t, recent, "5 m/s")
	assert.Contains(t, recent, "MetricADivMetricB")
	assert.NotContains(t, recent, "2 2 x")

	_, _, err := runCalc(t, "history", "--limit", "0")
	assert.Error(t, err)
}

func TestHelp(t *testing.T) {
	isolate(t)
	assert.Contains(t, calc(t), "Evaluates its arguments as an RPN expression")
}
