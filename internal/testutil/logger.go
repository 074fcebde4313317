// Copyright 2024 Mike Carlton
// Released under terms of the MIT License:
//   http://www.opensource.org/licenses/mit-license.php

// Package testutil holds helpers shared by tests.
package testutil

import (
	"io"
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug logger whose records land in the test log,
// one t.Log call per record.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(testLog(t), &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// the test runner already orders the output
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

func testLog(t testing.TB) io.Writer {
	return writerFunc(func(p []byte) (int, error) {
		t.Helper()
		t.Log(strings.TrimSuffix(string(p), "\n"))
		return len(p), nil
	})
}
