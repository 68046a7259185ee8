package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger whose output goes nowhere, for wiring
// services under test without log noise
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
