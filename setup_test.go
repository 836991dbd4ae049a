package main

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestLogLevel(t *testing.T) {
	cases := []struct {
		raw        string
		production bool
		want       zerolog.Level
	}{
		{"", true, zerolog.WarnLevel},
		{"", false, zerolog.InfoLevel},
		{"debug", true, zerolog.DebugLevel},
		{"warn", false, zerolog.WarnLevel},
		{"warning", false, zerolog.WarnLevel},
		{"error", false, zerolog.ErrorLevel},
		{"disabled", false, zerolog.Disabled},
		{"verbose", false, zerolog.InfoLevel}, // unknown value
	}
	for _, tc := range cases {
		if got := logLevel(tc.raw, tc.production); got != tc.want {
			t.Errorf("logLevel(%q, production=%v) = %v, want %v", tc.raw, tc.production, got, tc.want)
		}
	}
}
