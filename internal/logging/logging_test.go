package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestApplyLevel(t *testing.T) {
	original := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(original)

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			applyLevel(tt.level)
			if got := zerolog.GlobalLevel(); got != tt.want {
				t.Errorf("applyLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestOutputsWritesRotatingFile(t *testing.T) {
	var console bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "childcare.log")

	logger := zerolog.New(outputs(&console, path))
	logger.Info().Str("link_kind", "guardian").Msg("link created")

	if !strings.Contains(console.String(), "link created") {
		t.Fatalf("expected console output, got %q", console.String())
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if !strings.Contains(string(content), "link_kind=guardian") {
		t.Fatalf("expected log file to contain fields, got %q", content)
	}
}

func TestOutputsConsoleOnly(t *testing.T) {
	var console bytes.Buffer
	logger := zerolog.New(outputs(&console, ""))
	logger.Warn().Msg("console only")

	if !strings.Contains(console.String(), "console only") {
		t.Fatalf("expected console output, got %q", console.String())
	}
}
