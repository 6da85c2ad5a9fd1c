package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level, format string
		want          zapcore.Level
	}{
		{"debug", "json", zapcore.DebugLevel},
		{"WARN", "console", zapcore.WarnLevel},
		{"nonsense", "json", zapcore.InfoLevel},
		{"", "", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		log, err := New(tt.level, tt.format)
		if err != nil {
			t.Fatalf("New(%q, %q) failed: %v", tt.level, tt.format, err)
		}
		if !log.Core().Enabled(tt.want) {
			t.Errorf("New(%q): level %v should be enabled", tt.level, tt.want)
		}
		if tt.want > zapcore.DebugLevel && log.Core().Enabled(tt.want-1) {
			t.Errorf("New(%q): level %v should be disabled", tt.level, tt.want-1)
		}
	}
}
