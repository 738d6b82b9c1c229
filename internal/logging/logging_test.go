package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "production", "warn")
	if log.GetLevel() != zerolog.WarnLevel {
		t.Errorf("level = %v, want warn", log.GetLevel())
	}
	log.Info().Msg("hidden")
	log.Warn().Str("file", "a.txt").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info message written at warn level")
	}
	if !strings.Contains(out, `"file":"a.txt"`) || !strings.Contains(out, `"message":"shown"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNewWithWriterDefaults(t *testing.T) {
	tests := []struct {
		env, level string
		want       zerolog.Level
	}{
		{"production", "", zerolog.InfoLevel},
		{"development", "", zerolog.DebugLevel},
		{"development", "bogus", zerolog.DebugLevel},
		{"production", "error", zerolog.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env+"/"+tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			if got := NewWithWriter(&buf, tt.env, tt.level).GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}
