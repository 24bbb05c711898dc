package logging

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		format   string
		debug    bool
		expected zerolog.Level
	}{
		{"console", false, zerolog.InfoLevel},
		{"json", true, zerolog.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			Setup(tt.format, tt.debug)
			if got := log.Logger.GetLevel(); got != tt.expected {
				t.Errorf("Expected level %s, got %s", tt.expected, got)
			}
		})
	}
}
