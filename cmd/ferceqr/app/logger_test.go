package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{"Default", Config{}, "info"},
		{"Verbose", Config{Verbose: true}, "debug"},
		{"Quiet", Config{Quiet: true}, "warn"},
		{"QuietBeatsVerbose", Config{Verbose: true, Quiet: true}, "warn"},
		{"EnvLevel", Config{LogLevel: "error"}, "error"},
		{"VerboseBeatsEnv", Config{Verbose: true, LogLevel: "error"}, "debug"},
		{"FlagBeatsVerbose", Config{Verbose: true, LogLevel: "error", levelFromFlag: true}, "error"},
		{"InvalidFlagFallsBack", Config{LogLevel: "loud", levelFromFlag: true}, "info"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(&tt.config))
		})
	}
}

func TestUpdateFromFlags(t *testing.T) {
	config := Config{LogLevel: "error"} // from LOG_LEVEL env

	config.UpdateFromFlags(true, false, false, "")
	assert.True(t, config.Verbose)
	assert.False(t, config.levelFromFlag)
	assert.Equal(t, "debug", determineLogLevel(&config))

	config.UpdateFromFlags(true, false, false, "trace")
	assert.True(t, config.levelFromFlag)
	assert.Equal(t, "trace", determineLogLevel(&config))
}
