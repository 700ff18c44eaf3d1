package log_test

import (
	"bytes"
	"testing"

	"github.com/plus3/blockfall/internal/log"
	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf, log.LevelWarn)

	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, "WARN: warn 3")
	assert.Contains(t, out, "ERROR: error 4")

	buf.Reset()
	l.SetLevel(log.LevelDebug)
	l.Debugf("now visible")
	assert.Contains(t, buf.String(), "DEBUG: now visible")
	assert.Equal(t, log.LevelDebug, l.Level())
}

func TestNoneAndNil(t *testing.T) {
	var buf bytes.Buffer
	l := log.New(&buf, log.LevelNone)
	l.Errorf("dropped")
	assert.Empty(t, buf.String())

	var nilLogger *log.Logger
	assert.NotPanics(t, func() { nilLogger.Infof("nothing") })
	assert.NotPanics(t, func() { log.Discard().Errorf("nothing") })
}

func TestLevelFromString(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.LevelDebug,
		"INFO":    log.LevelInfo,
		"warning": log.LevelWarn,
		"Error":   log.LevelError,
		"off":     log.LevelNone,
		"bogus":   log.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, log.LevelFromString(in), in)
		if in != "bogus" && in != "warning" && in != "off" {
			assert.Equal(t, want, log.LevelFromString(want.String()))
		}
	}
	assert.Equal(t, "UNKNOWN", log.Level(42).String())
}
