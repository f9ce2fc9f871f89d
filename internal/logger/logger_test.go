package logger

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLogger_Debug(t *testing.T) {
	tests := []struct {
		name      string
		envValue  string
		expectLog bool
	}{
		{
			name:      "logs when TBX_DEBUG is set",
			envValue:  "1",
			expectLog: true,
		},
		{
			name:      "logs when TBX_DEBUG is any value",
			envValue:  "true",
			expectLog: true,
		},
		{
			name:      "does not log when TBX_DEBUG is empty",
			envValue:  "",
			expectLog: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Capture log output
			var buf bytes.Buffer
			log.SetOutput(&buf)
			defer log.SetOutput(os.Stderr)

			if tt.envValue != "" {
				t.Setenv("TBX_DEBUG", tt.envValue)
			} else {
				os.Unsetenv("TBX_DEBUG")
			}

			l := NewEnvLogger("[test]")
			l.Debug("test message %s", "arg")

			if tt.expectLog {
				assert.Contains(t, buf.String(), "[test] test message arg")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestEnvLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := NewEnvLogger("[driver]")

	l.Info("info %d", 1)
	assert.Contains(t, buf.String(), "[driver] info 1")
	buf.Reset()

	l.Warn("watch out")
	assert.Contains(t, buf.String(), "WARN: watch out")
	buf.Reset()

	l.Error("boom")
	assert.Contains(t, buf.String(), "ERROR: boom")
}

func TestNoop(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	l := Noop()
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d")

	assert.Empty(t, buf.String())
}

func TestBufferLogger(t *testing.T) {
	l := NewBufferLogger()

	l.Debug("debug %s", "msg")
	l.Info("info msg")
	l.Warn("warn msg")
	l.Error("error msg")

	require.Len(t, l.Messages, 4)
	assert.Equal(t, "debug msg", l.Messages[0].Message)
	assert.True(t, l.HasLevel("warn"))
	assert.True(t, l.HasLevel("error"))
	assert.False(t, l.HasLevel("fatal"))

	l.Clear()
	assert.Empty(t, l.Messages)
}

func TestDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	buffer := NewBufferLogger()
	SetDefault(buffer)

	assert.Equal(t, Logger(buffer), Default())
}
