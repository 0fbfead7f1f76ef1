package vcdiff

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerOptionsIs(t *testing.T) {
	opts := LoggerOptions{Level: LogWarning}
	assert.True(t, opts.Is(LogError))
	assert.True(t, opts.Is(LogWarning))
	assert.False(t, opts.Is(LogInfo))
	assert.False(t, opts.Is(LogDebug))

	assert.False(t, LoggerOptions{Level: LogNone}.Is(LogError))
}

func TestStdLogger(t *testing.T) {
	var buf bytes.Buffer
	l := &stdLogger{Logger: log.New(&buf, "", 0)}

	l.Printf(LogError, "failed after %d windows", 3)
	assert.Equal(t, "[ERROR] failed after 3 windows\n", buf.String())

	buf.Reset()
	l.Print(LogVerbose, "window done")
	assert.Equal(t, "[VERBOSE] window done\n", buf.String())
}

func TestDecoderLogging(t *testing.T) {
	var buf bytes.Buffer
	d := NewDecoder(WithLogger(&stdLogger{Logger: log.New(&buf, "", 0)}, LogVerbose))

	_, err := d.Decode(nil, []byte{0xd6, 0xc3, 0xc4, 0x00, 0x00})
	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "vcdiff header")
}
