package vcdiff

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ably/vcdiff-go/vcdifftest"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("boom")
}

func TestDecodeReader(t *testing.T) {
	dictionary := []byte("abcdefgh")

	t.Run("decodes a delta from a reader", func(t *testing.T) {
		delta := vcdifftest.Delta(
			vcdifftest.NewSourceWindow(0, 8).Add([]byte("X")).Copy(0, 2, 3).Build(),
		)
		got, err := DecodeReader(dictionary, bytes.NewReader(delta))
		require.NoError(t, err)
		assert.Equal(t, []byte("Xcde"), got)
	})

	t.Run("propagates read errors untyped", func(t *testing.T) {
		_, err := DecodeReader(dictionary, failingReader{})
		require.Error(t, err)
		var e *Error
		assert.False(t, errors.As(err, &e))
	})
}
