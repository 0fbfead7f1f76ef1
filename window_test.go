package vcdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ably/vcdiff-go/vcdifftest"
)

func TestParseWindow(t *testing.T) {
	t.Run("window with dictionary source", func(t *testing.T) {
		b := vcdifftest.NewSourceWindow(3, 8).Add([]byte("hi")).Build()
		buf := &buffer{b: b}
		w, err := parseWindow(buf, false)
		require.NoError(t, err)
		assert.True(t, w.hasSource)
		assert.False(t, w.sourceFromTarget)
		assert.Equal(t, uint32(8), w.sourceLength)
		assert.Equal(t, uint32(3), w.sourcePosition)
		assert.Equal(t, uint32(2), w.targetLength)
		assert.Equal(t, 2, w.data.len())
		assert.Equal(t, 2, w.instructions.len())
		assert.Equal(t, 0, w.addresses.len())
		assert.Equal(t, 0, buf.len())
	})

	t.Run("window with target source", func(t *testing.T) {
		b := vcdifftest.NewTargetWindow(0, 4).Copy(0, 1, 2).Build()
		w, err := parseWindow(&buffer{b: b}, false)
		require.NoError(t, err)
		assert.True(t, w.hasSource)
		assert.True(t, w.sourceFromTarget)
		assert.Equal(t, 1, w.addresses.len())
	})

	t.Run("window without source", func(t *testing.T) {
		b := vcdifftest.NewWindow().Run(5, 'x').Build()
		w, err := parseWindow(&buffer{b: b}, false)
		require.NoError(t, err)
		assert.False(t, w.hasSource)
		assert.Equal(t, uint32(5), w.targetLength)
	})

	t.Run("contradictory source bits", func(t *testing.T) {
		b := vcdifftest.NewSourceWindow(0, 4).Add([]byte("hi")).Build()
		b[0] |= 0x02
		_, err := parseWindow(&buffer{b: b}, false)
		assertErrCode(t, err, ErrCodeInvalidDelta)
	})

	t.Run("unknown indicator bits", func(t *testing.T) {
		b := vcdifftest.NewWindow().Add([]byte("hi")).Build()
		b[0] |= 0x10
		_, err := parseWindow(&buffer{b: b}, false)
		assertErrCode(t, err, ErrCodeUnsupportedFeature)
	})

	t.Run("checksum requires permission from the stream header", func(t *testing.T) {
		b := vcdifftest.NewWindow().Add([]byte("hi")).BuildWithChecksum(0x1234)
		w, err := parseWindow(&buffer{b: b}, true)
		require.NoError(t, err)
		assert.True(t, w.hasChecksum)
		assert.Equal(t, uint32(0x1234), w.checksum)

		_, err = parseWindow(&buffer{b: b}, false)
		assertErrCode(t, err, ErrCodeInvalidDelta)
	})

	t.Run("secondary compression is rejected", func(t *testing.T) {
		b := vcdifftest.NewWindow().Add([]byte("hi")).Build()
		// Byte 3 of a small sourceless window is the delta indicator.
		b[3] = vcdDatacomp
		_, err := parseWindow(&buffer{b: b}, false)
		assertErrCode(t, err, ErrCodeUnsupportedFeature)
	})

	t.Run("window length must match its contents", func(t *testing.T) {
		b := vcdifftest.NewWindow().Add([]byte("hi")).Build()
		// Byte 1 is the single-byte delta length varint.
		b[1]++
		_, err := parseWindow(&buffer{b: b}, false)
		assertErrCode(t, err, ErrCodeLengthMismatch)
	})

	t.Run("truncation anywhere inside the window", func(t *testing.T) {
		b := vcdifftest.NewSourceWindow(0, 8).Add([]byte("hi")).Copy(0, 1, 3).Build()
		for i := 0; i < len(b); i++ {
			_, err := parseWindow(&buffer{b: b[:i]}, false)
			require.Error(t, err, "prefix of %d bytes", i)
			var e *Error
			require.ErrorAs(t, err, &e, "prefix of %d bytes", i)
		}
	})
}
