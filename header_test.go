package vcdiff

import (
	"hash/adler32"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ably/vcdiff-go/vcdifftest"
)

func TestInspect(t *testing.T) {
	t.Run("standard stream", func(t *testing.T) {
		delta := vcdifftest.Delta(
			vcdifftest.NewSourceWindow(3, 8).Add([]byte("X")).Copy(0, 2, 3).Build(),
			vcdifftest.NewWindow().Run(5, 'x').Build(),
		)
		info, err := Inspect(delta)
		require.NoError(t, err)
		assert.Equal(t, byte(0), info.Header.Version)
		assert.False(t, info.Header.ChecksumsAllowed)
		assert.False(t, info.Header.CustomCodeTable)
		assert.Empty(t, info.Header.AppHeader)

		require.Len(t, info.Windows, 2)
		w := info.Windows[0]
		assert.True(t, w.SourceFromDictionary)
		assert.Equal(t, uint32(8), w.SourceLength)
		assert.Equal(t, uint32(3), w.SourcePosition)
		assert.Equal(t, uint32(4), w.TargetLength)
		assert.Equal(t, uint32(1), w.DataLength)
		assert.Equal(t, uint32(1), w.AddressesLength)
		assert.False(t, w.HasChecksum)

		w = info.Windows[1]
		assert.False(t, w.SourceFromDictionary)
		assert.False(t, w.SourceFromTarget)
		assert.Equal(t, uint32(5), w.TargetLength)
		assert.Equal(t, uint32(1), w.DataLength)
	})

	t.Run("checksums and app header", func(t *testing.T) {
		sum := adler32.Checksum([]byte("hi"))
		delta := []byte{0xd6, 0xc3, 0xc4, 'S', 0x04}
		delta = vcdifftest.AppendVarint(delta, 3)
		delta = append(delta, "app"...)
		delta = append(delta, vcdifftest.NewWindow().Add([]byte("hi")).BuildWithChecksum(sum)...)

		info, err := Inspect(delta)
		require.NoError(t, err)
		assert.Equal(t, byte('S'), info.Header.Version)
		assert.True(t, info.Header.ChecksumsAllowed)
		assert.Equal(t, []byte("app"), info.Header.AppHeader)
		require.Len(t, info.Windows, 1)
		assert.True(t, info.Windows[0].HasChecksum)
		assert.Equal(t, sum, info.Windows[0].Checksum)
	})

	t.Run("does not need a dictionary", func(t *testing.T) {
		// A source segment far beyond any real dictionary still inspects,
		// since inspection never touches source bytes.
		delta := vcdifftest.Delta(
			vcdifftest.NewSourceWindow(1000, 500).Copy(0, 2, 3).Build(),
		)
		info, err := Inspect(delta)
		require.NoError(t, err)
		assert.Equal(t, uint32(500), info.Windows[0].SourceLength)
	})

	t.Run("malformed framing still fails", func(t *testing.T) {
		delta := vcdifftest.Delta(vcdifftest.NewWindow().Add([]byte("hi")).Build())
		_, err := Inspect(delta[:len(delta)-1])
		assertErrCode(t, err, ErrCodeTruncatedInput)
	})
}
