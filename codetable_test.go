package vcdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable(t *testing.T) {
	table := defaultTable

	t.Run("cache sizes", func(t *testing.T) {
		assert.Equal(t, 4, table.nearSize)
		assert.Equal(t, 3, table.sameSize)
	})

	t.Run("fixed entries", func(t *testing.T) {
		// Spot checks against the table in RFC 3284 section 5.6.
		assert.Equal(t, instruction{kind: instRun}, table.entries[0][0])
		assert.Equal(t, instruction{kind: instNoop}, table.entries[0][1])

		assert.Equal(t, instruction{kind: instAdd, size: 0}, table.entries[1][0])
		assert.Equal(t, instruction{kind: instAdd, size: 17}, table.entries[18][0])

		assert.Equal(t, instruction{kind: instCopy, size: 0, mode: 0}, table.entries[19][0])
		assert.Equal(t, instruction{kind: instCopy, size: 18, mode: 0}, table.entries[34][0])
		assert.Equal(t, instruction{kind: instCopy, size: 0, mode: 8}, table.entries[147][0])

		assert.Equal(t, instruction{kind: instAdd, size: 1}, table.entries[163][0])
		assert.Equal(t, instruction{kind: instCopy, size: 4, mode: 0}, table.entries[163][1])
		assert.Equal(t, instruction{kind: instAdd, size: 4}, table.entries[234][0])
		assert.Equal(t, instruction{kind: instCopy, size: 6, mode: 5}, table.entries[234][1])

		assert.Equal(t, instruction{kind: instAdd, size: 1}, table.entries[235][0])
		assert.Equal(t, instruction{kind: instCopy, size: 4, mode: 6}, table.entries[235][1])

		assert.Equal(t, instruction{kind: instCopy, size: 4, mode: 0}, table.entries[247][0])
		assert.Equal(t, instruction{kind: instAdd, size: 1}, table.entries[247][1])
		assert.Equal(t, instruction{kind: instCopy, size: 4, mode: 8}, table.entries[255][0])
		assert.Equal(t, instruction{kind: instAdd, size: 1}, table.entries[255][1])
	})

	t.Run("instruction kind population", func(t *testing.T) {
		counts := map[byte]int{}
		for _, e := range table.entries {
			counts[e[0].kind]++
			counts[e[1].kind]++
		}
		assert.Equal(t, 1, counts[instRun])
		// 18 plain ADDs, 84 ADD halves of pairs and 9 ADD seconds.
		assert.Equal(t, 18+84+9, counts[instAdd])
		// 144 plain COPYs, 84 COPY seconds and 9 COPY firsts.
		assert.Equal(t, 144+84+9, counts[instCopy])
		assert.Equal(t, 2*256-counts[instRun]-counts[instAdd]-counts[instCopy], counts[instNoop])
	})
}

func TestCodeTableSerialization(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		b := defaultTable.serialize()
		require.Len(t, b, codeTableBytes)
		got, err := parseCodeTable(defaultNearSize, defaultSameSize, b)
		require.NoError(t, err)
		assert.Equal(t, defaultTable, got)
	})

	t.Run("wrong length", func(t *testing.T) {
		_, err := parseCodeTable(4, 3, make([]byte, 100))
		assertErrCode(t, err, ErrCodeLengthMismatch)
	})

	t.Run("unknown instruction kind", func(t *testing.T) {
		b := defaultTable.serialize()
		b[7] = 9
		_, err := parseCodeTable(4, 3, b)
		assertErrCode(t, err, ErrCodeInvalidDelta)
	})

	t.Run("copy mode out of range for cache sizes", func(t *testing.T) {
		// The default table uses modes up to 8, which smaller caches
		// cannot express.
		_, err := parseCodeTable(2, 1, defaultTable.serialize())
		assertErrCode(t, err, ErrCodeInvalidDelta)
	})
}
