package vcdiff

import "math"

// buffer is a forward-only cursor over a byte slice. The three window
// sections and the window stream itself are each read through their own
// buffer, so no read can cross a declared section boundary.
type buffer struct {
	b   []byte
	off int
}

func (c *buffer) len() int {
	return len(c.b) - c.off
}

func (c *buffer) readByte() (byte, error) {
	if c.off >= len(c.b) {
		return 0, newErrorf(ErrCodeTruncatedInput, "unexpected end of input at offset %d", c.off)
	}
	b := c.b[c.off]
	c.off++
	return b, nil
}

func (c *buffer) readBytes(n int) ([]byte, error) {
	if n < 0 || c.len() < n {
		return nil, newErrorf(ErrCodeTruncatedInput, "need %d bytes at offset %d, have %d", n, c.off, c.len())
	}
	b := c.b[c.off : c.off+n]
	c.off += n
	return b, nil
}

// readVarint reads a big-endian base-128 integer: seven value bits per byte,
// most significant group first, with the high bit set on every byte except
// the last (RFC 3284 section 2).
func (c *buffer) readVarint() (uint64, error) {
	var v uint64
	for {
		b, err := c.readByte()
		if err != nil {
			return 0, err
		}
		if v > math.MaxUint64>>7 {
			return 0, newErrorf(ErrCodeIntegerOverflow, "varint exceeds 64 bits at offset %d", c.off)
		}
		v = v<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return v, nil
		}
	}
}

// readVarint32 reads a varint constrained to 32 bits, the width of all
// length and position fields in the format.
func (c *buffer) readVarint32() (uint32, error) {
	v, err := c.readVarint()
	if err != nil {
		return 0, err
	}
	if v > math.MaxUint32 {
		return 0, newErrorf(ErrCodeIntegerOverflow, "varint %d exceeds 32 bits at offset %d", v, c.off)
	}
	return uint32(v), nil
}
