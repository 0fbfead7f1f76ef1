package vcdiff

import "hash/adler32"

// maxTargetAlloc caps the capacity allocated up front for a window's
// output. A tiny hostile window can declare a multi-gigabyte target
// length; beyond this cap the buffer grows through append as bytes are
// actually produced, with the exact-length check at the end of the window
// as the authority.
const maxTargetAlloc = 1 << 20

// applyWindow runs one window's instruction stream to completion and
// returns the target bytes it produces. src is the window's source segment,
// already bounds-checked by the caller; it may be empty.
//
// The interpreter is a single forward pass: every instruction appends to
// out and never revisits written bytes, so a fault leaves nothing exposed
// to the caller.
func applyWindow(w *window, src []byte, table *codeTable, cache *addressCache) ([]byte, error) {
	cache.reset()
	targetLength := int(w.targetLength)
	alloc := targetLength
	if alloc < 0 || alloc > maxTargetAlloc {
		alloc = maxTargetAlloc
	}
	out := make([]byte, 0, alloc)

	for w.instructions.len() > 0 {
		opcode, err := w.instructions.readByte()
		if err != nil {
			return nil, err
		}
		for slot := 0; slot < 2; slot++ {
			inst := table.entries[opcode][slot]
			if inst.kind == instNoop {
				continue
			}
			size := int(inst.size)
			if size == 0 {
				n, err := w.instructions.readVarint32()
				if err != nil {
					return nil, err
				}
				size = int(n)
			}
			if len(out)+size > targetLength {
				return nil, newErrorf(ErrCodeLengthMismatch,
					"instruction produces %d bytes past the declared target length %d", len(out)+size-targetLength, targetLength)
			}
			switch inst.kind {
			case instAdd:
				p, err := w.data.readBytes(size)
				if err != nil {
					return nil, err
				}
				out = append(out, p...)
			case instRun:
				b, err := w.data.readByte()
				if err != nil {
					return nil, err
				}
				for i := 0; i < size; i++ {
					out = append(out, b)
				}
			case instCopy:
				here := uint64(len(src) + len(out))
				addr, err := cache.decode(here, inst.mode, &w.addresses)
				if err != nil {
					return nil, err
				}
				// The copy range may run past here into bytes this very
				// instruction writes; copying forward one byte at a time
				// reproduces such overlapping repeats correctly.
				for i := 0; i < size; i++ {
					pos := addr + uint64(i)
					if pos < uint64(len(src)) {
						out = append(out, src[pos])
						continue
					}
					t := pos - uint64(len(src))
					if t >= uint64(len(out)) {
						// Unreachable for any input: decode enforced
						// addr < here and out grows one byte per step.
						return nil, newErrorf(ErrCodeInvalidAddress,
							"internal: copy walk outran decoded bytes at address %d", addr)
					}
					out = append(out, out[t])
				}
			}
		}
	}

	if len(out) != targetLength {
		return nil, newErrorf(ErrCodeLengthMismatch, "window produced %d bytes, declared target length is %d", len(out), targetLength)
	}
	// Unread data or address bytes are inert: no instruction asked for
	// them. The instruction section itself is always drained by the loop.
	if w.hasChecksum {
		if sum := adler32.Checksum(out); sum != w.checksum {
			return nil, newErrorf(ErrCodeChecksumMismatch, "adler32 %08x, window declares %08x", sum, w.checksum)
		}
	}
	return out, nil
}
