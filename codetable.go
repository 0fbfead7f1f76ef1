package vcdiff

// Instruction kinds, numbered as in the code table serialization
// (RFC 3284 section 7).
const (
	instNoop byte = iota
	instAdd
	instRun
	instCopy
)

// instruction is one logical instruction from a code table entry. A zero
// size means the actual size follows as a varint in the instruction stream.
// The mode is meaningful only for COPY.
type instruction struct {
	kind byte
	size uint32
	mode byte
}

// codeTable maps each opcode byte to up to two logical instructions. The
// second slot is instNoop for single-instruction opcodes. Near and same
// cache sizes travel with the table because a custom table may redefine
// them.
type codeTable struct {
	entries  [256][2]instruction
	nearSize int
	sameSize int
}

const (
	defaultNearSize = 4
	defaultSameSize = 3

	// codeTableBytes is the size of a serialized code table: six runs of
	// 256 bytes (inst1, inst2, size1, size2, mode1, mode2).
	codeTableBytes = 6 * 256
)

var defaultTable = buildDefaultTable()

// buildDefaultTable constructs the default code table from RFC 3284
// section 5.6. The entry layout is fixed by the format: one RUN, 18 ADDs,
// 16 COPYs for each of the nine modes, the ADD+COPY and COPY+ADD pairs.
func buildDefaultTable() *codeTable {
	t := &codeTable{nearSize: defaultNearSize, sameSize: defaultSameSize}
	modes := 2 + defaultNearSize + defaultSameSize

	i := 0
	t.entries[i][0] = instruction{kind: instRun}
	i++
	for size := 0; size <= 17; size++ {
		t.entries[i][0] = instruction{kind: instAdd, size: uint32(size)}
		i++
	}
	for mode := 0; mode < modes; mode++ {
		t.entries[i][0] = instruction{kind: instCopy, mode: byte(mode)}
		i++
		for size := 4; size <= 18; size++ {
			t.entries[i][0] = instruction{kind: instCopy, size: uint32(size), mode: byte(mode)}
			i++
		}
	}
	for mode := 0; mode < 6; mode++ {
		for addSize := 1; addSize <= 4; addSize++ {
			for copySize := 4; copySize <= 6; copySize++ {
				t.entries[i][0] = instruction{kind: instAdd, size: uint32(addSize)}
				t.entries[i][1] = instruction{kind: instCopy, size: uint32(copySize), mode: byte(mode)}
				i++
			}
		}
	}
	for mode := 6; mode < modes; mode++ {
		for addSize := 1; addSize <= 4; addSize++ {
			t.entries[i][0] = instruction{kind: instAdd, size: uint32(addSize)}
			t.entries[i][1] = instruction{kind: instCopy, size: 4, mode: byte(mode)}
			i++
		}
	}
	for mode := 0; mode < modes; mode++ {
		t.entries[i][0] = instruction{kind: instCopy, size: 4, mode: byte(mode)}
		t.entries[i][1] = instruction{kind: instAdd, size: 1}
		i++
	}
	if i != 256 {
		panic("vcdiff: default code table construction is broken")
	}
	return t
}

// serialize renders the table in the wire layout used when a custom table
// is transmitted as a delta against the default table.
func (t *codeTable) serialize() []byte {
	out := make([]byte, codeTableBytes)
	for i, e := range t.entries {
		out[i] = e[0].kind
		out[256+i] = e[1].kind
		out[512+i] = byte(e[0].size)
		out[768+i] = byte(e[1].size)
		out[1024+i] = e[0].mode
		out[1280+i] = e[1].mode
	}
	return out
}

// parseCodeTable reconstructs a table from its serialized form, validating
// every entry against the given cache sizes.
func parseCodeTable(nearSize, sameSize int, b []byte) (*codeTable, error) {
	if len(b) != codeTableBytes {
		return nil, newErrorf(ErrCodeLengthMismatch, "custom code table is %d bytes, want %d", len(b), codeTableBytes)
	}
	t := &codeTable{nearSize: nearSize, sameSize: sameSize}
	modes := 2 + nearSize + sameSize
	for i := range t.entries {
		for slot := 0; slot < 2; slot++ {
			inst := instruction{
				kind: b[slot*256+i],
				size: uint32(b[512+slot*256+i]),
				mode: b[1024+slot*256+i],
			}
			if inst.kind > instCopy {
				return nil, newErrorf(ErrCodeInvalidDelta, "custom code table entry %d has unknown instruction kind %d", i, inst.kind)
			}
			if inst.kind == instCopy && int(inst.mode) >= modes {
				return nil, newErrorf(ErrCodeInvalidDelta, "custom code table entry %d has copy mode %d, table allows %d modes", i, inst.mode, modes)
			}
			t.entries[i][slot] = inst
		}
	}
	return t, nil
}
