// Package vcdifftest provides helpers for building VCDIFF deltas by hand in
// tests. It knows just enough of the wire format to assemble valid streams
// from explicit instructions, using only the generic variable-size opcodes
// of the default code table. It is not an encoder for production use.
package vcdifftest

// Generic opcodes from the default code table: the single RUN entry, the
// variable-size ADD entry, and the variable-size COPY entry for each mode.
const (
	opRun        = 0
	opAdd        = 1
	opCopyMode0  = 19
	opsPerMode   = 16
	nearSize     = 4
	checksumFlag = 0x04
)

// AppendVarint appends v in the big-endian base-128 encoding used
// throughout the format.
func AppendVarint(dst []byte, v uint64) []byte {
	var tmp [10]byte
	i := len(tmp)
	tmp[i-1] = byte(v & 0x7f)
	i--
	for v >>= 7; v != 0; v >>= 7 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
	}
	return append(dst, tmp[i:]...)
}

// A WindowBuilder accumulates instructions for one delta window, keeping
// the instruction, data and address sections separate the way the format
// lays them out.
type WindowBuilder struct {
	indicator byte
	srcLen    uint64
	srcPos    uint64
	inst      []byte
	data      []byte
	addr      []byte
	target    int
}

// NewWindow starts a window with no source segment.
func NewWindow() *WindowBuilder {
	return &WindowBuilder{}
}

// NewSourceWindow starts a window whose source segment is a range of the
// dictionary.
func NewSourceWindow(pos, length int) *WindowBuilder {
	return &WindowBuilder{indicator: 0x01, srcPos: uint64(pos), srcLen: uint64(length)}
}

// NewTargetWindow starts a window whose source segment is a range of the
// previously decoded target.
func NewTargetWindow(pos, length int) *WindowBuilder {
	return &WindowBuilder{indicator: 0x02, srcPos: uint64(pos), srcLen: uint64(length)}
}

// Add appends an ADD instruction carrying the given literal bytes.
func (w *WindowBuilder) Add(p []byte) *WindowBuilder {
	w.inst = append(w.inst, opAdd)
	w.inst = AppendVarint(w.inst, uint64(len(p)))
	w.data = append(w.data, p...)
	w.target += len(p)
	return w
}

// Run appends a RUN instruction repeating b size times.
func (w *WindowBuilder) Run(size int, b byte) *WindowBuilder {
	w.inst = append(w.inst, opRun)
	w.inst = AppendVarint(w.inst, uint64(size))
	w.data = append(w.data, b)
	w.target += size
	return w
}

// Copy appends a COPY instruction in the given mode. The operand is written
// to the address section verbatim: a varint for self, here and near modes.
// For same modes use CopySame, which writes the single raw index byte.
func (w *WindowBuilder) Copy(mode byte, operand uint64, size int) *WindowBuilder {
	w.inst = append(w.inst, opCopyMode0+mode*opsPerMode)
	w.inst = AppendVarint(w.inst, uint64(size))
	w.addr = AppendVarint(w.addr, operand)
	w.target += size
	return w
}

// CopySame appends a COPY addressing slot b of same-cache bank slot+2+nearSize.
func (w *WindowBuilder) CopySame(slot int, b byte, size int) *WindowBuilder {
	mode := byte(2 + nearSize + slot)
	w.inst = append(w.inst, opCopyMode0+mode*opsPerMode)
	w.inst = AppendVarint(w.inst, uint64(size))
	w.addr = append(w.addr, b)
	w.target += size
	return w
}

// RawInstructions appends raw bytes to the instruction section, for tests
// that exercise custom code tables or deliberately broken streams.
func (w *WindowBuilder) RawInstructions(p []byte, produced int) *WindowBuilder {
	w.inst = append(w.inst, p...)
	w.target += produced
	return w
}

// RawData appends raw bytes to the data section.
func (w *WindowBuilder) RawData(p []byte) *WindowBuilder {
	w.data = append(w.data, p...)
	return w
}

// TargetLength overrides the computed target length, for tests that need a
// deliberately wrong declaration.
func (w *WindowBuilder) TargetLength(n int) *WindowBuilder {
	w.target = n
	return w
}

// Build renders the window in wire form.
func (w *WindowBuilder) Build() []byte {
	return w.build(nil)
}

// BuildWithChecksum renders the window in wire form with the given Adler-32
// checksum in its header.
func (w *WindowBuilder) BuildWithChecksum(sum uint32) []byte {
	return w.build(&sum)
}

func (w *WindowBuilder) build(sum *uint32) []byte {
	var body []byte
	body = AppendVarint(body, uint64(w.target))
	body = append(body, 0) // delta indicator: no secondary compression
	body = AppendVarint(body, uint64(len(w.data)))
	body = AppendVarint(body, uint64(len(w.inst)))
	body = AppendVarint(body, uint64(len(w.addr)))
	if sum != nil {
		body = AppendVarint(body, uint64(*sum))
	}

	indicator := w.indicator
	if sum != nil {
		indicator |= checksumFlag
	}
	out := []byte{indicator}
	if w.indicator != 0 {
		out = AppendVarint(out, w.srcLen)
		out = AppendVarint(out, w.srcPos)
	}
	out = AppendVarint(out, uint64(len(body)+len(w.data)+len(w.inst)+len(w.addr)))
	out = append(out, body...)
	out = append(out, w.data...)
	out = append(out, w.inst...)
	out = append(out, w.addr...)
	return out
}

// Delta assembles a standard (version 0x00) delta stream from rendered
// windows.
func Delta(windows ...[]byte) []byte {
	out := []byte{0xd6, 0xc3, 0xc4, 0x00, 0x00}
	for _, w := range windows {
		out = append(out, w...)
	}
	return out
}

// DeltaS assembles an SDCH-variant (version 'S') delta stream, the form
// that permits per-window checksums.
func DeltaS(windows ...[]byte) []byte {
	out := []byte{0xd6, 0xc3, 0xc4, 'S', 0x00}
	for _, w := range windows {
		out = append(out, w...)
	}
	return out
}

// Encode builds a valid delta reconstructing target from any source, using
// a single window with one ADD instruction. It makes no attempt at
// compression; it exists so round-trip tests have a correct encoder.
func Encode(source, target []byte) []byte {
	return Delta(NewWindow().Add(target).Build())
}
