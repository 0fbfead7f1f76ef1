package vcdiff

// Window indicator bits (RFC 3284 section 4.2). vcdChecksum is the SDCH
// extension bit, accepted only for version 'S' streams.
const (
	vcdSource   = 0x01
	vcdTarget   = 0x02
	vcdChecksum = 0x04
)

// Delta indicator bits requesting secondary compression of one section
// (RFC 3284 section 4.3). None are implemented.
const (
	vcdDatacomp = 0x01
	vcdInstcomp = 0x02
	vcdAddrcomp = 0x04
)

// window is one parsed delta window: the header fields plus a cursor over
// each of the three contiguous sections of its body.
type window struct {
	sourceFromTarget bool
	hasSource        bool
	sourceLength     uint32
	sourcePosition   uint32
	targetLength     uint32
	hasChecksum      bool
	checksum         uint32

	data         buffer
	instructions buffer
	addresses    buffer
}

// parseWindow reads one window header and slices its body into the data,
// instruction and address sections. It performs pure framing only; source
// segment bounds are validated by the caller, which knows how many
// dictionary and decoded target bytes exist.
func parseWindow(buf *buffer, allowChecksum bool) (*window, error) {
	indicator, err := buf.readByte()
	if err != nil {
		return nil, err
	}
	w := &window{}
	switch indicator & (vcdSource | vcdTarget) {
	case 0:
	case vcdSource:
		w.hasSource = true
	case vcdTarget:
		w.hasSource = true
		w.sourceFromTarget = true
	default:
		return nil, newErrorf(ErrCodeInvalidDelta, "window declares both dictionary and target as source")
	}
	if indicator&vcdChecksum != 0 && !allowChecksum {
		return nil, newErrorf(ErrCodeInvalidDelta, "window checksum present in a stream whose header does not allow one")
	}
	if extra := indicator &^ (vcdSource | vcdTarget | vcdChecksum); extra != 0 {
		return nil, newErrorf(ErrCodeUnsupportedFeature, "unknown window indicator bits 0x%02x", extra)
	}

	if w.hasSource {
		if w.sourceLength, err = buf.readVarint32(); err != nil {
			return nil, err
		}
		if w.sourcePosition, err = buf.readVarint32(); err != nil {
			return nil, err
		}
	}

	deltaLength, err := buf.readVarint32()
	if err != nil {
		return nil, err
	}
	bodyStart := buf.off

	if w.targetLength, err = buf.readVarint32(); err != nil {
		return nil, err
	}
	deltaIndicator, err := buf.readByte()
	if err != nil {
		return nil, err
	}
	if deltaIndicator&(vcdDatacomp|vcdInstcomp|vcdAddrcomp) != 0 {
		return nil, newErrorf(ErrCodeUnsupportedFeature, "secondary section compression requested (delta indicator 0x%02x)", deltaIndicator)
	}
	if deltaIndicator != 0 {
		return nil, newErrorf(ErrCodeInvalidDelta, "unknown delta indicator bits 0x%02x", deltaIndicator)
	}

	dataLength, err := buf.readVarint32()
	if err != nil {
		return nil, err
	}
	instLength, err := buf.readVarint32()
	if err != nil {
		return nil, err
	}
	addrLength, err := buf.readVarint32()
	if err != nil {
		return nil, err
	}
	if indicator&vcdChecksum != 0 {
		w.hasChecksum = true
		if w.checksum, err = buf.readVarint32(); err != nil {
			return nil, err
		}
	}

	headerLength := uint64(buf.off - bodyStart)
	if uint64(deltaLength) != headerLength+uint64(dataLength)+uint64(instLength)+uint64(addrLength) {
		return nil, newErrorf(ErrCodeLengthMismatch,
			"window length %d does not match %d header + %d data + %d instruction + %d address bytes",
			deltaLength, headerLength, dataLength, instLength, addrLength)
	}

	data, err := buf.readBytes(int(dataLength))
	if err != nil {
		return nil, err
	}
	inst, err := buf.readBytes(int(instLength))
	if err != nil {
		return nil, err
	}
	addr, err := buf.readBytes(int(addrLength))
	if err != nil {
		return nil, err
	}
	w.data = buffer{b: data}
	w.instructions = buffer{b: inst}
	w.addresses = buffer{b: addr}
	return w, nil
}
