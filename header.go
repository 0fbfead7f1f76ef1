package vcdiff

// Header describes the top-level header of a delta stream.
type Header struct {
	// Version is the fourth magic byte: 0x00 for standard RFC 3284
	// streams, 'S' for the SDCH variant.
	Version byte
	// ChecksumsAllowed reports whether windows in this stream may carry
	// Adler-32 checksums (true for version 'S').
	ChecksumsAllowed bool
	// CustomCodeTable reports whether the stream replaces the default
	// code table.
	CustomCodeTable bool
	// AppHeader holds the opaque application header bytes, if present.
	AppHeader []byte
}

// WindowInfo describes one window's header fields without applying it.
type WindowInfo struct {
	// SourceFromDictionary and SourceFromTarget report where the window's
	// source segment comes from; both false means the window uses no
	// source.
	SourceFromDictionary bool
	SourceFromTarget     bool
	SourceLength         uint32
	SourcePosition       uint32
	TargetLength         uint32
	DataLength           uint32
	InstructionsLength   uint32
	AddressesLength      uint32
	HasChecksum          bool
	Checksum             uint32
}

// DeltaInfo is the result of inspecting a delta without decoding it.
type DeltaInfo struct {
	Header  Header
	Windows []WindowInfo
}

// Inspect walks a delta's framing and returns its header and per-window
// metadata without executing any instructions, so it needs no dictionary.
// Source segment bounds are not validated; a delta that inspects cleanly
// may still fail to decode.
func Inspect(delta []byte) (*DeltaInfo, error) {
	buf := &buffer{b: delta}
	d := &Decoder{}
	hdr, _, err := d.readHeader(buf)
	if err != nil {
		return nil, err
	}
	info := &DeltaInfo{Header: *hdr}
	for buf.len() > 0 {
		w, err := parseWindow(buf, hdr.ChecksumsAllowed)
		if err != nil {
			return nil, err
		}
		info.Windows = append(info.Windows, WindowInfo{
			SourceFromDictionary: w.hasSource && !w.sourceFromTarget,
			SourceFromTarget:     w.sourceFromTarget,
			SourceLength:         w.sourceLength,
			SourcePosition:       w.sourcePosition,
			TargetLength:         w.targetLength,
			DataLength:           uint32(len(w.data.b)),
			InstructionsLength:   uint32(len(w.instructions.b)),
			AddressesLength:      uint32(len(w.addresses.b)),
			HasChecksum:          w.hasChecksum,
			Checksum:             w.checksum,
		})
	}
	return info, nil
}
