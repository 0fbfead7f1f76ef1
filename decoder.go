package vcdiff

// Header indicator bits (RFC 3284 section 4.1, plus the SDCH application
// header extension).
const (
	vcdDecompress = 0x01
	vcdCodetable  = 0x02
	vcdAppheader  = 0x04
)

// versionRFC3284 is the version byte of a standard stream. versionSDCH is
// the variant produced by Google's encoders; it additionally permits
// per-window Adler-32 checksums.
const (
	versionRFC3284 = 0x00
	versionSDCH    = 'S'
)

var deltaMagic = [3]byte{0xd6, 0xc3, 0xc4}

// A Decoder reconstructs target byte sequences from VCDIFF deltas. The zero
// configuration, as returned by NewDecoder with no options, decodes
// silently with no output size limit.
//
// A Decoder holds no state between calls, so a single Decoder may be used
// from multiple goroutines concurrently.
type Decoder struct {
	log           logger
	maxTargetSize uint64

	// tableDecode marks a decoder applying an embedded custom code table
	// delta. Such a delta must itself use the default table; honoring
	// VCD_CODETABLE there would let hostile input nest tables without
	// bound and exhaust the stack.
	tableDecode bool
}

// NewDecoder returns a Decoder configured with the given options.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decode reconstructs the target byte sequence encoded by delta against the
// given source (dictionary) bytes. Both inputs are read-only for the
// duration of the call; the returned slice is owned by the caller.
//
// Decoding is all-or-nothing: on any error the returned bytes are nil and
// the error is a *Error carrying one of the ErrCode values.
func (d *Decoder) Decode(source, delta []byte) ([]byte, error) {
	buf := &buffer{b: delta}

	hdr, table, err := d.readHeader(buf)
	if err != nil {
		return nil, err
	}
	d.log.Verbosef("vcdiff header: version 0x%02x, %d modes, %d byte app header",
		hdr.Version, 2+table.nearSize+table.sameSize, len(hdr.AppHeader))

	cache := newAddressCache(table.nearSize, table.sameSize)
	var out []byte
	for n := 0; buf.len() > 0; n++ {
		w, err := parseWindow(buf, hdr.Version == versionSDCH)
		if err != nil {
			return nil, err
		}
		src, err := sourceSegment(w, source, out)
		if err != nil {
			return nil, err
		}
		if d.maxTargetSize > 0 && uint64(len(out))+uint64(w.targetLength) > d.maxTargetSize {
			return nil, newErrorf(ErrCodeTargetSizeExceeded,
				"window %d grows the target past the %d byte limit", n, d.maxTargetSize)
		}
		target, err := applyWindow(w, src, table, cache)
		if err != nil {
			return nil, err
		}
		d.log.Verbosef("window %d: %d source bytes at %d, %d target bytes", n, w.sourceLength, w.sourcePosition, len(target))
		out = append(out, target...)
	}
	if out == nil {
		out = []byte{}
	}
	return out, nil
}

// readHeader validates the magic and version bytes and consumes the
// optional custom code table and application header sections. It returns
// the code table active for the rest of the stream.
func (d *Decoder) readHeader(buf *buffer) (*Header, *codeTable, error) {
	magic, err := buf.readBytes(3)
	if err != nil {
		return nil, nil, err
	}
	if magic[0] != deltaMagic[0] || magic[1] != deltaMagic[1] || magic[2] != deltaMagic[2] {
		return nil, nil, newErrorf(ErrCodeBadMagic, "input does not start with the VCDIFF magic bytes")
	}
	version, err := buf.readByte()
	if err != nil {
		return nil, nil, err
	}
	if version != versionRFC3284 && version != versionSDCH {
		return nil, nil, newErrorf(ErrCodeUnsupportedVersion, "version byte 0x%02x", version)
	}
	indicator, err := buf.readByte()
	if err != nil {
		return nil, nil, err
	}
	if extra := indicator &^ (vcdDecompress | vcdCodetable | vcdAppheader); extra != 0 {
		return nil, nil, newErrorf(ErrCodeUnsupportedFeature, "unknown header indicator bits 0x%02x", extra)
	}
	if indicator&vcdDecompress != 0 {
		return nil, nil, newErrorf(ErrCodeUnsupportedFeature, "secondary compressor requested in header")
	}

	hdr := &Header{Version: version, ChecksumsAllowed: version == versionSDCH}
	table := defaultTable
	if indicator&vcdCodetable != 0 {
		if d.tableDecode {
			return nil, nil, newErrorf(ErrCodeInvalidDelta, "custom code table delta itself declares a custom code table")
		}
		hdr.CustomCodeTable = true
		if table, err = d.readCustomCodeTable(buf); err != nil {
			return nil, nil, err
		}
	}
	if indicator&vcdAppheader != 0 {
		length, err := buf.readVarint32()
		if err != nil {
			return nil, nil, err
		}
		if hdr.AppHeader, err = buf.readBytes(int(length)); err != nil {
			return nil, nil, err
		}
	}
	return hdr, table, nil
}

// readCustomCodeTable parses the custom code table section: the near and
// same cache sizes followed by a complete VCDIFF delta of the table's
// serialized form against the default table's (RFC 3284 section 7). The
// embedded delta is decoded using the default table and may not itself
// declare a custom table, so nesting stops at one level.
func (d *Decoder) readCustomCodeTable(buf *buffer) (*codeTable, error) {
	length, err := buf.readVarint32()
	if err != nil {
		return nil, err
	}
	if length < 2 {
		return nil, newErrorf(ErrCodeLengthMismatch, "custom code table section of %d bytes cannot hold the cache sizes", length)
	}
	section, err := buf.readBytes(int(length))
	if err != nil {
		return nil, err
	}
	nearSize, sameSize := int(section[0]), int(section[1])
	if nearSize == 0 && sameSize == 0 {
		return nil, newErrorf(ErrCodeInvalidDelta, "custom code table declares no address caches")
	}

	serialized, err := (&Decoder{tableDecode: true}).Decode(defaultTable.serialize(), section[2:])
	if err != nil {
		return nil, newError(ErrCodeInvalidDelta, err)
	}
	table, err := parseCodeTable(nearSize, sameSize, serialized)
	if err != nil {
		return nil, err
	}
	d.log.Debugf("custom code table: near %d, same %d", nearSize, sameSize)
	return table, nil
}

// sourceSegment selects and bounds-checks the byte range a window's COPY
// instructions may address, from either the caller's dictionary or the
// target decoded so far.
func sourceSegment(w *window, dictionary, decoded []byte) ([]byte, error) {
	if !w.hasSource {
		return nil, nil
	}
	from := dictionary
	name := "dictionary"
	if w.sourceFromTarget {
		from = decoded
		name = "decoded target"
	}
	end := uint64(w.sourcePosition) + uint64(w.sourceLength)
	if end > uint64(len(from)) {
		return nil, newErrorf(ErrCodeLengthMismatch,
			"source segment [%d, %d) exceeds the %d byte %s", w.sourcePosition, end, len(from), name)
	}
	return from[w.sourcePosition:end], nil
}
