// Package vcdiff decodes binary deltas in the VCDIFF format (RFC 3284).
//
// A delta expresses a target byte sequence relative to a source (or
// "dictionary") byte sequence as a series of windows, each a mix of ADD,
// RUN and COPY instructions. Decode applies a delta to its source and
// returns the reconstructed target:
//
//	target, err := vcdiff.Decode(source, delta)
//
// Both the standard format and the SDCH variant produced by Google's
// encoders (version byte 'S', with optional per-window Adler-32 checksums)
// are accepted, including custom code tables. Secondary per-section
// compression is not implemented and is rejected with an error.
//
// Decoding is strict: malformed or truncated input always yields a typed
// *Error, never partial output.
package vcdiff

// Decode reconstructs the target byte sequence encoded by delta against
// source, using a default Decoder.
func Decode(source, delta []byte) ([]byte, error) {
	return NewDecoder().Decode(source, delta)
}
