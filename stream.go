package vcdiff

import "io"

// DecodeReader reads an entire delta from r and decodes it against source.
// The core decoder works on fully resident buffers; this wrapper exists for
// callers that have the delta behind an io.Reader, such as a file or an
// HTTP body. Read failures are returned as-is, not as *Error.
func (d *Decoder) DecodeReader(source []byte, r io.Reader) ([]byte, error) {
	delta, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.Decode(source, delta)
}

// DecodeReader is like Decode, reading the delta from r with a default
// Decoder.
func DecodeReader(source []byte, r io.Reader) ([]byte, error) {
	return NewDecoder().DecodeReader(source, r)
}
