package vcdiff

// An Option configures a Decoder.
type Option func(*Decoder)

// WithLogger directs the decoder's diagnostics to the given Logger. Window
// summaries are emitted at LogVerbose and per-section detail at LogDebug.
func WithLogger(l Logger, level LogLevel) Option {
	return func(d *Decoder) {
		d.log = logger{l: LoggerOptions{Logger: l, Level: level}}
	}
}

// WithMaxTargetSize bounds the total number of target bytes a single Decode
// call may produce. Deltas are much smaller than the output they describe,
// so untrusted input should always be decoded with a limit. Zero means no
// limit, which is the default.
func WithMaxTargetSize(n uint64) Option {
	return func(d *Decoder) {
		d.maxTargetSize = n
	}
}
