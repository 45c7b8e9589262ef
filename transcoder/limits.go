package transcoder

// Limits bounds the work a decode may do on hostile input. A zero field
// disables that check.
type Limits struct {
	// MaxSequenceLength caps the element count of a single sequence.
	MaxSequenceLength uint64
	// MaxDepth caps nesting of options, sequences, tuples, structs and enums.
	MaxDepth int
}

// DefaultLimits returns the limits used by NewDecoder.
func DefaultLimits() Limits {
	return Limits{
		MaxSequenceLength: 1 << 24,
		MaxDepth:          256,
	}
}

// DecoderConfig configures a Decoder.
type DecoderConfig struct {
	Limits Limits
	// Copy makes decoded strings and byte slices own their memory instead
	// of aliasing the input.
	Copy bool
	// CanonicalVarints rejects varints with redundant trailing groups.
	CanonicalVarints bool
}

// DefaultDecoderConfig returns zero-copy decoding with DefaultLimits.
func DefaultDecoderConfig() DecoderConfig {
	return DecoderConfig{Limits: DefaultLimits()}
}
