package basen

import "errors"

// ErrInvalidArgument is returned by New* constructors when a supplied
// parameter value is out of range (spec.md §7, "InvalidArgument").
var ErrInvalidArgument = errors.New("basen: invalid argument")

// ErrMissingRequiredParameter is returned by New* constructors when a
// required field of the params struct was left unset (spec.md §7,
// "MissingRequiredParameter").
var ErrMissingRequiredParameter = errors.New("basen: missing required parameter")

// EncoderParams configures NewEncoder. Grounded on basecode.cpp's
// BaseN_Encoder::IsolatedInitialize parameter set (spec.md §6): Go option
// struct in place of the teacher's generic NameValuePairs bag, which
// spec.md §9 calls out as a framework concern out of scope for this module.
type EncoderParams struct {
	// Alphabet maps symbol value v (0 <= v < 2^Log2Base) to its output
	// byte. Required; must have at least 2^Log2Base entries.
	Alphabet []byte
	// Log2Base is bits_per_char, in [1, 7].
	Log2Base int
	// PaddingByte, if set, is appended to fill a short final block.
	PaddingByte *byte
	// Pad overrides whether PaddingByte is actually used. Defaults to
	// true when PaddingByte is set and false otherwise — see DESIGN.md's
	// "Pad default" entry for why this is a *bool rather than a bool.
	Pad *bool
}

// DecoderParams configures NewDecoder. Grounded on basecode.cpp's
// BaseN_Decoder::IsolatedInitialize.
type DecoderParams struct {
	// Lookup maps an input byte to its symbol value, or to -1 if the byte
	// is not part of the alphabet (whitespace, delimiters, padding).
	// Build one with NewDecodingLookup.
	Lookup [256]int16
	// Log2Base is bits_per_char, in [1, 7].
	Log2Base int
}

// GrouperParams configures NewGrouper. Grounded on basecode.cpp's
// Grouper::IsolatedInitialize.
type GrouperParams struct {
	// GroupSize is the number of forwarded bytes between separators.
	// Zero disables grouping entirely.
	GroupSize int
	// Separator is required when GroupSize != 0.
	Separator []byte
	// Terminator is emitted once at end-of-message; may be empty.
	Terminator []byte
}

func validateLog2Base(n int) error {
	if n < 1 || n > 7 {
		return ErrInvalidArgument
	}
	return nil
}

// encoderBlockSize returns the smallest number of output characters whose
// combined bit width is a multiple of 8 (spec.md §3's block_size formula).
func encoderBlockSize(bitsPerChar int) int {
	i := 8
	for i%bitsPerChar != 0 {
		i += 8
	}
	return i / bitsPerChar
}

// decoderBlockSize returns the smallest number of output bytes whose
// combined bit width is a multiple of bitsPerChar.
func decoderBlockSize(bitsPerChar int) int {
	i := bitsPerChar
	for i%8 != 0 {
		i += bitsPerChar
	}
	return i / 8
}
