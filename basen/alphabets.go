package basen

// Standard RFC 4648 alphabets, supplementing the bring-your-own-alphabet
// core with the concrete tables every caller of basecode.cpp in the
// containing library ends up defining for itself (SPEC_FULL.md §4).
// Construction style (build the encode table once, derive decode tables
// from it) follows other_examples/josephcopenhaver-base32's StdEncoding.
var (
	Base16Alphabet    = []byte("0123456789ABCDEF")
	Base32Alphabet    = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ234567")
	Base32HexAlphabet = []byte("0123456789ABCDEFGHIJKLMNOPQRSTUV")
	Base64Alphabet    = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/")
	Base64URLAlphabet = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_")
)

// PtrByte and PtrBool are small helpers for populating EncoderParams'
// pointer fields (PaddingByte, Pad) from a literal.
func PtrByte(b byte) *byte { return &b }
func PtrBool(b bool) *bool { return &b }

// NewBase64Encoder returns an Encoder using Base64Alphabet, Log2Base=6,
// and padding byte '=' (spec.md §8 scenarios 3-4).
func NewBase64Encoder() (*Encoder, error) {
	return NewEncoder(EncoderParams{
		Alphabet:    Base64Alphabet,
		Log2Base:    6,
		PaddingByte: PtrByte('='),
	})
}

// NewBase64URLEncoder is NewBase64Encoder with the URL-safe alphabet.
func NewBase64URLEncoder() (*Encoder, error) {
	return NewEncoder(EncoderParams{
		Alphabet:    Base64URLAlphabet,
		Log2Base:    6,
		PaddingByte: PtrByte('='),
	})
}

// NewBase32Encoder returns an Encoder using Base32Alphabet, Log2Base=5,
// and padding byte '='.
func NewBase32Encoder() (*Encoder, error) {
	return NewEncoder(EncoderParams{
		Alphabet:    Base32Alphabet,
		Log2Base:    5,
		PaddingByte: PtrByte('='),
	})
}

// NewBase16Encoder returns an unpadded Encoder using Base16Alphabet,
// Log2Base=4 (padding is meaningless for base 16 — every byte maps to
// exactly two symbols with no fractional residue).
func NewBase16Encoder() (*Encoder, error) {
	return NewEncoder(EncoderParams{
		Alphabet: Base16Alphabet,
		Log2Base: 4,
	})
}

// NewBase64Decoder returns a case-sensitive Decoder for Base64Alphabet.
func NewBase64Decoder() (*Decoder, error) {
	lookup, err := NewDecodingLookup(Base64Alphabet, false)
	if err != nil {
		return nil, err
	}
	return NewDecoder(DecoderParams{Lookup: lookup, Log2Base: 6})
}

// NewBase32Decoder returns a case-insensitive Decoder for Base32Alphabet
// (spec.md §8 scenario 5 decodes mixed-case input).
func NewBase32Decoder() (*Decoder, error) {
	lookup, err := NewDecodingLookup(Base32Alphabet, true)
	if err != nil {
		return nil, err
	}
	return NewDecoder(DecoderParams{Lookup: lookup, Log2Base: 5})
}

// NewBase16Decoder returns a case-insensitive Decoder for Base16Alphabet.
func NewBase16Decoder() (*Decoder, error) {
	lookup, err := NewDecodingLookup(Base16Alphabet, true)
	if err != nil {
		return nil, err
	}
	return NewDecoder(DecoderParams{Lookup: lookup, Log2Base: 4})
}
