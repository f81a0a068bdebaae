package basen_test

import (
	"testing"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
	"github.com/stretchr/testify/require"

	"aesbasen/basen"
)

// collectingSink appends every flushed buffer (tagged with its channel) in
// order, matching spec.md §5's "strict input order" ordering guarantee.
type collectingSink struct {
	chunks [][]byte
}

func (s *collectingSink) Put(_ basen.ChannelID, buf []byte) error {
	s.chunks = append(s.chunks, append([]byte(nil), buf...))
	return nil
}

func (s *collectingSink) joined() []byte {
	var out []byte
	for _, c := range s.chunks {
		out = append(out, c...)
	}
	return out
}

func TestBaseNCodec(t *testing.T) {
	spec.Run(t, "Encoder", func(t *testing.T, when spec.G, it spec.S) {
		it("encodes \"Man\" as base64 with no padding needed (spec scenario 3)", func() {
			enc, err := basen.NewEncoder(basen.EncoderParams{
				Alphabet:    basen.Base64Alphabet,
				Log2Base:    6,
				PaddingByte: basen.PtrByte('='),
			})
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, enc.Put([]byte("Man"), true, sink))
			require.Equal(t, "TWFu", string(sink.joined()))
		})

		it("encodes \"Ma\" with one pad byte (spec scenario 4)", func() {
			enc, err := basen.NewBase64Encoder()
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, enc.Put([]byte("Ma"), true, sink))
			require.Equal(t, "TWE=", string(sink.joined()))
		})

		it("encodes \"M\" with two pad bytes (spec scenario 4)", func() {
			enc, err := basen.NewBase64Encoder()
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, enc.Put([]byte("M"), true, sink))
			require.Equal(t, "TQ==", string(sink.joined()))
		})

		it("never pads when PaddingByte is unset", func() {
			enc, err := basen.NewEncoder(basen.EncoderParams{
				Alphabet: basen.Base64Alphabet,
				Log2Base: 6,
			})
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, enc.Put([]byte("M"), true, sink))
			require.Equal(t, "TQ", string(sink.joined()))
		})

		it("never pads when Pad is explicitly false even with PaddingByte set", func() {
			enc, err := basen.NewEncoder(basen.EncoderParams{
				Alphabet:    basen.Base64Alphabet,
				Log2Base:    6,
				PaddingByte: basen.PtrByte('='),
				Pad:         basen.PtrBool(false),
			})
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, enc.Put([]byte("M"), true, sink))
			require.Equal(t, "TQ", string(sink.joined()))
		})

		it("rejects a Log2Base outside [1,7]", func() {
			_, err := basen.NewEncoder(basen.EncoderParams{
				Alphabet: basen.Base64Alphabet,
				Log2Base: 8,
			})
			require.ErrorIs(t, err, basen.ErrInvalidArgument)
		})

		it("rejects a missing alphabet", func() {
			_, err := basen.NewEncoder(basen.EncoderParams{Log2Base: 6})
			require.ErrorIs(t, err, basen.ErrMissingRequiredParameter)
		})
	}, spec.Report(report.Log{}))

	spec.Run(t, "Decoder", func(t *testing.T, when spec.G, it spec.S) {
		it("decodes mixed-case padded base32 (spec scenario 5)", func() {
			dec, err := basen.NewBase32Decoder()
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, dec.Put([]byte("jbswy3dpeblw64tmmq======"), true, sink))
			require.Equal(t, "Hello world", string(sink.joined()))
		})

		it("round-trips arbitrary bytes through base64 encode/decode", func() {
			enc, err := basen.NewBase64Encoder()
			require.NoError(t, err)
			dec, err := basen.NewBase64Decoder()
			require.NoError(t, err)

			original := []byte("the quick brown fox jumps over the lazy dog")

			encSink := &collectingSink{}
			require.NoError(t, enc.Put(original, true, encSink))

			decSink := &collectingSink{}
			require.NoError(t, dec.Put(encSink.joined(), true, decSink))
			require.Equal(t, original, decSink.joined())
		})

		it("ignores inserted whitespace without changing the decoded output", func() {
			dec, err := basen.NewBase64Decoder()
			require.NoError(t, err)
			dec2, err := basen.NewBase64Decoder()
			require.NoError(t, err)

			clean := &collectingSink{}
			require.NoError(t, dec.Put([]byte("TWFuTWFu"), true, clean))

			noisy := &collectingSink{}
			require.NoError(t, dec2.Put([]byte("TWFu\n TWFu \t"), true, noisy))

			require.Equal(t, clean.joined(), noisy.joined())
		})
	}, spec.Report(report.Log{}))

	spec.Run(t, "Grouper", func(t *testing.T, when spec.G, it spec.S) {
		it("inserts separators between groups and a terminator at the end (spec scenario 6)", func() {
			g, err := basen.NewGrouper(basen.GrouperParams{
				GroupSize:  4,
				Separator:  []byte(" "),
				Terminator: []byte("\n"),
			})
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, g.Put([]byte("TWFuTWFu"), true, sink))
			require.Equal(t, "TWFu TWFu\n", string(sink.joined()))
		})

		it("never separates before the first group or after the last", func() {
			g, err := basen.NewGrouper(basen.GrouperParams{
				GroupSize: 4,
				Separator: []byte("-"),
			})
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, g.Put([]byte("ABCD"), true, sink))
			require.Equal(t, "ABCD", string(sink.joined()))
		})

		it("passes data through unchanged when GroupSize is zero", func() {
			g, err := basen.NewGrouper(basen.GrouperParams{Terminator: []byte("!")})
			require.NoError(t, err)

			sink := &collectingSink{}
			require.NoError(t, g.Put([]byte("hello"), true, sink))
			require.Equal(t, "hello!", string(sink.joined()))
		})

		it("requires Separator when GroupSize is non-zero", func() {
			_, err := basen.NewGrouper(basen.GrouperParams{GroupSize: 4})
			require.ErrorIs(t, err, basen.ErrMissingRequiredParameter)
		})
	}, spec.Report(report.Log{}))
}

func TestDecodingLookupRejectsDuplicates(t *testing.T) {
	_, err := basen.NewDecodingLookup([]byte("AAB"), false)
	require.ErrorIs(t, err, basen.ErrInvalidArgument)
}
