package basen

// Decoder is a streaming base-N bit-unpacking decoder: it accepts
// characters from a fixed alphabet and emits the recovered bytes. Grounded
// on basecode.cpp's BaseN_Decoder (spec.md §3, §4.7).
type Decoder struct {
	lookup          [256]int16
	bitsPerChar     int
	outputBlockSize int
	outBuf          []byte
	bytePos, bitPos int
}

// NewDecoder validates params and returns a ready-to-use Decoder. Build
// Lookup with NewDecodingLookup.
func NewDecoder(p DecoderParams) (*Decoder, error) {
	if err := validateLog2Base(p.Log2Base); err != nil {
		return nil, err
	}
	blockSize := decoderBlockSize(p.Log2Base)
	return &Decoder{
		lookup:          p.Lookup,
		bitsPerChar:     p.Log2Base,
		outputBlockSize: blockSize,
		outBuf:          make([]byte, blockSize),
	}, nil
}

// Put accepts the next chunk of input characters. Characters the lookup
// table maps to the ignore sentinel (-1) — whitespace, delimiters, padding
// — are silently skipped; this is documented behavior, not an error
// (spec.md §7's propagation policy). When messageEnd is true, the
// partially assembled trailing bytes are flushed as-is and any leftover
// sub-byte bits are discarded.
func (d *Decoder) Put(data []byte, messageEnd bool, sink Sink) error {
	for _, c := range data {
		value := d.lookup[c]
		if value < 0 {
			continue
		}

		if d.bytePos == 0 && d.bitPos == 0 {
			clear(d.outBuf)
		}

		newBitPos := d.bitPos + d.bitsPerChar
		if newBitPos <= 8 {
			d.outBuf[d.bytePos] |= byte(value) << uint(8-newBitPos)
		} else {
			d.outBuf[d.bytePos] |= byte(value) >> uint(newBitPos-8)
			d.outBuf[d.bytePos+1] |= byte(value) << uint(16-newBitPos)
		}

		d.bitPos = newBitPos
		for d.bitPos >= 8 {
			d.bitPos -= 8
			d.bytePos++
		}

		if d.bytePos == d.outputBlockSize {
			if err := sink.Put(ChannelBlock, d.outBuf); err != nil {
				return err
			}
			d.bytePos, d.bitPos = 0, 0
		}
	}

	if messageEnd {
		if err := sink.Put(ChannelFinal, d.outBuf[:d.bytePos]); err != nil {
			return err
		}
		d.bytePos, d.bitPos = 0, 0
	}
	return nil
}
