package basen

// Encoder is a streaming base-N bit-packing encoder: it accepts bytes and
// emits output symbols drawn from a caller-supplied alphabet. Grounded on
// basecode.cpp's BaseN_Encoder (spec.md §3, §4.5).
type Encoder struct {
	alphabet        []byte
	bitsPerChar     int
	padding         int // -1 means "no padding"
	outputBlockSize int
	outBuf          []byte
	bytePos, bitPos int
}

// NewEncoder validates params and returns a ready-to-use Encoder.
func NewEncoder(p EncoderParams) (*Encoder, error) {
	if p.Alphabet == nil {
		return nil, ErrMissingRequiredParameter
	}
	if err := validateLog2Base(p.Log2Base); err != nil {
		return nil, err
	}
	if len(p.Alphabet) < 1<<p.Log2Base {
		return nil, ErrInvalidArgument
	}

	padding := -1
	if p.PaddingByte != nil {
		pad := true
		if p.Pad != nil {
			pad = *p.Pad
		}
		if pad {
			padding = int(*p.PaddingByte)
		}
	}

	blockSize := encoderBlockSize(p.Log2Base)

	return &Encoder{
		alphabet:        p.Alphabet,
		bitsPerChar:     p.Log2Base,
		padding:         padding,
		outputBlockSize: blockSize,
		outBuf:          make([]byte, blockSize),
	}, nil
}

// Put accepts the next chunk of input bytes, peeling bits MSB-first into
// successive bitsPerChar-wide symbols and flushing full blocks to sink as
// they fill. When messageEnd is true, any partial trailing symbol is
// finalized (zero-padded below its low bits) and the final short block —
// optionally padded out to a full block with the configured padding byte —
// is flushed on ChannelFinal.
func (e *Encoder) Put(data []byte, messageEnd bool, sink Sink) error {
	for _, in := range data {
		if e.bytePos == 0 {
			clear(e.outBuf)
		}

		b := uint(in)
		bitsLeftInSource := 8
		for {
			bitsLeftInTarget := e.bitsPerChar - e.bitPos
			e.outBuf[e.bytePos] |= byte(b >> uint(8-bitsLeftInTarget))
			if bitsLeftInSource >= bitsLeftInTarget {
				e.bitPos = 0
				e.bytePos++
				bitsLeftInSource -= bitsLeftInTarget
				if bitsLeftInSource == 0 {
					break
				}
				b <<= uint(bitsLeftInTarget)
				b &= 0xff
			} else {
				e.bitPos += bitsLeftInSource
				break
			}
		}

		if e.bytePos == e.outputBlockSize {
			for i := 0; i < e.bytePos; i++ {
				e.outBuf[i] = e.alphabet[e.outBuf[i]]
			}
			if err := sink.Put(ChannelBlock, e.outBuf); err != nil {
				return err
			}
			e.bytePos, e.bitPos = 0, 0
		}
	}

	if messageEnd {
		if e.bitPos > 0 {
			e.bytePos++
		}
		for i := 0; i < e.bytePos; i++ {
			e.outBuf[i] = e.alphabet[e.outBuf[i]]
		}
		if e.padding != -1 && e.bytePos > 0 {
			for i := e.bytePos; i < e.outputBlockSize; i++ {
				e.outBuf[i] = byte(e.padding)
			}
			e.bytePos = e.outputBlockSize
		}
		if err := sink.Put(ChannelFinal, e.outBuf[:e.bytePos]); err != nil {
			return err
		}
		e.bytePos, e.bitPos = 0, 0
	}
	return nil
}
