package basen

// ChannelID identifies which downstream channel a flushed buffer belongs
// to, mirroring basecode.cpp's FILTER_OUTPUT channel numbers (spec.md §6).
type ChannelID int

const (
	// ChannelBlock carries a full, bit-aligned intermediate block from an
	// Encoder or Decoder.
	ChannelBlock ChannelID = 1
	// ChannelFinal carries the (possibly short, possibly padded) buffer
	// an Encoder or Decoder flushes at end-of-message.
	ChannelFinal ChannelID = 2
)

// Grouper channel IDs are a distinct numbering, matching basecode.cpp's
// Grouper::Put2 having its own four FILTER_OUTPUT channels.
const (
	ChannelSeparator   ChannelID = 11
	ChannelGroupedData ChannelID = 12
	ChannelPassthrough ChannelID = 13
	ChannelTerminator  ChannelID = 14
)

// Sink receives flushed buffers from an Encoder, Decoder, or Grouper.
// Grounded on spec.md §6 ("downstream sink receives a channel ID ... and a
// buffer") and §9's note that a plain interface is as acceptable as a
// callback table for this contract.
//
// Implementations must not retain buf past the call: encoder/decoder/
// grouper instances reuse their working buffers across calls to avoid
// allocating on the hot path (spec.md §5's resource discipline).
type Sink interface {
	Put(channel ChannelID, buf []byte) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(channel ChannelID, buf []byte) error

func (f SinkFunc) Put(channel ChannelID, buf []byte) error { return f(channel, buf) }
