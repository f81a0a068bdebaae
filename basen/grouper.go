package basen

// Grouper inserts a separator every GroupSize forwarded bytes and appends
// a terminator at end-of-message. Grounded on basecode.cpp's Grouper
// (spec.md §3, §4.8).
type Grouper struct {
	groupSize  int
	separator  []byte
	terminator []byte
	counter    int
}

// NewGrouper validates params and returns a ready-to-use Grouper.
func NewGrouper(p GrouperParams) (*Grouper, error) {
	if p.GroupSize != 0 && p.Separator == nil {
		return nil, ErrMissingRequiredParameter
	}
	return &Grouper{
		groupSize:  p.GroupSize,
		separator:  p.Separator,
		terminator: p.Terminator,
	}, nil
}

// Put forwards data unchanged if grouping is disabled (GroupSize == 0);
// otherwise it inserts separator between (never before the first or after
// the last) group of groupSize forwarded bytes. At end-of-message it emits
// terminator once and resets the group counter.
func (g *Grouper) Put(data []byte, messageEnd bool, sink Sink) error {
	if g.groupSize != 0 {
		pos := 0
		for pos < len(data) {
			if g.counter == g.groupSize {
				if err := sink.Put(ChannelSeparator, g.separator); err != nil {
					return err
				}
				g.counter = 0
			}
			n := min(len(data)-pos, g.groupSize-g.counter)
			if err := sink.Put(ChannelGroupedData, data[pos:pos+n]); err != nil {
				return err
			}
			pos += n
			g.counter += n
		}
	} else if len(data) > 0 {
		if err := sink.Put(ChannelPassthrough, data); err != nil {
			return err
		}
	}

	if messageEnd {
		if err := sink.Put(ChannelTerminator, g.terminator); err != nil {
			return err
		}
		g.counter = 0
	}
	return nil
}
