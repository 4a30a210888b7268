package webmblock

import "fmt"

// SimpleBlock is a decoded Matroska "SimpleBlock" element. It carries
// the same header and frame region as Block plus two extra flag bits:
// keyframe and discardable. SimpleBlocks stand alone inside a cluster
// instead of being wrapped in a BlockGroup.
type SimpleBlock struct {
	Block

	Keyframe    bool
	Discardable bool
}

// NewSimpleBlock builds a SimpleBlock holding the given frames, packed
// with the requested lacing mode under the same rules as NewBlock.
func NewSimpleBlock(track uint64, timestamp int16, lacing Lacing, frames [][]byte) (*SimpleBlock, error) {
	sb := &SimpleBlock{Block: Block{Track: track, Timestamp: timestamp, Lacing: lacing}}
	if err := sb.SetFrames(frames); err != nil {
		return nil, err
	}
	return sb, nil
}

// DecodeSimpleBlock parses a SimpleBlock element payload. Like
// DecodeBlock, the result borrows data for its frame region.
func DecodeSimpleBlock(data []byte) (*SimpleBlock, error) {
	track, timestamp, flags, n, err := parseBlockHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSimpleBlockDecode, err)
	}
	return &SimpleBlock{
		Block: Block{
			Track:       track,
			Timestamp:   timestamp,
			Invisible:   flags&flagInvisible != 0,
			Lacing:      lacingFromFlags(flags),
			frameRegion: data[n:],
		},
		Keyframe:    flags&flagKeyframe != 0,
		Discardable: flags&flagDiscardable != 0,
	}, nil
}

// SimpleBlockFromElement converts a generic element into a
// SimpleBlock. Elements with any ID other than IDSimpleBlock are
// rejected.
func SimpleBlockFromElement(el Element) (*SimpleBlock, error) {
	if el.ID != IDSimpleBlock {
		return nil, fmt.Errorf("%w: element ID 0x%X is not a SimpleBlock", ErrSimpleBlockDecode, uint32(el.ID))
	}
	return DecodeSimpleBlock(el.Data)
}

// Frames splits the frame region according to the block's lacing mode.
// The returned frames are subslices of the region, not copies.
func (sb *SimpleBlock) Frames() ([][]byte, error) {
	frames, err := decodeLacedFrames(sb.RawFrameRegion(), sb.Lacing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSimpleBlockDecode, err)
	}
	return frames, nil
}

// Encode serializes the block back to a SimpleBlock element payload.
func (sb *SimpleBlock) Encode() ([]byte, error) {
	flags, err := sb.headerFlags()
	if err != nil {
		return nil, err
	}
	if sb.Invisible {
		flags |= flagInvisible
	}
	if sb.Keyframe {
		flags |= flagKeyframe
	}
	if sb.Discardable {
		flags |= flagDiscardable
	}
	return appendBlockPayload(sb.Track, sb.Timestamp, flags, sb.RawFrameRegion())
}

// Element wraps the encoded payload as a SimpleBlock element.
func (sb *SimpleBlock) Element() (Element, error) {
	payload, err := sb.Encode()
	if err != nil {
		return Element{}, err
	}
	return Element{ID: IDSimpleBlock, Data: payload}, nil
}
