package webmblock

import (
	"encoding/binary"
	"fmt"
)

// Flag byte layout shared by Block and SimpleBlock. The keyframe and
// discardable bits are only meaningful on SimpleBlock.
const (
	flagKeyframe    byte = 0x80
	flagInvisible   byte = 0x08
	flagDiscardable byte = 0x01

	flagLacingMask      byte = 0x06
	flagLacingXiph      byte = 0x02
	flagLacingFixedSize byte = 0x04
	flagLacingEBML      byte = 0x06
)

// Block is a decoded Matroska "Block" element: one or more frames for a
// single track at a single timestamp.
//
// A Block decoded from a payload keeps a reference into that payload
// instead of copying the frame bytes; it is only valid as long as the
// source buffer is. SetFrames replaces the reference with a buffer
// owned by the Block.
type Block struct {
	Track     uint64
	Timestamp int16
	Invisible bool
	Lacing    Lacing

	// frameRegion borrows from the decoded payload; ownedRegion takes
	// precedence once frames have been replaced.
	frameRegion []byte
	ownedRegion []byte
}

// NewBlock builds a Block holding the given frames, packed with the
// requested lacing mode. A single frame is always stored unlaced, and
// multiple frames with LacingNone requested are EBML-laced.
func NewBlock(track uint64, timestamp int16, lacing Lacing, frames [][]byte) (*Block, error) {
	b := &Block{Track: track, Timestamp: timestamp, Lacing: lacing}
	if err := b.SetFrames(frames); err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeBlock parses a Block element payload. The returned Block
// borrows data for its frame region; frames are not materialized until
// Frames is called.
func DecodeBlock(data []byte) (*Block, error) {
	track, timestamp, flags, n, err := parseBlockHeader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockDecode, err)
	}
	return &Block{
		Track:       track,
		Timestamp:   timestamp,
		Invisible:   flags&flagInvisible != 0,
		Lacing:      lacingFromFlags(flags),
		frameRegion: data[n:],
	}, nil
}

// BlockFromElement converts a generic element into a Block. Elements
// with any ID other than IDBlock are rejected.
func BlockFromElement(el Element) (*Block, error) {
	if el.ID != IDBlock {
		return nil, fmt.Errorf("%w: element ID 0x%X is not a Block", ErrBlockDecode, uint32(el.ID))
	}
	return DecodeBlock(el.Data)
}

// RawFrameRegion returns the packed frame region without parsing it:
// the lace count and size table (if any) followed by the concatenated
// frame bytes. Useful when the data must be handled without decoding,
// for example when it is encrypted.
func (b *Block) RawFrameRegion() []byte {
	if b.ownedRegion != nil {
		return b.ownedRegion
	}
	return b.frameRegion
}

// Frames splits the frame region according to the block's lacing mode.
// The returned frames are subslices of the region, not copies.
func (b *Block) Frames() ([][]byte, error) {
	frames, err := decodeLacedFrames(b.RawFrameRegion(), b.Lacing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBlockDecode, err)
	}
	return frames, nil
}

// SetFrames replaces the block's frame data. The frames are packed into
// a buffer owned by the block, and the Lacing field is updated to the
// mode actually used: a single frame clears it, and multiple frames
// with LacingNone set are EBML-laced. With LacingFixedSize set, frames
// of unequal length are rejected and the block is left unchanged.
func (b *Block) SetFrames(frames [][]byte) error {
	region, lacing, err := encodeLacedFrames(frames, b.Lacing)
	if err != nil {
		return err
	}
	b.ownedRegion = region
	b.Lacing = lacing
	return nil
}

// Encode serializes the block back to a Block element payload. A block
// that was decoded and never mutated reproduces its source bytes
// exactly.
func (b *Block) Encode() ([]byte, error) {
	flags, err := b.headerFlags()
	if err != nil {
		return nil, err
	}
	if b.Invisible {
		flags |= flagInvisible
	}
	return appendBlockPayload(b.Track, b.Timestamp, flags, b.RawFrameRegion())
}

// Element wraps the encoded payload as a Block element.
func (b *Block) Element() (Element, error) {
	payload, err := b.Encode()
	if err != nil {
		return Element{}, err
	}
	return Element{ID: IDBlock, Data: payload}, nil
}

func (b *Block) headerFlags() (byte, error) {
	switch b.Lacing {
	case LacingNone:
		return 0, nil
	case LacingXiph:
		return flagLacingXiph, nil
	case LacingEBML:
		return flagLacingEBML, nil
	case LacingFixedSize:
		return flagLacingFixedSize, nil
	}
	return 0, fmt.Errorf("%w: unknown lacing mode %d", ErrEncode, b.Lacing)
}

// parseBlockHeader reads the header common to Block and SimpleBlock:
// a vint track number, a big-endian int16 timestamp relative to the
// enclosing cluster, and one flag byte. It returns the header length.
func parseBlockHeader(data []byte) (track uint64, timestamp int16, flags byte, n int, err error) {
	track, n, err = ReadVint(data)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("track number: %v", err)
	}
	if len(data) < n+3 {
		return 0, 0, 0, 0, fmt.Errorf("%d bytes is too short for a block header", len(data))
	}
	timestamp = int16(binary.BigEndian.Uint16(data[n : n+2]))
	flags = data[n+2]
	return track, timestamp, flags, n + 3, nil
}

func lacingFromFlags(flags byte) Lacing {
	switch flags & flagLacingMask {
	case flagLacingXiph:
		return LacingXiph
	case flagLacingEBML:
		return LacingEBML
	case flagLacingFixedSize:
		return LacingFixedSize
	}
	return LacingNone
}

func appendBlockPayload(track uint64, timestamp int16, flags byte, region []byte) ([]byte, error) {
	w := vintWidth(track)
	if w > maxVintWidth {
		return nil, fmt.Errorf("%w: track number %d exceeds vint range", ErrEncode, track)
	}
	payload := make([]byte, 0, w+3+len(region))
	payload = appendVint(payload, track, w)
	payload = binary.BigEndian.AppendUint16(payload, uint16(timestamp))
	payload = append(payload, flags)
	payload = append(payload, region...)
	return payload, nil
}
