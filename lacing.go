package webmblock

import "fmt"

// Lacing identifies how multiple frames are packed into one block
// payload. A block holding a single frame carries no lacing at all.
type Lacing uint8

const (
	// LacingNone means the frame region is a single frame with no
	// size table.
	LacingNone Lacing = iota
	// LacingXiph stores each size as a run of 0xFF bytes plus a
	// terminator byte.
	LacingXiph
	// LacingEBML stores the first size as a vint and each following
	// size as a biased vint delta from the previous one.
	LacingEBML
	// LacingFixedSize stores no sizes; all frames are equal length.
	LacingFixedSize
)

func (l Lacing) String() string {
	switch l {
	case LacingNone:
		return "none"
	case LacingXiph:
		return "Xiph"
	case LacingEBML:
		return "EBML"
	case LacingFixedSize:
		return "fixed-size"
	}
	return fmt.Sprintf("Lacing(%d)", uint8(l))
}

// decodeLacedFrames splits a frame region into individual frames
// according to the lacing mode. The returned frames are subslices of
// region and remain valid only as long as region does.
//
// Layout of a laced region: one byte holding frameCount-1, then the
// mode's size table covering the first frameCount-1 frames, then the
// concatenated frame bytes. The final frame has no stored size; it
// takes whatever remains.
func decodeLacedFrames(region []byte, lacing Lacing) ([][]byte, error) {
	if lacing == LacingNone {
		return [][]byte{region}, nil
	}
	if len(region) == 0 {
		return nil, fmt.Errorf("laced frame region is empty")
	}
	frameCount := int(region[0]) + 1
	sizes := make([]int, 0, frameCount-1)
	pos := 1

	switch lacing {
	case LacingXiph:
		for len(sizes) < frameCount-1 {
			size := 0
			for {
				if pos >= len(region) {
					return nil, fmt.Errorf("truncated Xiph lace size table")
				}
				size += int(region[pos])
				stop := region[pos] != 0xFF
				pos++
				if stop {
					break
				}
			}
			sizes = append(sizes, size)
		}
	case LacingEBML:
		for len(sizes) < frameCount-1 {
			raw, w, err := ReadVint(region[pos:])
			if err != nil {
				return nil, fmt.Errorf("EBML lace size table: %v", err)
			}
			pos += w
			if len(sizes) == 0 {
				sizes = append(sizes, int(raw))
				continue
			}
			// Sizes after the first are vint deltas biased by half the
			// vint's representable range. The Matroska spec text reads
			// as two's complement, but real files and the spec's own
			// example bias by half the range; see
			// ietf-wg-cellar/matroska-specification#726.
			delta := int64(raw) - (1<<(7*w-1) - 1)
			size := int64(sizes[len(sizes)-1]) + delta
			if size < 0 {
				return nil, fmt.Errorf("EBML lace delta yields negative frame size %d", size)
			}
			sizes = append(sizes, int(size))
		}
	case LacingFixedSize:
		total := len(region) - 1
		if total%frameCount != 0 {
			return nil, fmt.Errorf("%d bytes of frame data do not divide into %d fixed-size frames", total, frameCount)
		}
		size := total / frameCount
		for len(sizes) < frameCount-1 {
			sizes = append(sizes, size)
		}
	default:
		return nil, fmt.Errorf("unknown lacing mode %d", lacing)
	}

	frames := make([][]byte, 0, frameCount)
	for _, size := range sizes {
		if size > len(region)-pos {
			return nil, fmt.Errorf("lace size %d exceeds remaining frame data", size)
		}
		frames = append(frames, region[pos:pos+size])
		pos += size
	}
	frames = append(frames, region[pos:])
	return frames, nil
}

// encodeLacedFrames packs frames into a single frame region and
// returns it with the lacing mode actually used: a single frame always
// drops lacing, and multiple frames with no mode requested default to
// EBML lacing.
func encodeLacedFrames(frames [][]byte, lacing Lacing) ([]byte, Lacing, error) {
	if len(frames) == 0 {
		return nil, LacingNone, fmt.Errorf("%w: no frames", ErrEncode)
	}
	if len(frames) == 1 {
		region := make([]byte, len(frames[0]))
		copy(region, frames[0])
		return region, LacingNone, nil
	}
	if lacing == LacingNone {
		lacing = LacingEBML
	}

	total := 0
	for _, f := range frames {
		total += len(f)
	}
	region := make([]byte, 0, 1+total)
	region = append(region, byte(len(frames)-1))

	switch lacing {
	case LacingXiph:
		for _, f := range frames[:len(frames)-1] {
			size := len(f)
			for ; size >= 255; size -= 255 {
				region = append(region, 0xFF)
			}
			region = append(region, byte(size))
		}
	case LacingEBML:
		for i, f := range frames[:len(frames)-1] {
			if i == 0 {
				w := vintWidth(uint64(len(f)))
				if w > maxVintWidth {
					return nil, lacing, fmt.Errorf("%w: frame size %d exceeds vint range", ErrEncode, len(f))
				}
				region = appendVint(region, uint64(len(f)), w)
				continue
			}
			delta := int64(len(f)) - int64(len(frames[i-1]))
			w := 1
			for !(delta > -(1<<(7*w-1)) && delta < 1<<(7*w-1)) {
				w++
				if w > maxVintWidth {
					return nil, lacing, fmt.Errorf("%w: lace size delta %d exceeds vint range", ErrEncode, delta)
				}
			}
			// The bias depends on the width, so the biased value is
			// written at exactly that width even when it would fit a
			// shorter vint.
			region = appendVint(region, uint64(delta+(1<<(7*w-1)-1)), w)
		}
	case LacingFixedSize:
		for _, f := range frames[1:] {
			if len(f) != len(frames[0]) {
				return nil, lacing, fmt.Errorf("%w: fixed-size lacing requires equal frame lengths, got %d and %d", ErrEncode, len(frames[0]), len(f))
			}
		}
	default:
		return nil, lacing, fmt.Errorf("%w: unknown lacing mode %d", ErrEncode, lacing)
	}

	for _, f := range frames {
		region = append(region, f...)
	}
	return region, lacing, nil
}
