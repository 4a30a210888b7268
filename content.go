package webmblock

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ContentCompAlgo is the Matroska ContentCompAlgo value: the algorithm
// a track's ContentEncoding applies to the frame bytes stored in its
// Block and SimpleBlock elements.
type ContentCompAlgo uint8

const (
	CompAlgoZlib        ContentCompAlgo = 0
	CompAlgoBzlib       ContentCompAlgo = 1
	CompAlgoLZO         ContentCompAlgo = 2
	CompAlgoHeaderStrip ContentCompAlgo = 3
)

func (a ContentCompAlgo) String() string {
	switch a {
	case CompAlgoZlib:
		return "zlib"
	case CompAlgoBzlib:
		return "bzlib"
	case CompAlgoLZO:
		return "lzo"
	case CompAlgoHeaderStrip:
		return "header stripping"
	}
	return fmt.Sprintf("ContentCompAlgo(%d)", uint8(a))
}

// CompressFrame applies a content encoding to a single frame, producing
// the bytes to store in a block. For CompAlgoHeaderStrip, settings is
// the prefix to strip and frame must start with it. settings is unused
// for zlib. Bzlib and LZO frames are rejected as unsupported.
func CompressFrame(algo ContentCompAlgo, settings, frame []byte) ([]byte, error) {
	switch algo {
	case CompAlgoZlib:
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(frame); err != nil {
			_ = zw.Close()
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompAlgoHeaderStrip:
		if !bytes.HasPrefix(frame, settings) {
			return nil, fmt.Errorf("%w: frame does not start with the %d-byte stripped header", ErrContentEncoding, len(settings))
		}
		out := make([]byte, len(frame)-len(settings))
		copy(out, frame[len(settings):])
		return out, nil
	case CompAlgoBzlib, CompAlgoLZO:
		return nil, fmt.Errorf("%w: %s compression is not supported", ErrContentEncoding, algo)
	}
	return nil, fmt.Errorf("%w: unknown algorithm %d", ErrContentEncoding, algo)
}

// DecompressFrame removes a content encoding from a frame read out of a
// block. For CompAlgoHeaderStrip, settings is the stripped prefix to
// put back. Output size is capped by Limits.MaxDecodedFrameLen (see
// WithContentLimits) to keep hostile input from forcing huge
// allocations.
func DecompressFrame(algo ContentCompAlgo, settings, frame []byte, opts ...ContentOption) ([]byte, error) {
	cfg := contentConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	max := cfg.limits.withDefaults().MaxDecodedFrameLen

	switch algo {
	case CompAlgoZlib:
		zr, err := zlib.NewReader(bytes.NewReader(frame))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContentEncoding, err)
		}
		defer zr.Close()
		out, err := io.ReadAll(io.LimitReader(zr, int64(max)+1))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrContentEncoding, err)
		}
		if uint64(len(out)) > max {
			return nil, fmt.Errorf("%w: decoded frame exceeds %d bytes", ErrLimitExceeded, max)
		}
		return out, nil
	case CompAlgoHeaderStrip:
		if uint64(len(settings))+uint64(len(frame)) > max {
			return nil, fmt.Errorf("%w: decoded frame exceeds %d bytes", ErrLimitExceeded, max)
		}
		out := make([]byte, 0, len(settings)+len(frame))
		out = append(out, settings...)
		out = append(out, frame...)
		return out, nil
	case CompAlgoBzlib, CompAlgoLZO:
		return nil, fmt.Errorf("%w: %s compression is not supported", ErrContentEncoding, algo)
	}
	return nil, fmt.Errorf("%w: unknown algorithm %d", ErrContentEncoding, algo)
}
