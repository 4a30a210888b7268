package webmblock

// Limits bounds the allocations DecompressFrame may perform on behalf
// of untrusted input. Zero fields fall back to the defaults.
type Limits struct {
	// MaxDecodedFrameLen caps the size of a frame after its content
	// encoding is removed, guarding against decompression bombs.
	MaxDecodedFrameLen uint64
}

func defaultLimits() Limits {
	return Limits{
		MaxDecodedFrameLen: 256 << 20, // 256 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxDecodedFrameLen == 0 {
		l.MaxDecodedFrameLen = d.MaxDecodedFrameLen
	}
	return l
}
