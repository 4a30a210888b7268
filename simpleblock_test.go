package webmblock

import (
	"bytes"
	"errors"
	"testing"
)

func TestDecodeEncodeSimpleBlock(t *testing.T) {
	payload := []byte{0x81, 0x00, 0x01, 0x8d, 0x01, 0x00, 0x00}
	sb, err := DecodeSimpleBlock(payload)
	if err != nil {
		t.Fatalf("DecodeSimpleBlock: %v", err)
	}
	if !sb.Keyframe {
		t.Fatal("Keyframe not set")
	}
	if !sb.Discardable {
		t.Fatal("Discardable not set")
	}
	if !sb.Invisible {
		t.Fatal("Invisible not set")
	}
	if sb.Lacing != LacingFixedSize {
		t.Fatalf("Lacing = %v, want fixed-size", sb.Lacing)
	}
	if sb.Track != 1 {
		t.Fatalf("Track = %d, want 1", sb.Track)
	}
	if sb.Timestamp != 1 {
		t.Fatalf("Timestamp = %d, want 1", sb.Timestamp)
	}
	frames, err := sb.Frames()
	if err != nil {
		t.Fatalf("Frames: %v", err)
	}
	if len(frames) != 2 {
		t.Fatalf("frame count = %d, want 2", len(frames))
	}

	encoded, err := sb.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(encoded, payload) {
		t.Fatalf("re-encode produced % x, want % x", encoded, payload)
	}
}

func TestSimpleBlockRoundTrip(t *testing.T) {
	cases := []struct {
		name   string
		lacing Lacing
		frames [][]byte
	}{
		{"no lacing", LacingNone, [][]byte{{0x01, 0x02, 0x03}}},
		{"Xiph", LacingXiph, [][]byte{
			{0x01, 0x02, 0x03},
			{0x04, 0x05, 0x06},
			{0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e},
		}},
		{"EBML", LacingEBML, [][]byte{
			{0x01, 0x02, 0x03},
			{0x04, 0x05, 0x06},
			{},
			{0x07, 0x08, 0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e},
			{0x01, 0x02},
		}},
		{"fixed size", LacingFixedSize, [][]byte{
			{0x01, 0x02, 0x03},
			{0x04, 0x05, 0x06},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sb, err := NewSimpleBlock(1, 15, tc.lacing, tc.frames)
			if err != nil {
				t.Fatalf("NewSimpleBlock: %v", err)
			}
			sb.Keyframe = true

			payload, err := sb.Encode()
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			redecoded, err := DecodeSimpleBlock(payload)
			if err != nil {
				t.Fatalf("DecodeSimpleBlock: %v", err)
			}
			if redecoded.Keyframe != sb.Keyframe ||
				redecoded.Discardable != sb.Discardable ||
				redecoded.Invisible != sb.Invisible ||
				redecoded.Lacing != sb.Lacing ||
				redecoded.Track != sb.Track ||
				redecoded.Timestamp != sb.Timestamp {
				t.Fatalf("header mismatch: %+v vs %+v", sb, redecoded)
			}
			got, err := redecoded.Frames()
			if err != nil {
				t.Fatalf("Frames: %v", err)
			}
			framesEqual(t, tc.frames, got)
		})
	}
}

func TestSimpleBlockSingleFrameClearsLacing(t *testing.T) {
	sb, err := NewSimpleBlock(1, 0, LacingXiph, [][]byte{{0x01, 0x02}})
	if err != nil {
		t.Fatalf("NewSimpleBlock: %v", err)
	}
	if sb.Lacing != LacingNone {
		t.Fatalf("Lacing = %v, want none for a single frame", sb.Lacing)
	}
	if !bytes.Equal(sb.RawFrameRegion(), []byte{0x01, 0x02}) {
		t.Fatalf("RawFrameRegion = % x, want the frame verbatim", sb.RawFrameRegion())
	}
}

func TestSimpleBlockDefaultLacing(t *testing.T) {
	sb, err := NewSimpleBlock(1, 0, LacingNone, [][]byte{{0x01}, {0x02}})
	if err != nil {
		t.Fatalf("NewSimpleBlock: %v", err)
	}
	if sb.Lacing != LacingEBML {
		t.Fatalf("Lacing = %v, want EBML default for multiple frames", sb.Lacing)
	}
}

func TestSimpleBlockElementRoundTrip(t *testing.T) {
	sb, err := NewSimpleBlock(5, -7, LacingNone, [][]byte{{0xAB}})
	if err != nil {
		t.Fatalf("NewSimpleBlock: %v", err)
	}
	sb.Discardable = true
	el, err := sb.Element()
	if err != nil {
		t.Fatalf("Element: %v", err)
	}
	if el.ID != IDSimpleBlock {
		t.Fatalf("element ID = 0x%X, want 0x%X", uint32(el.ID), uint32(IDSimpleBlock))
	}
	decoded, err := SimpleBlockFromElement(el)
	if err != nil {
		t.Fatalf("SimpleBlockFromElement: %v", err)
	}
	if decoded.Track != 5 || decoded.Timestamp != -7 || !decoded.Discardable {
		t.Fatalf("header mismatch: %+v", decoded)
	}
}

func TestSimpleBlockFromElementWrongID(t *testing.T) {
	el := Element{ID: IDBlock, Data: []byte{0x81, 0x00, 0x00, 0x00, 0x01}}
	if _, err := SimpleBlockFromElement(el); !errors.Is(err, ErrSimpleBlockDecode) {
		t.Fatalf("expected ErrSimpleBlockDecode, got %v", err)
	}
}
