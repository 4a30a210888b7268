// Package webmblock decodes and encodes the Block and SimpleBlock
// elements of Matroska and WebM containers.
//
// Block and SimpleBlock are the only Matroska elements whose binary
// payloads have internal structure: a header identifying the track and
// timestamp, and a frame region packing one or more media frames under
// one of three lacing schemes (Xiph, EBML, fixed-size). This package
// implements that structure and nothing else — walking the surrounding
// element tree is the job of a generic EBML reader/writer, which hands
// payloads to this package as (element ID, bytes) pairs.
//
// # Payload Layout
//
// A Block or SimpleBlock payload consists of:
//   - The track number as an EBML variable-length integer
//   - A big-endian signed 16-bit timestamp, relative to the cluster
//   - One flag byte (visibility, lacing mode, and for SimpleBlock the
//     keyframe and discardable bits)
//   - The frame region: a single raw frame, or a lace count, size
//     table, and concatenated frame bytes
//
// # Basic Usage
//
// To decode a payload received from a container reader:
//
//	sb, err := webmblock.DecodeSimpleBlock(payload)
//	if err != nil {
//		return err
//	}
//	frames, err := sb.Frames()
//
// To build a payload for a container writer:
//
//	sb, err := webmblock.NewSimpleBlock(1, 0, webmblock.LacingEBML, frames)
//	if err != nil {
//		return err
//	}
//	payload, err := sb.Encode()
//
// # Frame Ownership
//
// Decoding never copies frame bytes: a decoded block borrows from the
// payload it was decoded from, and Frames returns subslices of it.
// Both are valid only while the source buffer is. SetFrames is the one
// mutating operation; it packs the new frames into a buffer owned by
// the block, which from then on takes precedence over the borrowed
// payload.
//
// # Security Considerations
//
// Decoding is all-or-nothing: truncated headers, malformed lace size
// tables, and size tables that overrun the frame region all fail with
// ErrBlockDecode or ErrSimpleBlockDecode, never partial results.
// DecompressFrame bounds its output via configurable [Limits] to
// protect against decompression bombs.
package webmblock
