package webmblock

// ElementID is a numeric Matroska/EBML element identifier.
type ElementID uint32

// Element IDs recognized by this package. Block and SimpleBlock are the
// only elements with structured binary payloads; everything else in a
// Matroska file is handled by a generic tag reader.
const (
	IDBlock       ElementID = 0xA1
	IDSimpleBlock ElementID = 0xA3
)

// Element is the boundary type exchanged with a generic EBML tag
// reader/writer: an element identifier paired with its raw payload.
// This package never interprets Data for any ID other than IDBlock and
// IDSimpleBlock.
type Element struct {
	ID   ElementID
	Data []byte
}

// Name returns the Matroska element name for diagnostics, or "" if the
// ID is not one this package recognizes.
func (id ElementID) Name() string {
	switch id {
	case IDBlock:
		return "Block"
	case IDSimpleBlock:
		return "SimpleBlock"
	}
	return ""
}
