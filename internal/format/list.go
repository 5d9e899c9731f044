package format

import (
	"bytes"
	"fmt"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
)

// SubkeyListKind identifies which of the four sub-key list cell variants a
// payload holds.
type SubkeyListKind int

const (
	SubkeyListUnknown SubkeyListKind = iota
	SubkeyListLI
	SubkeyListLF
	SubkeyListLH
	SubkeyListRI
)

// DetectSubkeyListKind inspects a cell payload's two-byte signature.
func DetectSubkeyListKind(b []byte) SubkeyListKind {
	if len(b) < SignatureSize {
		return SubkeyListUnknown
	}
	switch {
	case bytes.Equal(b[:SignatureSize], LISignature):
		return SubkeyListLI
	case bytes.Equal(b[:SignatureSize], LFSignature):
		return SubkeyListLF
	case bytes.Equal(b[:SignatureSize], LHSignature):
		return SubkeyListLH
	case bytes.Equal(b[:SignatureSize], RISignature):
		return SubkeyListRI
	default:
		return SubkeyListUnknown
	}
}

// DecodeSubkeyList extracts NK cell offsets from an li, lf, or lh list
// payload. lf/lh entries additionally carry a 4-byte name hint/hash that
// higher layers don't need, since name comparison reads the NK itself.
func DecodeSubkeyList(b []byte, expected uint32) ([]uint32, error) {
	if len(b) < ListHeaderSize {
		return nil, fmt.Errorf("subkey list: %w", ErrTruncated)
	}
	sig := b[:SignatureSize]
	count := uint32(buf.U16LE(b[SignatureSize:ListHeaderSize]))
	entryCount := count
	if expected != 0 && expected < entryCount {
		entryCount = expected
	}
	switch {
	case bytes.Equal(sig, LISignature):
		return decodeOffsetList(b[ListHeaderSize:], entryCount, LIEntrySize)
	case bytes.Equal(sig, LFSignature), bytes.Equal(sig, LHSignature):
		return decodeOffsetList(b[ListHeaderSize:], entryCount, LFEntrySize)
	default:
		return nil, fmt.Errorf("subkey list: %w", ErrUnsupported)
	}
}

func decodeOffsetList(b []byte, count uint32, stride int) ([]uint32, error) {
	need, ok := buf.AddOverflowSafe(0, int(count)*stride)
	if !ok || len(b) < need {
		return nil, fmt.Errorf("subkey list entries: %w", ErrTruncated)
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = buf.U32LE(b[uint32(i)*uint32(stride):])
	}
	return out, nil
}

// IsRIList reports whether a cell payload is an RI (indirect) subkey list.
func IsRIList(b []byte) bool {
	return DetectSubkeyListKind(b) == SubkeyListRI
}

// DecodeRIList decodes an RI list and returns the cell offsets of its
// constituent li/lf/lh sub-lists. Each must be fetched and decoded by the
// caller; ri lists carry no NK offsets of their own.
func DecodeRIList(b []byte) ([]uint32, error) {
	if len(b) < ListHeaderSize {
		return nil, fmt.Errorf("ri list: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:SignatureSize], RISignature) {
		return nil, fmt.Errorf("ri list: %w", ErrSignatureMismatch)
	}
	count := uint32(buf.U16LE(b[SignatureSize:ListHeaderSize]))
	return decodeOffsetList(b[ListHeaderSize:], count, OffsetFieldSize)
}

// DecodeValueList decodes a key's value list: a flat array of VK cell offsets.
func DecodeValueList(b []byte, count uint32) ([]uint32, error) {
	need := int(count) * OffsetFieldSize
	if need == 0 {
		return nil, nil
	}
	if len(b) < need {
		return nil, fmt.Errorf("value list: %w", ErrTruncated)
	}
	out := make([]uint32, count)
	for i := range out {
		out[i] = buf.U32LE(b[uint32(i)*OffsetFieldSize:])
	}
	return out, nil
}
