package format

import (
	"bytes"
	"fmt"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
)

// VKRecord models a value key record header. VK cells describe registry
// values and reference their data payload, either inline or via another cell.
type VKRecord struct {
	NameLength uint16
	DataLength uint32
	DataOffset uint32
	Type       uint32
	Flags      uint16
	NameRaw    []byte
}

// NameIsASCII reports whether the name is stored as ASCII/Windows-1252 bytes.
func (vk VKRecord) NameIsASCII() bool {
	return vk.Flags&VKFlagASCIIName != 0
}

// DataInline reports whether the value data is stored within DataOffset
// itself rather than referencing another cell.
func (vk VKRecord) DataInline() bool {
	return vk.DataLength&VKDataInlineBit != 0
}

// InlineLength returns the actual data length, masking off the inline flag
// when present.
func (vk VKRecord) InlineLength() int {
	if !vk.DataInline() {
		return int(vk.DataLength)
	}
	return int(vk.DataLength & VKDataLengthMask)
}

// DecodeVK decodes a VK record payload with full bounds checking.
func DecodeVK(b []byte) (VKRecord, error) {
	if len(b) < VKMinSize {
		return VKRecord{}, fmt.Errorf("vk: %w (have %d, need %d)", ErrTruncated, len(b), VKMinSize)
	}
	if !bytes.Equal(b[:SignatureSize], VKSignature) {
		return VKRecord{}, fmt.Errorf("vk: %w", ErrSignatureMismatch)
	}

	nameLen, err := buf.CheckedU16(b, VKNameLenOffset)
	if err != nil {
		return VKRecord{}, fmt.Errorf("vk name len: %w", err)
	}
	if int(nameLen) > MaxNameLen {
		return VKRecord{}, fmt.Errorf("vk name len %d exceeds limit %d: %w", nameLen, MaxNameLen, ErrSanityLimit)
	}

	dataLen, err := buf.CheckedU32(b, VKDataLenOffset)
	if err != nil {
		return VKRecord{}, fmt.Errorf("vk data len: %w", err)
	}
	actualDataLen := dataLen & VKDataLengthMask
	if actualDataLen > MaxValueDataLen {
		return VKRecord{}, fmt.Errorf("vk data len %d exceeds limit %d: %w", actualDataLen, MaxValueDataLen, ErrSanityLimit)
	}

	dataOff, err := buf.CheckedU32(b, VKDataOffOffset)
	if err != nil {
		return VKRecord{}, fmt.Errorf("vk data off: %w", err)
	}
	valType, err := buf.CheckedU32(b, VKTypeOffset)
	if err != nil {
		return VKRecord{}, fmt.Errorf("vk type: %w", err)
	}
	flags, err := buf.CheckedU16(b, VKFlagsOffset)
	if err != nil {
		return VKRecord{}, fmt.Errorf("vk flags: %w", err)
	}

	base := VKNameOffset
	nameEnd, ok := buf.AddOverflowSafe(base, int(nameLen))
	if !ok || nameEnd > len(b) {
		return VKRecord{}, fmt.Errorf("vk name: %w (need %d bytes from %d, have %d)", ErrTruncated, nameLen, base, len(b))
	}
	name := b[base:nameEnd]

	return VKRecord{
		NameLength: nameLen,
		DataLength: dataLen,
		DataOffset: dataOff,
		Type:       valType,
		Flags:      flags,
		NameRaw:    name,
	}, nil
}
