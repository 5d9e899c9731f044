package format

import (
	"bytes"
	"fmt"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
)

// SKRecord captures the fixed header of a security descriptor (sk) cell.
// The descriptor bytes themselves (SECURITY_DESCRIPTOR_RELATIVE) are never
// decoded; ACL parsing is out of scope.
//
//	Offset  Size  Description
//	0x00    2     's' 'k'
//	0x02    2     Reserved
//	0x04    4     Flink (forward link in the security descriptor ring)
//	0x08    4     Blink (backward link)
//	0x0C    4     ReferenceCount
//	0x10    4     DescriptorLength
//	0x14    ...   Descriptor data (not decoded)
type SKRecord struct {
	Flink            uint32
	Blink            uint32
	ReferenceCount   uint32
	DescriptorLength uint32
}

// DecodeSKHeader validates and decodes the fixed portion of an sk cell. It
// deliberately stops at the header: any attempt to materialize the
// descriptor itself must go through a caller that surfaces ErrUnimplemented,
// since parsing SECURITY_DESCRIPTOR_RELATIVE / ACL data is out of scope.
func DecodeSKHeader(b []byte) (SKRecord, error) {
	if len(b) < SKMinSize {
		return SKRecord{}, fmt.Errorf("sk: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:SignatureSize], SKSignature) {
		return SKRecord{}, fmt.Errorf("sk: %w", ErrSignatureMismatch)
	}
	length := buf.U32LE(b[SKDescriptorLengthOffset:])
	if !buf.Has(b, SKDescriptorOffset, int(length)) {
		return SKRecord{}, fmt.Errorf("sk: %w", ErrTruncated)
	}
	return SKRecord{
		Flink:            buf.U32LE(b[SKFlinkOffset:]),
		Blink:            buf.U32LE(b[SKBlinkOffset:]),
		ReferenceCount:   buf.U32LE(b[SKReferenceCountOffset:]),
		DescriptorLength: length,
	}, nil
}
