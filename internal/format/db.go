package format

import (
	"bytes"
	"fmt"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
)

// DBRecord represents a "db" (Big Data) record: used when a value's data
// exceeds what fits in a single cell. The actual bytes live in a separate
// chain of data-block cells, reached through a blocklist cell this record
// points to.
//
//	Offset 0x00  "db" signature (2 bytes)
//	Offset 0x02  Number of data blocks (2 bytes)
//	Offset 0x04  Blocklist cell offset (4 bytes)
//	Offset 0x08  Unknown (4 bytes)
type DBRecord struct {
	NumBlocks       uint16
	BlocklistOffset uint32
	Unknown1        uint32
}

// IsDBRecord reports whether a cell payload starts with the "db" signature.
func IsDBRecord(b []byte) bool {
	return len(b) >= SignatureSize && bytes.Equal(b[:SignatureSize], DBSignature)
}

// DecodeDB decodes a Big Data record from a cell payload.
func DecodeDB(b []byte) (DBRecord, error) {
	if len(b) < DBMinSize {
		return DBRecord{}, fmt.Errorf("db: %w (need %d bytes, have %d)", ErrTruncated, DBMinSize, len(b))
	}
	if !bytes.Equal(b[:SignatureSize], DBSignature) {
		return DBRecord{}, fmt.Errorf("db: %w", ErrSignatureMismatch)
	}
	return DBRecord{
		NumBlocks:       buf.U16LE(b[DBCountOffset:]),
		BlocklistOffset: buf.U32LE(b[DBListOffset:]),
		Unknown1:        buf.U32LE(b[DBUnknown1Offset:]),
	}, nil
}
