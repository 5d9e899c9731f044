package format

import (
	"errors"
	"fmt"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
)

// Cell represents a single allocation (free or in-use) within a hive-bin.
//
// Cell header layout (little-endian):
//
//	Offset  Size  Description
//	0x00    4     Signed size. Negative => allocated, positive => free.
//	              The magnitude includes this 4-byte header.
//	0x04    ...   Payload. The first two bytes form the record's signature
//	              when the cell is allocated and holds a tagged record.
type Cell struct {
	Offset int // offset of the cell header, relative to the start of hive-bin data
	Size   int // total cell size, including the 4-byte header
	Free   bool
	Tag    [SignatureSize]byte
	Data   []byte // payload bytes, aliasing the underlying buffer
}

// NextCell decodes the cell at offset within hive-bin h and returns it plus
// the offset of the following cell within the same hive-bin. Callers must
// ensure offset points to the start of a cell header; crossing a hive-bin
// boundary mid-cell is treated as corruption, since the format guarantees
// a cell never spans two hive-bins.
func NextCell(b []byte, h HBIN, off int) (Cell, int, error) {
	if off < 0 || off+CellHeaderSize > len(b) {
		return Cell{}, 0, fmt.Errorf("cell: %w", ErrTruncated)
	}
	if off < int(h.FileOffset)+HBINHeaderSize || off >= int(h.FileOffset)+int(h.Size) {
		return Cell{}, 0, fmt.Errorf("cell: offset %d outside hive-bin", off)
	}
	raw := buf.I32LE(b[off:])
	if raw == 0 {
		return Cell{}, 0, errors.New("cell: zero length")
	}
	allocated := raw < 0
	size := int(raw)
	if allocated {
		size = -size
	}
	if size < CellHeaderSize {
		return Cell{}, 0, fmt.Errorf("cell: declared size too small (%d)", size)
	}
	next := off + size
	if next > int(h.FileOffset)+int(h.Size) {
		return Cell{}, 0, fmt.Errorf("cell: %w", ErrTruncated)
	}
	payload := b[off+CellHeaderSize : off+size]
	var tag [SignatureSize]byte
	if len(payload) >= SignatureSize {
		tag[0], tag[1] = payload[0], payload[1]
	}
	return Cell{
		Offset: off,
		Size:   size,
		Free:   !allocated,
		Tag:    tag,
		Data:   payload,
	}, next, nil
}

// ParseCell decodes the single cell starting at b[0]. It is used by callers
// that already hold an isolated slice for one cell (e.g. after resolving a
// cell offset to an absolute position in the hive buffer).
func ParseCell(b []byte) (Cell, error) {
	if len(b) < CellHeaderSize {
		return Cell{}, fmt.Errorf("cell: %w", ErrTruncated)
	}
	raw := buf.I32LE(b)
	if raw == 0 {
		return Cell{}, errors.New("cell: zero length")
	}
	allocated := raw < 0
	size := int(raw)
	if allocated {
		size = -size
	}
	if size < CellHeaderSize || size > len(b) {
		return Cell{}, fmt.Errorf("cell: %w", ErrTruncated)
	}
	payload := b[CellHeaderSize:size]
	var tag [SignatureSize]byte
	if len(payload) >= SignatureSize {
		tag[0], tag[1] = payload[0], payload[1]
	}
	return Cell{
		Offset: 0,
		Size:   size,
		Free:   !allocated,
		Tag:    tag,
		Data:   payload,
	}, nil
}
