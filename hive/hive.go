// Package hive implements a read-only parser and navigator for Windows NT
// registry hive files: the regf header, the hive-bins it contains, and the
// tree of nk/vk cells reachable from the root key. Parsing is on-demand —
// opening a hive validates the header and the hive-bin layout, but no key
// or value is decoded until it's asked for.
package hive

import (
	"fmt"
	"io"
	"os"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

// Hive is an opened registry hive file held entirely in memory. It is safe
// for concurrent use by multiple goroutines: all state after construction
// is either immutable or lazily computed behind a sync.Once.
type Hive struct {
	data []byte
	head format.Header
	opts OpenOptions
	bins []format.HBIN
}

// FromPath reads path in full and opens it as a hive.
func FromPath(path string, opts OpenOptions) (*Hive, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("hive: read %s: %w", path, err)
	}
	return FromBytes(b, opts)
}

// FromReader reads r to completion and opens the result as a hive.
func FromReader(r io.Reader, opts OpenOptions) (*Hive, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("hive: read: %w", err)
	}
	return FromBytes(b, opts)
}

// FromBytes opens an already-in-memory hive image. The slice is retained,
// not copied; callers must not mutate it afterward.
func FromBytes(b []byte, opts OpenOptions) (*Hive, error) {
	opts = opts.withDefaults()
	head, err := format.ParseHeader(b)
	if err != nil {
		return nil, wrapFormatErr("regf header", err)
	}
	h := &Hive{data: b, head: head, opts: opts}
	if err := h.indexHiveBins(); err != nil {
		return nil, err
	}
	return h, nil
}

// indexHiveBins walks every hive-bin once at open time, the way a reader
// validates its structural boundaries up front rather than discovering a
// corrupt bin header deep into an unrelated traversal.
func (h *Hive) indexHiveBins() error {
	end := format.HeaderSize + int(h.head.HiveBinsDataSize)
	if end > len(h.data) {
		end = len(h.data)
	}
	seq := buf.NewSizeBoundedSeq(h.data, format.HeaderSize, end, format.NextHBIN)
	for {
		hb, err := seq.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return wrapFormatErr("hive-bin", err)
		}
		h.bins = append(h.bins, hb)
	}
	return nil
}

// Header returns the decoded regf header.
func (h *Hive) Header() format.Header { return h.head }

// BinCount reports the number of hive-bins indexed at open time.
func (h *Hive) BinCount() int { return len(h.bins) }

// Verify recomputes the regf checksum and compares it against the stored
// value. The core decode path never calls this — it's exposed for callers
// who want to check it explicitly; a mismatch does not affect Root or any
// other operation.
func (h *Hive) Verify() (ok bool, want, got uint32) {
	got = format.ComputeChecksum(h.data)
	want = h.head.Checksum
	return got == want, want, got
}

// Root returns the hive's root key.
func (h *Hive) Root() (*Key, error) {
	return h.key(h.head.RootCellOffset)
}

// cell resolves a hive offset (relative to the first hive-bin, as stored in
// nk/vk/list fields) to its cell.
func (h *Hive) cell(off uint32) (format.Cell, error) {
	if off == format.InvalidOffset {
		return format.Cell{}, notFoundErr("cell offset is invalid")
	}
	abs := format.HeaderSize + int(off)
	if abs < format.HeaderSize || abs >= len(h.data) {
		return format.Cell{}, boundsErr("cell offset out of range", nil)
	}
	cell, err := format.ParseCell(h.data[abs:])
	if err != nil {
		return format.Cell{}, wrapFormatErr("cell", err)
	}
	if cell.Free {
		return format.Cell{}, corruptErr("cell marked free", format.ErrFreeCell)
	}
	if cell.Size > h.opts.MaxCellSize {
		return format.Cell{}, corruptErr("cell exceeds MaxCellSize", nil)
	}
	return cell, nil
}

func (h *Hive) key(off uint32) (*Key, error) {
	cell, err := h.cell(off)
	if err != nil {
		return nil, err
	}
	nk, err := format.DecodeNK(cell.Data)
	if err != nil {
		return nil, wrapFormatErr("nk", err)
	}
	return &Key{h: h, off: off, nk: nk}, nil
}

func (h *Hive) value(off uint32) (*Value, error) {
	cell, err := h.cell(off)
	if err != nil {
		return nil, err
	}
	vk, err := format.DecodeVK(cell.Data)
	if err != nil {
		return nil, wrapFormatErr("vk", err)
	}
	return &Value{h: h, off: off, vk: vk}, nil
}
