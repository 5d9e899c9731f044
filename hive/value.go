package hive

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

// Value is a registry value: a vk cell plus the hive it was resolved from.
// Its data is resolved and cached on first access.
type Value struct {
	h   *Hive
	off uint32
	vk  format.VKRecord

	nameOnce sync.Once
	name     string
	nameErr  error

	bytesOnce sync.Once
	bytes     []byte
	bytesErr  error
}

// Name returns the value's decoded name. The unnamed ("Default") value
// decodes to "".
func (v *Value) Name() (string, error) {
	v.nameOnce.Do(func() {
		v.name, v.nameErr = decodeValueName(v.vk)
	})
	return v.name, v.nameErr
}

// Type returns the value's REG_* type code.
func (v *Value) Type() uint32 { return v.vk.Type }

// Bytes returns the value's raw data, resolving inline storage, a single
// out-of-line cell, or a db big-data chain as needed.
func (v *Value) Bytes() ([]byte, error) {
	v.bytesOnce.Do(func() {
		v.bytes, v.bytesErr = v.h.resolveValueData(v.vk)
	})
	return v.bytes, v.bytesErr
}

// Text decodes a REG_SZ/REG_EXPAND_SZ value.
func (v *Value) Text() (string, error) {
	if v.vk.Type != format.RegSZ && v.vk.Type != format.RegExpandSZ {
		return "", typeErr(fmt.Sprintf("value type %d is not REG_SZ/REG_EXPAND_SZ", v.vk.Type))
	}
	b, err := v.Bytes()
	if err != nil {
		return "", err
	}
	s, err := buf.DecodeNulTerminatedUTF16(b)
	if err != nil {
		return "", corruptErr("string value", err)
	}
	return s, nil
}

// Strings decodes a REG_MULTI_SZ value.
func (v *Value) Strings() ([]string, error) {
	if v.vk.Type != format.RegMultiSZ {
		return nil, typeErr(fmt.Sprintf("value type %d is not REG_MULTI_SZ", v.vk.Type))
	}
	b, err := v.Bytes()
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	ss, err := buf.DecodeMultiStringUTF16(b)
	if err != nil {
		return nil, corruptErr("multi-string value", err)
	}
	return ss, nil
}

// DWORD decodes a REG_DWORD/REG_DWORD_BIG_ENDIAN value.
func (v *Value) DWORD() (uint32, error) {
	if v.vk.Type != format.RegDWORD && v.vk.Type != format.RegDWORDBigEndian {
		return 0, typeErr(fmt.Sprintf("value type %d is not REG_DWORD", v.vk.Type))
	}
	b, err := v.Bytes()
	if err != nil {
		return 0, err
	}
	if len(b) < format.DWORDSize {
		return 0, corruptErr("dword value shorter than 4 bytes", nil)
	}
	if v.vk.Type == format.RegDWORDBigEndian {
		return binary.BigEndian.Uint32(b), nil
	}
	return buf.U32LE(b), nil
}

// QWORD decodes a REG_QWORD value.
func (v *Value) QWORD() (uint64, error) {
	if v.vk.Type != format.RegQWORD {
		return 0, typeErr(fmt.Sprintf("value type %d is not REG_QWORD", v.vk.Type))
	}
	b, err := v.Bytes()
	if err != nil {
		return 0, err
	}
	if len(b) < format.QWORDSize {
		return 0, corruptErr("qword value shorter than 8 bytes", nil)
	}
	return buf.U64LE(b), nil
}

// Decoded dispatches on the value's REG_* type and returns the natural Go
// representation: string, []string, uint32, uint64, or []byte for anything
// else (REG_BINARY and the resource-descriptor types, none of which this
// package interprets further).
func (v *Value) Decoded() (any, error) {
	switch v.vk.Type {
	case format.RegSZ, format.RegExpandSZ:
		return v.Text()
	case format.RegMultiSZ:
		return v.Strings()
	case format.RegDWORD, format.RegDWORDBigEndian:
		return v.DWORD()
	case format.RegQWORD:
		return v.QWORD()
	default:
		return v.Bytes()
	}
}

// resolveValueData resolves a vk record's data, dispatching between inline
// storage, a plain out-of-line cell, and a db big-data chain.
func (h *Hive) resolveValueData(vk format.VKRecord) ([]byte, error) {
	length := vk.InlineLength()

	if vk.DataInline() {
		var raw [4]byte
		binary.LittleEndian.PutUint32(raw[:], vk.DataOffset)
		if length > len(raw) {
			if !h.opts.Tolerant {
				return nil, corruptErr("inline value data longer than 4 bytes", nil)
			}
			length = len(raw)
		}
		return append([]byte(nil), raw[:length]...), nil
	}
	if length == 0 {
		return nil, nil
	}

	cell, err := h.cell(vk.DataOffset)
	if err != nil {
		return nil, err
	}
	if format.IsDBRecord(cell.Data) {
		return h.resolveBigData(cell.Data, length)
	}

	data, ok := buf.Slice(cell.Data, 0, length)
	if !ok {
		if h.opts.Tolerant {
			return append([]byte(nil), cell.Data...), nil
		}
		return nil, boundsErr("value data exceeds its cell", nil)
	}
	return append([]byte(nil), data...), nil
}

// resolveBigData assembles a value's data from a db record's chain of data
// blocks, each one its own cell holding up to DBChunkSize bytes of payload
// followed by DBBlockPadding bytes of slack before the next cell header.
func (h *Hive) resolveBigData(dbPayload []byte, totalLen int) ([]byte, error) {
	db, err := format.DecodeDB(dbPayload)
	if err != nil {
		return nil, wrapFormatErr("db", err)
	}
	blockList, err := h.cell(db.BlocklistOffset)
	if err != nil {
		return nil, err
	}
	offsets, err := format.DecodeValueList(blockList.Data, uint32(db.NumBlocks))
	if err != nil {
		return nil, wrapFormatErr("db blocklist", err)
	}

	out := make([]byte, 0, totalLen)
	for _, off := range offsets {
		if len(out) >= totalLen {
			break
		}
		blockCell, err := h.cell(off)
		if err != nil {
			return nil, err
		}
		chunk := blockCell.Data
		if len(chunk) > format.DBChunkSize {
			chunk = chunk[:format.DBChunkSize]
		}
		if want := totalLen - len(out); want < len(chunk) {
			chunk = chunk[:want]
		}
		out = append(out, chunk...)
	}
	if len(out) < totalLen {
		if h.opts.Tolerant {
			return out, nil
		}
		return nil, boundsErr("big-data value chain shorter than declared length", nil)
	}
	return out, nil
}

func (v *Value) String() string {
	name, _ := v.Name()
	return fmt.Sprintf("%s (type %d, %d bytes)", name, v.vk.Type, v.vk.InlineLength())
}

// ValueList is an ordered, name-keyed view over a key's values. Get
// performs an exact, case-sensitive name match.
type ValueList struct {
	values []*Value
	idx    map[string]int
}

func (h *Hive) buildValueList(offs []uint32) (*ValueList, error) {
	l := &ValueList{values: make([]*Value, len(offs)), idx: make(map[string]int, len(offs))}
	for i, off := range offs {
		val, err := h.value(off)
		if err != nil {
			return nil, err
		}
		name, err := val.Name()
		if err != nil {
			return nil, err
		}
		l.values[i] = val
		if _, exists := l.idx[name]; !exists {
			l.idx[name] = i
		}
	}
	return l, nil
}

// Len reports the number of values.
func (l *ValueList) Len() int { return len(l.values) }

// At returns the value at position i.
func (l *ValueList) At(i int) (*Value, error) {
	if i < 0 || i >= len(l.values) {
		return nil, rangeErr(fmt.Sprintf("value index %d out of range [0,%d)", i, len(l.values)))
	}
	return l.values[i], nil
}

// Get returns the value whose name exactly matches name.
func (l *ValueList) Get(name string) (*Value, error) {
	i, ok := l.idx[name]
	if !ok {
		return nil, notFoundErr(fmt.Sprintf("value %q not found", name))
	}
	return l.values[i], nil
}
