package hive

import (
	"fmt"
	"sync"
	"time"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

// Key is a registry key: an nk cell plus the hive it was resolved from.
// Its subkeys and values are resolved and cached the first time they're
// asked for, never at construction.
type Key struct {
	h   *Hive
	off uint32
	nk  format.NKRecord

	nameOnce sync.Once
	name     string
	nameErr  error

	subkeysOnce sync.Once
	subkeys     *KeyList
	subkeysErr  error

	valuesOnce sync.Once
	values     *ValueList
	valuesErr  error
}

// Name returns the key's decoded name.
func (k *Key) Name() (string, error) {
	k.nameOnce.Do(func() {
		k.name, k.nameErr = decodeKeyName(k.nk)
	})
	return k.name, k.nameErr
}

// LastWrite returns the key's last-written timestamp.
func (k *Key) LastWrite() time.Time {
	return buf.FiletimeToTime(k.nk.LastWriteRaw)
}

// ClassName returns the key's associated class name, or "" if it has none.
func (k *Key) ClassName() (string, error) {
	if k.nk.ClassNameOffset == format.InvalidOffset || k.nk.ClassLength == 0 {
		return "", nil
	}
	cell, err := k.h.cell(k.nk.ClassNameOffset)
	if err != nil {
		return "", err
	}
	data, ok := buf.Slice(cell.Data, 0, int(k.nk.ClassLength))
	if !ok {
		return "", boundsErr("class name exceeds its cell", nil)
	}
	return buf.DecodeUTF16LE(data), nil
}

// Parent returns the key's parent key.
func (k *Key) Parent() (*Key, error) {
	return k.h.key(k.nk.ParentOffset)
}

// SecurityDescriptor always fails: descriptor content (SECURITY_DESCRIPTOR_RELATIVE,
// ACLs) is intentionally never decoded. A key with no sk reference reports
// ErrKindNotFound; one with an sk reference reports ErrKindUnimplemented.
func (k *Key) SecurityDescriptor() ([]byte, error) {
	if k.nk.SecurityOffset == format.InvalidOffset {
		return nil, notFoundErr("key has no security descriptor")
	}
	if _, err := k.h.skHeader(k.nk.SecurityOffset); err != nil {
		return nil, err
	}
	return nil, unimplementedErr("security descriptor decoding")
}

// Subkeys returns the key's direct children as an ordered, name-keyed
// collection. Name lookup is an exact, case-sensitive match against the
// name as stored in the hive.
func (k *Key) Subkeys() (*KeyList, error) {
	k.subkeysOnce.Do(func() {
		offs, err := k.h.subkeyOffsets(k.nk.SubkeyListOffset, k.nk.SubkeyCount, 0)
		if err != nil {
			k.subkeysErr = err
			return
		}
		k.subkeys, k.subkeysErr = k.h.buildKeyList(offs)
	})
	return k.subkeys, k.subkeysErr
}

// Values returns the key's values as an ordered, name-keyed collection.
func (k *Key) Values() (*ValueList, error) {
	k.valuesOnce.Do(func() {
		offs, err := k.h.valueOffsets(k.nk.ValueListOffset, k.nk.ValueCount)
		if err != nil {
			k.valuesErr = err
			return
		}
		k.values, k.valuesErr = k.h.buildValueList(offs)
	})
	return k.values, k.valuesErr
}

// Subkey looks up a direct child by exact name.
func (k *Key) Subkey(name string) (*Key, error) {
	l, err := k.Subkeys()
	if err != nil {
		return nil, err
	}
	return l.Get(name)
}

// Value looks up one of the key's values by exact name.
func (k *Key) Value(name string) (*Value, error) {
	l, err := k.Values()
	if err != nil {
		return nil, err
	}
	return l.Get(name)
}

func (k *Key) String() string {
	name, _ := k.Name()
	return fmt.Sprintf("%s, %d values, %d subkeys", name, k.nk.ValueCount, k.nk.SubkeyCount)
}

// KeyList is an ordered, name-keyed view over a set of subkeys. Index order
// matches on-disk list order; Get performs an exact, case-sensitive name
// match, a deliberate departure from the case-insensitive matching Windows
// itself applies, made explicit rather than silent.
type KeyList struct {
	keys []*Key
	idx  map[string]int
}

func (h *Hive) buildKeyList(offs []uint32) (*KeyList, error) {
	l := &KeyList{keys: make([]*Key, len(offs)), idx: make(map[string]int, len(offs))}
	for i, off := range offs {
		k, err := h.key(off)
		if err != nil {
			return nil, err
		}
		name, err := k.Name()
		if err != nil {
			return nil, err
		}
		l.keys[i] = k
		if _, exists := l.idx[name]; !exists {
			l.idx[name] = i
		}
	}
	return l, nil
}

// Len reports the number of subkeys.
func (l *KeyList) Len() int { return len(l.keys) }

// At returns the subkey at position i.
func (l *KeyList) At(i int) (*Key, error) {
	if i < 0 || i >= len(l.keys) {
		return nil, rangeErr(fmt.Sprintf("subkey index %d out of range [0,%d)", i, len(l.keys)))
	}
	return l.keys[i], nil
}

// Get returns the subkey whose name exactly matches name.
func (l *KeyList) Get(name string) (*Key, error) {
	i, ok := l.idx[name]
	if !ok {
		return nil, notFoundErr(fmt.Sprintf("subkey %q not found", name))
	}
	return l.keys[i], nil
}

// subkeyOffsets resolves a key's subkey list to a flat list of nk cell
// offsets, recursively flattening ri indirection (including ri lists nested
// inside ri lists). depth guards against a crafted or cyclic ri chain
// exceeding MaxRIDepth.
func (h *Hive) subkeyOffsets(listOff uint32, expected uint32, depth int) ([]uint32, error) {
	if listOff == format.InvalidOffset || expected == 0 {
		return nil, nil
	}
	if depth > h.opts.MaxRIDepth {
		return nil, corruptErr("ri subkey list nesting exceeds MaxRIDepth", nil)
	}
	cell, err := h.cell(listOff)
	if err != nil {
		return nil, err
	}
	if format.IsRIList(cell.Data) {
		subLists, err := format.DecodeRIList(cell.Data)
		if err != nil {
			return nil, wrapFormatErr("ri list", err)
		}
		var out []uint32
		for _, sub := range subLists {
			remaining := expected - uint32(len(out))
			if remaining == 0 {
				break
			}
			offs, err := h.subkeyOffsets(sub, remaining, depth+1)
			if err != nil {
				return nil, err
			}
			out = append(out, offs...)
		}
		return out, nil
	}
	offs, err := format.DecodeSubkeyList(cell.Data, expected)
	if err != nil {
		return nil, wrapFormatErr("subkey list", err)
	}
	return offs, nil
}

func (h *Hive) valueOffsets(listOff uint32, count uint32) ([]uint32, error) {
	if count == 0 {
		return nil, nil
	}
	cell, err := h.cell(listOff)
	if err != nil {
		return nil, err
	}
	offs, err := format.DecodeValueList(cell.Data, count)
	if err != nil {
		return nil, wrapFormatErr("value list", err)
	}
	return offs, nil
}

func (h *Hive) skHeader(off uint32) (format.SKRecord, error) {
	cell, err := h.cell(off)
	if err != nil {
		return format.SKRecord{}, err
	}
	sk, err := format.DecodeSKHeader(cell.Data)
	if err != nil {
		return format.SKRecord{}, wrapFormatErr("sk", err)
	}
	return sk, nil
}
