package hive

import (
	"testing"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

// builtFixture is a synthetic hive image with a known shape, used across
// the package's tests: a root key named "ROOT" with one subkey ("Sub") and
// three values ("Ver" REG_SZ, "Count" REG_DWORD, "Tags" REG_MULTI_SZ).
type builtFixture struct {
	data     []byte
	rootOff  uint32
	childOff uint32
}

func utf16le(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

// putCell writes an allocated cell (negative size header) containing
// payload at the absolute file offset abs and returns the absolute offset
// immediately following it.
func putCell(b []byte, abs int, payload []byte) int {
	size := format.CellHeaderSize + len(payload)
	format.PutI32(b, abs, int32(-size))
	copy(b[abs+format.CellHeaderSize:], payload)
	return abs + size
}

// buildFixture lays out a minimal but complete hive image. Every cell
// offset recorded in a field (parent, subkey list, value list, data
// offset) is hive-relative, matching how the format itself stores them;
// cursor, by contrast, tracks the absolute position within the in-memory
// buffer, so rel() converts between the two wherever an offset is stored.
func buildFixture(t *testing.T) builtFixture {
	t.Helper()
	const hbinSize = 0x1000
	b := make([]byte, format.HeaderSize+hbinSize)
	rel := func(abs int) uint32 { return uint32(abs - format.HeaderSize) }

	cursor := format.HeaderSize + format.HBINHeaderSize

	// Child key "Sub": no subkeys, no values.
	childPayload := make([]byte, format.NKNameOffset+len("Sub"))
	copy(childPayload, format.NKSignature)
	format.PutU16(childPayload, format.NKFlagsOffset, format.NKFlagCompressedName)
	format.PutU64(childPayload, format.NKLastWriteOffset, 0x01D9000000000000)
	format.PutU32(childPayload, format.NKSubkeyListOffset, format.InvalidOffset)
	format.PutU32(childPayload, format.NKValueListOffset, format.InvalidOffset)
	format.PutU32(childPayload, format.NKSecurityOffset, format.InvalidOffset)
	format.PutU32(childPayload, format.NKClassNameOffset, format.InvalidOffset)
	format.PutU16(childPayload, format.NKNameLenOffset, uint16(len("Sub")))
	copy(childPayload[format.NKNameOffset:], "Sub")
	childOff := rel(cursor)
	childAbs := cursor
	cursor = putCell(b, cursor, childPayload)

	// "1.0\0" as a REG_SZ payload, stored out-of-line.
	strPayload := append(utf16le("1.0"), 0, 0)
	strOff := rel(cursor)
	cursor = putCell(b, cursor, strPayload)

	// REG_MULTI_SZ payload: "a", "b".
	multiPayload := append(append(utf16le("a"), 0, 0), append(utf16le("b"), 0, 0)...)
	multiOff := rel(cursor)
	cursor = putCell(b, cursor, multiPayload)

	// vk "Ver" -> REG_SZ, out-of-line.
	verPayload := make([]byte, format.VKNameOffset+len("Ver"))
	copy(verPayload, format.VKSignature)
	format.PutU16(verPayload, format.VKNameLenOffset, uint16(len("Ver")))
	format.PutU32(verPayload, format.VKDataLenOffset, uint32(len(strPayload)))
	format.PutU32(verPayload, format.VKDataOffOffset, strOff)
	format.PutU32(verPayload, format.VKTypeOffset, format.RegSZ)
	format.PutU16(verPayload, format.VKFlagsOffset, format.VKFlagASCIIName)
	copy(verPayload[format.VKNameOffset:], "Ver")
	verOff := rel(cursor)
	cursor = putCell(b, cursor, verPayload)

	// vk "Count" -> REG_DWORD, inline.
	countPayload := make([]byte, format.VKNameOffset+len("Count"))
	copy(countPayload, format.VKSignature)
	format.PutU16(countPayload, format.VKNameLenOffset, uint16(len("Count")))
	format.PutU32(countPayload, format.VKDataLenOffset, 4|format.VKDataInlineBit)
	format.PutU32(countPayload, format.VKDataOffOffset, 42)
	format.PutU32(countPayload, format.VKTypeOffset, format.RegDWORD)
	format.PutU16(countPayload, format.VKFlagsOffset, format.VKFlagASCIIName)
	copy(countPayload[format.VKNameOffset:], "Count")
	countOff := rel(cursor)
	cursor = putCell(b, cursor, countPayload)

	// vk "Tags" -> REG_MULTI_SZ, out-of-line.
	tagsPayload := make([]byte, format.VKNameOffset+len("Tags"))
	copy(tagsPayload, format.VKSignature)
	format.PutU16(tagsPayload, format.VKNameLenOffset, uint16(len("Tags")))
	format.PutU32(tagsPayload, format.VKDataLenOffset, uint32(len(multiPayload)))
	format.PutU32(tagsPayload, format.VKDataOffOffset, multiOff)
	format.PutU32(tagsPayload, format.VKTypeOffset, format.RegMultiSZ)
	format.PutU16(tagsPayload, format.VKFlagsOffset, format.VKFlagASCIIName)
	copy(tagsPayload[format.VKNameOffset:], "Tags")
	tagsOff := rel(cursor)
	cursor = putCell(b, cursor, tagsPayload)

	// Root's value list: Ver, Count, Tags.
	valueListPayload := make([]byte, 3*format.OffsetFieldSize)
	format.PutU32(valueListPayload, 0*format.OffsetFieldSize, verOff)
	format.PutU32(valueListPayload, 1*format.OffsetFieldSize, countOff)
	format.PutU32(valueListPayload, 2*format.OffsetFieldSize, tagsOff)
	valueListOff := rel(cursor)
	cursor = putCell(b, cursor, valueListPayload)

	// Root's subkey list: a single lf entry pointing at "Sub".
	lfPayload := make([]byte, format.ListHeaderSize+format.LFEntrySize)
	copy(lfPayload, format.LFSignature)
	format.PutU16(lfPayload, format.IdxCountOffset, 1)
	format.PutU32(lfPayload, format.IdxListOffset, childOff)
	subkeyListOff := rel(cursor)
	cursor = putCell(b, cursor, lfPayload)

	// Root key "ROOT".
	rootPayload := make([]byte, format.NKNameOffset+len("ROOT"))
	copy(rootPayload, format.NKSignature)
	format.PutU16(rootPayload, format.NKFlagsOffset, format.NKFlagCompressedName)
	format.PutU64(rootPayload, format.NKLastWriteOffset, 0x01D9000000000000)
	format.PutU32(rootPayload, format.NKSubkeyCountOffset, 1)
	format.PutU32(rootPayload, format.NKSubkeyListOffset, subkeyListOff)
	format.PutU32(rootPayload, format.NKValueCountOffset, 3)
	format.PutU32(rootPayload, format.NKValueListOffset, valueListOff)
	format.PutU32(rootPayload, format.NKSecurityOffset, format.InvalidOffset)
	format.PutU32(rootPayload, format.NKClassNameOffset, format.InvalidOffset)
	format.PutU16(rootPayload, format.NKNameLenOffset, uint16(len("ROOT")))
	copy(rootPayload[format.NKNameOffset:], "ROOT")
	rootOff := rel(cursor)
	format.PutU32(rootPayload, format.NKParentOffset, rootOff)
	cursor = putCell(b, cursor, rootPayload)

	// Patch the child's parent offset now that the root's offset is known.
	format.PutU32(b, childAbs+format.CellHeaderSize+format.NKParentOffset, rootOff)

	if cursor > len(b) {
		t.Fatalf("fixture overflowed its hive-bin: cursor=%#x", cursor)
	}

	// hbin header.
	copy(b[format.HeaderSize:], format.HBINSignature)
	format.PutU32(b, format.HeaderSize+0x04, 0)
	format.PutU32(b, format.HeaderSize+0x08, hbinSize)

	// regf header.
	copy(b, format.REGFSignature)
	format.PutU32(b, format.REGFRootCellOffset, rootOff)
	format.PutU32(b, format.REGFDataSizeOffset, hbinSize)
	format.PutU32(b, format.REGFMajorVersionOffset, 1)
	format.PutU32(b, format.REGFMinorVersionOffset, 5)
	format.PutU32(b, format.REGFCheckSumOffset, format.ComputeChecksum(b))

	return builtFixture{data: b, rootOff: rootOff, childOff: childOff}
}
