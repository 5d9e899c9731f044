package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

// captureOutput captures stdout while running fn, mirroring the pattern the
// rest of the pack uses for cobra command tests.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	return buf.String(), fnErr
}

func assertContains(t *testing.T, output string, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Errorf("output missing expected string %q\ngot: %s", want, output)
	}
}

func utf16le(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

func putCell(b []byte, abs int, payload []byte) int {
	size := format.CellHeaderSize + len(payload)
	format.PutI32(b, abs, int32(-size))
	copy(b[abs+format.CellHeaderSize:], payload)
	return abs + size
}

// writeFixtureHive builds a trimmed version of the hive shape used by the
// hive package's own tests (root "ROOT", one subkey "Sub", two values:
// "Ver" REG_SZ and "Count" REG_DWORD) and writes it to a file in
// t.TempDir(), returning its path.
func writeFixtureHive(t *testing.T) string {
	t.Helper()
	const hbinSize = 0x1000
	b := make([]byte, format.HeaderSize+hbinSize)
	rel := func(abs int) uint32 { return uint32(abs - format.HeaderSize) }

	cursor := format.HeaderSize + format.HBINHeaderSize

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

	strPayload := append(utf16le("1.0"), 0, 0)
	strOff := rel(cursor)
	cursor = putCell(b, cursor, strPayload)

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

	valueListPayload := make([]byte, 2*format.OffsetFieldSize)
	format.PutU32(valueListPayload, 0*format.OffsetFieldSize, verOff)
	format.PutU32(valueListPayload, 1*format.OffsetFieldSize, countOff)
	valueListOff := rel(cursor)
	cursor = putCell(b, cursor, valueListPayload)

	lfPayload := make([]byte, format.ListHeaderSize+format.LFEntrySize)
	copy(lfPayload, format.LFSignature)
	format.PutU16(lfPayload, format.IdxCountOffset, 1)
	format.PutU32(lfPayload, format.IdxListOffset, childOff)
	subkeyListOff := rel(cursor)
	cursor = putCell(b, cursor, lfPayload)

	rootPayload := make([]byte, format.NKNameOffset+len("ROOT"))
	copy(rootPayload, format.NKSignature)
	format.PutU16(rootPayload, format.NKFlagsOffset, format.NKFlagCompressedName)
	format.PutU64(rootPayload, format.NKLastWriteOffset, 0x01D9000000000000)
	format.PutU32(rootPayload, format.NKSubkeyCountOffset, 1)
	format.PutU32(rootPayload, format.NKSubkeyListOffset, subkeyListOff)
	format.PutU32(rootPayload, format.NKValueCountOffset, 2)
	format.PutU32(rootPayload, format.NKValueListOffset, valueListOff)
	format.PutU32(rootPayload, format.NKSecurityOffset, format.InvalidOffset)
	format.PutU32(rootPayload, format.NKClassNameOffset, format.InvalidOffset)
	format.PutU16(rootPayload, format.NKNameLenOffset, uint16(len("ROOT")))
	copy(rootPayload[format.NKNameOffset:], "ROOT")
	rootOff := rel(cursor)
	format.PutU32(rootPayload, format.NKParentOffset, rootOff)
	cursor = putCell(b, cursor, rootPayload)

	format.PutU32(b, childAbs+format.CellHeaderSize+format.NKParentOffset, rootOff)

	if cursor > len(b) {
		t.Fatalf("fixture overflowed its hive-bin: cursor=%#x", cursor)
	}

	copy(b[format.HeaderSize:], format.HBINSignature)
	format.PutU32(b, format.HeaderSize+0x04, 0)
	format.PutU32(b, format.HeaderSize+0x08, hbinSize)

	copy(b, format.REGFSignature)
	format.PutU32(b, format.REGFRootCellOffset, rootOff)
	format.PutU32(b, format.REGFDataSizeOffset, hbinSize)
	format.PutU32(b, format.REGFMajorVersionOffset, 1)
	format.PutU32(b, format.REGFMinorVersionOffset, 5)
	format.PutU32(b, format.REGFCheckSumOffset, format.ComputeChecksum(b))

	path := filepath.Join(t.TempDir(), "fixture.hive")
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatalf("write fixture hive: %v", err)
	}
	return path
}
