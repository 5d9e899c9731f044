package format

import "testing"

// makeNKPayload builds a minimal valid NK payload (no leading cell-size
// header — DecodeNK operates on the cell payload directly) and lets the
// caller mutate specific fields before decoding.
func makeNKPayload(name string, mutate func(b []byte)) []byte {
	b := make([]byte, NKNameOffset+len(name))
	copy(b, NKSignature)
	PutU16(b, NKFlagsOffset, NKFlagCompressedName)
	PutU64(b, NKLastWriteOffset, 0x01D8000000000000)
	PutU32(b, NKParentOffset, 0x30)
	PutU32(b, NKSubkeyCountOffset, 2)
	PutU32(b, NKSubkeyListOffset, 0x100)
	PutU32(b, NKValueCountOffset, 3)
	PutU32(b, NKValueListOffset, 0x200)
	PutU32(b, NKSecurityOffset, 0x300)
	PutU32(b, NKClassNameOffset, InvalidOffset)
	PutU16(b, NKNameLenOffset, uint16(len(name)))
	copy(b[NKNameOffset:], name)
	if mutate != nil {
		mutate(b)
	}
	return b
}

func TestDecodeNKHappyPath(t *testing.T) {
	b := makeNKPayload("Software", nil)
	nk, err := DecodeNK(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !nk.NameIsCompressed() {
		t.Fatalf("expected compressed name flag")
	}
	if nk.SubkeyCount != 2 || nk.ValueCount != 3 {
		t.Fatalf("counts = %d/%d", nk.SubkeyCount, nk.ValueCount)
	}
	if string(nk.NameRaw) != "Software" {
		t.Fatalf("name = %q", nk.NameRaw)
	}
}

func TestDecodeNKBadSignature(t *testing.T) {
	b := makeNKPayload("x", func(b []byte) { b[0] = 'z' })
	if _, err := DecodeNK(b); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestDecodeNKTruncatedName(t *testing.T) {
	b := makeNKPayload("abc", func(b []byte) { PutU16(b, NKNameLenOffset, 0xFFFF) })
	if _, err := DecodeNK(b); err == nil {
		t.Fatalf("expected truncated name error")
	}
}

func TestDecodeNKSubkeyCountSanityLimit(t *testing.T) {
	b := makeNKPayload("abc", func(b []byte) { PutU32(b, NKSubkeyCountOffset, MaxSubkeyCount+1) })
	if _, err := DecodeNK(b); err == nil {
		t.Fatalf("expected sanity-limit error")
	}
}

func TestDecodeNKTooShort(t *testing.T) {
	if _, err := DecodeNK(make([]byte, 10)); err == nil {
		t.Fatalf("expected truncation error")
	}
}
