package format

import "testing"

func makeHeader() []byte {
	b := make([]byte, HeaderSize)
	copy(b, REGFSignature)
	PutU32(b, REGFRootCellOffset, 0x20)
	PutU32(b, REGFDataSizeOffset, 0x2000)
	PutU32(b, REGFMajorVersionOffset, 1)
	PutU32(b, REGFMinorVersionOffset, 5)
	return b
}

func TestParseHeaderHappyPath(t *testing.T) {
	b := makeHeader()
	h, err := ParseHeader(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.RootCellOffset != 0x20 {
		t.Fatalf("RootCellOffset = %#x", h.RootCellOffset)
	}
	if h.HiveBinsDataSize != 0x2000 {
		t.Fatalf("HiveBinsDataSize = %#x", h.HiveBinsDataSize)
	}
	if h.MajorVersion != 1 || h.MinorVersion != 5 {
		t.Fatalf("version = %d.%d", h.MajorVersion, h.MinorVersion)
	}
}

func TestParseHeaderBadSignature(t *testing.T) {
	b := makeHeader()
	copy(b, []byte{'x', 'x', 'x', 'x'})
	if _, err := ParseHeader(b); err == nil {
		t.Fatalf("expected signature error")
	}
}

func TestParseHeaderTruncated(t *testing.T) {
	if _, err := ParseHeader(make([]byte, 10)); err == nil {
		t.Fatalf("expected truncation error")
	}
}

func TestComputeChecksum(t *testing.T) {
	b := makeHeader()
	want := ComputeChecksum(b)
	// Flipping a byte within the checksum region must change the checksum.
	b[4] ^= 0xFF
	if got := ComputeChecksum(b); got == want {
		t.Fatalf("checksum did not change after mutation")
	}
}
