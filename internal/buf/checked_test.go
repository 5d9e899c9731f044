package buf

import "testing"

func TestCheckedReadsHappyPath(t *testing.T) {
	b := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	u16, err := CheckedU16(b, 0)
	if err != nil || u16 != 0x0201 {
		t.Fatalf("CheckedU16 = %#x, %v", u16, err)
	}
	u32, err := CheckedU32(b, 0)
	if err != nil || u32 != 0x04030201 {
		t.Fatalf("CheckedU32 = %#x, %v", u32, err)
	}
	u64, err := CheckedU64(b, 0)
	if err != nil || u64 != 0x0807060504030201 {
		t.Fatalf("CheckedU64 = %#x, %v", u64, err)
	}
}

func TestCheckedReadsOutOfBounds(t *testing.T) {
	b := []byte{0x01, 0x02}
	if _, err := CheckedU32(b, 0); err == nil {
		t.Fatalf("expected bounds error")
	}
	if _, err := CheckedU16(b, 1); err == nil {
		t.Fatalf("expected bounds error")
	}
}
