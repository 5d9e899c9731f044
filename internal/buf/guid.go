package buf

import "fmt"

// GUIDSize is the on-disk size of a Windows GUID (_GUID) field.
const GUIDSize = 16

// GUID formats a 16-byte little-endian _GUID as the canonical
// 8-4-4-4-12 hyphenated string. Returns "" if b is shorter than GUIDSize.
func GUID(b []byte) string {
	if len(b) < GUIDSize {
		return ""
	}
	return fmt.Sprintf("%08X-%04X-%04X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		U32LE(b[0:4]), U16LE(b[4:6]), U16LE(b[6:8]),
		b[8], b[9], b[10], b[11], b[12], b[13], b[14], b[15])
}
