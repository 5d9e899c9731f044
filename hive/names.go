package hive

import (
	"golang.org/x/text/encoding/charmap"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

// decodeKeyName decodes an nk record's raw name bytes, picking
// Windows-1252 or UTF-16LE per the KEY_COMP_NAME flag.
func decodeKeyName(nk format.NKRecord) (string, error) {
	if nk.NameIsCompressed() {
		return decodeWindows1252(nk.NameRaw)
	}
	return buf.DecodeUTF16LE(nk.NameRaw), nil
}

// decodeValueName decodes a vk record's raw name bytes. A zero-length name
// denotes the key's unnamed ("Default") value.
func decodeValueName(vk format.VKRecord) (string, error) {
	if len(vk.NameRaw) == 0 {
		return "", nil
	}
	if vk.NameIsASCII() {
		return decodeWindows1252(vk.NameRaw)
	}
	return buf.DecodeUTF16LE(vk.NameRaw), nil
}

func decodeWindows1252(b []byte) (string, error) {
	out, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return "", corruptErr("windows-1252 name", err)
	}
	return string(out), nil
}
