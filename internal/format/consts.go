// Package format decodes the fixed-layout structures of the Windows
// registry hive file format: the regf header, hive-bin headers, and the
// cell taxonomy (nk/vk/sk/db/li/lf/lh/ri) nested inside them. Decoders here
// are pure functions over byte slices; they know nothing about navigating
// a tree of keys or resolving cross-cell references, which is left to the
// hive package.
package format

var (
	// REGFSignature is the four-byte signature at the start of every hive file.
	REGFSignature = []byte{'r', 'e', 'g', 'f'}

	// HBINSignature is the four-byte signature at the beginning of each hive bin.
	HBINSignature = []byte{'h', 'b', 'i', 'n'}

	// NKSignature identifies an NK (Node Key) cell payload.
	NKSignature = []byte{'n', 'k'}

	// VKSignature identifies a VK (Value Key) cell payload.
	VKSignature = []byte{'v', 'k'}

	// LFSignature, LHSignature, and LISignature identify subkey list variants.
	// LF/LH carry a hint alongside each offset; LI is a bare offset list.
	LFSignature = []byte{'l', 'f'}
	LHSignature = []byte{'l', 'h'}
	LISignature = []byte{'l', 'i'}

	// RISignature identifies an indirect subkey list: one level of
	// indirection over a set of LF/LH/LI sub-lists.
	RISignature = []byte{'r', 'i'}

	// SKSignature identifies a security descriptor (SK) cell.
	SKSignature = []byte{'s', 'k'}

	// DBSignature identifies a Big Data (DB) record for values too large
	// to fit inline or in a single cell.
	DBSignature = []byte{'d', 'b'}
)

const (
	// HeaderSize is the size of the REGF header: the first page of the file.
	HeaderSize = 4096

	// HBINHeaderSize is the size of the HBIN header in bytes.
	HBINHeaderSize = 0x20

	// CellHeaderSize is the 4-byte signed-size prefix preceding every cell.
	CellHeaderSize = 4

	// HiveDataBase is the file offset of the first hive-bin (end of the header page).
	HiveDataBase = 0x1000

	// HBINAlignment is the required alignment of hive-bins: 4 KiB.
	HBINAlignment = 0x1000

	// CellAlignment is the required alignment of cells within a hive-bin.
	CellAlignment = 8

	// InvalidOffset marks an unused/absent cell-offset field.
	InvalidOffset = 0xFFFFFFFF

	// SignatureSize is the width of a two-byte record signature (nk, vk, sk, db, li, lf, lh, ri).
	SignatureSize = 2

	// ListHeaderSize is the 4-byte signature+count header shared by li/lf/lh/ri.
	ListHeaderSize = 4

	// OffsetFieldSize is the width of a single cell-offset field.
	OffsetFieldSize = 4

	// LIEntrySize is the width of one li entry: a bare cell offset.
	LIEntrySize = 4

	// LFEntrySize is the width of one lf/lh entry: an offset plus a 4-byte hint/hash.
	LFEntrySize = 8

	// DWORDSize is the size of REG_DWORD / REG_DWORD_BIG_ENDIAN payloads.
	DWORDSize = 4

	// QWORDSize is the size of REG_QWORD payloads.
	QWORDSize = 8
)

// NK (key node) field offsets, relative to the start of the cell payload
// (i.e. right after the 4-byte cell-size header).
const (
	NKSignatureOffset      = 0x00 // "nk"
	NKFlagsOffset          = 0x02
	NKLastWriteOffset      = 0x04 // FILETIME
	NKAccessBitsOffset     = 0x0C // unused here
	NKParentOffset         = 0x10
	NKSubkeyCountOffset    = 0x14
	NKVolSubkeyCountOffset = 0x18 // volatile, unused here
	NKSubkeyListOffset     = 0x1C
	NKVolSubkeyListOffset  = 0x20 // volatile, unused here
	NKValueCountOffset     = 0x24
	NKValueListOffset      = 0x28
	NKSecurityOffset       = 0x2C
	NKClassNameOffset      = 0x30
	NKMaxNameLenOffset     = 0x34
	NKMaxClassLenOffset    = 0x38
	NKMaxValueNameOffset   = 0x3C
	NKMaxValueDataOffset   = 0x40
	NKWorkVarOffset        = 0x44 // unused here
	NKNameLenOffset        = 0x48
	NKClassLenOffset       = 0x4A
	NKNameOffset           = 0x4C

	NKFlagCompressedName = 0x20 // KEY_COMP_NAME: name stored as ASCII/Windows-1252

	NKFixedHeaderSize = NKNameOffset
	NKMinSize         = NKFixedHeaderSize
)

// Sanity limits bound fields that are otherwise trusted uint32/uint16
// values from a potentially-crafted file, so a single corrupt count field
// cannot drive an enormous allocation or an unbounded loop.
const (
	MaxSubkeyCount  = 4_000_000
	MaxValueCount   = 4_000_000
	MaxNameLen      = 32_767 // matches MaxNameLength on NK/VK structures
	MaxClassLen     = 32_767
	MaxValueDataLen = 1 << 30 // 1 GiB; far beyond any real registry value
)

// VK (value) field offsets, relative to the start of the cell payload.
const (
	VKSignatureOffset = 0x00 // "vk"
	VKNameLenOffset   = 0x02
	VKDataLenOffset   = 0x04 // high bit: inline flag; low 31 bits: length
	VKDataOffOffset   = 0x08 // cell offset, or inline payload when DataInline
	VKTypeOffset      = 0x0C
	VKFlagsOffset     = 0x10
	VKSpareOffset     = 0x12
	VKNameOffset      = 0x14

	VKFlagASCIIName  = 0x0001
	VKDataInlineBit  = 0x80000000
	VKDataLengthMask = 0x7FFFFFFF

	VKMinSize = VKNameOffset
)

// List-record (li/lf/lh/ri) common header offsets.
const (
	IdxSignatureOffset = 0x00
	IdxCountOffset     = 0x02
	IdxListOffset      = 0x04
)

// DB (Big Data) record field offsets, relative to the start of the cell payload.
const (
	DBSignatureOffset = 0x00 // "db"
	DBCountOffset     = 0x02 // uint16, number of data blocks (2..65535)
	DBListOffset      = 0x04 // uint32, cell offset of the blocklist
	DBUnknown1Offset  = 0x08 // uint32, unused

	DBHeaderSize = DBUnknown1Offset + 4
	DBMinSize    = DBHeaderSize

	// DBChunkSize is the number of value-data bytes taken from each data
	// block of a big-data chain.
	DBChunkSize = 16344

	DBMinBlockCount = 2
	DBMaxBlockCount = 65535

	// DBBlockPadding trims the next cell's header, which trails every data
	// block inside its own cell.
	DBBlockPadding = 4
)

// REGF header field offsets, relative to the start of the file.
const (
	REGFSignatureOffset     = 0x000
	REGFSignatureSize       = 4
	REGFPrimarySeqOffset    = 0x004
	REGFSecondarySeqOffset  = 0x008
	REGFTimeStampOffset     = 0x00C // FILETIME
	REGFMajorVersionOffset  = 0x014
	REGFMinorVersionOffset  = 0x018
	REGFTypeOffset          = 0x01C
	REGFFormatOffset        = 0x020
	REGFRootCellOffset      = 0x024
	REGFDataSizeOffset      = 0x028
	REGFClusterOffset       = 0x02C
	REGFFileNameOffset      = 0x030
	REGFFileNameSize        = 64
	REGFRmIDOffset          = 0x070 // GUID
	REGFLogIDOffset         = 0x080 // GUID
	REGFFlagsOffset         = 0x090
	REGFTmIDOffset          = 0x094 // GUID
	REGFGuidSigOffset       = 0x0A4
	REGFLastReorgTimeOffset = 0x0A8 // FILETIME
	REGFCheckSumOffset      = 0x1FC

	REGFThawTmIdOffset  = 0xFC8 // GUID
	REGFThawRmIdOffset  = 0xFD8 // GUID
	REGFThawLogIdOffset = 0xFE8 // GUID, corrected (non-overlapping) layout
	REGFBootTypeOffset  = 0xFF8
	REGFBootRecovOffset = 0xFFC

	// REGFChecksumRegionLen/REGFChecksumDwords: the checksum covers the
	// first 508 bytes of the header (127 little-endian dwords), XORed
	// together.
	REGFChecksumRegionLen = 508
	REGFChecksumDwords    = 127
)

// SK (security descriptor) field offsets. The descriptor bytes themselves
// are intentionally never decoded further; see sk.go.
const (
	SKSignatureOffset        = 0x00
	SKReservedOffset         = 0x02
	SKFlinkOffset            = 0x04
	SKBlinkOffset            = 0x08
	SKReferenceCountOffset   = 0x0C
	SKDescriptorLengthOffset = 0x10
	SKDescriptorOffset       = 0x14

	SKHeaderSize = SKDescriptorOffset
	SKMinSize    = SKHeaderSize
)

// Registry value type codes (REG_*), as stored in a VK record's Type field.
const (
	RegNone                      uint32 = 0
	RegSZ                        uint32 = 1
	RegExpandSZ                  uint32 = 2
	RegBinary                    uint32 = 3
	RegDWORD                     uint32 = 4
	RegDWORDBigEndian            uint32 = 5
	RegLink                      uint32 = 6
	RegMultiSZ                   uint32 = 7
	RegResourceList              uint32 = 8
	RegFullResourceDescriptor    uint32 = 9
	RegResourceRequirementsList  uint32 = 10
	RegQWORD                     uint32 = 11
)
