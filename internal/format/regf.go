package format

import (
	"bytes"
	"fmt"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/buf"
)

// Header captures the full REGF header: the first 4096-byte page of a hive
// file. Windows stores it entirely in little-endian form.
//
//	Offset  Size  Field
//	0x000    4    'r' 'e' 'g' 'f'
//	0x004    4    Primary sequence number
//	0x008    4    Secondary sequence number
//	0x00C    8    Last write timestamp (FILETIME)
//	0x014    4    Major version
//	0x018    4    Minor version
//	0x01C    4    Type (0 = primary, 1 = log)
//	0x020    4    Format
//	0x024    4    Root cell offset, relative to the first hive-bin
//	0x028    4    Total size of hive-bin data
//	0x02C    4    Clustering factor
//	0x030   64    File name (as recorded by the OS that wrote the hive)
//	0x070   16    RmId (GUID)
//	0x080   16    LogId (GUID)
//	0x090    4    Flags
//	0x094   16    TmId (GUID)
//	0x0A4    4    GUID signature ("OfRg" for offline registry hives)
//	0x0A8    8    Last reorganized timestamp (FILETIME, or a sentinel)
//	0x1FC    4    Checksum (XOR of the first 127 dwords)
//	0xFC8   16    Thaw TmId (GUID)
//	0xFD8   16    Thaw RmId (GUID)
//	0xFE8   16    Thaw LogId (GUID)
//	0xFF8    4    Boot type
//	0xFFC    4    Boot recover
type Header struct {
	PrimarySequence   uint32
	SecondarySequence uint32
	LastWriteRaw      uint64
	MajorVersion      uint32
	MinorVersion      uint32
	Type              uint32
	Format            uint32
	RootCellOffset    uint32
	HiveBinsDataSize  uint32
	ClusteringFactor  uint32
	FileName          string
	RmID              string
	LogID             string
	Flags             uint32
	TmID              string
	GUIDSignature     uint32
	LastReorganized   uint64
	Checksum          uint32
	ThawTmID          string
	ThawRmID          string
	ThawLogID         string
	BootType          uint32
	BootRecover       uint32
}

// ParseHeader validates and decodes a REGF header. It does not verify the
// checksum; see Verify in the hive package for that.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, fmt.Errorf("regf header: %w", ErrTruncated)
	}
	if !bytes.Equal(b[:REGFSignatureSize], REGFSignature) {
		return Header{}, fmt.Errorf("regf header: %w", ErrSignatureMismatch)
	}

	fileName, err := decodeFileName(b[REGFFileNameOffset : REGFFileNameOffset+REGFFileNameSize])
	if err != nil {
		return Header{}, fmt.Errorf("regf header file name: %w", err)
	}

	return Header{
		PrimarySequence:   buf.U32LE(b[REGFPrimarySeqOffset:]),
		SecondarySequence: buf.U32LE(b[REGFSecondarySeqOffset:]),
		LastWriteRaw:      buf.U64LE(b[REGFTimeStampOffset:]),
		MajorVersion:      buf.U32LE(b[REGFMajorVersionOffset:]),
		MinorVersion:      buf.U32LE(b[REGFMinorVersionOffset:]),
		Type:              buf.U32LE(b[REGFTypeOffset:]),
		Format:            buf.U32LE(b[REGFFormatOffset:]),
		RootCellOffset:    buf.U32LE(b[REGFRootCellOffset:]),
		HiveBinsDataSize:  buf.U32LE(b[REGFDataSizeOffset:]),
		ClusteringFactor:  buf.U32LE(b[REGFClusterOffset:]),
		FileName:          fileName,
		RmID:              buf.GUID(b[REGFRmIDOffset:]),
		LogID:             buf.GUID(b[REGFLogIDOffset:]),
		Flags:             buf.U32LE(b[REGFFlagsOffset:]),
		TmID:              buf.GUID(b[REGFTmIDOffset:]),
		GUIDSignature:     buf.U32LE(b[REGFGuidSigOffset:]),
		LastReorganized:   buf.U64LE(b[REGFLastReorgTimeOffset:]),
		Checksum:          buf.U32LE(b[REGFCheckSumOffset:]),
		ThawTmID:          buf.GUID(b[REGFThawTmIdOffset:]),
		ThawRmID:          buf.GUID(b[REGFThawRmIdOffset:]),
		ThawLogID:         buf.GUID(b[REGFThawLogIdOffset:]),
		BootType:          buf.U32LE(b[REGFBootTypeOffset:]),
		BootRecover:       buf.U32LE(b[REGFBootRecovOffset:]),
	}, nil
}

// ComputeChecksum recomputes the XOR checksum Windows stores at 0x1FC: the
// XOR of the first 127 little-endian dwords of the header (bytes 0x000..0x1FB).
func ComputeChecksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < REGFChecksumDwords; i++ {
		sum ^= buf.U32LE(b[i*4:])
	}
	return sum
}

// decodeFileName trims the NUL padding from the fixed 64-byte file_name
// field and decodes it as UTF-16LE, matching how NK/VK non-ASCII names are
// stored.
func decodeFileName(b []byte) (string, error) {
	end := 0
	for end+1 < len(b) {
		if b[end] == 0 && b[end+1] == 0 {
			break
		}
		end += 2
	}
	return buf.DecodeUTF16LE(b[:end]), nil
}
