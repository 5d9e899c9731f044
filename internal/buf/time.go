package buf

import "time"

const (
	filetimeOffset = 116444736000000000 // FILETIME epoch (1601) to Unix epoch, in 100ns units
	filetimeUnit   = 100                // FILETIME ticks are 100ns
)

// FiletimeToTime converts a Windows FILETIME value (100ns ticks since
// 1601-01-01 UTC) to a time.Time.
func FiletimeToTime(v uint64) time.Time {
	if v <= filetimeOffset {
		return time.Unix(0, 0).UTC()
	}
	ns := int64((v - filetimeOffset) * filetimeUnit)
	sec := ns / int64(time.Second)
	nsec := ns % int64(time.Second)
	return time.Unix(sec, nsec).UTC()
}
