package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrFreeCell indicates a cell marked free was encountered where an
	// in-use cell was required.
	ErrFreeCell = errors.New("format: cell not in use")
	// ErrUnsupported indicates a record variant this package does not decode.
	ErrUnsupported = errors.New("format: unsupported record variant")
	// ErrSanityLimit indicates a parsed count or length exceeded a sanity
	// bound, guarding against the excessive allocations a crafted file
	// could otherwise trigger.
	ErrSanityLimit = errors.New("format: value exceeds sanity limit")
	// ErrUnimplemented indicates a structure this format deliberately does
	// not decode further (sk security descriptors).
	ErrUnimplemented = errors.New("format: unimplemented")
)
