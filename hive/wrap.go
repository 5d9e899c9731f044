package hive

import (
	"errors"

	"github.com/NikKazakov/Windows-10-Registry-Parser/internal/format"
)

// wrapFormatErr maps a decode-layer error from internal/format into this
// package's typed *Error, the way a façade should translate a lower layer's
// sentinels into its own error taxonomy.
func wrapFormatErr(context string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, format.ErrSignatureMismatch):
		return signatureErr(context, err)
	case errors.Is(err, format.ErrTruncated):
		return boundsErr(context, err)
	case errors.Is(err, format.ErrFreeCell):
		return corruptErr(context, err)
	case errors.Is(err, format.ErrSanityLimit):
		return corruptErr(context, err)
	case errors.Is(err, format.ErrUnsupported):
		return corruptErr(context, err)
	default:
		return corruptErr(context, err)
	}
}
