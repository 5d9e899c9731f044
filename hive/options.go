package hive

// OpenOptions configures how a Hive handles borderline-valid input.
type OpenOptions struct {
	// MaxCellSize bounds how large a single cell's declared size may be
	// before it's treated as corruption, guarding against a crafted
	// length field driving an oversized allocation. Zero selects the
	// default (64 MiB).
	MaxCellSize int

	// Tolerant, when true, lets a handful of recoverable inconsistencies
	// (a VK's declared data length exceeding what the referenced cell
	// actually holds) return truncated data instead of failing outright.
	Tolerant bool

	// MaxRIDepth bounds ri indirection nesting. Zero selects the default
	// (32), matching the depth real hive layouts never exceed.
	MaxRIDepth int
}

const (
	defaultMaxCellSize = 64 << 20
	defaultMaxRIDepth  = 32
)

func (o OpenOptions) withDefaults() OpenOptions {
	if o.MaxCellSize <= 0 {
		o.MaxCellSize = defaultMaxCellSize
	}
	if o.MaxRIDepth <= 0 {
		o.MaxRIDepth = defaultMaxRIDepth
	}
	return o
}
