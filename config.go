package nandring

import (
	"github.com/nandring/nandring/clock"
	"github.com/nandring/nandring/internal/ringlog"
	"github.com/nandring/nandring/nandio"
)

// MinRingLength is the minimum number of blocks a ring may span.
const MinRingLength = 64

// Config is the ring's immutable-after-Start configuration.
type Config struct {
	// Driver is the NAND capability set this ring writes through.
	Driver nandio.Driver

	// StartBlock is the first physical block of the ring's range, inclusive.
	StartBlock uint32

	// Length is the number of blocks in the ring's range. Must be >= MinRingLength.
	Length uint32

	// UTCCorrection is the host-supplied UTC offset stamped into every
	// page header. SetUTCCorrection returns ErrNotImplemented and does not
	// change it.
	UTCCorrection uint32

	// Clock supplies boot-relative microseconds for page headers. If nil,
	// a real monotonic clock is used.
	Clock clock.Source

	// Logger receives diagnostic messages. If nil, a default WARN-level
	// logger writing to stderr is used.
	Logger ringlog.Logger
}

// endBlock returns the exclusive end of the configured range.
func (c Config) endBlock() uint32 {
	return c.StartBlock + c.Length
}

// validate checks the configuration for errors that are fatal at Start
// time: a nil driver, a range too short or out of bounds, or a spare
// area too small to hold a page header.
func (c Config) validate() error {
	if c.Driver == nil {
		return ErrInvalidConfig
	}
	if c.Length < MinRingLength {
		return ErrInvalidConfig
	}
	geom := c.Driver.Geometry()
	if c.endBlock() > geom.Blocks {
		return ErrInvalidConfig
	}
	if geom.PageSpareSize < HeaderSize {
		return ErrInvalidConfig
	}
	if geom.PageDataSize <= 0 {
		return ErrInvalidConfig
	}
	return nil
}
