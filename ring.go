package nandring

import (
	"github.com/nandring/nandring/clock"
	"github.com/nandring/nandring/internal/ringlog"
)

// state is the lifecycle state machine of a Ring.
type state int

const (
	stateUninit state = iota
	stateIdle
	stateMounted
	stateStop
)

func (s state) String() string {
	switch s {
	case stateUninit:
		return "uninit"
	case stateIdle:
		return "idle"
	case stateMounted:
		return "mounted"
	case stateStop:
		return "stop"
	default:
		return "unknown"
	}
}

// Ring is a log-structured ring journal over a contiguous range of NAND
// erase blocks. A Ring is not safe for concurrent use by multiple
// goroutines; callers that need that must serialize their own access.
type Ring struct {
	cfg    Config
	logger ringlog.Logger
	clock  clock.Source

	state state

	// currentBlock/currentPage is the write cursor: the next page to be
	// written. A write that fills a block rolls the cursor over to page 0
	// of a freshly erased block before returning.
	currentBlock uint32
	currentPage  uint32

	// nextRecordID is the record ID that will be stamped on the next
	// written page.
	nextRecordID uint64

	// scratch is a single per-ring buffer sized PageDataSize+PageSpareSize,
	// reused across header reads, migration copies, and session-close
	// padding so a Ring never allocates per operation.
	scratch []byte
}

// New returns a Ring in the uninitialized state. Call Init before Start.
func New() *Ring {
	return &Ring{state: stateUninit}
}

// Init transitions a freshly constructed Ring to idle. It exists
// separately from New so a Ring can be zero-valued in a larger struct and
// explicitly initialized later.
func (r *Ring) Init() error {
	if r.state != stateUninit {
		return ErrWrongState
	}
	r.state = stateIdle
	return nil
}

// Start configures the ring and validates its geometry, but does not scan
// media — that happens in Mount. Start may only be called from idle.
func (r *Ring) Start(cfg Config) error {
	if r.state != stateIdle {
		return ErrWrongState
	}
	if err := cfg.validate(); err != nil {
		return err
	}

	r.cfg = cfg
	r.logger = ringlog.OrDefault(cfg.Logger)
	if cfg.Clock != nil {
		r.clock = cfg.Clock
	} else {
		r.clock = clock.Monotonic()
	}

	geom := cfg.Driver.Geometry()
	r.scratch = make([]byte, geom.PageDataSize+geom.PageSpareSize)

	return nil
}

// scratchSpareOffset returns the offset within r.scratch at which the
// spare-area view begins; the data-area view occupies the bytes before it.
func (r *Ring) scratchSpareOffset() int {
	return r.cfg.Driver.Geometry().PageDataSize
}

// scratchData returns the data-area view of the shared scratch buffer.
func (r *Ring) scratchData() []byte {
	return r.scratch[:r.scratchSpareOffset()]
}

// scratchSpare returns the spare-area view of the shared scratch buffer.
func (r *Ring) scratchSpare() []byte {
	geom := r.cfg.Driver.Geometry()
	off := r.scratchSpareOffset()
	return r.scratch[off : off+geom.PageSpareSize]
}

// Mount scans the configured range, verifies viability, locates the write
// cursor, and closes the session the previous mount left open, whether it
// ended in Unmount or in a power loss. On success the ring transitions to
// mounted. Mount requires a prior Start.
func (r *Ring) Mount() error {
	if r.state != stateIdle || r.cfg.Driver == nil {
		return ErrWrongState
	}
	if err := r.recover(); err != nil {
		return err
	}
	r.state = stateMounted
	return nil
}

// TotalGood returns the number of blocks in the configured range not
// currently marked bad.
func (r *Ring) TotalGood() (int, error) {
	if r.state != stateMounted {
		return 0, ErrNotMounted
	}
	return r.totalGood(), nil
}

// Unmount returns the ring to idle. No media access occurs.
func (r *Ring) Unmount() error {
	if r.state != stateMounted {
		return ErrNotMounted
	}
	r.state = stateIdle
	return nil
}

// Stop releases the ring's configuration and scratch buffer. Stop is
// terminal: Init, Start and Mount all return ErrWrongState on a stopped
// ring.
func (r *Ring) Stop() error {
	if r.state != stateIdle {
		return ErrNotIdle
	}
	r.state = stateStop
	r.scratch = nil
	r.cfg = Config{}
	return nil
}

// CurrentBlock returns the block the write cursor currently occupies.
// Exposed for tests that need to drive the underlying driver directly to
// simulate a crash mid-write.
func (r *Ring) CurrentBlock() uint32 { return r.currentBlock }

// CurrentPage returns the page within CurrentBlock the write cursor
// currently occupies.
func (r *Ring) CurrentPage() uint32 { return r.currentPage }

// NextRecordID returns the record ID that will be assigned to the next
// successfully written page.
func (r *Ring) NextRecordID() uint64 { return r.nextRecordID }
