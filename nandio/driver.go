// Package nandio defines the NAND driver capability set the ring journal
// consumes. The real driver is out of scope for this module — it is
// specified only by this interface, following a vfs.FS-style
// capability-interface pattern: one small interface per concern, with a
// single concrete implementation provided for tests and demos.
package nandio

import "errors"

// ErrIO is wrapped by driver-level I/O failures (as opposed to bad-block
// or CRC conditions, which are reported through dedicated return values).
var ErrIO = errors.New("nandio: I/O failure")

// Geometry describes the fixed physical layout of the NAND device.
type Geometry struct {
	// Blocks is the total number of erase blocks on the device.
	Blocks uint32
	// PagesPerBlock is the number of pages in one erase block.
	PagesPerBlock uint32
	// PageDataSize is the size in bytes of a page's data region.
	PageDataSize int
	// PageSpareSize is the size in bytes of a page's spare (out-of-band) region.
	PageSpareSize int
}

// Driver is the capability set the ring journal requires from a NAND
// device. Implementations need not be safe for concurrent use — the ring
// journal serializes its own access.
type Driver interface {
	// Geometry returns the device's fixed physical layout.
	Geometry() Geometry

	// Erase programs block to the erased state.
	Erase(block uint32) error

	// IsBad reports whether block is marked bad.
	IsBad(block uint32) bool

	// MarkBad marks block as bad so future scans skip it.
	MarkBad(block uint32)

	// ReadPageSpare reads the spare area of (block, page) into buf, which
	// must be at least Geometry().PageSpareSize bytes.
	ReadPageSpare(block, page uint32, buf []byte) error

	// WritePageData writes the data region of (block, page). On success
	// it returns the ECC word the driver computed for the data written.
	WritePageData(block, page uint32, data []byte) (ecc uint32, err error)

	// WritePageSpare writes the spare area of (block, page).
	WritePageSpare(block, page uint32, spare []byte) error

	// WritePageWhole writes both data and spare regions of (block, page)
	// in one call. Used only by session-close padding.
	WritePageWhole(block, page uint32, data, spare []byte) error

	// MovePageData copies the data region of page from srcBlock to
	// dstBlock using scratch as a transfer buffer (len(scratch) must be at
	// least Geometry().PageDataSize). Used by bad-block migration.
	MovePageData(srcBlock, dstBlock, page uint32, scratch []byte) error
}
