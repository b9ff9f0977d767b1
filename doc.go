// Package nandring implements a log-structured ring journal over a
// contiguous range of raw NAND erase blocks: append-only, crash-safe
// across power loss, and tolerant of blocks going bad during writes.
//
// A Ring is constructed with New, initialized with Init, configured with
// Start, and scanned for
// its write cursor with Mount before WritePage may be called. The
// underlying flash is accessed exclusively through the nandio.Driver
// capability interface, which the nandio/nandsim package implements in
// software for testing.
package nandring
