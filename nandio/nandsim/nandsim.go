// Package nandsim implements a software-simulated NAND device satisfying
// nandio.Driver, for tests and the ringdemo CLI. It follows a
// capability-interface pattern, one small interface per concern, but for
// a byte-addressable erase/program/read device rather than a POSIX
// filesystem, and adds fault injection (FailDataWrite, FailSpareWrite,
// FailWholeWrite, FailErase, FailMoveTo) so tests can force specific operations to fail at
// specific coordinates.
package nandsim

import (
	"fmt"

	"github.com/nandring/nandring/internal/ringcrc"
	"github.com/nandring/nandring/nandio"
)

// erasedByte is the value an erased NAND cell reads back as.
const erasedByte = 0xFF

type page struct {
	data  []byte
	spare []byte
}

type block struct {
	bad   bool
	pages []page
}

// faultKey addresses a single (block, page) pair for one-shot fault
// injection.
type faultKey struct {
	block, page uint32
}

// NAND is an in-memory simulated NAND device.
type NAND struct {
	geom   nandio.Geometry
	blocks []block

	failData  map[faultKey]int
	failSpare map[faultKey]int
	failWhole map[faultKey]int
	failErase map[uint32]int
	failMove  map[uint32]int // keyed by destination block
}

// New creates a simulated NAND device of the given geometry, fully erased
// and with no bad blocks.
func New(geom nandio.Geometry) *NAND {
	n := &NAND{
		geom:      geom,
		blocks:    make([]block, geom.Blocks),
		failData:  make(map[faultKey]int),
		failSpare: make(map[faultKey]int),
		failWhole: make(map[faultKey]int),
		failErase: make(map[uint32]int),
		failMove:  make(map[uint32]int),
	}
	for b := range n.blocks {
		n.blocks[b].pages = make([]page, geom.PagesPerBlock)
		eraseBlockPages(&n.blocks[b], geom)
	}
	return n
}

func eraseBlockPages(b *block, geom nandio.Geometry) {
	for p := range b.pages {
		b.pages[p].data = erasedBuf(geom.PageDataSize)
		b.pages[p].spare = erasedBuf(geom.PageSpareSize)
	}
}

func erasedBuf(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = erasedByte
	}
	return buf
}

// Geometry implements nandio.Driver.
func (n *NAND) Geometry() nandio.Geometry { return n.geom }

// Erase implements nandio.Driver.
func (n *NAND) Erase(blk uint32) error {
	if n.consumeFault2(n.failErase, blk) {
		return fmt.Errorf("nandsim: injected erase failure on block %d: %w", blk, nandio.ErrIO)
	}
	eraseBlockPages(&n.blocks[blk], n.geom)
	return nil
}

// IsBad implements nandio.Driver.
func (n *NAND) IsBad(blk uint32) bool {
	return n.blocks[blk].bad
}

// MarkBad implements nandio.Driver.
func (n *NAND) MarkBad(blk uint32) {
	n.blocks[blk].bad = true
}

// ReadPageSpare implements nandio.Driver.
func (n *NAND) ReadPageSpare(blk, pg uint32, buf []byte) error {
	copy(buf, n.blocks[blk].pages[pg].spare)
	return nil
}

// WritePageData implements nandio.Driver. The returned ECC is a stand-in
// for whatever the real driver's ECC engine would compute; the ring
// treats it as opaque.
func (n *NAND) WritePageData(blk, pg uint32, data []byte) (uint32, error) {
	if n.consumeFault(n.failData, faultKey{blk, pg}) {
		return 0, fmt.Errorf("nandsim: injected data write failure at block %d page %d: %w", blk, pg, nandio.ErrIO)
	}
	copy(n.blocks[blk].pages[pg].data, data)
	return ringcrc.Value(data), nil
}

// WritePageSpare implements nandio.Driver.
func (n *NAND) WritePageSpare(blk, pg uint32, spare []byte) error {
	if n.consumeFault(n.failSpare, faultKey{blk, pg}) {
		return fmt.Errorf("nandsim: injected spare write failure at block %d page %d: %w", blk, pg, nandio.ErrIO)
	}
	copy(n.blocks[blk].pages[pg].spare, spare)
	return nil
}

// WritePageWhole implements nandio.Driver.
func (n *NAND) WritePageWhole(blk, pg uint32, data, spare []byte) error {
	if n.consumeFault(n.failWhole, faultKey{blk, pg}) {
		return fmt.Errorf("nandsim: injected whole-page write failure at block %d page %d: %w", blk, pg, nandio.ErrIO)
	}
	copy(n.blocks[blk].pages[pg].data, data)
	copy(n.blocks[blk].pages[pg].spare, spare)
	return nil
}

// MovePageData implements nandio.Driver.
func (n *NAND) MovePageData(srcBlk, dstBlk, pg uint32, scratch []byte) error {
	if n.consumeFault2(n.failMove, dstBlk) {
		return fmt.Errorf("nandsim: injected move failure to block %d: %w", dstBlk, nandio.ErrIO)
	}
	copy(scratch, n.blocks[srcBlk].pages[pg].data)
	copy(n.blocks[dstBlk].pages[pg].data, scratch)
	return nil
}

func (n *NAND) consumeFault(m map[faultKey]int, k faultKey) bool {
	if m[k] <= 0 {
		return false
	}
	m[k]--
	return true
}

func (n *NAND) consumeFault2(m map[uint32]int, k uint32) bool {
	if m[k] <= 0 {
		return false
	}
	m[k]--
	return true
}
