package nandring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestFreshMountFormatsAtStartBlock checks that a never-written ring
// mounts with its cursor at start_block.
func TestFreshMountFormatsAtStartBlock(t *testing.T) {
	r, _ := newTestRing(t)
	mustMount(t, r)

	require.Equal(t, r.cfg.StartBlock, r.CurrentBlock())
	require.Equal(t, uint32(0), r.CurrentPage())
	require.Equal(t, firstRecordID, r.NextRecordID())
}

// TestCleanRemountAdvancesPastWrittenBlock checks that after
// writing a few pages, unmounting, and remounting, the cursor lands on
// the block after the one holding the writes, and the id sequence
// continues unbroken.
func TestCleanRemountAdvancesPastWrittenBlock(t *testing.T) {
	r, _ := newTestRing(t)
	mustMount(t, r)

	require.NoError(t, r.WritePage(pageOfByte(0x11)))
	require.NoError(t, r.WritePage(pageOfByte(0x22)))
	require.NoError(t, r.WritePage(pageOfByte(0x33)))

	require.NoError(t, r.Unmount())
	require.NoError(t, r.Mount())

	require.Equal(t, uint32(0), r.CurrentPage())
	require.Equal(t, r.cfg.StartBlock+1, r.CurrentBlock())
	require.Equal(t, uint64(4), r.NextRecordID())
}

// TestCrashBeforeSpareWriteIsRecovered checks that a data write
// lands but the matching spare seal never happens (the simulated power
// cut), so that page reads back WASTED and the next mount resumes with
// the id after the last sealed page, on the following block.
func TestCrashBeforeSpareWriteIsRecovered(t *testing.T) {
	r, sim := newTestRing(t)
	mustMount(t, r)

	for i := 0; i < 3; i++ {
		require.NoError(t, r.WritePage(pageOfByte(byte(0x40+i))))
	}

	// Simulate a crash: data lands, spare never gets sealed.
	_, err := sim.WritePageData(r.CurrentBlock(), r.CurrentPage(), pageOfByte(0x99))
	require.NoError(t, err)

	r2 := New()
	require.NoError(t, r2.Init())
	require.NoError(t, r2.Start(Config{
		Driver:     sim,
		StartBlock: r.cfg.StartBlock,
		Length:     r.cfg.Length,
		Clock:      r.clock,
	}))
	require.NoError(t, r2.Mount())

	require.Equal(t, uint64(4), r2.NextRecordID())
	require.Equal(t, r.cfg.StartBlock+1, r2.CurrentBlock())
}

// TestMountIdempotentAcrossRepeatedCalls checks that mounting
// twice in a row without intervening writes yields identical cursor
// state.
func TestMountIdempotentAcrossRepeatedCalls(t *testing.T) {
	r, _ := newTestRing(t)
	mustMount(t, r)
	require.NoError(t, r.WritePage(pageOfByte(0x01)))
	require.NoError(t, r.Unmount())
	require.NoError(t, r.Mount())

	block1, page1, id1 := r.CurrentBlock(), r.CurrentPage(), r.NextRecordID()

	require.NoError(t, r.Unmount())
	require.NoError(t, r.Mount())

	require.Equal(t, block1, r.CurrentBlock())
	require.Equal(t, page1, r.CurrentPage())
	require.Equal(t, id1, r.NextRecordID())
}

// TestMountFailsWhenRingExhausted checks that marking more than half
// the blocks bad before mount fails the mount outright.
func TestMountFailsWhenRingExhausted(t *testing.T) {
	r, sim := newTestRing(t)
	for b := uint32(0); b < testLength/2+1; b++ {
		sim.MarkBad(b)
	}
	err := r.Mount()
	require.ErrorIs(t, err, ErrRingExhausted)
}

// TestMountSucceedsAtExactlyHalfBad checks the bad-block
// transparency holds right up to floor(length/2) bad blocks.
func TestMountSucceedsAtExactlyHalfBad(t *testing.T) {
	r, sim := newTestRing(t)
	for b := uint32(0); b < testLength/2; b++ {
		sim.MarkBad(b)
	}
	require.NoError(t, r.Mount())

	for b := uint32(0); b < testLength; b++ {
		require.False(t, sim.IsBad(r.CurrentBlock()) && b == r.CurrentBlock())
	}
}
