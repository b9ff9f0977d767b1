package nandring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nandring/nandring/clock"
)

// TestMonotonicIDsSurviveRemount checks that after any sequence of
// writes and a remount, the reconstructed cursor's next id equals the
// maximum written id plus one.
func TestMonotonicIDsSurviveRemount(t *testing.T) {
	r, sim := newTestRing(t)
	mustMount(t, r)

	var lastID uint64
	for i := 0; i < 20; i++ {
		require.NoError(t, r.WritePage(pageOfByte(byte(i))))
		lastID = r.NextRecordID() - 1
	}
	require.NoError(t, r.Unmount())

	r2 := New()
	require.NoError(t, r2.Init())
	require.NoError(t, r2.Start(Config{
		Driver:     sim,
		StartBlock: r.cfg.StartBlock,
		Length:     r.cfg.Length,
		Clock:      clock.Sequence(1),
	}))
	require.NoError(t, r2.Mount())

	require.Equal(t, lastID+1, r2.NextRecordID())
}

// TestBadBlockTransparencyCursorNeverLandsOnBad checks that bad blocks
// scattered through the range never end up under the cursor.
func TestBadBlockTransparencyCursorNeverLandsOnBad(t *testing.T) {
	r, sim := newTestRing(t)
	for b := uint32(0); b < testLength; b += 2 {
		sim.MarkBad(b)
	}
	mustMount(t, r)

	for i := 0; i < testPagesPerBlock*8; i++ {
		require.NoError(t, r.WritePage(pageOfByte(byte(i))))
		require.False(t, sim.IsBad(r.CurrentBlock()))
	}
}

// TestHeaderFieldsRoundTripThroughDriver checks that the spare header
// round-trips field for field through the simulated driver.
func TestHeaderFieldsRoundTripThroughDriver(t *testing.T) {
	r, sim := newTestRing(t)
	r.cfg.UTCCorrection = 99
	mustMount(t, r)

	require.NoError(t, r.WritePage(pageOfByte(0x5A)))

	spare := sim.RawPageSpare(0, 0)
	h, valid := decodeHeader(spare)
	require.True(t, valid)
	require.Equal(t, uint64(1), h.RecordID)
	require.Equal(t, uint32(99), h.UTCCorrection)
	require.Equal(t, notBadMark, h.BadMark)
}
