package nandring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWriteFailureMigratesAlreadySealedPages checks that a write
// failure partway through a block migrates its already-sealed pages to a
// fresh block, marks the old block bad, and completes the failing write
// at the same page index on the new block with the id sequence unbroken.
func TestWriteFailureMigratesAlreadySealedPages(t *testing.T) {
	r, sim := newTestRing(t)
	mustMount(t, r)

	failedBlock := r.CurrentBlock()
	originals := make([][]byte, 5)
	for i := 0; i < 5; i++ {
		originals[i] = pageOfByte(byte(0x10 + i))
		require.NoError(t, r.WritePage(originals[i]))
	}

	sim.FailDataWrite(failedBlock, 5, 1)
	lastData := pageOfByte(0x99)
	require.NoError(t, r.WritePage(lastData))

	require.True(t, sim.IsBad(failedBlock))
	newBlock := r.CurrentBlock()
	require.NotEqual(t, failedBlock, newBlock)

	for i := 0; i < 5; i++ {
		require.Equal(t, originals[i], sim.RawPageData(newBlock, uint32(i)))
	}
	require.Equal(t, lastData, sim.RawPageData(newBlock, 5))
	require.Equal(t, uint64(7), r.NextRecordID())
}

// TestMigrateReturnsRingFullyBadWhenExhausted ensures the bounded retry
// loop surfaces a distinct error instead of spinning forever when no
// target block can be erased.
func TestMigrateReturnsRingFullyBadWhenExhausted(t *testing.T) {
	r, sim := newTestRing(t)
	mustMount(t, r)

	for b := uint32(0); b < testLength; b++ {
		if b != r.CurrentBlock() {
			sim.MarkBad(b)
		}
	}

	_, err := r.migrate(r.CurrentBlock(), 1)
	require.ErrorIs(t, err, ErrRingFullyBad)
}

// TestMigrateExhaustionInvokesFatalHandler checks that exhausting the
// migration retry loop on move failures (as opposed to erase failures)
// reaches the logger's Fatalf before returning ErrRingFullyBad.
func TestMigrateExhaustionInvokesFatalHandler(t *testing.T) {
	r, sim, fatalMsgs := newTestRingWithFatalHandler(t)
	mustMount(t, r)

	failedBlock := r.CurrentBlock()
	for b := uint32(0); b < testLength; b++ {
		if b != failedBlock {
			sim.FailMoveTo(b, 1000)
		}
	}

	_, err := r.migrate(failedBlock, 1)
	require.ErrorIs(t, err, ErrRingFullyBad)
	require.NotEmpty(t, *fatalMsgs)
}
