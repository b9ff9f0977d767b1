package nandring

// Ring geometry: physical blocks are addressed directly, but all scanning
// is done in terms of "distance from StartBlock" so wraparound is a
// modulo operation rather than a physical block-number comparison.

// blockIndex returns b's offset from StartBlock, in [0, Length).
func (r *Ring) blockIndex(b uint32) uint32 {
	return b - r.cfg.StartBlock
}

// blockAt returns the physical block at offset idx from StartBlock,
// wrapping modulo Length.
func (r *Ring) blockAt(idx uint32) uint32 {
	return r.cfg.StartBlock + idx%r.cfg.Length
}

// totalGood counts the blocks in the configured range not marked bad.
func (r *Ring) totalGood() int {
	good := 0
	for i := uint32(0); i < r.cfg.Length; i++ {
		if !r.cfg.Driver.IsBad(r.blockAt(i)) {
			good++
		}
	}
	return good
}

// firstGoodBlock returns the first good block in the range. It is defined
// as the next good block after the last slot of the range, which is
// StartBlock itself when StartBlock is good.
func (r *Ring) firstGoodBlock() (uint32, error) {
	lastSlot := r.cfg.StartBlock + r.cfg.Length - 1
	return r.nextGood(lastSlot)
}

// nextGood returns the next good block strictly after current, scanning
// forward and wrapping around the range. It never returns current itself:
// if current is the only good block in the range, it returns
// ErrRingFullyBad rather than looping back to current (a deliberate
// tightening meant to keep callers from ever retrying the block that just
// failed).
//
// The scan is bounded by Length steps, so a ring with no good block at all
// returns ErrRingFullyBad instead of spinning forever.
func (r *Ring) nextGood(current uint32) (uint32, error) {
	idx := r.blockIndex(current)
	for i := uint32(1); i <= r.cfg.Length; i++ {
		cand := r.blockAt(idx + i)
		if cand == current {
			break
		}
		if !r.cfg.Driver.IsBad(cand) {
			return cand, nil
		}
	}
	r.logger.Fatalf("no good block found scanning from block %d, ring is fully bad", current)
	return 0, ErrRingFullyBad
}

// eraseNext finds the next good block after current and erases it,
// marking and skipping any block that fails to erase. The search is
// bounded by Length attempts total; if every remaining good block fails to
// erase, it returns ErrRingFullyBad.
func (r *Ring) eraseNext(current uint32) (uint32, error) {
	anchor := current
	for attempt := uint32(0); attempt < r.cfg.Length; attempt++ {
		cand, err := r.nextGood(anchor)
		if err != nil {
			return 0, err
		}
		if err := r.cfg.Driver.Erase(cand); err == nil {
			return cand, nil
		}
		r.logger.Warnf("erase failed on block %d, marking bad", cand)
		r.cfg.Driver.MarkBad(cand)
		anchor = cand
	}
	r.logger.Fatalf("every good block starting from %d failed to erase, ring is fully bad", current)
	return 0, ErrRingFullyBad
}
