package nandring

// migrate handles a write failure at (failedBlock, failedPage): it erases
// a fresh block and copies every already-sealed page of failedBlock (pages
// [0, failedPage)) across to it, then reports the new block as the
// replacement write target. failedBlock itself is left marked bad by the
// caller.
//
// Each retry re-anchors the erase search on failedBlock, not on whatever
// target just failed, so a bad replacement block doesn't shrink the search
// window on the next attempt. The loop is bounded by Length attempts;
// exhausting it returns ErrRingFullyBad.
func (r *Ring) migrate(failedBlock, failedPage uint32) (uint32, error) {
	for attempt := uint32(0); attempt < r.cfg.Length; attempt++ {
		target, err := r.eraseNext(failedBlock)
		if err != nil {
			return 0, err
		}

		if failedPage == 0 {
			return target, nil
		}

		moved := true
		for page := uint32(0); page < failedPage; page++ {
			if err := r.cfg.Driver.MovePageData(failedBlock, target, page, r.scratchData()); err != nil {
				r.logger.Warnf("migrate: move failed %d->%d page %d: %v", failedBlock, target, page, err)
				r.cfg.Driver.MarkBad(target)
				moved = false
				break
			}
		}
		if moved {
			return target, nil
		}
	}
	r.logger.Fatalf("migration of block %d exhausted %d attempts, ring is fully bad", failedBlock, r.cfg.Length)
	return 0, ErrRingFullyBad
}
