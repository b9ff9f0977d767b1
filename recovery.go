package nandring

// recover implements the four mount phases: viability check,
// last-written-block scan, last-written-page scan, and session close. It
// sets currentBlock, currentPage, and nextRecordID on success.
func (r *Ring) recover() error {
	if r.totalGood() < int(r.cfg.Length/2) {
		return ErrRingExhausted
	}

	lastBlk, found := r.lastWrittenBlock()
	if !found {
		blk, err := r.mkfs()
		if err != nil {
			return err
		}
		r.currentBlock = blk
		r.currentPage = 0
		r.nextRecordID = firstRecordID
		return nil
	}

	lastPage, ok := r.lastWrittenPage(lastBlk)
	if !ok {
		// A block was selected as "last written" by its page-0 header,
		// but page 0 itself must then validate when rescanned; this
		// cannot happen if lastWrittenBlock is correct, but is treated as
		// an unformatted ring rather than panicking.
		blk, err := r.mkfs()
		if err != nil {
			return err
		}
		r.currentBlock = blk
		r.currentPage = 0
		r.nextRecordID = firstRecordID
		return nil
	}
	lastID := r.recordIDAt(lastBlk, lastPage)

	nextBlk, err := r.closeSession(lastBlk, lastPage)
	if err != nil {
		return err
	}
	r.currentBlock = nextBlk
	r.currentPage = 0
	r.nextRecordID = lastID + 1
	return nil
}

// mkfs formats an empty ring: erase the first good block and hand it back
// as the write cursor. If that erase itself fails, fall back to the
// bounded erase-next search from there.
func (r *Ring) mkfs() (uint32, error) {
	first, err := r.firstGoodBlock()
	if err != nil {
		return 0, err
	}
	if err := r.cfg.Driver.Erase(first); err != nil {
		r.logger.Warnf("mkfs: erase of first good block %d failed, marking bad", first)
		r.cfg.Driver.MarkBad(first)
		return r.eraseNext(first)
	}
	return first, nil
}

// lastWrittenBlock scans every good block's page 0 and returns the one
// with the highest record ID. It visits each good block exactly once,
// bounded by the exact count of good blocks rather than a physical
// block-number wraparound comparison.
func (r *Ring) lastWrittenBlock() (uint32, bool) {
	first, err := r.firstGoodBlock()
	if err != nil {
		return 0, false
	}

	var lastBlk uint32
	lastID := firstRecordID
	found := false

	b := first
	remaining := r.totalGood()
	for i := 0; i < remaining; i++ {
		id := r.recordIDAt(b, 0)
		if id >= lastID {
			lastBlk = b
			lastID = id
			found = true
		}
		if i == remaining-1 {
			break
		}
		b, err = r.nextGood(b)
		if err != nil {
			break
		}
	}
	return lastBlk, found
}

// lastWrittenPage scans every page of block and returns the one with the
// highest record ID.
func (r *Ring) lastWrittenPage(block uint32) (uint32, bool) {
	geom := r.cfg.Driver.Geometry()
	lastID := firstRecordID
	var lastPage uint32
	found := false

	for page := uint32(0); page < geom.PagesPerBlock; page++ {
		id := r.recordIDAt(block, page)
		if id >= lastID {
			lastPage = page
			lastID = id
			found = true
		}
	}
	return lastPage, found
}

// closeSession pads out the pages left erased after the previous session's
// last written page (after an Unmount as well as after a power loss) and
// advances the cursor to a freshly erased block, so recovery is idempotent
// across repeated remounts of the same media.
func (r *Ring) closeSession(lastBlk, lastPage uint32) (uint32, error) {
	geom := r.cfg.Driver.Geometry()
	ppb := geom.PagesPerBlock

	if lastPage != ppb-1 {
		data := r.scratchData()
		spare := r.scratchSpare()
		for i := range data {
			data[i] = 0
		}
		for i := range spare {
			spare[i] = 0
		}
		spare[offBadMark] = 0xFF
		spare[offBadMark+1] = 0xFF

		for page := lastPage + 1; page < ppb; page++ {
			if err := r.cfg.Driver.WritePageWhole(lastBlk, page, data, spare); err != nil {
				r.logger.Warnf("session-close pad failed at block %d page %d: %v", lastBlk, page, err)
				r.cfg.Driver.MarkBad(lastBlk)
				break
			}
		}
	}

	return r.eraseNext(lastBlk)
}
