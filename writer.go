package nandring

// WritePage writes one full page of data and seals it with a header in
// the page's spare area. data must be exactly PageDataSize bytes. The
// ring must be mounted.
//
// On a media write failure the failing block is marked bad and its
// already-sealed pages are migrated to a fresh block before the write is
// retried, transparently to the caller.
func (r *Ring) WritePage(data []byte) error {
	if r.state != stateMounted {
		return ErrNotMounted
	}
	geom := r.cfg.Driver.Geometry()
	if len(data) != geom.PageDataSize {
		return ErrBadDataSize
	}

	for {
		ecc, err := r.cfg.Driver.WritePageData(r.currentBlock, r.currentPage, data)
		if err != nil {
			r.logger.Warnf("write data failed at block %d page %d: %v", r.currentBlock, r.currentPage, err)
			r.cfg.Driver.MarkBad(r.currentBlock)
			target, merr := r.migrate(r.currentBlock, r.currentPage)
			if merr != nil {
				return merr
			}
			r.currentBlock = target
			continue
		}

		header := PageHeader{
			RecordID:      r.nextRecordID,
			BootTimeUS:    r.clock.BootTimeUS(),
			UTCCorrection: r.cfg.UTCCorrection,
			PageECC:       ecc,
			BadMark:       notBadMark,
		}
		spare := r.scratchSpare()
		encodeHeader(spare, header)

		if err := r.cfg.Driver.WritePageSpare(r.currentBlock, r.currentPage, spare); err != nil {
			r.logger.Warnf("write spare failed at block %d page %d: %v", r.currentBlock, r.currentPage, err)
			r.cfg.Driver.MarkBad(r.currentBlock)
			target, merr := r.migrate(r.currentBlock, r.currentPage)
			if merr != nil {
				return merr
			}
			r.currentBlock = target
			continue
		}

		r.nextRecordID++
		r.currentPage++
		if r.currentPage == geom.PagesPerBlock {
			r.currentPage = 0
			target, err := r.eraseNext(r.currentBlock)
			if err != nil {
				return err
			}
			r.currentBlock = target
		}
		return nil
	}
}
