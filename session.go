package nandring

// Session describes one write session discovered by SearchSessions. The
// type exists so callers can compile against its shape even though
// population of sessions is not implemented.
type Session struct {
	StartBlock uint32
	StartPage  uint32
	FirstID    uint64
	LastID     uint64
}

// SetUTCCorrection updates the UTC offset stamped into subsequent page
// headers. No on-disk UTC correction record format has been settled on,
// so this returns ErrNotImplemented instead of guessing at one.
func (r *Ring) SetUTCCorrection(correction uint32) error {
	return ErrNotImplemented
}

// SearchSessions is declared for the same reason as SetUTCCorrection: no
// session boundary format has been settled on yet.
func (r *Ring) SearchSessions(out []Session, max int) (int, error) {
	return 0, ErrNotImplemented
}
