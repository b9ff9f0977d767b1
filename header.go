package nandring

import (
	"github.com/nandring/nandring/internal/ringcodec"
	"github.com/nandring/nandring/internal/ringcrc"
)

// Page header field offsets within the spare area. Declaration order is
// the on-media order; little-endian, packed, no padding.
const (
	offRecordID      = 0
	offBootTimeUS    = offRecordID + 8
	offUTCCorrection = offBootTimeUS + 8
	offPageECC       = offUTCCorrection + 4
	offBadMark       = offPageECC + 4
	offSpareCRC      = offBadMark + 2

	// HeaderSize is the total on-media size of a Page Header, in bytes.
	HeaderSize = offSpareCRC + 4

	// crcBodySize is the number of leading header bytes the CRC is
	// computed over — everything except the stored SpareCRC itself.
	crcBodySize = offSpareCRC
)

// wastedRecordID is the sentinel meaning "not a valid record" — used both
// for pages that were never written and for pages whose header CRC does
// not validate.
const wastedRecordID uint64 = 0

// firstRecordID is the first record ID a freshly formatted ring assigns.
const firstRecordID uint64 = 1

// notBadMark preserves the vendor bad-block-marker convention: 0xFFFF in
// this field means "not bad".
const notBadMark uint16 = 0xFFFF

// PageHeader is the spare-area metadata record sealed onto every written
// page.
type PageHeader struct {
	RecordID      uint64
	BootTimeUS    uint64
	UTCCorrection uint32
	PageECC       uint32
	BadMark       uint16
	SpareCRC      uint32
}

// encodeHeader serializes h into dst[:HeaderSize], computing and storing
// SpareCRC. dst must be at least HeaderSize bytes.
func encodeHeader(dst []byte, h PageHeader) {
	ringcodec.EncodeFixed64(dst[offRecordID:], h.RecordID)
	ringcodec.EncodeFixed64(dst[offBootTimeUS:], h.BootTimeUS)
	ringcodec.EncodeFixed32(dst[offUTCCorrection:], h.UTCCorrection)
	ringcodec.EncodeFixed32(dst[offPageECC:], h.PageECC)
	ringcodec.EncodeFixed16(dst[offBadMark:], h.BadMark)
	crc := ringcrc.Value(dst[:crcBodySize])
	ringcodec.EncodeFixed32(dst[offSpareCRC:], crc)
}

// decodeHeader parses a header from src (which must be at least
// HeaderSize bytes) and reports whether its CRC validates.
func decodeHeader(src []byte) (PageHeader, bool) {
	h := PageHeader{
		RecordID:      ringcodec.DecodeFixed64(src[offRecordID:]),
		BootTimeUS:    ringcodec.DecodeFixed64(src[offBootTimeUS:]),
		UTCCorrection: ringcodec.DecodeFixed32(src[offUTCCorrection:]),
		PageECC:       ringcodec.DecodeFixed32(src[offPageECC:]),
		BadMark:       ringcodec.DecodeFixed16(src[offBadMark:]),
		SpareCRC:      ringcodec.DecodeFixed32(src[offSpareCRC:]),
	}
	want := ringcrc.Value(src[:crcBodySize])
	return h, h.SpareCRC == want
}

// recordIDAt reads and validates the header of (block, page), returning
// wastedRecordID for any page whose header CRC does not validate —
// whether because it was never written (erased pattern) or because a
// crash interrupted the seal.
func (r *Ring) recordIDAt(block, page uint32) uint64 {
	geom := r.cfg.Driver.Geometry()
	buf := r.scratch[r.scratchSpareOffset() : r.scratchSpareOffset()+geom.PageSpareSize]
	if err := r.cfg.Driver.ReadPageSpare(block, page, buf); err != nil {
		r.logger.Warnf("read page spare failed at block %d page %d: %v", block, page, err)
		return wastedRecordID
	}
	h, valid := decodeHeader(buf)
	if !valid {
		return wastedRecordID
	}
	return h.RecordID
}
