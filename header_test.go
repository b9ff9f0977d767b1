package nandring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeHeaderRoundTrips(t *testing.T) {
	buf := make([]byte, HeaderSize)
	h := PageHeader{
		RecordID:      42,
		BootTimeUS:    123456789,
		UTCCorrection: 7,
		PageECC:       0xDEADBEEF,
		BadMark:       notBadMark,
	}
	encodeHeader(buf, h)

	got, valid := decodeHeader(buf)
	require.True(t, valid)
	require.Equal(t, h.RecordID, got.RecordID)
	require.Equal(t, h.BootTimeUS, got.BootTimeUS)
	require.Equal(t, h.UTCCorrection, got.UTCCorrection)
	require.Equal(t, h.PageECC, got.PageECC)
	require.Equal(t, h.BadMark, got.BadMark)
}

func TestDecodeHeaderRejectsCorruption(t *testing.T) {
	buf := make([]byte, HeaderSize)
	encodeHeader(buf, PageHeader{RecordID: 1})
	buf[0] ^= 0xFF

	_, valid := decodeHeader(buf)
	require.False(t, valid)
}

func TestDecodeHeaderRejectsErasedPattern(t *testing.T) {
	buf := make([]byte, HeaderSize)
	for i := range buf {
		buf[i] = 0xFF
	}
	_, valid := decodeHeader(buf)
	require.False(t, valid)
}

func TestRecordIDAtReturnsWastedForErasedPage(t *testing.T) {
	r, _ := newTestRing(t)
	mustMount(t, r)
	require.Equal(t, wastedRecordID, r.recordIDAt(10, 3))
}
