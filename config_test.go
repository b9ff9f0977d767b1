package nandring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nandring/nandring/nandio"
	"github.com/nandring/nandring/nandio/nandsim"
)

func TestValidateRejectsOversizedRange(t *testing.T) {
	sim := nandsim.New(nandio.Geometry{
		Blocks: 32, PagesPerBlock: 4, PageDataSize: 16, PageSpareSize: HeaderSize,
	})
	cfg := Config{Driver: sim, StartBlock: 10, Length: testLength}
	require.ErrorIs(t, cfg.validate(), ErrInvalidConfig)
}

func TestValidateRejectsSpareTooSmallForHeader(t *testing.T) {
	sim := nandsim.New(nandio.Geometry{
		Blocks: 128, PagesPerBlock: 4, PageDataSize: 16, PageSpareSize: HeaderSize - 1,
	})
	cfg := Config{Driver: sim, StartBlock: 0, Length: testLength}
	require.ErrorIs(t, cfg.validate(), ErrInvalidConfig)
}

func TestValidateAcceptsWellFormedConfig(t *testing.T) {
	sim := nandsim.New(testGeometry())
	cfg := Config{Driver: sim, StartBlock: 0, Length: testLength}
	require.NoError(t, cfg.validate())
}
