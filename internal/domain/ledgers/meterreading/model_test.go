package meterreading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/printer"
)

func testReading() *MeterReading {
	m := New(id.New(), types.MustDate("2026-08-15"), id.New(), id.New())
	m.PrinterName = "Xerox WorkCentre"
	m.Tiers = TierReadings{
		{SizeTier: printer.TierTotalLarge, Starting: 1000, FinalReading: 1150, UnitPrice: types.MustMoney("5")},
		{SizeTier: printer.TierTotalSmall, Starting: 400, FinalReading: 430, UnitPrice: types.MustMoney("2")},
	}
	m.Derive()
	return m
}

func TestMeterReadingDerive(t *testing.T) {
	m := testReading()

	assert.Equal(t, int64(150), m.Tiers[0].Copies)
	assert.True(t, m.Tiers[0].Amount.Equal(types.MustMoney("750")))

	assert.Equal(t, int64(30), m.Tiers[1].Copies)
	assert.True(t, m.Tiers[1].Amount.Equal(types.MustMoney("60")))

	assert.Equal(t, int64(180), m.TotalCopies)
	assert.True(t, m.TotalAmount.Equal(types.MustMoney("810")))
}

func TestMeterReadingDerive_NegativeCopies(t *testing.T) {
	// A meter swap can make the final reading lower than the starting
	// one. The negative movement is kept, not clamped.
	m := testReading()
	m.Tiers[0].Starting = 1150
	m.Tiers[0].FinalReading = 1000
	m.Derive()

	assert.Equal(t, int64(-150), m.Tiers[0].Copies)
	assert.True(t, m.Tiers[0].Amount.Equal(types.MustMoney("-750")))
	assert.Equal(t, int64(-120), m.TotalCopies)
}

func TestMeterReadingDerive_IgnoresSubmittedTotals(t *testing.T) {
	m := testReading()
	m.TotalCopies = 99999
	m.TotalAmount = types.MustMoney("1")
	m.Derive()

	assert.Equal(t, int64(180), m.TotalCopies)
	assert.True(t, m.TotalAmount.Equal(types.MustMoney("810")))
}

func TestMeterReadingValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testReading().Validate(ctx))
	})

	t.Run("no tiers", func(t *testing.T) {
		m := testReading()
		m.Tiers = nil
		err := m.Validate(ctx)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("duplicate tier", func(t *testing.T) {
		m := testReading()
		m.Tiers[1].SizeTier = m.Tiers[0].SizeTier
		assert.Error(t, m.Validate(ctx))
	})

	t.Run("negative starting", func(t *testing.T) {
		m := testReading()
		m.Tiers[0].Starting = -1
		assert.Error(t, m.Validate(ctx))
	})

	t.Run("missing printer", func(t *testing.T) {
		m := testReading()
		m.PrinterID = id.Nil()
		assert.Error(t, m.Validate(ctx))
	})
}
