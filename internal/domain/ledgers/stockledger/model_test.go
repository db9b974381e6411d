package stockledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

func testSheet() *Entry {
	e := New(id.New(), types.MustDate("2026-08-15"), id.New())
	e.Rows = Rows{
		{ItemID: id.New(), ItemName: "Lamination pouch A4", UnitPrice: types.MustMoney("30"), Opening: 50, Added: 20, Sold: 15},
		{ItemID: id.New(), ItemName: "CD-R", UnitPrice: types.MustMoney("25"), Opening: 10, Added: 0, Sold: 4},
	}
	e.Derive()
	return e
}

func TestStockSheetDerive(t *testing.T) {
	e := testSheet()

	assert.Equal(t, int64(55), e.Rows[0].Closing)
	assert.True(t, e.Rows[0].Amount.Equal(types.MustMoney("450")))

	assert.Equal(t, int64(6), e.Rows[1].Closing)
	assert.True(t, e.Rows[1].Amount.Equal(types.MustMoney("100")))

	assert.True(t, e.TotalSoldAmount.Equal(types.MustMoney("550")))
}

func TestStockSheetDerive_IgnoresSubmittedDerivedFields(t *testing.T) {
	e := testSheet()
	e.Rows[0].Closing = 9999
	e.Rows[0].Amount = types.MustMoney("1")
	e.TotalSoldAmount = types.MustMoney("1")
	e.Derive()

	assert.Equal(t, int64(55), e.Rows[0].Closing)
	assert.True(t, e.TotalSoldAmount.Equal(types.MustMoney("550")))
}

func TestStockSheetValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, testSheet().Validate(ctx))
	})

	t.Run("empty sheet", func(t *testing.T) {
		e := testSheet()
		e.Rows = nil
		assert.Error(t, e.Validate(ctx))
	})

	t.Run("duplicate item", func(t *testing.T) {
		e := testSheet()
		e.Rows[1].ItemID = e.Rows[0].ItemID
		assert.Error(t, e.Validate(ctx))
	})

	t.Run("negative count", func(t *testing.T) {
		e := testSheet()
		e.Rows[0].Sold = -1
		err := e.Validate(ctx)
		require.Error(t, err)
	})
}
