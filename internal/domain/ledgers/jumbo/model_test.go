package jumbo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

func TestDefaultGrid(t *testing.T) {
	grid := DefaultGrid()
	require.Len(t, grid, 9)

	// A0/A1/A2, each with colour, bw, scan in order
	assert.Equal(t, SizeA0, grid[0].Size)
	assert.Equal(t, TypeColour, grid[0].Type)
	assert.Equal(t, SizeA0, grid[2].Size)
	assert.Equal(t, TypeScan, grid[2].Type)
	assert.Equal(t, SizeA1, grid[3].Size)
	assert.Equal(t, SizeA2, grid[8].Size)
	assert.Equal(t, TypeScan, grid[8].Type)
}

func TestJumboDerive(t *testing.T) {
	e := New(id.New(), types.MustDate("2026-08-15"), id.New())
	e.Rows[0].Qty = 3
	e.Rows[0].UnitPrice = types.MustMoney("50")
	e.Rows[4].Qty = 2
	e.Rows[4].UnitPrice = types.MustMoney("120")
	e.Counter.Start = types.MustMoney("150.5")
	e.Counter.End = types.MustMoney("250.25")
	e.Derive()

	assert.True(t, e.Rows[0].Amount.Equal(types.MustMoney("150")))
	assert.True(t, e.Rows[4].Amount.Equal(types.MustMoney("240")))
	assert.Equal(t, int64(5), e.TotalQty)
	assert.True(t, e.TotalAmount.Equal(types.MustMoney("390")))
	assert.True(t, e.Counter.PrintedLength.Equal(types.MustMoney("99.75")))
}

func TestJumboDerive_RateChangeRecomputesAmount(t *testing.T) {
	e := New(id.New(), types.MustDate("2026-08-15"), id.New())
	e.Rows[0].Qty = 3
	e.Rows[0].UnitPrice = types.MustMoney("50")
	e.Derive()
	require.True(t, e.Rows[0].Amount.Equal(types.MustMoney("150")))

	e.Rows[0].Qty = 5
	e.Derive()
	assert.True(t, e.Rows[0].Amount.Equal(types.MustMoney("250")))
	assert.True(t, e.TotalAmount.Equal(types.MustMoney("250")))
}

func TestJumboValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid default grid", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		e.Derive()
		assert.NoError(t, e.Validate(ctx))
	})

	t.Run("wrong row count", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		e.Rows = e.Rows[:8]
		assert.Error(t, e.Validate(ctx))
	})

	t.Run("rows out of order", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		e.Rows[0], e.Rows[1] = e.Rows[1], e.Rows[0]
		assert.Error(t, e.Validate(ctx))
	})

	t.Run("negative qty", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		e.Rows[0].Qty = -1
		assert.Error(t, e.Validate(ctx))
	})

	t.Run("negative counter", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		e.Counter.Start = types.MustMoney("-1")
		assert.Error(t, e.Validate(ctx))
	})
}
