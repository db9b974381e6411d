package miscrevenue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/id"
	"printledger/internal/core/types"
)

func TestRevenueDerive(t *testing.T) {
	e := New(id.New(), types.MustDate("2026-08-15"), id.New())
	e.Rows = Lines{
		{Label: "Stocks", Amount: types.MustMoney("550")},
		{Label: "Jumbo Xerox", Amount: types.MustMoney("1200")},
		{Label: "Discount", Amount: types.MustMoney("-100")},
	}
	e.TotalAmount = types.MustMoney("99999") // submitted total is ignored
	e.Derive()

	assert.True(t, e.TotalAmount.Equal(types.MustMoney("1650")))
}

func TestDefaultTemplate(t *testing.T) {
	lines := DefaultTemplate()
	require.NotEmpty(t, lines)

	assert.Equal(t, "Canon 8986", lines[0].Label)
	for _, line := range lines {
		assert.NotEmpty(t, line.Label)
		assert.True(t, line.Amount.IsZero())
	}
}

func TestRevenueValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		e.Rows = Lines{{Label: "Stocks", Amount: types.MustMoney("10")}}
		e.Derive()
		assert.NoError(t, e.Validate(ctx))
	})

	t.Run("no rows", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		assert.Error(t, e.Validate(ctx))
	})

	t.Run("blank label", func(t *testing.T) {
		e := New(id.New(), types.MustDate("2026-08-15"), id.New())
		e.Rows = Lines{{Label: "   ", Amount: types.MustMoney("10")}}
		assert.Error(t, e.Validate(ctx))
	})
}
