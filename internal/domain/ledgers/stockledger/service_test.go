package stockledger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/stockitem"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockItemRepo struct {
	stockitem.Repository
	items []*stockitem.StockItem
}

func (m *mockItemRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*stockitem.StockItem, error) {
	var out []*stockitem.StockItem
	for _, it := range m.items {
		if it.BranchID == branchID {
			out = append(out, it)
		}
	}
	return out, nil
}

type mockEntryRepo struct {
	Repository
	byID    map[id.ID]*Entry
	updated []*Entry
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{byID: make(map[id.ID]*Entry)}
}

func (m *mockEntryRepo) Create(ctx context.Context, entry *Entry) error {
	m.byID[entry.ID] = entry
	return nil
}

func (m *mockEntryRepo) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	if e, ok := m.byID[entryID]; ok {
		clone := *e
		clone.Rows = append(Rows(nil), e.Rows...)
		return &clone, nil
	}
	return nil, apperror.NewNotFound("stock sheet", entryID.String())
}

func (m *mockEntryRepo) GetByKey(ctx context.Context, key Key) (*Entry, error) {
	for _, e := range m.byID {
		if e.BranchID == key.BranchID && e.Date.Equal(key.Date) && e.RecordedBy == key.RecordedBy {
			return e, nil
		}
	}
	return nil, apperror.NewNotFound("stock sheet", key.Date.String())
}

func (m *mockEntryRepo) Update(ctx context.Context, entry *Entry) error {
	m.updated = append(m.updated, entry)
	m.byID[entry.ID] = entry
	return nil
}

func testItems(branchID id.ID) []*stockitem.StockItem {
	pouch := stockitem.NewStockItem("Lamination pouch A4", branchID, types.MustMoney("30"))
	cd := stockitem.NewStockItem("CD-R", branchID, types.MustMoney("25"))
	return []*stockitem.StockItem{pouch, cd}
}

func sessionCtx(userID, branchID id.ID) context.Context {
	return session.WithSession(context.Background(), session.Session{
		UserID:   userID,
		Role:     session.RoleManager,
		BranchID: branchID,
	})
}

func TestRecord_FreezesItemNamesAndPrices(t *testing.T) {
	branchID := id.New()
	items := testItems(branchID)
	repo := newMockEntryRepo()
	svc := NewService(repo, &mockItemRepo{items: items}, passthroughTx{})

	ctx := sessionCtx(id.New(), branchID)
	entry, err := svc.Record(ctx, branchID, types.MustDate("2026-08-15"), []RowInput{
		{ItemID: items[0].ID, Opening: 50, Added: 20, Sold: 15},
	})
	require.NoError(t, err)
	require.Len(t, entry.Rows, 1)

	assert.Equal(t, "Lamination pouch A4", entry.Rows[0].ItemName)
	assert.True(t, entry.Rows[0].UnitPrice.Equal(types.MustMoney("30")))
	assert.Equal(t, int64(55), entry.Rows[0].Closing)
	assert.True(t, entry.TotalSoldAmount.Equal(types.MustMoney("450")))
}

func TestRecord_RejectsUnknownItem(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	svc := NewService(repo, &mockItemRepo{items: testItems(branchID)}, passthroughTx{})

	_, err := svc.Record(sessionCtx(id.New(), branchID), branchID, types.MustDate("2026-08-15"), []RowInput{
		{ItemID: id.New(), Sold: 1},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
	assert.Empty(t, repo.byID)
}

func TestPrefillForDate_CarriesForwardClosings(t *testing.T) {
	branchID := id.New()
	userID := id.New()
	items := testItems(branchID)
	repo := newMockEntryRepo()
	svc := NewService(repo, &mockItemRepo{items: items}, passthroughTx{})

	ctx := sessionCtx(userID, branchID)
	date := types.MustDate("2026-08-15")

	_, err := svc.Record(ctx, branchID, date.Prev(), []RowInput{
		{ItemID: items[0].ID, Opening: 50, Added: 20, Sold: 15}, // closing 55
		{ItemID: items[1].ID, Opening: 10, Sold: 4},             // closing 6
	})
	require.NoError(t, err)

	rows, err := svc.PrefillForDate(ctx, branchID, date)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byItem := make(map[id.ID]PrefillRow)
	for _, r := range rows {
		byItem[r.ItemID] = r
	}
	assert.Equal(t, int64(55), byItem[items[0].ID].Opening)
	assert.True(t, byItem[items[0].ID].HasPrior)
	assert.Equal(t, int64(6), byItem[items[1].ID].Opening)
}

func TestPrefillForDate_OtherUsersSheetDoesNotLeak(t *testing.T) {
	// Carry-forward is keyed per user: a colleague's sheet for the
	// previous day must not seed this user's openings.
	branchID := id.New()
	items := testItems(branchID)
	repo := newMockEntryRepo()
	svc := NewService(repo, &mockItemRepo{items: items}, passthroughTx{})

	date := types.MustDate("2026-08-15")
	colleague := sessionCtx(id.New(), branchID)
	_, err := svc.Record(colleague, branchID, date.Prev(), []RowInput{
		{ItemID: items[0].ID, Opening: 50, Added: 0, Sold: 10},
	})
	require.NoError(t, err)

	me := sessionCtx(id.New(), branchID)
	rows, err := svc.PrefillForDate(me, branchID, date)
	require.NoError(t, err)
	for _, r := range rows {
		assert.Zero(t, r.Opening)
		assert.False(t, r.HasPrior)
	}
}

func TestUpdate_RederivesAndKeepsFrozenPrices(t *testing.T) {
	branchID := id.New()
	items := testItems(branchID)
	repo := newMockEntryRepo()
	svc := NewService(repo, &mockItemRepo{items: items}, passthroughTx{})

	ctx := sessionCtx(id.New(), branchID)
	entry, err := svc.Record(ctx, branchID, types.MustDate("2026-08-15"), []RowInput{
		{ItemID: items[0].ID, Opening: 50, Added: 20, Sold: 15},
	})
	require.NoError(t, err)

	// catalog price change after recording
	items[0].UnitPrice = types.MustMoney("99")

	updated, err := svc.Update(ctx, branchID, entry.ID, entry.Version, []RowInput{
		{ItemID: items[0].ID, Opening: 50, Added: 20, Sold: 25},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(45), updated.Rows[0].Closing)
	assert.True(t, updated.Rows[0].UnitPrice.Equal(types.MustMoney("30")))
	assert.True(t, updated.TotalSoldAmount.Equal(types.MustMoney("750")))
}

func TestUpdate_RejectsNewItems(t *testing.T) {
	branchID := id.New()
	items := testItems(branchID)
	repo := newMockEntryRepo()
	svc := NewService(repo, &mockItemRepo{items: items}, passthroughTx{})

	ctx := sessionCtx(id.New(), branchID)
	entry, err := svc.Record(ctx, branchID, types.MustDate("2026-08-15"), []RowInput{
		{ItemID: items[0].ID, Opening: 50, Added: 20, Sold: 15},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, branchID, entry.ID, entry.Version, []RowInput{
		{ItemID: items[0].ID, Opening: 50, Added: 20, Sold: 15},
		{ItemID: items[1].ID, Sold: 1},
	})
	require.Error(t, err)
	assert.Empty(t, repo.updated)
}
