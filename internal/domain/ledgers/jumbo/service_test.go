package jumbo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/types"
)

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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
	return nil, apperror.NewNotFound("jumbo entry", entryID.String())
}

func (m *mockEntryRepo) Update(ctx context.Context, entry *Entry) error {
	m.updated = append(m.updated, entry)
	m.byID[entry.ID] = entry
	return nil
}

func sessionCtx(branchID id.ID) context.Context {
	return session.WithSession(context.Background(), session.Session{
		UserID:   id.New(),
		Role:     session.RoleManager,
		BranchID: branchID,
	})
}

func TestRecord_FillsFixedGrid(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	svc := NewService(repo, passthroughTx{})

	entry, err := svc.Record(sessionCtx(branchID), branchID, types.MustDate("2026-08-15"), RecordInput{
		Rows: []RowInput{
			{Type: TypeColour, Size: SizeA0, Qty: 3, UnitPrice: types.MustMoney("50")},
		},
		CounterStart: types.MustMoney("150.5"),
		CounterEnd:   types.MustMoney("250.25"),
	})
	require.NoError(t, err)

	// sparse submission still yields the full nine-row grid
	require.Len(t, entry.Rows, 9)
	assert.Equal(t, int64(3), entry.TotalQty)
	assert.True(t, entry.TotalAmount.Equal(types.MustMoney("150")))
	assert.True(t, entry.Counter.PrintedLength.Equal(types.MustMoney("99.75")))
}

func TestRecord_IgnoresUnknownCells(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	svc := NewService(repo, passthroughTx{})

	entry, err := svc.Record(sessionCtx(branchID), branchID, types.MustDate("2026-08-15"), RecordInput{
		Rows: []RowInput{
			{Type: "poster", Size: "A9", Qty: 100, UnitPrice: types.MustMoney("1")},
		},
	})
	require.NoError(t, err)
	assert.Zero(t, entry.TotalQty)
	assert.True(t, entry.TotalAmount.IsZero())
}

func TestUpdate_ReplacesGridAndCounter(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	svc := NewService(repo, passthroughTx{})

	ctx := sessionCtx(branchID)
	entry, err := svc.Record(ctx, branchID, types.MustDate("2026-08-15"), RecordInput{
		Rows: []RowInput{{Type: TypeColour, Size: SizeA0, Qty: 3, UnitPrice: types.MustMoney("50")}},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, branchID, entry.ID, entry.Version, RecordInput{
		Rows: []RowInput{{Type: TypeColour, Size: SizeA0, Qty: 5, UnitPrice: types.MustMoney("50")}},
		CounterStart: types.MustMoney("10"),
		CounterEnd:   types.MustMoney("30"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5), updated.TotalQty)
	assert.True(t, updated.TotalAmount.Equal(types.MustMoney("250")))
	assert.True(t, updated.Counter.PrintedLength.Equal(types.MustMoney("20")))
	require.Len(t, repo.updated, 1)
}

func TestUpdate_ForeignBranchReadsAsNotFound(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	svc := NewService(repo, passthroughTx{})

	ctx := sessionCtx(branchID)
	entry, err := svc.Record(ctx, branchID, types.MustDate("2026-08-15"), RecordInput{})
	require.NoError(t, err)

	_, err = svc.Update(ctx, id.New(), entry.ID, entry.Version, RecordInput{})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
