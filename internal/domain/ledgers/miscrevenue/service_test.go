package miscrevenue

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
	byID      map[id.ID]*Entry
	createErr error
}

func newMockEntryRepo() *mockEntryRepo {
	return &mockEntryRepo{byID: make(map[id.ID]*Entry)}
}

func (m *mockEntryRepo) Create(ctx context.Context, entry *Entry) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.byID[entry.ID] = entry
	return nil
}

func (m *mockEntryRepo) GetByID(ctx context.Context, entryID id.ID) (*Entry, error) {
	if e, ok := m.byID[entryID]; ok {
		clone := *e
		clone.Rows = append(Lines(nil), e.Rows...)
		return &clone, nil
	}
	return nil, apperror.NewNotFound("revenue entry", entryID.String())
}

func (m *mockEntryRepo) Update(ctx context.Context, entry *Entry) error {
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

func TestRecord_DerivesTotal(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	svc := NewService(repo, passthroughTx{})

	entry, err := svc.Record(sessionCtx(branchID), branchID, types.MustDate("2026-08-15"), Lines{
		{Label: "Stocks", Amount: types.MustMoney("550")},
		{Label: "Expense", Amount: types.MustMoney("-120")},
	})
	require.NoError(t, err)
	assert.True(t, entry.TotalAmount.Equal(types.MustMoney("430")))
}

func TestRecord_DuplicateGuardPassesThrough(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	repo.createErr = apperror.NewDuplicateEntry("revenue entry", "2026-08-15")
	svc := NewService(repo, passthroughTx{})

	_, err := svc.Record(sessionCtx(branchID), branchID, types.MustDate("2026-08-15"), Lines{
		{Label: "Stocks", Amount: types.MustMoney("550")},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicateEntry(err))
}

func TestUpdate_ReplacesRows(t *testing.T) {
	branchID := id.New()
	repo := newMockEntryRepo()
	svc := NewService(repo, passthroughTx{})

	ctx := sessionCtx(branchID)
	entry, err := svc.Record(ctx, branchID, types.MustDate("2026-08-15"), Lines{
		{Label: "Stocks", Amount: types.MustMoney("550")},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, branchID, entry.ID, entry.Version, Lines{
		{Label: "Stocks", Amount: types.MustMoney("600")},
		{Label: "Discount", Amount: types.MustMoney("-50")},
	})
	require.NoError(t, err)
	require.Len(t, updated.Rows, 2)
	assert.True(t, updated.TotalAmount.Equal(types.MustMoney("550")))
}
