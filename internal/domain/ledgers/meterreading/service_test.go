package meterreading

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/printer"
)

// passthroughTx runs the callback without a real transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// mockPrinterRepo overrides only the methods the service touches;
// anything else panics through the embedded nil interface.
type mockPrinterRepo struct {
	printer.Repository
	devices map[id.ID]*printer.Printer
}

func (m *mockPrinterRepo) GetByID(ctx context.Context, printerID id.ID) (*printer.Printer, error) {
	if dev, ok := m.devices[printerID]; ok {
		return dev, nil
	}
	return nil, apperror.NewNotFound("printer", printerID.String())
}

func (m *mockPrinterRepo) ListByBranch(ctx context.Context, branchID id.ID) ([]*printer.Printer, error) {
	var out []*printer.Printer
	for _, dev := range m.devices {
		if dev.BranchID == branchID {
			out = append(out, dev)
		}
	}
	return out, nil
}

type mockReadingRepo struct {
	Repository
	byID    map[id.ID]*MeterReading
	created []*MeterReading
	updated []*MeterReading

	createErr error
	updateErr error
}

func newMockReadingRepo() *mockReadingRepo {
	return &mockReadingRepo{byID: make(map[id.ID]*MeterReading)}
}

func (m *mockReadingRepo) Create(ctx context.Context, reading *MeterReading) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, reading)
	m.byID[reading.ID] = reading
	return nil
}

func (m *mockReadingRepo) GetByID(ctx context.Context, readingID id.ID) (*MeterReading, error) {
	if r, ok := m.byID[readingID]; ok {
		clone := *r
		clone.Tiers = append(TierReadings(nil), r.Tiers...)
		return &clone, nil
	}
	return nil, apperror.NewNotFound("meter reading", readingID.String())
}

func (m *mockReadingRepo) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*MeterReading, error) {
	var out []*MeterReading
	for _, r := range m.byID {
		if r.BranchID == branchID && r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReadingRepo) ListByRange(ctx context.Context, branchID id.ID, from, to types.Date) ([]*MeterReading, error) {
	var out []*MeterReading
	for _, r := range m.byID {
		if r.BranchID == branchID && !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReadingRepo) Update(ctx context.Context, reading *MeterReading) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updated = append(m.updated, reading)
	m.byID[reading.ID] = reading
	return nil
}

func testDevice(branchID id.ID) *printer.Printer {
	return printer.NewPrinter("Xerox WorkCentre", "XRX-01", branchID, printer.PriceList{
		{SizeTier: printer.TierTotalLarge, UnitPrice: types.MustMoney("5")},
		{SizeTier: printer.TierTotalSmall, UnitPrice: types.MustMoney("2")},
	})
}

func sessionCtx(branchID id.ID) context.Context {
	return session.WithSession(context.Background(), session.Session{
		UserID:   id.New(),
		Role:     session.RoleManager,
		BranchID: branchID,
	})
}

func TestRecord_FreezesCatalogPrices(t *testing.T) {
	branchID := id.New()
	dev := testDevice(branchID)
	repo := newMockReadingRepo()
	svc := NewService(repo, &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}, passthroughTx{})

	ctx := sessionCtx(branchID)
	date := types.MustDate("2026-08-15")

	reading, err := svc.Record(ctx, branchID, date, RecordInput{
		PrinterID: dev.ID,
		Tiers: []TierInput{
			{SizeTier: printer.TierTotalLarge, Starting: 1000, Final: 1100},
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, dev.Name, reading.PrinterName)
	require.Len(t, reading.Tiers, 1)
	assert.True(t, reading.Tiers[0].UnitPrice.Equal(types.MustMoney("5")))
	assert.Equal(t, int64(100), reading.Tiers[0].Copies)
	assert.True(t, reading.TotalAmount.Equal(types.MustMoney("500")))

	// A later catalog price change must not touch the recorded row.
	dev.Prices[0].UnitPrice = types.MustMoney("7")
	stored, err := svc.GetByID(ctx, reading.ID)
	require.NoError(t, err)
	assert.True(t, stored.Tiers[0].UnitPrice.Equal(types.MustMoney("5")))
}

func TestRecord_RejectsForeignBranchDevice(t *testing.T) {
	branchID := id.New()
	dev := testDevice(id.New()) // device registered under a different branch
	repo := newMockReadingRepo()
	svc := NewService(repo, &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}, passthroughTx{})

	_, err := svc.Record(sessionCtx(branchID), branchID, types.MustDate("2026-08-15"), RecordInput{
		PrinterID: dev.ID,
		Tiers:     []TierInput{{SizeTier: printer.TierTotalLarge, Starting: 0, Final: 1}},
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Empty(t, repo.created)
}

func TestRecord_RejectsUnpricedTier(t *testing.T) {
	branchID := id.New()
	dev := testDevice(branchID)
	repo := newMockReadingRepo()
	svc := NewService(repo, &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}, passthroughTx{})

	_, err := svc.Record(sessionCtx(branchID), branchID, types.MustDate("2026-08-15"), RecordInput{
		PrinterID: dev.ID,
		Tiers:     []TierInput{{SizeTier: printer.TierColourScan, Starting: 0, Final: 5}},
	})
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestPrefillForDate_CarriesForwardPreviousFinals(t *testing.T) {
	branchID := id.New()
	dev := testDevice(branchID)
	repo := newMockReadingRepo()
	svc := NewService(repo, &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}, passthroughTx{})

	ctx := sessionCtx(branchID)
	date := types.MustDate("2026-08-15")

	_, err := svc.Record(ctx, branchID, date.Prev(), RecordInput{
		PrinterID: dev.ID,
		Tiers: []TierInput{
			{SizeTier: printer.TierTotalLarge, Starting: 1000, Final: 1150},
			{SizeTier: printer.TierTotalSmall, Starting: 400, Final: 430},
		},
	})
	require.NoError(t, err)

	prefills, err := svc.PrefillForDate(ctx, branchID, date)
	require.NoError(t, err)
	require.Len(t, prefills, 1)

	dp := prefills[0]
	assert.Equal(t, dev.ID, dp.PrinterID)
	assert.False(t, dp.Recorded)
	require.Len(t, dp.Tiers, 2)

	byTier := make(map[printer.SizeTier]TierPrefill)
	for _, tp := range dp.Tiers {
		byTier[tp.SizeTier] = tp
	}
	assert.Equal(t, int64(1150), byTier[printer.TierTotalLarge].Starting)
	assert.True(t, byTier[printer.TierTotalLarge].HasPrior)
	assert.Equal(t, int64(430), byTier[printer.TierTotalSmall].Starting)
}

func TestPrefillForDate_NoPriorDay(t *testing.T) {
	branchID := id.New()
	dev := testDevice(branchID)
	svc := NewService(newMockReadingRepo(), &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}, passthroughTx{})

	prefills, err := svc.PrefillForDate(sessionCtx(branchID), branchID, types.MustDate("2026-08-15"))
	require.NoError(t, err)
	require.Len(t, prefills, 1)
	for _, tp := range prefills[0].Tiers {
		assert.Zero(t, tp.Starting)
		assert.False(t, tp.HasPrior)
	}
}

func TestApplyEdits_PerEntryOutcomes(t *testing.T) {
	branchID := id.New()
	dev := testDevice(branchID)
	repo := newMockReadingRepo()
	svc := NewService(repo, &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}, passthroughTx{})

	ctx := sessionCtx(branchID)
	date := types.MustDate("2026-08-15")

	reading, err := svc.Record(ctx, branchID, date, RecordInput{
		PrinterID: dev.ID,
		Tiers:     []TierInput{{SizeTier: printer.TierTotalLarge, Starting: 1000, Final: 1100}},
	})
	require.NoError(t, err)

	newFinal := int64(1200)
	missingID := id.New()
	results := svc.ApplyEdits(ctx, branchID, []Edit{
		{
			ReadingID: reading.ID,
			Version:   reading.Version,
			Tiers:     []TierBounds{{SizeTier: printer.TierTotalLarge, Final: &newFinal}},
		},
		{ReadingID: missingID, Version: 1},
	})
	require.Len(t, results, 2)

	require.NoError(t, results[0].Err)
	assert.Equal(t, int64(200), results[0].Reading.TotalCopies)
	assert.True(t, results[0].Reading.TotalAmount.Equal(types.MustMoney("1000")))
	// frozen price survives the edit
	assert.True(t, results[0].Reading.Tiers[0].UnitPrice.Equal(types.MustMoney("5")))

	require.Error(t, results[1].Err)
	assert.True(t, apperror.IsNotFound(results[1].Err))
}

func TestApplyEdits_RejectsTierNotInEntry(t *testing.T) {
	branchID := id.New()
	dev := testDevice(branchID)
	repo := newMockReadingRepo()
	svc := NewService(repo, &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}, passthroughTx{})

	ctx := sessionCtx(branchID)
	reading, err := svc.Record(ctx, branchID, types.MustDate("2026-08-15"), RecordInput{
		PrinterID: dev.ID,
		Tiers:     []TierInput{{SizeTier: printer.TierTotalLarge, Starting: 0, Final: 10}},
	})
	require.NoError(t, err)

	v := int64(5)
	results := svc.ApplyEdits(ctx, branchID, []Edit{{
		ReadingID: reading.ID,
		Version:   reading.Version,
		Tiers:     []TierBounds{{SizeTier: printer.TierBWScan, Final: &v}},
	}})
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
	assert.Empty(t, repo.updated)
}

func TestListByRange(t *testing.T) {
	branchID := id.New()
	dev := testDevice(branchID)
	printers := &mockPrinterRepo{devices: map[id.ID]*printer.Printer{dev.ID: dev}}
	repo := newMockReadingRepo()
	svc := NewService(repo, printers, passthroughTx{})
	ctx := sessionCtx(branchID)

	for _, day := range []string{"2026-08-13", "2026-08-14", "2026-08-16"} {
		_, err := svc.Record(ctx, branchID, types.MustDate(day), RecordInput{
			PrinterID: dev.ID,
			Tiers:     []TierInput{{SizeTier: printer.TierTotalLarge, Starting: 0, Final: 10}},
		})
		require.NoError(t, err)
	}

	readings, err := svc.ListByRange(ctx, branchID, types.MustDate("2026-08-14"), types.MustDate("2026-08-16"))
	require.NoError(t, err)
	assert.Len(t, readings, 2)

	_, err = svc.ListByRange(ctx, branchID, types.MustDate("2026-08-16"), types.MustDate("2026-08-14"))
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}
