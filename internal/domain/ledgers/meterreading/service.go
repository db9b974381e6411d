package meterreading

import (
	"context"
	"fmt"

	"printledger/internal/core/apperror"
	"printledger/internal/core/id"
	"printledger/internal/core/session"
	"printledger/internal/core/tx"
	"printledger/internal/core/types"
	"printledger/internal/domain/catalogs/printer"
	"printledger/pkg/logger"
)

// Service provides business operations for the meter-reading ledger.
type Service struct {
	repo      Repository
	printers  printer.Repository
	txManager tx.Manager
}

// NewService creates a new meter-reading service.
func NewService(repo Repository, printers printer.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		printers:  printers,
		txManager: txManager,
	}
}

// TierInput is one submitted counter pair.
type TierInput struct {
	SizeTier printer.SizeTier
	Starting int64
	Final    int64
}

// RecordInput is one submitted device reading.
type RecordInput struct {
	PrinterID id.ID
	Tiers     []TierInput
}

// Record creates a meter reading for one device and day.
// The device name and per-tier prices are frozen from the catalog here;
// the caller supplies only counter bounds. Tiers without a catalog price
// are rejected.
func (s *Service) Record(ctx context.Context, branchID id.ID, date types.Date, in RecordInput) (*MeterReading, error) {
	dev, err := s.printers.GetByID(ctx, in.PrinterID)
	if err != nil {
		return nil, err
	}
	if dev.BranchID != branchID {
		return nil, apperror.NewValidation("printer belongs to another branch").
			WithDetail("printerId", in.PrinterID.String())
	}

	reading := New(branchID, date, session.UserID(ctx), in.PrinterID)
	reading.PrinterName = dev.Name

	reading.Tiers = make(TierReadings, 0, len(in.Tiers))
	for _, t := range in.Tiers {
		price, ok := dev.Prices.Price(t.SizeTier)
		if !ok {
			return nil, apperror.NewValidation("size tier has no catalog price").
				WithDetail("printerId", in.PrinterID.String()).
				WithDetail("sizeTier", string(t.SizeTier))
		}
		reading.Tiers = append(reading.Tiers, TierReading{
			SizeTier:     t.SizeTier,
			Starting:     t.Starting,
			FinalReading: t.Final,
			UnitPrice:    price,
		})
	}
	reading.Derive()

	if err := reading.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, reading); err != nil {
			return fmt.Errorf("create meter reading: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "meter reading recorded",
		"id", reading.ID,
		"printer", reading.PrinterName,
		"date", reading.Date.String(),
		"total_copies", reading.TotalCopies)

	return reading, nil
}

// TierPrefill is one suggested tier row for the entry form.
type TierPrefill struct {
	SizeTier  printer.SizeTier `json:"sizeTier"`
	UnitPrice types.Money      `json:"unitPrice"`
	Starting  int64            `json:"starting"`
	// HasPrior is set when Starting was carried from the previous day's
	// final reading. When false the manager enters both bounds manually.
	HasPrior bool `json:"hasPrior"`
}

// DevicePrefill is one device's suggested rows for the entry form.
type DevicePrefill struct {
	PrinterID   id.ID         `json:"printerId"`
	PrinterName string        `json:"printerName"`
	Tiers       []TierPrefill `json:"tiers"`
	// Recorded is set when an entry for this device and day already exists.
	Recorded bool `json:"recorded"`
}

// PrefillForDate builds the entry form for a branch and day.
// Each active device appears once with its currently priced tiers; the
// starting count carries forward from the previous day's final reading
// where one exists.
func (s *Service) PrefillForDate(ctx context.Context, branchID id.ID, date types.Date) ([]DevicePrefill, error) {
	devices, err := s.printers.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("list printers: %w", err)
	}

	recorded, err := s.repo.ListByDay(ctx, branchID, date)
	if err != nil {
		return nil, err
	}
	recordedByPrinter := make(map[id.ID]*MeterReading, len(recorded))
	for _, r := range recorded {
		recordedByPrinter[r.PrinterID] = r
	}

	prev, err := s.repo.ListByDay(ctx, branchID, date.Prev())
	if err != nil {
		return nil, err
	}
	prevFinal := make(map[id.ID]map[printer.SizeTier]int64, len(prev))
	for _, r := range prev {
		finals := make(map[printer.SizeTier]int64, len(r.Tiers))
		for _, t := range r.Tiers {
			finals[t.SizeTier] = t.FinalReading
		}
		prevFinal[r.PrinterID] = finals
	}

	result := make([]DevicePrefill, 0, len(devices))
	for _, dev := range devices {
		dp := DevicePrefill{
			PrinterID:   dev.ID,
			PrinterName: dev.Name,
			Tiers:       make([]TierPrefill, 0, len(dev.Prices)),
		}
		if _, ok := recordedByPrinter[dev.ID]; ok {
			dp.Recorded = true
		}
		for _, price := range dev.Prices {
			tp := TierPrefill{
				SizeTier:  price.SizeTier,
				UnitPrice: price.UnitPrice,
			}
			if finals, ok := prevFinal[dev.ID]; ok {
				if final, ok := finals[price.SizeTier]; ok {
					tp.Starting = final
					tp.HasPrior = true
				}
			}
			dp.Tiers = append(dp.Tiers, tp)
		}
		result = append(result, dp)
	}

	return result, nil
}

// GetByID retrieves a reading by ID.
func (s *Service) GetByID(ctx context.Context, readingID id.ID) (*MeterReading, error) {
	return s.repo.GetByID(ctx, readingID)
}

// GetByKey retrieves the reading for a device on a given day.
func (s *Service) GetByKey(ctx context.Context, key Key) (*MeterReading, error) {
	return s.repo.GetByKey(ctx, key)
}

// ListByDay retrieves all readings for a branch and day.
func (s *Service) ListByDay(ctx context.Context, branchID id.ID, date types.Date) ([]*MeterReading, error) {
	return s.repo.ListByDay(ctx, branchID, date)
}

// ListByRange retrieves readings for a branch between two dates inclusive.
func (s *Service) ListByRange(ctx context.Context, branchID id.ID, from, to types.Date) ([]*MeterReading, error) {
	if to.Before(from) {
		return nil, apperror.NewValidation("range end precedes range start").
			WithDetail("from", from.String()).
			WithDetail("to", to.String())
	}
	return s.repo.ListByRange(ctx, branchID, from, to)
}

// TierBounds is one requested counter correction within an entry.
type TierBounds struct {
	SizeTier printer.SizeTier
	Starting *int64
	Final    *int64
}

// Edit is one requested entry correction.
type Edit struct {
	ReadingID id.ID
	Version   int
	Tiers     []TierBounds
}

// EditResult reports the outcome of one edit.
type EditResult struct {
	ReadingID id.ID         `json:"readingId"`
	Reading   *MeterReading `json:"reading,omitempty"`
	Err       error         `json:"-"`
}

// ApplyEdits applies counter corrections to existing readings.
// Each edit commits in its own transaction: a failed edit never rolls
// back its neighbours, and the response reports per-entry outcomes.
// Copies, amounts and totals are rederived with the tier prices frozen
// at entry time.
func (s *Service) ApplyEdits(ctx context.Context, branchID id.ID, edits []Edit) []EditResult {
	results := make([]EditResult, 0, len(edits))

	for _, e := range edits {
		updated, err := s.applyOne(ctx, branchID, e)
		results = append(results, EditResult{
			ReadingID: e.ReadingID,
			Reading:   updated,
			Err:       err,
		})
	}

	return results
}

func (s *Service) applyOne(ctx context.Context, branchID id.ID, e Edit) (*MeterReading, error) {
	var updated *MeterReading

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		reading, err := s.repo.GetByID(ctx, e.ReadingID)
		if err != nil {
			return err
		}
		if reading.BranchID != branchID {
			return apperror.NewNotFound("meter reading", e.ReadingID.String())
		}

		byTier := make(map[printer.SizeTier]int, len(reading.Tiers))
		for i, t := range reading.Tiers {
			byTier[t.SizeTier] = i
		}

		for _, b := range e.Tiers {
			idx, ok := byTier[b.SizeTier]
			if !ok {
				return apperror.NewValidation("size tier not present in entry").
					WithDetail("readingId", e.ReadingID.String()).
					WithDetail("sizeTier", string(b.SizeTier))
			}
			if b.Starting != nil {
				reading.Tiers[idx].Starting = *b.Starting
			}
			if b.Final != nil {
				reading.Tiers[idx].FinalReading = *b.Final
			}
		}

		// Version holds the caller's expected version; the repo bumps it
		// in SQL and rejects the write when someone got there first.
		reading.Version = e.Version
		reading.Derive()

		if err := reading.Validate(ctx); err != nil {
			return err
		}

		if err := s.repo.Update(ctx, reading); err != nil {
			return fmt.Errorf("update meter reading: %w", err)
		}

		updated = reading
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}
