package quote_price

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
	"github.com/courtflow/CF-BookingEngine/pkg/ptr"
)

var (
	quoteStart = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	quoteEnd   = time.Date(2026, 8, 24, 11, 30, 0, 0, time.UTC)
)

type fakeCatalogRepo struct {
	courts    map[int64]domain.Court
	coaches   map[int64]domain.Coach
	equipment map[int64]domain.EquipmentType
	rules     []domain.PricingRule
}

func (f *fakeCatalogRepo) GetActiveCourt(ctx context.Context, id int64) (*domain.Court, error) {
	court, ok := f.courts[id]
	if !ok {
		return nil, catalogRepo.ErrCourtNotFound
	}
	return &court, nil
}

func (f *fakeCatalogRepo) GetActiveCoach(ctx context.Context, id int64) (*domain.Coach, error) {
	coach, ok := f.coaches[id]
	if !ok {
		return nil, catalogRepo.ErrCoachNotFound
	}
	return &coach, nil
}

func (f *fakeCatalogRepo) GetActiveEquipmentTypes(ctx context.Context, ids []int64) ([]domain.EquipmentType, error) {
	found := make([]domain.EquipmentType, 0, len(ids))
	for _, id := range ids {
		if et, ok := f.equipment[id]; ok {
			found = append(found, et)
		}
	}
	return found, nil
}

func (f *fakeCatalogRepo) ListActivePricingRules(ctx context.Context) ([]domain.PricingRule, error) {
	return f.rules, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testCatalog() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		courts: map[int64]domain.Court{
			1: {ID: 1, Name: "Court A", Surface: domain.SurfaceIndoor, BaseRateCentsPerHour: 3000, IsActive: true},
		},
		coaches: map[int64]domain.Coach{
			5: {ID: 5, Name: "Coach", HourlyRateCents: 6000, IsActive: true},
		},
		equipment: map[int64]domain.EquipmentType{
			7: {ID: 7, Name: "Racket", UnitPriceCents: 500, TotalQuantity: 4, IsActive: true},
		},
	}
}

func TestExecute_QuotesWithoutReserving(t *testing.T) {
	uc := NewUseCase(testCatalog(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		StartAt: quoteStart,
		EndAt:   quoteEnd,
		CourtID: 1,
		CoachID: ptr.Ptr(int64(5)),
		Equipment: []EquipmentLine{
			{EquipmentTypeID: 7, Quantity: 1},
			{EquipmentTypeID: 7, Quantity: 1}, // дубликат схлопывается
		},
	})
	require.NoError(t, err)

	b := resp.Breakdown
	assert.Equal(t, 90, b.DurationMinutes)
	assert.Equal(t, int64(4500), b.Court.TotalCents)
	assert.Equal(t, int64(9000), b.Coach.TotalCents)
	require.Len(t, b.Equipment.Items, 1)
	assert.Equal(t, 2, b.Equipment.Items[0].Quantity)
	assert.Equal(t, int64(1000), b.Equipment.TotalCents)
	assert.Equal(t, int64(14500), b.TotalCents)
}

func TestExecute_AppliesActiveRules(t *testing.T) {
	catalog := testCatalog()
	catalog.rules = []domain.PricingRule{
		{ID: 1, Name: "peak", IsActive: true, Priority: 10, AppliesTo: domain.AppliesToCourt, DayType: domain.DayTypeAny, MultiplierBps: 15000},
	}
	uc := NewUseCase(catalog, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		StartAt: quoteStart,
		EndAt:   quoteEnd,
		CourtID: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(6750), resp.Breakdown.Court.TotalCents)
	require.Len(t, resp.Breakdown.Court.AppliedRules, 1)
}

func TestExecute_NotFoundMapping(t *testing.T) {
	uc := NewUseCase(testCatalog(), nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{
		StartAt: quoteStart, EndAt: quoteEnd, CourtID: 42,
	})
	assert.ErrorIs(t, err, ErrCourtNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		StartAt: quoteStart, EndAt: quoteEnd, CourtID: 1, CoachID: ptr.Ptr(int64(42)),
	})
	assert.ErrorIs(t, err, ErrCoachNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		StartAt: quoteStart, EndAt: quoteEnd, CourtID: 1,
		Equipment: []EquipmentLine{{EquipmentTypeID: 42, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrEquipmentTypeNotFound)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	uc := NewUseCase(testCatalog(), nopLogger{})

	cases := map[string]Request{
		"zero times":        {CourtID: 1},
		"end before start":  {StartAt: quoteEnd, EndAt: quoteStart, CourtID: 1},
		"bad court id":      {StartAt: quoteStart, EndAt: quoteEnd, CourtID: 0},
		"bad coach id":      {StartAt: quoteStart, EndAt: quoteEnd, CourtID: 1, CoachID: ptr.Ptr(int64(0))},
		"bad equipment id":  {StartAt: quoteStart, EndAt: quoteEnd, CourtID: 1, Equipment: []EquipmentLine{{EquipmentTypeID: -1, Quantity: 1}}},
	}

	for name, req := range cases {
		r := req
		_, err := uc.Execute(context.Background(), &r)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestExecute_ZeroQuantityLinesDropped(t *testing.T) {
	uc := NewUseCase(testCatalog(), nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{
		StartAt: quoteStart,
		EndAt:   quoteEnd,
		CourtID: 1,
		Equipment: []EquipmentLine{
			{EquipmentTypeID: 7, Quantity: 0},
		},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Breakdown.Equipment.Items)
	assert.Equal(t, int64(0), resp.Breakdown.Equipment.TotalCents)
}
