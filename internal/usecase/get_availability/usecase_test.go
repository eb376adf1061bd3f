package get_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
	"github.com/courtflow/CF-BookingEngine/pkg/types"
)

// 2026-08-24 — понедельник
const testDate = "2026-08-24"

func localAt(hour, min int) time.Time {
	return time.Date(2026, 8, 24, hour, min, 0, 0, time.Local)
}

type fakeCatalogRepo struct {
	config       *domain.FacilityConfig
	configErr    error
	courts       []domain.Court
	coaches      []domain.Coach
	windows      []domain.CoachAvailabilityWindow
	equipment    []domain.EquipmentType
	gotDayOfWeek int
}

func (f *fakeCatalogRepo) GetFacilityConfig(ctx context.Context) (*domain.FacilityConfig, error) {
	if f.configErr != nil {
		return nil, f.configErr
	}
	return f.config, nil
}

func (f *fakeCatalogRepo) ListActiveCourts(ctx context.Context) ([]domain.Court, error) {
	return f.courts, nil
}

func (f *fakeCatalogRepo) ListActiveCoaches(ctx context.Context) ([]domain.Coach, error) {
	return f.coaches, nil
}

func (f *fakeCatalogRepo) ListActiveCoachWindows(ctx context.Context, dayOfWeek int) ([]domain.CoachAvailabilityWindow, error) {
	f.gotDayOfWeek = dayOfWeek
	return f.windows, nil
}

func (f *fakeCatalogRepo) ListActiveEquipmentTypes(ctx context.Context) ([]domain.EquipmentType, error) {
	return f.equipment, nil
}

type fakeBookingRepo struct {
	courtReservations     []domain.CourtReservation
	coachReservations     []domain.CoachReservation
	equipmentReservations []domain.EquipmentReservation
	err                   error
}

func (f *fakeBookingRepo) CourtReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CourtReservation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.courtReservations, nil
}

func (f *fakeBookingRepo) CoachReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CoachReservation, error) {
	return f.coachReservations, nil
}

func (f *fakeBookingRepo) EquipmentReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.EquipmentReservation, error) {
	return f.equipmentReservations, nil
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func testConfig(open, close string, slotMinutes int) *domain.FacilityConfig {
	return &domain.FacilityConfig{
		ID:          domain.FacilityConfigID,
		Timezone:    "local",
		OpenTime:    types.TimeString(open),
		CloseTime:   types.TimeString(close),
		SlotMinutes: slotMinutes,
	}
}

func TestExecute_FullDayGrid(t *testing.T) {
	catalog := &fakeCatalogRepo{
		config: testConfig("06:00", "22:00", 60),
		courts: []domain.Court{
			{ID: 1, Name: "Court A", Surface: domain.SurfaceIndoor, IsActive: true},
			{ID: 2, Name: "Court B", Surface: domain.SurfaceOutdoor, IsActive: true},
		},
		coaches: []domain.Coach{{ID: 5, Name: "Coach", IsActive: true}},
		windows: []domain.CoachAvailabilityWindow{
			{ID: 1, CoachID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		},
		equipment: []domain.EquipmentType{
			{ID: 7, Name: "Racket", TotalQuantity: 4, IsActive: true},
		},
	}
	bookings := &fakeBookingRepo{
		courtReservations: []domain.CourtReservation{
			{ID: 1, BookingID: 1, CourtID: 1, StartAt: localAt(10, 0), EndAt: localAt(11, 0)},
		},
		coachReservations: []domain.CoachReservation{
			{ID: 1, BookingID: 1, CoachID: 5, StartAt: localAt(10, 0), EndAt: localAt(11, 0)},
		},
		equipmentReservations: []domain.EquipmentReservation{
			{ID: 1, BookingID: 1, EquipmentTypeID: 7, Quantity: 3, StartAt: localAt(10, 0), EndAt: localAt(11, 0)},
		},
	}

	uc := NewUseCase(catalog, bookings, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	// 06:00-22:00 по 60 минут — ровно 16 слотов
	require.Len(t, resp.Slots, 16)
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, 1, catalog.gotDayOfWeek)

	assert.Equal(t, localAt(6, 0), resp.Slots[0].StartAt)
	assert.Equal(t, localAt(7, 0), resp.Slots[0].EndAt)
	assert.Equal(t, localAt(21, 0), resp.Slots[15].StartAt)
	assert.Equal(t, localAt(22, 0), resp.Slots[15].EndAt)

	// Слот 10:00-11:00: корт 1 и тренер заняты, инвентаря остался 1
	busy := resp.Slots[4]
	require.Equal(t, localAt(10, 0), busy.StartAt)
	require.Len(t, busy.AvailableCourts, 1)
	assert.Equal(t, int64(2), busy.AvailableCourts[0].ID)
	assert.Empty(t, busy.AvailableCoaches)
	require.Len(t, busy.Equipment, 1)
	assert.Equal(t, 3, busy.Equipment[0].Reserved)
	assert.Equal(t, 1, busy.Equipment[0].Remaining)

	// Соседний слот 11:00-12:00 свободен: интервалы полуоткрытые
	next := resp.Slots[5]
	require.Equal(t, localAt(11, 0), next.StartAt)
	assert.Len(t, next.AvailableCourts, 2)
	require.Len(t, next.AvailableCoaches, 1)
	assert.Equal(t, int64(5), next.AvailableCoaches[0].ID)
	assert.Equal(t, 4, next.Equipment[0].Remaining)

	// Тренер доступен только внутри окна 09:00-12:00
	assert.Empty(t, resp.Slots[2].AvailableCoaches)  // 08:00-09:00
	assert.Len(t, resp.Slots[3].AvailableCoaches, 1) // 09:00-10:00
	assert.Empty(t, resp.Slots[6].AvailableCoaches)  // 12:00-13:00
}

func TestExecute_PartialTrailingSlotDropped(t *testing.T) {
	catalog := &fakeCatalogRepo{config: testConfig("06:00", "21:30", 60)}
	uc := NewUseCase(catalog, &fakeBookingRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	// Хвост 21:00-22:00 не помещается до 21:30 и не эмитится
	require.Len(t, resp.Slots, 15)
	assert.Equal(t, localAt(20, 0), resp.Slots[14].StartAt)
	assert.Equal(t, localAt(21, 0), resp.Slots[14].EndAt)
}

func TestExecute_ConfigMissing(t *testing.T) {
	catalog := &fakeCatalogRepo{configErr: catalogRepo.ErrConfigNotFound}
	uc := NewUseCase(catalog, &fakeBookingRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate})
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestExecute_InvalidDate(t *testing.T) {
	catalog := &fakeCatalogRepo{config: testConfig("06:00", "22:00", 60)}
	uc := NewUseCase(catalog, &fakeBookingRepo{}, nopLogger{})

	for _, date := range []string{"", "24.08.2026", "2026-13-40", "not-a-date"} {
		_, err := uc.Execute(context.Background(), &Request{Date: date})
		assert.ErrorIs(t, err, ErrInvalidInput, date)
	}
}

func TestExecute_RepositoryFailure(t *testing.T) {
	catalog := &fakeCatalogRepo{config: testConfig("06:00", "22:00", 60)}
	bookings := &fakeBookingRepo{err: errors.New("connection refused")}
	uc := NewUseCase(catalog, bookings, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate})
	assert.ErrorIs(t, err, ErrInternal)
}
