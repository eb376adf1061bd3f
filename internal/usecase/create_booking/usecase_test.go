package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	catalogRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/catalog"
	"github.com/courtflow/CF-BookingEngine/pkg/ptr"
)

var (
	testStart = time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, 8, 24, 11, 0, 0, 0, time.UTC)
)

type fakeCatalogRepo struct {
	courts    map[int64]domain.Court
	coaches   map[int64]domain.Coach
	equipment map[int64]domain.EquipmentType
	rules     []domain.PricingRule

	lockedOrder []int64
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

func (f *fakeCatalogRepo) LockEquipmentType(ctx context.Context, id int64) (*domain.EquipmentType, error) {
	et, ok := f.equipment[id]
	if !ok {
		return nil, catalogRepo.ErrEquipmentTypeNotFound
	}
	f.lockedOrder = append(f.lockedOrder, id)
	return &et, nil
}

type fakeBookingRepo struct {
	nextID   int64
	created  []domain.Booking
	reserved int

	reserveCourtErr     error
	reserveCoachErr     error
	reservedByEquipment map[int64]int

	courtReservations []domain.CourtReservation
	coachReservations []domain.CoachReservation
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	f.nextID++
	created := *booking
	created.ID = f.nextID
	created.CreatedAt = testStart.Add(-time.Hour)
	f.created = append(f.created, created)
	return &created, nil
}

func (f *fakeBookingRepo) ReserveCourt(ctx context.Context, bookingID, courtID int64, startAt, endAt time.Time) error {
	if f.reserveCourtErr != nil {
		return f.reserveCourtErr
	}
	f.courtReservations = append(f.courtReservations, domain.CourtReservation{
		BookingID: bookingID, CourtID: courtID, StartAt: startAt, EndAt: endAt,
	})
	return nil
}

func (f *fakeBookingRepo) ReserveCoach(ctx context.Context, bookingID, coachID int64, startAt, endAt time.Time) error {
	if f.reserveCoachErr != nil {
		return f.reserveCoachErr
	}
	f.coachReservations = append(f.coachReservations, domain.CoachReservation{
		BookingID: bookingID, CoachID: coachID, StartAt: startAt, EndAt: endAt,
	})
	return nil
}

func (f *fakeBookingRepo) ReserveEquipment(ctx context.Context, bookingID, equipmentTypeID int64, quantity int, startAt, endAt time.Time) error {
	f.reserved += quantity
	return nil
}

func (f *fakeBookingRepo) SumEquipmentReserved(ctx context.Context, equipmentTypeID int64, from, to time.Time) (int, error) {
	return f.reservedByEquipment[equipmentTypeID], nil
}

type fakeTxManager struct {
	commitErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return f.commitErr
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
			9: {ID: 9, Name: "Ball machine", UnitPriceCents: 2000, TotalQuantity: 1, IsActive: true},
		},
	}
}

func validRequest() *Request {
	return &Request{
		CustomerName:  "Alice",
		CustomerEmail: "Alice@Example.com",
		StartAt:       testStart,
		EndAt:         testEnd,
		CourtID:       1,
	}
}

func newTestUseCase(catalog *fakeCatalogRepo, bookings *fakeBookingRepo, tx *fakeTxManager) *UseCase {
	return NewUseCase(catalog, bookings, tx, nopLogger{})
}

func TestExecute_CreatesBookingWithAuthoritativePrice(t *testing.T) {
	catalog := testCatalog()
	bookings := &fakeBookingRepo{}
	uc := newTestUseCase(catalog, bookings, &fakeTxManager{})

	req := validRequest()
	req.CoachID = ptr.Ptr(int64(5))
	req.Equipment = []EquipmentLine{{EquipmentTypeID: 7, Quantity: 2}}

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	// 3000 корт + 6000 тренер + 2×500 инвентарь
	assert.Equal(t, int64(10000), resp.TotalCents)
	assert.Equal(t, int64(10000), resp.Breakdown.TotalCents)

	require.Len(t, bookings.created, 1)
	created := bookings.created[0]
	assert.Equal(t, "alice@example.com", created.CustomerEmail)
	assert.Equal(t, int64(10000), created.PriceTotalCents)
	assert.NotEmpty(t, created.PriceBreakdown)

	require.Len(t, bookings.courtReservations, 1)
	require.Len(t, bookings.coachReservations, 1)
	assert.Equal(t, 2, bookings.reserved)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	uc := newTestUseCase(testCatalog(), &fakeBookingRepo{}, &fakeTxManager{})

	cases := map[string]func(*Request){
		"empty name":        func(r *Request) { r.CustomerName = "   " },
		"name too long":     func(r *Request) { r.CustomerName = strings.Repeat("a", domain.MaxCustomerNameLength+1) },
		"empty email":       func(r *Request) { r.CustomerEmail = "" },
		"malformed email":   func(r *Request) { r.CustomerEmail = "not-an-email" },
		"end before start":  func(r *Request) { r.EndAt = r.StartAt.Add(-time.Hour) },
		"zero interval":     func(r *Request) { r.EndAt = r.StartAt },
		"bad court id":      func(r *Request) { r.CourtID = 0 },
		"bad coach id":      func(r *Request) { r.CoachID = ptr.Ptr(int64(-1)) },
		"bad equipment id":  func(r *Request) { r.Equipment = []EquipmentLine{{EquipmentTypeID: 0, Quantity: 1}} },
		"quantity over cap": func(r *Request) { r.Equipment = []EquipmentLine{{EquipmentTypeID: 7, Quantity: domain.MaxEquipmentPerLine + 1}} },
	}

	for name, mutate := range cases {
		req := validRequest()
		mutate(req)
		_, err := uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
}

func TestExecute_EquipmentLinesMergedAndLockedInIDOrder(t *testing.T) {
	catalog := testCatalog()
	uc := newTestUseCase(catalog, &fakeBookingRepo{}, &fakeTxManager{})

	req := validRequest()
	req.Equipment = []EquipmentLine{
		{EquipmentTypeID: 9, Quantity: 1},
		{EquipmentTypeID: 7, Quantity: 1},
		{EquipmentTypeID: 7, Quantity: 1},
		{EquipmentTypeID: 9, Quantity: 0}, // отбрасывается
	}

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Дубликаты схлопнуты, блокировка строго по возрастанию ID
	assert.Equal(t, []int64{7, 9}, catalog.lockedOrder)
	require.Len(t, req.Equipment, 2)
	assert.Equal(t, 2, req.Equipment[0].Quantity)
}

func TestExecute_NotFoundMapping(t *testing.T) {
	uc := newTestUseCase(testCatalog(), &fakeBookingRepo{}, &fakeTxManager{})

	req := validRequest()
	req.CourtID = 42
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCourtNotFound)

	req = validRequest()
	req.CoachID = ptr.Ptr(int64(42))
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCoachNotFound)

	req = validRequest()
	req.Equipment = []EquipmentLine{{EquipmentTypeID: 42, Quantity: 1}}
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrEquipmentTypeNotFound)
}

func TestExecute_EquipmentExhausted(t *testing.T) {
	bookings := &fakeBookingRepo{
		reservedByEquipment: map[int64]int{7: 3},
	}
	uc := newTestUseCase(testCatalog(), bookings, &fakeTxManager{})

	req := validRequest()
	req.Equipment = []EquipmentLine{{EquipmentTypeID: 7, Quantity: 2}}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
	assert.Empty(t, bookings.created)
}

func TestExecute_LostRaceOnInsertIsConflict(t *testing.T) {
	for _, code := range []pq.ErrorCode{"23P01", "23505", "40001"} {
		bookings := &fakeBookingRepo{
			reserveCourtErr: driverConflict(code),
		}
		uc := newTestUseCase(testCatalog(), bookings, &fakeTxManager{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrResourceUnavailable, string(code))
	}
}

func TestExecute_CoachConflictIsConflict(t *testing.T) {
	bookings := &fakeBookingRepo{
		reserveCoachErr: driverConflict("23P01"),
	}
	uc := newTestUseCase(testCatalog(), bookings, &fakeTxManager{})

	req := validRequest()
	req.CoachID = ptr.Ptr(int64(5))

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestExecute_LostRaceOnCommitIsConflict(t *testing.T) {
	tx := &fakeTxManager{
		commitErr: driverConflict("40001"),
	}
	uc := newTestUseCase(testCatalog(), &fakeBookingRepo{}, tx)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestExecute_UnrelatedDriverErrorIsInternal(t *testing.T) {
	bookings := &fakeBookingRepo{
		reserveCourtErr: errors.New("connection reset"),
	}
	uc := newTestUseCase(testCatalog(), bookings, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.NotErrorIs(t, err, ErrResourceUnavailable)
}

// driverConflict собирает обёрнутую ошибку драйвера с заданным кодом,
// как её отдаёт репозиторий
func driverConflict(code pq.ErrorCode) error {
	return fmt.Errorf("exec query: %w", &pq.Error{Code: code})
}
