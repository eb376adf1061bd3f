package cancel_booking

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtflow/CF-BookingEngine/internal/domain"
	bookingRepo "github.com/courtflow/CF-BookingEngine/internal/infra/storage/booking"
)

// 2026-08-24 — понедельник, интервалы в локальном времени площадки
var (
	bookingStart = time.Date(2026, 8, 24, 10, 0, 0, 0, time.Local)
	bookingEnd   = time.Date(2026, 8, 24, 11, 0, 0, 0, time.Local)
	fixedNow     = time.Date(2026, 8, 24, 9, 0, 0, 0, time.Local)
)

type fakeBookingRepo struct {
	booking       *domain.Booking
	reservedCourt *domain.ReservedCourt
	coachBusy     []domain.CoachReservation

	cancelledAt         *time.Time
	reservationsDeleted bool
}

func (f *fakeBookingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, bookingRepo.ErrBookingNotFound
	}
	copied := *f.booking
	return &copied, nil
}

func (f *fakeBookingRepo) GetReservedCourt(ctx context.Context, bookingID int64) (*domain.ReservedCourt, error) {
	return f.reservedCourt, nil
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, id int64, cancelledAt time.Time) error {
	f.cancelledAt = &cancelledAt
	return nil
}

func (f *fakeBookingRepo) DeleteReservations(ctx context.Context, bookingID int64) error {
	f.reservationsDeleted = true
	return nil
}

func (f *fakeBookingRepo) CoachReservationsInRange(ctx context.Context, from, to time.Time) ([]domain.CoachReservation, error) {
	return f.coachBusy, nil
}

type fakeCatalogRepo struct {
	coaches []domain.Coach
	windows []domain.CoachAvailabilityWindow
}

func (f *fakeCatalogRepo) ListActiveCoaches(ctx context.Context) ([]domain.Coach, error) {
	return f.coaches, nil
}

func (f *fakeCatalogRepo) ListActiveCoachWindows(ctx context.Context, dayOfWeek int) ([]domain.CoachAvailabilityWindow, error) {
	return f.windows, nil
}

type fakeWaitlistRepo struct {
	candidates []domain.WaitlistEntry

	gotSurface domain.CourtSurface
	listed     bool
	notifiedID *int64
	notifiedAt *time.Time
}

func (f *fakeWaitlistRepo) ListPromotionCandidates(ctx context.Context, startAt, endAt time.Time, freedSurface domain.CourtSurface) ([]domain.WaitlistEntry, error) {
	f.listed = true
	f.gotSurface = freedSurface
	return f.candidates, nil
}

func (f *fakeWaitlistRepo) MarkNotified(ctx context.Context, id int64, notifiedAt time.Time) error {
	f.notifiedID = &id
	f.notifiedAt = &notifiedAt
	return nil
}

type fakeNotificationRepo struct {
	created []domain.Notification
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	created := *n
	created.ID = int64(len(f.created) + 1)
	f.created = append(f.created, created)
	return &created, nil
}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct{}

func (fixedTimeProvider) Now() time.Time { return fixedNow }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func confirmedBooking() *domain.Booking {
	return &domain.Booking{
		ID:            1,
		CustomerName:  "Alice",
		CustomerEmail: "alice@example.com",
		StartAt:       bookingStart,
		EndAt:         bookingEnd,
		Status:        domain.StatusConfirmed,
	}
}

func newTestUseCase(bookings *fakeBookingRepo, catalog *fakeCatalogRepo, waitlist *fakeWaitlistRepo, notifications *fakeNotificationRepo) *UseCase {
	uc := NewUseCase(bookings, catalog, waitlist, notifications, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTimeProvider{}
	return uc
}

func TestExecute_CancelsAndFreesReservations(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:       confirmedBooking(),
		reservedCourt: &domain.ReservedCourt{CourtID: 1, Name: "Court A", Surface: domain.SurfaceIndoor},
	}
	waitlist := &fakeWaitlistRepo{}
	uc := newTestUseCase(bookings, &fakeCatalogRepo{}, waitlist, &fakeNotificationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.False(t, resp.AlreadyCancelled)
	require.NotNil(t, bookings.cancelledAt)
	assert.Equal(t, fixedNow, *bookings.cancelledAt)
	assert.True(t, bookings.reservationsDeleted)

	// Продвижение листа ожидания привязано к поверхности корта
	assert.True(t, waitlist.listed)
	assert.Equal(t, domain.SurfaceIndoor, waitlist.gotSurface)
}

func TestExecute_AlreadyCancelledIsNoOp(t *testing.T) {
	cancelled := confirmedBooking()
	cancelled.Status = domain.StatusCancelled

	bookings := &fakeBookingRepo{booking: cancelled}
	waitlist := &fakeWaitlistRepo{}
	uc := newTestUseCase(bookings, &fakeCatalogRepo{}, waitlist, &fakeNotificationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.True(t, resp.AlreadyCancelled)
	assert.Nil(t, bookings.cancelledAt)
	assert.False(t, bookings.reservationsDeleted)
	assert.False(t, waitlist.listed)
}

func TestExecute_BookingNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, &fakeWaitlistRepo{}, &fakeNotificationRepo{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_InvalidBookingID(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeCatalogRepo{}, &fakeWaitlistRepo{}, &fakeNotificationRepo{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NoReservedCourtSkipsPromotion(t *testing.T) {
	bookings := &fakeBookingRepo{booking: confirmedBooking()}
	waitlist := &fakeWaitlistRepo{}
	uc := newTestUseCase(bookings, &fakeCatalogRepo{}, waitlist, &fakeNotificationRepo{})

	resp, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	assert.True(t, resp.Ok)
	assert.False(t, waitlist.listed)
}

func TestExecute_PromotesOldestCandidate(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:       confirmedBooking(),
		reservedCourt: &domain.ReservedCourt{CourtID: 1, Name: "Court A", Surface: domain.SurfaceIndoor},
	}
	// Репозиторий уже отдаёт кандидатов в порядке очереди
	waitlist := &fakeWaitlistRepo{
		candidates: []domain.WaitlistEntry{
			{ID: 10, CustomerEmail: "first@example.com", Position: 1, Status: domain.WaitlistQueued},
			{ID: 11, CustomerEmail: "second@example.com", Position: 2, Status: domain.WaitlistQueued},
		},
	}
	notifications := &fakeNotificationRepo{}
	uc := newTestUseCase(bookings, &fakeCatalogRepo{}, waitlist, notifications)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	// Извещается ровно одна запись, самая старая
	require.NotNil(t, waitlist.notifiedID)
	assert.Equal(t, int64(10), *waitlist.notifiedID)
	assert.Equal(t, fixedNow, *waitlist.notifiedAt)

	require.Len(t, notifications.created, 1)
	n := notifications.created[0]
	assert.Equal(t, "first@example.com", n.Email)
	assert.Equal(t, domain.NotificationWaitlistAvailable, n.Type)

	var payload waitlistPayload
	require.NoError(t, json.Unmarshal(n.Payload, &payload))
	assert.Equal(t, int64(10), payload.EntryID)
	assert.Equal(t, domain.SurfaceIndoor, payload.FreedSurface)
	assert.Equal(t, 1, payload.Position)
	assert.True(t, payload.StartAt.Equal(bookingStart))
	assert.True(t, payload.EndAt.Equal(bookingEnd))
}

func TestExecute_CoachDemandUnsatisfiableSkipsCandidate(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:       confirmedBooking(),
		reservedCourt: &domain.ReservedCourt{CourtID: 1, Name: "Court A", Surface: domain.SurfaceIndoor},
	}
	// Тренеров нет вовсе: запись с тренером пропускается, следующая без
	// тренера извещается
	waitlist := &fakeWaitlistRepo{
		candidates: []domain.WaitlistEntry{
			{ID: 10, CustomerEmail: "coach@example.com", Position: 1, WantsCoach: true, Status: domain.WaitlistQueued},
			{ID: 11, CustomerEmail: "plain@example.com", Position: 2, Status: domain.WaitlistQueued},
		},
	}
	notifications := &fakeNotificationRepo{}
	uc := newTestUseCase(bookings, &fakeCatalogRepo{}, waitlist, notifications)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	require.NotNil(t, waitlist.notifiedID)
	assert.Equal(t, int64(11), *waitlist.notifiedID)
	require.Len(t, notifications.created, 1)
	assert.Equal(t, "plain@example.com", notifications.created[0].Email)
}

func TestExecute_CoachDemandSatisfiedByFreeCoach(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:       confirmedBooking(),
		reservedCourt: &domain.ReservedCourt{CourtID: 1, Name: "Court A", Surface: domain.SurfaceIndoor},
	}
	catalog := &fakeCatalogRepo{
		coaches: []domain.Coach{{ID: 5, Name: "Coach", IsActive: true}},
		windows: []domain.CoachAvailabilityWindow{
			{ID: 1, CoachID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		},
	}
	waitlist := &fakeWaitlistRepo{
		candidates: []domain.WaitlistEntry{
			{ID: 10, CustomerEmail: "coach@example.com", Position: 1, WantsCoach: true, Status: domain.WaitlistQueued},
		},
	}
	uc := newTestUseCase(bookings, catalog, waitlist, &fakeNotificationRepo{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	require.NotNil(t, waitlist.notifiedID)
	assert.Equal(t, int64(10), *waitlist.notifiedID)
}

func TestExecute_CoachBusyMeansUnsatisfiable(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:       confirmedBooking(),
		reservedCourt: &domain.ReservedCourt{CourtID: 1, Name: "Court A", Surface: domain.SurfaceIndoor},
		coachBusy: []domain.CoachReservation{
			{ID: 1, BookingID: 2, CoachID: 5, StartAt: bookingStart, EndAt: bookingEnd},
		},
	}
	catalog := &fakeCatalogRepo{
		coaches: []domain.Coach{{ID: 5, Name: "Coach", IsActive: true}},
		windows: []domain.CoachAvailabilityWindow{
			{ID: 1, CoachID: 5, DayOfWeek: 1, StartTime: "09:00", EndTime: "12:00", IsActive: true},
		},
	}
	waitlist := &fakeWaitlistRepo{
		candidates: []domain.WaitlistEntry{
			{ID: 10, CustomerEmail: "coach@example.com", Position: 1, WantsCoach: true, Status: domain.WaitlistQueued},
		},
	}
	notifications := &fakeNotificationRepo{}
	uc := newTestUseCase(bookings, catalog, waitlist, notifications)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	assert.Nil(t, waitlist.notifiedID)
	assert.Empty(t, notifications.created)
}

func TestExecute_SurfaceAgnosticEntryReceivesAnySurface(t *testing.T) {
	bookings := &fakeBookingRepo{
		booking:       confirmedBooking(),
		reservedCourt: &domain.ReservedCourt{CourtID: 2, Name: "Court B", Surface: domain.SurfaceOutdoor},
	}
	waitlist := &fakeWaitlistRepo{
		candidates: []domain.WaitlistEntry{
			{ID: 10, CustomerEmail: "any@example.com", Position: 1, PreferredSurface: nil, Status: domain.WaitlistQueued},
		},
	}
	uc := newTestUseCase(bookings, &fakeCatalogRepo{}, waitlist, &fakeNotificationRepo{})

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1})
	require.NoError(t, err)

	assert.Equal(t, domain.SurfaceOutdoor, waitlist.gotSurface)
	require.NotNil(t, waitlist.notifiedID)
	assert.Equal(t, int64(10), *waitlist.notifiedID)
}
