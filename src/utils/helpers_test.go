package utils

import (
	"context"
	"jcr/src/db"
	"jcr/src/models"
	"jcr/src/types"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func ptr(v float64) *float64 { return &v }

func TestCombineDateTime(t *testing.T) {
	got, err := CombineDateTime("Jan 5, 2026", "09:30")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 5, 9, 30, 0, 0, time.UTC), got)

	got, err = CombineDateTime("2026-01-05", "09:30")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.January, 5, 9, 30, 0, 0, time.UTC), got)

	_, err = CombineDateTime("not a date", "09:30")
	assert.Error(t, err)

	_, err = CombineDateTime("Jan 5, 2026", "25:99")
	assert.Error(t, err)
}

func TestIsCarAvailable(t *testing.T) {
	existing := []*models.Booking{
		{
			ID:        "JCR010001",
			Status:    string(types.BOOKING_UPCOMING),
			StartDate: "Jan 10, 2026", StartTime: "10:00",
			EndDate: "Jan 12, 2026", EndTime: "10:00",
		},
	}

	at := func(date, clock string) time.Time {
		v, err := CombineDateTime(date, clock)
		assert.NoError(t, err)
		return v
	}

	// fully before and fully after
	assert.True(t, IsCarAvailable(existing, at("Jan 8, 2026", "10:00"), at("Jan 10, 2026", "09:59")))
	assert.True(t, IsCarAvailable(existing, at("Jan 12, 2026", "10:01"), at("Jan 14, 2026", "10:00")))

	// start inside, end inside, spanning, identical
	assert.False(t, IsCarAvailable(existing, at("Jan 11, 2026", "10:00"), at("Jan 14, 2026", "10:00")))
	assert.False(t, IsCarAvailable(existing, at("Jan 9, 2026", "10:00"), at("Jan 10, 2026", "12:00")))
	assert.False(t, IsCarAvailable(existing, at("Jan 9, 2026", "10:00"), at("Jan 13, 2026", "10:00")))
	assert.False(t, IsCarAvailable(existing, at("Jan 10, 2026", "10:00"), at("Jan 12, 2026", "10:00")))

	// boundaries are inclusive
	assert.False(t, IsCarAvailable(existing, at("Jan 12, 2026", "10:00"), at("Jan 14, 2026", "10:00")))
	assert.False(t, IsCarAvailable(existing, at("Jan 8, 2026", "10:00"), at("Jan 10, 2026", "10:00")))

	// settled bookings never block, case-insensitively
	for _, status := range []string{"Completed", "completed", "Cancelled", "CANCELLED"} {
		settled := []*models.Booking{{
			ID:        "JCR010002",
			Status:    status,
			StartDate: "Jan 10, 2026", StartTime: "10:00",
			EndDate: "Jan 12, 2026", EndTime: "10:00",
		}}
		assert.True(t, IsCarAvailable(settled, at("Jan 10, 2026", "10:00"), at("Jan 12, 2026", "10:00")))
	}
}

func TestNextIDAfter(t *testing.T) {
	next, err := NextIDAfter("JCR010042")
	assert.NoError(t, err)
	assert.Equal(t, "JCR010043", next)

	next, err = NextIDAfter("JCR010001")
	assert.NoError(t, err)
	assert.Equal(t, "JCR010002", next)

	// sequence keeps counting past four digits
	next, err = NextIDAfter("JCR019999")
	assert.NoError(t, err)
	assert.Equal(t, "JCR0110000", next)

	_, err = NextIDAfter("BK-42")
	assert.Error(t, err)

	_, err = NextIDAfter("JCR01XYZ")
	assert.Error(t, err)
}

func TestNextBookingID(t *testing.T) {
	gormDB, mock := db.NewMockDB()

	// longer suffixes must rank above shorter ones, so plain "id desc" would
	// pick "JCR019999" over "JCR0110000"
	mock.ExpectQuery(`SELECT (.+) FROM "bookings" ORDER BY length\(id\) desc, id desc`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("JCR010042"))
	id, err := NextBookingID(gormDB)
	assert.NoError(t, err)
	assert.Equal(t, "JCR010043", id)

	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	id, err = NextBookingID(gormDB)
	assert.NoError(t, err)
	assert.Equal(t, "JCR010001", id)

	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("JCR0110000"))
	id, err = NextBookingID(gormDB)
	assert.NoError(t, err)
	assert.Equal(t, "JCR0110001", id)

	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("BK-42"))
	_, err = NextBookingID(gormDB)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking(t *testing.T) {
	gormDB, mock := db.NewMockDB()

	restoreAcquire, restoreRelease := acquireCarLock, releaseCarLock
	released := 0
	acquireCarLock = func(ctx context.Context, carID uint) (string, error) { return "test-token", nil }
	releaseCarLock = func(ctx context.Context, carID uint, token string) { released++ }
	defer func() { acquireCarLock, releaseCarLock = restoreAcquire, restoreRelease }()

	cols := []string{"id", "status", "start_date", "end_date", "start_time", "end_time", "car_id"}
	start, err := CombineDateTime("Jan 2, 2026", "10:00")
	assert.NoError(t, err)
	end, err := CombineDateTime("Jan 4, 2026", "10:00")
	assert.NoError(t, err)

	// an Upcoming booking on the same car blocks the overlapping request
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("JCR010001", "Upcoming", "Jan 1, 2026", "Jan 3, 2026", "10:00", "10:00", 7))
	mock.ExpectRollback()

	booking := &models.Booking{
		Status:    string(types.BOOKING_UPCOMING),
		StartDate: "Jan 2, 2026", StartTime: "10:00",
		EndDate: "Jan 4, 2026", EndTime: "10:00",
		CarID: 7,
	}
	err = CreateBooking(context.Background(), gormDB, booking, start, end, nil)
	assert.ErrorIs(t, err, ErrCarUnavailable)
	assert.Empty(t, booking.ID)

	// once the blocker is cancelled the retry gets the next id and commits
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT (.+) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("JCR010001", "Cancelled", "Jan 1, 2026", "Jan 3, 2026", "10:00", "10:00", 7))
	mock.ExpectQuery(`SELECT (.+) FROM "bookings" ORDER BY length\(id\) desc, id desc`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("JCR010001"))
	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	afterCreateCalls := 0
	err = CreateBooking(context.Background(), gormDB, booking, start, end, func(tx *gorm.DB, b *models.Booking) error {
		afterCreateCalls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "JCR010002", booking.ID)
	assert.Equal(t, 1, afterCreateCalls)

	// the per-car lock is released on the conflict path and the success path
	assert.Equal(t, 2, released)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 20; i++ {
		otp := GenerateOTP()
		assert.Len(t, otp, 4)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

func TestCalculateCost(t *testing.T) {
	cost, err := CalculateCost("Jan 10, 2026", "Jan 11, 2026", "10:00", "10:00", 1000)
	assert.NoError(t, err)
	assert.Equal(t, float64(1000), cost)

	cost, err = CalculateCost("Jan 10, 2026", "Jan 10, 2026", "10:00", "22:00", 1000)
	assert.NoError(t, err)
	assert.Equal(t, float64(500), cost)

	cost, err = CalculateCost("Jan 10, 2026", "Jan 10, 2026", "10:00", "22:00", 999)
	assert.NoError(t, err)
	assert.Equal(t, float64(499), cost)

	_, err = CalculateCost("bad", "Jan 10, 2026", "10:00", "22:00", 999)
	assert.Error(t, err)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(types.BOOKING_REQUESTED, types.BOOKING_UPCOMING))
	assert.True(t, CanTransition(types.BOOKING_REQUESTED, types.BOOKING_CANCELLED))
	assert.True(t, CanTransition(types.BOOKING_UPCOMING, types.BOOKING_ONGOING))
	assert.True(t, CanTransition(types.BOOKING_UPCOMING, types.BOOKING_CANCELLED))
	assert.True(t, CanTransition(types.BOOKING_ONGOING, types.BOOKING_COMPLETED))

	assert.False(t, CanTransition(types.BOOKING_REQUESTED, types.BOOKING_ONGOING))
	assert.False(t, CanTransition(types.BOOKING_ONGOING, types.BOOKING_CANCELLED))

	// terminal states are immutable
	for _, terminal := range []types.BookingStatus{types.BOOKING_COMPLETED, types.BOOKING_CANCELLED} {
		for _, to := range []types.BookingStatus{types.BOOKING_REQUESTED, types.BOOKING_UPCOMING, types.BOOKING_ONGOING, types.BOOKING_COMPLETED, types.BOOKING_CANCELLED} {
			assert.False(t, CanTransition(terminal, to))
		}
	}
}

func TestCalculateEarnings(t *testing.T) {
	now := time.Now().UTC()

	bookings := []*models.Booking{
		{ID: "JCR010001", StartDate: FormatDate(now), TotalEarnings: ptr(1000)},
		{ID: "JCR010002", StartDate: FormatDate(now.AddDate(0, -3, 0)), TotalEarnings: ptr(2000)},
		{ID: "JCR010003", StartDate: FormatDate(now.AddDate(0, -12, 0)), TotalEarnings: ptr(9000)},
		{ID: "JCR010004", StartDate: FormatDate(now), TotalEarnings: nil},
		{ID: "JCR010005", StartDate: "garbage", TotalEarnings: ptr(400)},
		{ID: "JCR010006", StartDate: FormatDate(now.AddDate(0, 1, 0)), TotalEarnings: ptr(500)},
	}

	summary := CalculateEarnings(bookings)

	// a booking started today lands in all three nested windows; an upcoming
	// booking starting next month counts toward the trailing windows but not
	// toward the current calendar month
	assert.Equal(t, float64(1000), summary.ThisMonth)
	assert.Equal(t, float64(1500), summary.OneMonth)
	assert.Equal(t, float64(3500), summary.SixMonths)
}

func TestCalculateTotalEarnings(t *testing.T) {
	bookings := []*models.Booking{
		{ID: "JCR010001", Status: "Completed", TotalEarnings: ptr(1000)},
		{ID: "JCR010002", Status: "Cancelled", TotalEarnings: ptr(250)},
		{ID: "JCR010003", Status: "Upcoming", TotalEarnings: nil},
	}
	// every recorded amount counts, status notwithstanding
	assert.Equal(t, float64(1250), CalculateTotalEarnings(bookings))
	assert.Equal(t, float64(1250), CalculateTotalEarnings(bookings))
	assert.Equal(t, float64(0), CalculateTotalEarnings(nil))
}
