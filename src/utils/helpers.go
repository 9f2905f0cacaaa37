package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"jcr/src/config"
	"jcr/src/lib"
	"jcr/src/models"
	"jcr/src/types"
	"log"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

var ErrCarUnavailable = errors.New("Car is not available for the selected dates")

// ParseDate accepts the stored calendar format ("Jan 2, 2006") and the ISO
// form clients sometimes send.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(config.DATE_STORE_FORMAT, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(config.DATE_INPUT_FORMAT, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable date %q", s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(config.DATE_STORE_FORMAT)
}

// CombineDateTime builds the instant a booking boundary refers to from its
// stored date and "HH:MM" clock time.
func CombineDateTime(date string, clock string) (time.Time, error) {
	d, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	c, err := time.Parse(config.TIME_PARSE_FORMAT, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable time %q", clock)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

func isSettled(status string) bool {
	return strings.EqualFold(status, string(types.BOOKING_COMPLETED)) ||
		strings.EqualFold(status, string(types.BOOKING_CANCELLED))
}

// IsCarAvailable reports whether [start, end] is free of conflicts with the
// car's existing bookings. Completed and Cancelled bookings never block.
// Boundaries are inclusive: a booking ending 10:00 conflicts with one
// starting 10:00 the same day.
func IsCarAvailable(bookings []*models.Booking, start, end time.Time) bool {
	for _, b := range bookings {
		if isSettled(b.Status) {
			continue
		}
		bStart, err := CombineDateTime(b.StartDate, b.StartTime)
		if err != nil {
			log.Printf("Skipping availability check for booking %s: %s\n", b.ID, err.Error())
			continue
		}
		bEnd, err := CombineDateTime(b.EndDate, b.EndTime)
		if err != nil {
			log.Printf("Skipping availability check for booking %s: %s\n", b.ID, err.Error())
			continue
		}
		within := func(t, lo, hi time.Time) bool {
			return !t.Before(lo) && !t.After(hi)
		}
		if within(start, bStart, bEnd) ||
			within(end, bStart, bEnd) ||
			within(bStart, start, end) ||
			within(bEnd, start, end) {
			return false
		}
	}
	return true
}

// NextIDAfter derives the successor of a booking id. A stored id that does
// not match the expected shape means the data is corrupt, never a reason to
// restart the sequence.
func NextIDAfter(lastID string) (string, error) {
	if !strings.HasPrefix(lastID, config.BOOKING_ID_PREFIX) {
		return "", fmt.Errorf("malformed booking id %q", lastID)
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(lastID, config.BOOKING_ID_PREFIX))
	if err != nil {
		return "", fmt.Errorf("malformed booking id %q", lastID)
	}
	return fmt.Sprintf("%s%04d", config.BOOKING_ID_PREFIX, seq+1), nil
}

// NextBookingID reads the highest id issued so far and returns its successor.
// Soft-deleted rows still count so ids are never reissued. Ordering is by
// suffix length before lexicographic value: once the sequence outgrows the
// zero padding, "JCR0110000" must still rank above "JCR019999". Callers must
// run this inside the same transaction as the insert.
func NextBookingID(tx *gorm.DB) (string, error) {
	var last models.Booking
	err := tx.Unscoped().Model(&models.Booking{}).Order("length(id) desc, id desc").First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return config.BOOKING_ID_SEED, nil
		}
		return "", err
	}
	return NextIDAfter(last.ID)
}

func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		log.Printf("Error generating OTP: %s\n", err.Error())
		return "0000"
	}
	return fmt.Sprintf("%04d", n.Int64())
}

// CalculateCost prices a rental window at the daily rate, floored to a whole
// amount. Advisory: the stored booking total always comes from the caller.
func CalculateCost(startDate, endDate, startTime, endTime string, pricePer24Hours float64) (float64, error) {
	start, err := CombineDateTime(startDate, startTime)
	if err != nil {
		return 0, err
	}
	end, err := CombineDateTime(endDate, endTime)
	if err != nil {
		return 0, err
	}
	hours := end.Sub(start).Hours()
	return math.Floor(hours / 24 * pricePer24Hours), nil
}

var allowedTransitions = map[types.BookingStatus][]types.BookingStatus{
	types.BOOKING_REQUESTED: {types.BOOKING_UPCOMING, types.BOOKING_CANCELLED},
	types.BOOKING_UPCOMING:  {types.BOOKING_ONGOING, types.BOOKING_CANCELLED},
	types.BOOKING_ONGOING:   {types.BOOKING_COMPLETED},
}

// CanTransition enforces the booking lifecycle. Completed and Cancelled are
// terminal.
func CanTransition(from, to types.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CalculateEarnings buckets a car's revenue into the calendar-month,
// trailing-month and trailing-six-month windows. Windows nest: a booking
// counted for thisMonth also counts for oneMonth and sixMonths. thisMonth
// takes only bookings starting in the current calendar month and year, so a
// booking starting next month never shows up in it. Bookings with no
// recorded earnings are skipped.
func CalculateEarnings(bookings []*models.Booking) types.EarningsSummary {
	now := time.Now().UTC()
	oneMonthAgo := now.AddDate(0, -1, 0)
	sixMonthsAgo := now.AddDate(0, -6, 0)

	var summary types.EarningsSummary
	for _, b := range bookings {
		if b.TotalEarnings == nil {
			continue
		}
		started, err := ParseDate(b.StartDate)
		if err != nil {
			continue
		}
		if started.Before(sixMonthsAgo) {
			continue
		}
		summary.SixMonths += *b.TotalEarnings
		if !started.Before(oneMonthAgo) {
			summary.OneMonth += *b.TotalEarnings
		}
		if started.Month() == now.Month() && started.Year() == now.Year() {
			summary.ThisMonth += *b.TotalEarnings
		}
	}
	return summary
}

// CalculateTotalEarnings is the unconditional sum over every booking with
// recorded earnings, regardless of status or date.
func CalculateTotalEarnings(bookings []*models.Booking) float64 {
	var total float64
	for _, b := range bookings {
		if b.TotalEarnings == nil {
			continue
		}
		total += *b.TotalEarnings
	}
	return total
}

// RecomputeCarEarnings rebuilds Car.totalEarnings from the bookings table,
// replacing whatever the incremental updates have accumulated. Running it
// twice in a row is a no-op.
func RecomputeCarEarnings(tx *gorm.DB, carID uint) (float64, error) {
	var bookings []*models.Booking
	if err := tx.Where(&models.Booking{CarID: carID}).Find(&bookings).Error; err != nil {
		return 0, err
	}
	total := CalculateTotalEarnings(bookings)
	if err := tx.Model(&models.Car{}).Where("id = ?", carID).Update("total_earnings", total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CreateBooking runs the availability check, id generation and insert as one
// unit, serialized per car by a redis lock so two requests for the same car
// cannot interleave between check and insert. afterCreate runs inside the
// transaction; returning an error from it rolls the booking back.
var (
	acquireCarLock = lib.AcquireCarLock
	releaseCarLock = lib.ReleaseCarLock
)

func CreateBooking(ctx context.Context, conn *gorm.DB, booking *models.Booking, start, end time.Time, afterCreate func(tx *gorm.DB, b *models.Booking) error) error {
	token, err := acquireCarLock(ctx, booking.CarID)
	if err != nil {
		return err
	}
	defer releaseCarLock(ctx, booking.CarID, token)

	return conn.Transaction(func(tx *gorm.DB) error {
		var existing []*models.Booking
		if err := tx.Where(&models.Booking{CarID: booking.CarID}).Find(&existing).Error; err != nil {
			return err
		}
		if !IsCarAvailable(existing, start, end) {
			return ErrCarUnavailable
		}
		id, err := NextBookingID(tx)
		if err != nil {
			return err
		}
		booking.ID = id
		if err := tx.Create(booking).Error; err != nil {
			return err
		}
		if afterCreate != nil {
			return afterCreate(tx, booking)
		}
		return nil
	})
}
