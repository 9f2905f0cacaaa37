package models

import "jcr/src/types"

type Car struct {
	ID          uint    `gorm:"primarykey" json:"id"`
	Brand       string  `json:"brand,omitempty"`
	Model       string  `json:"model,omitempty"`
	PlateNumber string  `gorm:"uniqueIndex" json:"plateNumber,omitempty"`
	Color       string  `json:"color,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Mileage     *uint   `json:"mileage,omitempty"`
	Seats       *uint   `json:"seats,omitempty"`
	Fuel        string  `json:"fuel,omitempty"`
	Gear        string  `json:"gear,omitempty"`
	ImageURL    string  `json:"imageUrl,omitempty"`
	CarFolderID string  `json:"carFolderId,omitempty"`
	UserID      uint    `json:"userId,omitempty"`

	Status       string `gorm:"default:active" json:"status,omitempty"`
	BookingColor string `json:"bookingColor,omitempty"`

	// Lifetime revenue. Incremented when a booking completes and rebuilt
	// from scratch by the reconciliation endpoints and the nightly job.
	TotalEarnings float64 `json:"totalEarnings"`

	OdometerReading *float64 `json:"odometerReading,omitempty"`
	Fastrack        *float64 `json:"fastrack,omitempty"`

	Bookings  []*Booking     `json:"bookings,omitempty"`
	Photos    []*CarPhoto    `json:"photos,omitempty"`
	Favorites []*FavoriteCar `json:"favorites,omitempty"`

	types.Timestamps
}

// Gallery shots shown on the customer-facing car pages. ImageURL on Car is
// the cover image.
type CarPhoto struct {
	ID    uint   `gorm:"primarykey" json:"id"`
	URL   string `json:"url,omitempty"`
	CarID uint   `json:"carId,omitempty"`

	types.Timestamps
}
