package models

import "jcr/src/types"

// Booking IDs are human-facing sequence strings ("JCR010001", "JCR010002", ...)
// rather than auto-increment integers. utils.NextBookingID owns the sequence.
type Booking struct {
	ID         string `gorm:"primarykey" json:"id"`
	Status     string `json:"status,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	AllDay     bool   `json:"allDay"`
	CarID      uint   `json:"carId,omitempty"`
	CustomerID uint   `json:"customerId,omitempty"`
	UserID     uint   `json:"userId,omitempty"`

	SecurityDeposit    *float64 `json:"securityDeposit,omitempty"`
	DailyRentalPrice   float64  `json:"dailyRentalPrice,omitempty"`
	AdvancePayment     *float64 `json:"advancePayment,omitempty"`
	TotalEarnings      *float64 `json:"totalEarnings,omitempty"`
	PaymentMethod      string   `json:"paymentMethod,omitempty"`
	OdometerReading    *float64 `json:"odometerReading,omitempty"`
	EndOdometerReading *float64 `json:"endOdometerReading,omitempty"`
	Fastrack           *float64 `json:"fastrack,omitempty"`
	EndFastrack        *float64 `json:"endFastrack,omitempty"`

	Notes           string `json:"notes,omitempty"`
	Type            string `json:"type,omitempty"`
	SelfieURL       string `json:"selfieUrl,omitempty"`
	OTP             string `json:"otp,omitempty"`
	CancelledBy     string `json:"cancelledBy,omitempty"`
	BookingFolderID string `json:"bookingFolderId,omitempty"`

	Car       *Car        `gorm:"foreignKey:car_id" json:"car,omitempty"`
	Customer  *Customer   `gorm:"foreignKey:customer_id" json:"customer,omitempty"`
	CarImages []*CarImage `json:"carImages,omitempty"`

	types.Timestamps
}
