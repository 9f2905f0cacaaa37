package models

import "jcr/src/types"

// Handover photos attached when a booking starts.
type CarImage struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	Name      string `json:"name,omitempty"`
	URL       string `json:"url,omitempty"`
	BookingID string `json:"bookingId,omitempty"`

	types.Timestamps
}
