package models

import "jcr/src/types"

type Customer struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `json:"name,omitempty"`
	Contact     string `gorm:"uniqueIndex" json:"contact,omitempty"`
	Address     string `json:"address,omitempty"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"-"`
	Provider    string `json:"provider,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	FolderID    string `json:"folderId,omitempty"`
	JoiningDate string `json:"joiningDate,omitempty"`
	KycStatus   string `gorm:"default:pending" json:"kycStatus,omitempty"`

	// Set when a host verifies KYC; cleared once the customer has seen the
	// approval notice.
	ApprovedFlag bool `json:"approvedFlag"`

	Documents []*Document    `json:"documents,omitempty"`
	Bookings  []*Booking     `json:"bookings,omitempty"`
	Favorites []*FavoriteCar `json:"favorites,omitempty"`

	types.Timestamps
}

type Document struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Name       string `json:"name,omitempty"`
	URL        string `json:"url,omitempty"`
	Type       string `json:"type,omitempty"`
	DocType    string `json:"docType,omitempty"`
	CustomerID uint   `json:"customerId,omitempty"`

	types.Timestamps
}

type FavoriteCar struct {
	ID         uint `gorm:"primarykey" json:"id"`
	CustomerID uint `gorm:"index:idx_fav_customer_car,unique" json:"customerId,omitempty"`
	CarID      uint `gorm:"index:idx_fav_customer_car,unique" json:"carId,omitempty"`

	Car *Car `gorm:"foreignKey:car_id" json:"car,omitempty"`

	types.Timestamps
}
