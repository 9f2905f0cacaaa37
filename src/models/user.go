package models

import "jcr/src/types"

// Host-side account. Customers authenticate through their own table; User
// covers the rental-desk staff. ID 1 is the super admin.
type User struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `gorm:"uniqueIndex" json:"email,omitempty"`
	Password string `json:"-"`
	Role     string `gorm:"default:host" json:"role,omitempty"`

	types.Timestamps
}
