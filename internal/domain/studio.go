package domain

import "time"

// Studio is a rentable space (workshop, rehearsal room, atelier) listed
// by its owner. Bookings start as StudioInquiry rows.
type Studio struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	OwnerID     string    `json:"owner_id" gorm:"not null;index"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city" gorm:"index"`
	HourlyRate  float64   `json:"hourly_rate"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner *User `json:"owner,omitempty" gorm:"-"`
}

func (Studio) TableName() string { return "studios" }
