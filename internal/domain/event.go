package domain

import "time"

// Event is a hobby event listed by a host: a pottery class, a climbing
// meetup, a language exchange evening.
type Event struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	HostID      string    `json:"host_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	Category    string    `json:"category,omitempty" gorm:"index"`
	City        string    `json:"city" gorm:"index"`
	Venue       string    `json:"venue,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Capacity    int       `json:"capacity,omitempty"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Host *User `json:"host,omitempty" gorm:"-"`
}

func (Event) TableName() string { return "events" }
