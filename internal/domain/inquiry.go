package domain

import "time"

type InquiryStatus string

const (
	InquiryPending  InquiryStatus = "pending"
	InquiryApproved InquiryStatus = "approved"
	InquiryDeclined InquiryStatus = "declined"
)

// StudioInquiry is a request to rent a studio for a time range. The owner
// approves or declines it from the host dashboard.
type StudioInquiry struct {
	ID          string        `json:"id" gorm:"primaryKey"`
	StudioID    string        `json:"studio_id" gorm:"not null;index"`
	RequesterID string        `json:"requester_id" gorm:"column:requester_id;not null;index"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	Message     string        `json:"message,omitempty" gorm:"type:text"`
	Status      InquiryStatus `json:"status" gorm:"default:'pending'"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	Studio    *Studio `json:"studio,omitempty" gorm:"-"`
	Requester *User   `json:"requester,omitempty" gorm:"-"`
}

func (StudioInquiry) TableName() string { return "studio_inquiries" }
