package domain

import "time"

type NotificationType string

const (
	NotifNewMessage     NotificationType = "new_message"
	NotifInquiryCreated NotificationType = "inquiry_created"
	NotifInquiryUpdated NotificationType = "inquiry_updated"
	NotifTest           NotificationType = "test"
)

// Notification backs the bell UI. Rows are created when something happens
// for a user and flipped to read when opened; they are never hard-deleted.
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey"`
	UserID    string           `json:"user_id" gorm:"not null;index:idx_notifications_user_unread"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title" gorm:"not null"`
	Body      string           `json:"body,omitempty" gorm:"type:text"`
	Link      string           `json:"link,omitempty"`
	IsRead    bool             `json:"is_read" gorm:"default:false;index:idx_notifications_user_unread"`
	ReadAt    *time.Time       `json:"read_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// MarkAsRead flips the read flag with a timestamp.
func (n *Notification) MarkAsRead() {
	if n.IsRead {
		return
	}
	n.IsRead = true
	now := time.Now()
	n.ReadAt = &now
}
