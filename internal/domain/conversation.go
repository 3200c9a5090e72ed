package domain

import "time"

// Conversation is a 1-on-1 thread between two users. The pair is stored in
// canonical order: Participant1ID is always the lexicographically smaller
// identifier, so at most one row can exist per unordered pair. The unique
// index enforces that even under concurrent creation.
type Conversation struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Participant1ID string    `json:"participant1_id" gorm:"column:participant1_id;not null;uniqueIndex:idx_conversation_pair"`
	Participant2ID string    `json:"participant2_id" gorm:"column:participant2_id;not null;uniqueIndex:idx_conversation_pair"`
	CreatedAt      time.Time `json:"created_at"`

	// UpdatedAt doubles as the last-activity timestamp used for inbox
	// ordering; it is bumped after every message send.
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by the service, not stored.
	OtherUser   *User    `json:"other_user,omitempty" gorm:"-"`
	LastMessage *Message `json:"last_message,omitempty" gorm:"-"`
}

func (Conversation) TableName() string { return "conversations" }

// Includes reports whether userID is one of the two participants.
func (c *Conversation) Includes(userID string) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

// Message is a single immutable entry in a conversation. Order within a
// conversation is ascending creation time.
type Message struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	ConversationID string    `json:"conversation_id" gorm:"not null;index"`
	SenderID       string    `json:"sender_user_id" gorm:"column:sender_user_id;not null"`
	Content        string    `json:"content" gorm:"type:text;not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`

	Sender *User `json:"sender,omitempty" gorm:"-"`
}

func (Message) TableName() string { return "messages" }
