package realtime

import (
	"context"
	"log"

	"communew/internal/domain"
)

// Tone drives how the UI frames a notice.
type Tone string

const (
	ToneInfo     Tone = "info"
	TonePositive Tone = "positive"
	ToneNeutral  Tone = "neutral"
)

// Notice is a user-facing toast derived from a change-feed event.
type Notice struct {
	Type  domain.NotificationType `json:"type"`
	Title string                  `json:"title"`
	Body  string                  `json:"body,omitempty"`
	Link  string                  `json:"link,omitempty"`
	Tone  Tone                    `json:"tone"`
}

// NotificationStore persists notices for the bell UI.
type NotificationStore interface {
	Create(ctx context.Context, userID string, typ domain.NotificationType, title, body, link string) (*domain.Notification, error)
}

// Pusher delivers a payload to a connected user, reporting whether anyone
// was online to receive it.
type Pusher interface {
	SendToUser(userID string, payload any) bool
}

// Bridge subscribes to the change feed on behalf of a user session and turns
// events into notices: pushed live over the hub and persisted for the bell.
type Bridge struct {
	feed  *Feed
	hub   Pusher
	store NotificationStore
}

func NewBridge(feed *Feed, hub Pusher, store NotificationStore) *Bridge {
	return &Bridge{feed: feed, hub: hub, store: store}
}

// Attach opens one subscription for the user's session and starts handling.
// The caller owns the returned subscription and must Stop it on teardown.
func (b *Bridge) Attach(userID string) *Subscription {
	sub := b.feed.Subscribe(userID)
	sub.Start(func(ev Event) {
		b.dispatch(userID, ev)
	})
	return sub
}

func (b *Bridge) dispatch(userID string, ev Event) {
	notice, ok := NoticeFor(ev)
	if !ok {
		return
	}

	if b.store != nil {
		if _, err := b.store.Create(context.Background(), userID, notice.Type, notice.Title, notice.Body, notice.Link); err != nil {
			// Push delivery has no acknowledgment channel; a failed persist
			// is logged, never surfaced.
			log.Printf("realtime: persist notice failed user_id=%s type=%s err=%v", userID, notice.Type, err)
		}
	}
	if b.hub != nil {
		b.hub.SendToUser(userID, WSEvent{Type: "notice", Payload: notice})
	}
}

// NoticeFor composes the user-facing notice for an event.
func NoticeFor(ev Event) (Notice, bool) {
	switch e := ev.(type) {
	case MessageInserted:
		preview := e.Message.Content
		if len(preview) > 80 {
			preview = preview[:80] + "..."
		}
		return Notice{
			Type:  domain.NotifNewMessage,
			Title: "New Message Received",
			Body:  preview,
			Link:  "/messages/" + e.Message.ConversationID,
			Tone:  ToneInfo,
		}, true

	case InquiryStatusChanged:
		if e.Inquiry.Status == e.OldStatus {
			return Notice{}, false
		}
		n := Notice{Type: domain.NotifInquiryUpdated, Link: "/bookings"}
		if e.Inquiry.Status == domain.InquiryApproved {
			n.Title = "Booking request approved"
			n.Body = "Your booking request was approved. See you there!"
			n.Tone = TonePositive
		} else {
			n.Title = "Booking request " + string(e.Inquiry.Status)
			n.Body = "Your booking request was " + string(e.Inquiry.Status) + "."
			n.Tone = ToneNeutral
		}
		return n, true
	}
	return Notice{}, false
}
