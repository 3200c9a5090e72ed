package notifier

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"communew/internal/domain"
)

// ConversationService is the slice of the chat module the notifier needs.
type ConversationService interface {
	EnsureConversation(ctx context.Context, currentUserID, otherUserID string) (*domain.Conversation, error)
	SendMessage(ctx context.Context, senderID, conversationID, content string) (*domain.Message, error)
}

// StudioLookup resolves the inquiry's target studio (and thus its owner).
type StudioLookup interface {
	GetStudio(ctx context.Context, id string) (*domain.Studio, error)
}

// Service delivers a booking inquiry to the studio owner as a chat message.
// Delivery is fire-and-forget: every failure is logged and swallowed so the
// parent inquiry transaction never fails because of it.
type Service struct {
	conversations ConversationService
	studios       StudioLookup
	displayLoc    *time.Location
}

func NewService(conversations ConversationService, studios StudioLookup, displayLoc *time.Location) *Service {
	if displayLoc == nil {
		displayLoc = time.UTC
	}
	return &Service{conversations: conversations, studios: studios, displayLoc: displayLoc}
}

// NotifyOwnerOfInquiry is invoked after an inquiry row has been persisted.
func (s *Service) NotifyOwnerOfInquiry(ctx context.Context, inq *domain.StudioInquiry) {
	studio, err := s.studios.GetStudio(ctx, inq.StudioID)
	if err != nil {
		log.Printf("notifier: studio lookup failed inquiry_id=%s studio_id=%s err=%v", inq.ID, inq.StudioID, err)
		return
	}

	if studio.OwnerID == inq.RequesterID {
		log.Printf("notifier: skipping self-inquiry inquiry_id=%s user_id=%s", inq.ID, inq.RequesterID)
		return
	}

	conv, err := s.conversations.EnsureConversation(ctx, studio.OwnerID, inq.RequesterID)
	if err != nil {
		log.Printf("notifier: ensure conversation failed inquiry_id=%s err=%v", inq.ID, err)
		return
	}

	body := s.FormatInquiryMessage(studio, inq)

	// Attributed to the requester: the message logically is the requester
	// speaking to the owner.
	if _, err := s.conversations.SendMessage(ctx, inq.RequesterID, conv.ID, body); err != nil {
		log.Printf("notifier: send failed inquiry_id=%s conversation_id=%s err=%v", inq.ID, conv.ID, err)
	}
}

// FormatInquiryMessage renders the fixed booking-request template.
func (s *Service) FormatInquiryMessage(studio *domain.Studio, inq *domain.StudioInquiry) string {
	var b strings.Builder
	b.WriteString("📅 New Booking Request\n\n")
	fmt.Fprintf(&b, "Studio: %s\n", studio.Name)
	fmt.Fprintf(&b, "When: %s\n", formatTimeRange(inq.StartTime, inq.EndTime, s.displayLoc))
	if msg := strings.TrimSpace(inq.Message); msg != "" {
		fmt.Fprintf(&b, "Message: %s\n", msg)
	}
	b.WriteString("\nOpen your host dashboard to approve or decline this request.")
	return b.String()
}

func formatTimeRange(start, end time.Time, loc *time.Location) string {
	start = start.In(loc)
	end = end.In(loc)

	if start.Year() == end.Year() && start.YearDay() == end.YearDay() {
		return fmt.Sprintf("%s, %s–%s",
			start.Format("Mon, 02 Jan 2006"),
			start.Format("15:04"),
			end.Format("15:04"),
		)
	}
	return fmt.Sprintf("%s – %s",
		start.Format("Mon, 02 Jan 2006 15:04"),
		end.Format("Mon, 02 Jan 2006 15:04"),
	)
}
