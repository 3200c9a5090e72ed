package realtime

import "communew/internal/domain"

// Event is a tagged change-feed event. The tag decouples transport from
// reaction logic: subscribers switch on the concrete type.
type Event interface {
	isEvent()
}

// MessageInserted is published after a message row is persisted. It is
// delivered to the conversation's other participant only: the sender's own
// client reconciles through the send response, never through the echo.
type MessageInserted struct {
	Conversation domain.Conversation
	Message      domain.Message
}

// InquiryStatusChanged is published when a studio inquiry moves to a new
// status. Delivered to the requester.
type InquiryStatusChanged struct {
	Inquiry   domain.StudioInquiry
	OldStatus domain.InquiryStatus
}

func (MessageInserted) isEvent()      {}
func (InquiryStatusChanged) isEvent() {}
