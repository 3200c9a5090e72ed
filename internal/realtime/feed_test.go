package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"communew/internal/domain"
)

func collect(sub *Subscription) <-chan Event {
	out := make(chan Event, subscriptionBuffer)
	sub.Start(func(ev Event) {
		out <- ev
	})
	return out
}

func waitEvent(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func assertNoEvent(t *testing.T, ch <-chan Event) {
	t.Helper()
	select {
	case ev := <-ch:
		t.Fatalf("unexpected event: %#v", ev)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeed_MessageGoesToOtherParticipantOnly(t *testing.T) {
	feed := NewFeed()

	senderSub := feed.Subscribe("u1")
	defer senderSub.Stop()
	receiverSub := feed.Subscribe("u2")
	defer receiverSub.Stop()

	senderCh := collect(senderSub)
	receiverCh := collect(receiverSub)

	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}
	msg := &domain.Message{ID: "m1", ConversationID: "conv-1", SenderID: "u1", Content: "hi"}
	feed.MessageInserted(conv, msg)

	ev := waitEvent(t, receiverCh)
	inserted, ok := ev.(MessageInserted)
	assert.True(t, ok)
	assert.Equal(t, "m1", inserted.Message.ID)

	// The sender already has the message locally; no echo.
	assertNoEvent(t, senderCh)
}

func TestFeed_StatusChangeGoesToRequester(t *testing.T) {
	feed := NewFeed()

	sub := feed.Subscribe("u2")
	defer sub.Stop()
	ch := collect(sub)

	inq := &domain.StudioInquiry{ID: "inq-1", RequesterID: "u2", Status: domain.InquiryApproved}
	feed.InquiryStatusChanged(inq, domain.InquiryPending)

	ev := waitEvent(t, ch)
	changed, ok := ev.(InquiryStatusChanged)
	assert.True(t, ok)
	assert.Equal(t, domain.InquiryApproved, changed.Inquiry.Status)
	assert.Equal(t, domain.InquiryPending, changed.OldStatus)
}

func TestFeed_UnchangedStatusIsDropped(t *testing.T) {
	feed := NewFeed()

	sub := feed.Subscribe("u2")
	defer sub.Stop()
	ch := collect(sub)

	inq := &domain.StudioInquiry{ID: "inq-1", RequesterID: "u2", Status: domain.InquiryPending}
	feed.InquiryStatusChanged(inq, domain.InquiryPending)

	assertNoEvent(t, ch)
}

func TestSubscription_StopEndsDelivery(t *testing.T) {
	feed := NewFeed()

	sub := feed.Subscribe("u2")
	ch := collect(sub)

	sub.Stop()

	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}
	feed.MessageInserted(conv, &domain.Message{ID: "m1", SenderID: "u1"})

	assertNoEvent(t, ch)
}

func TestSubscription_StopIsIdempotent(t *testing.T) {
	feed := NewFeed()

	sub := feed.Subscribe("u2")
	sub.Stop()
	assert.NotPanics(t, func() { sub.Stop() })
}

func TestFeed_MultipleSessionsPerUser(t *testing.T) {
	feed := NewFeed()

	// Same user on two tabs.
	first := feed.Subscribe("u2")
	defer first.Stop()
	second := feed.Subscribe("u2")
	defer second.Stop()

	firstCh := collect(first)
	secondCh := collect(second)

	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}
	feed.MessageInserted(conv, &domain.Message{ID: "m1", SenderID: "u1"})

	waitEvent(t, firstCh)
	waitEvent(t, secondCh)
}
