package realtime

import (
	"sync"

	"github.com/google/uuid"

	"communew/internal/domain"
)

const subscriptionBuffer = 64

// Feed is the in-process change feed. Producers (chat, inquiry services)
// publish persisted changes; each mounted listener holds exactly one
// Subscription, released on teardown.
type Feed struct {
	mu   sync.RWMutex
	subs map[string]map[string]*Subscription // userID -> subscription id
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[string]*Subscription)}
}

// Subscribe opens a subscription scoped to one user. The caller must call
// Stop when the session ends, or the channel leaks across navigations.
func (f *Feed) Subscribe(userID string) *Subscription {
	s := &Subscription{
		id:     uuid.NewString(),
		userID: userID,
		feed:   f,
		ch:     make(chan Event, subscriptionBuffer),
		done:   make(chan struct{}),
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subs[userID] == nil {
		f.subs[userID] = make(map[string]*Subscription)
	}
	f.subs[userID][s.id] = s
	return s
}

func (f *Feed) unsubscribe(s *Subscription) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if byID, ok := f.subs[s.userID]; ok {
		delete(byID, s.id)
		if len(byID) == 0 {
			delete(f.subs, s.userID)
		}
	}
}

func (f *Feed) deliver(userID string, ev Event) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, s := range f.subs[userID] {
		select {
		case s.ch <- ev:
		default:
			// Subscriber too slow, skip
		}
	}
}

// MessageInserted implements the chat module's publisher. The sender's own
// subscriptions are excluded by construction: delivery goes to the other
// participant.
func (f *Feed) MessageInserted(conv *domain.Conversation, msg *domain.Message) {
	f.deliver(conv.OtherParticipant(msg.SenderID), MessageInserted{
		Conversation: *conv,
		Message:      *msg,
	})
}

// InquiryStatusChanged implements the inquiry module's publisher. No-op when
// the status did not actually change.
func (f *Feed) InquiryStatusChanged(inq *domain.StudioInquiry, old domain.InquiryStatus) {
	if inq.Status == old {
		return
	}
	f.deliver(inq.RequesterID, InquiryStatusChanged{
		Inquiry:   *inq,
		OldStatus: old,
	})
}

// Subscription is a cancellable handle on the feed for one user session.
type Subscription struct {
	id     string
	userID string
	feed   *Feed
	ch     chan Event
	done   chan struct{}
	once   sync.Once
}

// Start launches the dispatch loop. Events arrive in delivery order; the
// handler runs on a single goroutine per subscription.
func (s *Subscription) Start(handler func(Event)) {
	go func() {
		for {
			select {
			case <-s.done:
				return
			case ev := <-s.ch:
				handler(ev)
			}
		}
	}()
}

// Stop releases the subscription. Idempotent; no events are handled after it
// returns observable effect to the feed.
func (s *Subscription) Stop() {
	s.once.Do(func() {
		s.feed.unsubscribe(s)
		close(s.done)
	})
}
