package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"communew/internal/domain"
)

// ThreadEntry is one row of an open chat view.
type ThreadEntry struct {
	ID        string    `json:"id"`
	SenderID  string    `json:"sender_user_id"`
	Content   string    `json:"content"`
	Pending   bool      `json:"pending"`
	CreatedAt time.Time `json:"created_at"`
}

// Thread is the optimistic send buffer behind a chat view. A send appends a
// pending entry immediately; when the store confirms, the entry is replaced
// in place under the persisted id; when the store rejects, the entry is
// removed and the composer text handed back. A later realtime echo of an
// already-known persisted id is dropped, so a message never shows twice.
type Thread struct {
	mu      sync.Mutex
	entries []ThreadEntry
	byID    map[string]int
}

// NewThread seeds a thread view from persisted history, assumed to be in
// ascending creation-time order.
func NewThread(history []domain.Message) *Thread {
	t := &Thread{byID: make(map[string]int, len(history))}
	for _, m := range history {
		t.byID[m.ID] = len(t.entries)
		t.entries = append(t.entries, ThreadEntry{
			ID:        m.ID,
			SenderID:  m.SenderID,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return t
}

// AppendPending adds a locally-tagged entry and returns its temporary id.
func (t *Thread) AppendPending(senderID, content string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	tempID := "pending-" + uuid.NewString()
	t.byID[tempID] = len(t.entries)
	t.entries = append(t.entries, ThreadEntry{
		ID:        tempID,
		SenderID:  senderID,
		Content:   content,
		Pending:   true,
		CreatedAt: time.Now(),
	})
	return tempID
}

// Fail removes a pending entry after a rejected send and returns its content
// so the caller can restore the composer. Unknown ids are a no-op.
func (t *Thread) Fail(tempID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.byID[tempID]
	if !ok || !t.entries[i].Pending {
		return "", false
	}
	content := t.entries[i].Content

	t.entries = append(t.entries[:i], t.entries[i+1:]...)
	delete(t.byID, tempID)
	for j := i; j < len(t.entries); j++ {
		t.byID[t.entries[j].ID] = j
	}
	return content, true
}

// Confirm replaces a pending entry with the persisted message, re-keying it
// under the authoritative id so a later realtime echo deduplicates.
func (t *Thread) Confirm(tempID string, msg *domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i, ok := t.byID[tempID]
	if !ok {
		return
	}
	delete(t.byID, tempID)
	t.byID[msg.ID] = i
	t.entries[i] = ThreadEntry{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

// Receive appends a message delivered over the realtime feed. It reports
// whether the entry was new; echoes of already-known ids are dropped.
func (t *Thread) Receive(msg *domain.Message) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, known := t.byID[msg.ID]; known {
		return false
	}
	t.byID[msg.ID] = len(t.entries)
	t.entries = append(t.entries, ThreadEntry{
		ID:        msg.ID,
		SenderID:  msg.SenderID,
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	})
	return true
}

// Entries returns a snapshot of the thread in display order.
func (t *Thread) Entries() []ThreadEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]ThreadEntry, len(t.entries))
	copy(out, t.entries)
	return out
}
