package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"communew/internal/domain"
)

// UserLookup is implemented by the auth module's user repository.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// EventPublisher receives persisted messages for realtime delivery. The chat
// service never blocks on it.
type EventPublisher interface {
	MessageInserted(conv *domain.Conversation, msg *domain.Message)
}

// Service handles conversation and message business logic.
type Service struct {
	repo      Repository
	users     UserLookup
	publisher EventPublisher
}

func NewService(repo Repository, users UserLookup, publisher EventPublisher) *Service {
	return &Service{repo: repo, users: users, publisher: publisher}
}

// CanonicalPair orders two user ids so the lexicographically smaller one is
// always participant one. Both argument orders map to the same pair.
func CanonicalPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// EnsureConversation returns the existing conversation for the unordered
// pair (currentUserID, otherUserID) or creates it. Safe to call repeatedly
// and from both sides. A concurrent create losing the race on the unique
// pair index re-reads the winner's row, so callers always converge on a
// single conversation.
func (s *Service) EnsureConversation(ctx context.Context, currentUserID, otherUserID string) (*domain.Conversation, error) {
	if currentUserID == otherUserID {
		return nil, ErrCannotMessageSelf
	}

	p1, p2 := CanonicalPair(currentUserID, otherUserID)

	existing, err := s.repo.GetConversationByParticipants(ctx, p1, p2)
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	conv := &domain.Conversation{
		ID:             uuid.NewString(),
		Participant1ID: p1,
		Participant2ID: p2,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		if IsDuplicatePair(err) {
			winner, ferr := s.repo.GetConversationByParticipants(ctx, p1, p2)
			if ferr == nil && winner != nil {
				return winner, nil
			}
		}
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// SendMessage appends a message to a conversation. The conversation's
// last-activity bump is best-effort: its failure does not fail the send.
func (s *Service) SendMessage(ctx context.Context, senderID, conversationID, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Includes(senderID) {
		return nil, ErrNotParticipant
	}

	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	_ = s.repo.TouchConversation(ctx, conversationID)

	if s.publisher != nil {
		s.publisher.MessageInserted(conv, msg)
	}
	return msg, nil
}

// GetMessages returns the full history of a conversation in ascending
// creation-time order. An empty conversation yields an empty slice.
func (s *Service) GetMessages(ctx context.Context, userID, conversationID string) ([]domain.Message, error) {
	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.Includes(userID) {
		return nil, ErrNotParticipant
	}
	return s.repo.GetMessages(ctx, conversationID)
}

// ListConversations returns the user's inbox ordered by last activity, each
// entry enriched with the other participant and the latest message preview.
func (s *Service) ListConversations(ctx context.Context, userID string) ([]domain.Conversation, error) {
	convs, err := s.repo.ListConversationsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range convs {
		s.enrich(ctx, &convs[i], userID)
	}
	return convs, nil
}

func (s *Service) enrich(ctx context.Context, conv *domain.Conversation, currentUserID string) {
	if s.users != nil {
		other, _ := s.users.GetByID(ctx, conv.OtherParticipant(currentUserID))
		conv.OtherUser = other
	}
	last, _ := s.repo.GetLastMessage(ctx, conv.ID)
	conv.LastMessage = last
}
