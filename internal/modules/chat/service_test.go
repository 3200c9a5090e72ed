package chat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"communew/internal/domain"
)

type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockChatRepository) GetConversationByID(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) GetConversationByParticipants(ctx context.Context, p1, p2 string) (*domain.Conversation, error) {
	args := m.Called(ctx, p1, p2)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) ListConversationsByUser(ctx context.Context, userID string) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockChatRepository) TouchConversation(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockChatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *MockChatRepository) GetMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockChatRepository) GetLastMessage(ctx context.Context, conversationID string) (*domain.Message, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Message), args.Error(1)
}

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type recordingPublisher struct {
	conversations []*domain.Conversation
	messages      []*domain.Message
}

func (p *recordingPublisher) MessageInserted(conv *domain.Conversation, msg *domain.Message) {
	p.conversations = append(p.conversations, conv)
	p.messages = append(p.messages, msg)
}

func TestCanonicalPair_BothOrders(t *testing.T) {
	a1, b1 := CanonicalPair("u1", "u2")
	a2, b2 := CanonicalPair("u2", "u1")

	assert.Equal(t, "u1", a1)
	assert.Equal(t, "u2", b1)
	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
}

func TestService_EnsureConversation_CreatesCanonical(t *testing.T) {
	repo := new(MockChatRepository)
	repo.On("GetConversationByParticipants", mock.Anything, "u1", "u2").Return(nil, nil)
	repo.On("CreateConversation", mock.Anything, mock.Anything).Return(nil)

	service := NewService(repo, nil, nil)

	// Caller passes the pair in the "wrong" order.
	conv, err := service.EnsureConversation(context.Background(), "u2", "u1")

	assert.NoError(t, err)
	assert.Equal(t, "u1", conv.Participant1ID)
	assert.Equal(t, "u2", conv.Participant2ID)
	repo.AssertExpectations(t)
}

func TestService_EnsureConversation_ReturnsExisting(t *testing.T) {
	existing := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}

	repo := new(MockChatRepository)
	repo.On("GetConversationByParticipants", mock.Anything, "u1", "u2").Return(existing, nil)

	service := NewService(repo, nil, nil)

	first, err := service.EnsureConversation(context.Background(), "u1", "u2")
	assert.NoError(t, err)

	second, err := service.EnsureConversation(context.Background(), "u2", "u1")
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	repo.AssertNotCalled(t, "CreateConversation", mock.Anything, mock.Anything)
}

func TestService_EnsureConversation_Self(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewService(repo, nil, nil)

	_, err := service.EnsureConversation(context.Background(), "u1", "u1")

	assert.ErrorIs(t, err, ErrCannotMessageSelf)
	repo.AssertNotCalled(t, "GetConversationByParticipants", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_EnsureConversation_LostRaceReReadsWinner(t *testing.T) {
	winner := &domain.Conversation{ID: "winner", Participant1ID: "u1", Participant2ID: "u2"}

	repo := new(MockChatRepository)
	// Nothing there when we look, but another request inserts before we do.
	repo.On("GetConversationByParticipants", mock.Anything, "u1", "u2").Return(nil, nil).Once()
	repo.On("CreateConversation", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)
	repo.On("GetConversationByParticipants", mock.Anything, "u1", "u2").Return(winner, nil).Once()

	service := NewService(repo, nil, nil)

	conv, err := service.EnsureConversation(context.Background(), "u2", "u1")

	assert.NoError(t, err)
	assert.Equal(t, "winner", conv.ID)
	repo.AssertExpectations(t)
}

func TestService_SendMessage_Success(t *testing.T) {
	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}

	repo := new(MockChatRepository)
	repo.On("GetConversationByID", mock.Anything, "conv-1").Return(conv, nil)
	repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil)
	repo.On("TouchConversation", mock.Anything, "conv-1").Return(nil)

	pub := &recordingPublisher{}
	service := NewService(repo, nil, pub)

	msg, err := service.SendMessage(context.Background(), "u1", "conv-1", "hi, is the studio free on Saturday?")

	assert.NoError(t, err)
	assert.Equal(t, "u1", msg.SenderID)
	assert.Equal(t, "conv-1", msg.ConversationID)
	assert.NotEmpty(t, msg.ID)
	assert.Len(t, pub.messages, 1)
	assert.Equal(t, msg.ID, pub.messages[0].ID)
	repo.AssertExpectations(t)
}

func TestService_SendMessage_EmptyContentNeverHitsStorage(t *testing.T) {
	repo := new(MockChatRepository)
	service := NewService(repo, nil, nil)

	for _, content := range []string{"", "   ", "\n\t "} {
		_, err := service.SendMessage(context.Background(), "u1", "conv-1", content)
		assert.ErrorIs(t, err, ErrEmptyContent)
	}
	repo.AssertNotCalled(t, "GetConversationByID", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestService_SendMessage_NotParticipant(t *testing.T) {
	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}

	repo := new(MockChatRepository)
	repo.On("GetConversationByID", mock.Anything, "conv-1").Return(conv, nil)

	service := NewService(repo, nil, nil)

	_, err := service.SendMessage(context.Background(), "intruder", "conv-1", "hello")

	assert.ErrorIs(t, err, ErrNotParticipant)
	repo.AssertNotCalled(t, "CreateMessage", mock.Anything, mock.Anything)
}

func TestService_SendMessage_TouchFailureDoesNotFailSend(t *testing.T) {
	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}

	repo := new(MockChatRepository)
	repo.On("GetConversationByID", mock.Anything, "conv-1").Return(conv, nil)
	repo.On("CreateMessage", mock.Anything, mock.Anything).Return(nil)
	repo.On("TouchConversation", mock.Anything, "conv-1").Return(assert.AnError)

	service := NewService(repo, nil, nil)

	msg, err := service.SendMessage(context.Background(), "u2", "conv-1", "still goes through")

	assert.NoError(t, err)
	assert.NotNil(t, msg)
}

func TestService_GetMessages_AscendingHistory(t *testing.T) {
	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}
	now := time.Now()
	history := []domain.Message{
		{ID: "m1", ConversationID: "conv-1", SenderID: "u1", Content: "first", CreatedAt: now.Add(-2 * time.Minute)},
		{ID: "m2", ConversationID: "conv-1", SenderID: "u2", Content: "second", CreatedAt: now.Add(-time.Minute)},
		{ID: "m3", ConversationID: "conv-1", SenderID: "u1", Content: "third", CreatedAt: now},
	}

	repo := new(MockChatRepository)
	repo.On("GetConversationByID", mock.Anything, "conv-1").Return(conv, nil)
	repo.On("GetMessages", mock.Anything, "conv-1").Return(history, nil)

	service := NewService(repo, nil, nil)

	msgs, err := service.GetMessages(context.Background(), "u2", "conv-1")

	assert.NoError(t, err)
	assert.Len(t, msgs, 3)
	assert.Equal(t, "m1", msgs[0].ID)
	assert.Equal(t, "m3", msgs[2].ID)
}

func TestService_GetMessages_EmptyConversation(t *testing.T) {
	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}

	repo := new(MockChatRepository)
	repo.On("GetConversationByID", mock.Anything, "conv-1").Return(conv, nil)
	repo.On("GetMessages", mock.Anything, "conv-1").Return([]domain.Message{}, nil)

	service := NewService(repo, nil, nil)

	msgs, err := service.GetMessages(context.Background(), "u1", "conv-1")

	assert.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestService_GetMessages_OutsiderForbidden(t *testing.T) {
	conv := &domain.Conversation{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"}

	repo := new(MockChatRepository)
	repo.On("GetConversationByID", mock.Anything, "conv-1").Return(conv, nil)

	service := NewService(repo, nil, nil)

	_, err := service.GetMessages(context.Background(), "u3", "conv-1")

	assert.ErrorIs(t, err, ErrNotParticipant)
	repo.AssertNotCalled(t, "GetMessages", mock.Anything, mock.Anything)
}

func TestService_ListConversations_Enriched(t *testing.T) {
	convs := []domain.Conversation{
		{ID: "conv-1", Participant1ID: "u1", Participant2ID: "u2"},
	}
	other := &domain.User{ID: "u2", Name: "Mehmet"}
	last := &domain.Message{ID: "m9", ConversationID: "conv-1", SenderID: "u2", Content: "see you then"}

	repo := new(MockChatRepository)
	repo.On("ListConversationsByUser", mock.Anything, "u1").Return(convs, nil)
	repo.On("GetLastMessage", mock.Anything, "conv-1").Return(last, nil)

	users := new(MockUserLookup)
	users.On("GetByID", mock.Anything, "u2").Return(other, nil)

	service := NewService(repo, users, nil)

	out, err := service.ListConversations(context.Background(), "u1")

	assert.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, "Mehmet", out[0].OtherUser.Name)
	assert.Equal(t, "m9", out[0].LastMessage.ID)
}
