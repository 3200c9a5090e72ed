package chat

import "errors"

var (
	ErrCannotMessageSelf    = errors.New("cannot start a conversation with yourself")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrEmptyContent         = errors.New("message content cannot be empty")
)
