package core

import (
	"context"

	"github.com/chatloop/chat-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// AccountRepository defines the interface for account data operations.
type AccountRepository interface {
	Create(ctx context.Context, clerkID string, req *model.CreateAccountRequest) (*model.Account, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByClerkID(ctx context.Context, clerkID string) (*model.Account, error)
	// GetByIDs returns the accounts for the given IDs keyed by account ID.
	// Missing IDs are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]*model.Account, error)
	// ListByClerkID returns the accounts owned by the given external identifier.
	ListByClerkID(ctx context.Context, clerkID string) ([]*model.Account, error)
	// List returns all accounts ordered by created, for the directory surface.
	List(ctx context.Context, limit, offset int) ([]*model.Account, error)
	Update(ctx context.Context, id string, req model.UpdateAccountRequest) (*model.Account, error)
}

// UserChatRepository defines the interface for one-to-one chat data operations.
type UserChatRepository interface {
	Create(ctx context.Context, user1ID, user2ID string) (*model.UserChat, error)
	GetByID(ctx context.Context, id string) (*model.UserChat, error)
	// ListForAccount returns chats where the account is either participant,
	// most recently updated first.
	ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*model.UserChat, error)
	// Touch bumps the updated timestamp and returns the refreshed chat.
	Touch(ctx context.Context, id string) (*model.UserChat, error)
}

// GroupChatRepository defines the interface for group chat data operations.
type GroupChatRepository interface {
	// Create inserts the group and enrolls the creator as its first member.
	Create(ctx context.Context, creatorID string, req *model.CreateGroupChatRequest) (*model.GroupChat, error)
	GetByID(ctx context.Context, id string) (*model.GroupChat, error)
	// ListForAccount returns groups the account created or joined,
	// most recently updated first.
	ListForAccount(ctx context.Context, accountID string, limit, offset int) ([]*model.GroupChat, error)
	Update(ctx context.Context, id string, req model.UpdateGroupChatRequest) (*model.GroupChat, error)
	AddMember(ctx context.Context, chatID, accountID string) error
	RemoveMember(ctx context.Context, chatID, accountID string) (bool, error)
	// MemberIDs returns the member account IDs in enrollment order.
	MemberIDs(ctx context.Context, chatID string) ([]string, error)
	MemberCount(ctx context.Context, chatID string) (int, error)
	IsMember(ctx context.Context, chatID, accountID string) (bool, error)
}

// MessageRepository defines the interface for message data operations.
type MessageRepository interface {
	Create(ctx context.Context, senderID string, req *model.CreateMessageRequest) (*model.Message, error)
	GetByID(ctx context.Context, id string) (*model.Message, error)
	// ListForChat returns the messages of one chat ordered by created ascending.
	ListForChat(ctx context.Context, ref model.ChatRef, limit, offset int) ([]*model.Message, error)
	Update(ctx context.Context, id string, req model.UpdateMessageRequest) (*model.Message, error)
}
