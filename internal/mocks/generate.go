// Package mocks provides mock implementations for testing the chat backend.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockAccountRepository(ctrl)
//	mockRepo.EXPECT().GetByClerkID(gomock.Any(), gomock.Any()).Return(account, nil)
package mocks

// Generate mock for AccountRepository interface from internal/core package.
// This creates MockAccountRepository with methods for all AccountRepository interface methods:
// Create, GetByID, GetByClerkID, GetByIDs, ListByClerkID, List, Update
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=account_repository_mock.go github.com/chatloop/chat-api/internal/core AccountRepository

// Generate mock for UserChatRepository interface from internal/core package.
// This creates MockUserChatRepository with methods for all UserChatRepository interface methods:
// Create, GetByID, ListForAccount, Touch
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_chat_repository_mock.go github.com/chatloop/chat-api/internal/core UserChatRepository

// Generate mock for GroupChatRepository interface from internal/core package.
// This creates MockGroupChatRepository with methods for all GroupChatRepository interface methods:
// Create, GetByID, ListForAccount, Update, AddMember, RemoveMember, MemberIDs, MemberCount, IsMember
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=group_chat_repository_mock.go github.com/chatloop/chat-api/internal/core GroupChatRepository

// Generate mock for MessageRepository interface from internal/core package.
// This creates MockMessageRepository with methods for all MessageRepository interface methods:
// Create, GetByID, ListForChat, Update
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=message_repository_mock.go github.com/chatloop/chat-api/internal/core MessageRepository
