package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
	"github.com/chatloop/chat-api/internal/mocks"
)

// newTestUserChatService wires a UserChatService onto fresh repo mocks.
func newTestUserChatService(t *testing.T) (*UserChatService, *mocks.MockUserChatRepository, *mocks.MockAccountRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	chatRepo := mocks.NewMockUserChatRepository(ctrl)
	accountRepo := mocks.NewMockAccountRepository(ctrl)
	svc := NewUserChatService(UserChatServiceOptions{ChatRepo: chatRepo, AccountRepo: accountRepo})
	return svc, chatRepo, accountRepo
}

func testUserChat(chatID, user1ID, user2ID string) *model.UserChat {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.UserChat{
		ChatID:  chatID,
		User1ID: user1ID,
		User2ID: user2ID,
		Created: now,
		Updated: now,
	}
}

func TestUserChatService_Create_Success(t *testing.T) {
	svc, chatRepo, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	peer := testAccount("acct-2", "clerk-user-2")
	chat := testUserChat("chat-1", caller.AccountID, peer.AccountID)

	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	accountRepo.EXPECT().
		GetByID(ctx, peer.AccountID).
		Return(peer, nil).
		Times(1)
	chatRepo.EXPECT().
		Create(ctx, caller.AccountID, peer.AccountID).
		Return(chat, nil).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), &model.CreateUserChatRequest{User2ID: peer.AccountID})
	require.NoError(t, err)
	assert.Equal(t, chat.ChatID, got.ChatID)
	assert.Equal(t, caller, got.User1)
	assert.Equal(t, peer, got.User2)
}

func TestUserChatService_Create_SelfChatRejected(t *testing.T) {
	svc, _, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), &model.CreateUserChatRequest{User2ID: caller.AccountID})
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "caller's own account")
}

func TestUserChatService_Create_MissingPeer(t *testing.T) {
	svc, _, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	accountRepo.EXPECT().
		GetByID(ctx, "acct-missing").
		Return(nil, data.ErrAccountNotFound).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), &model.CreateUserChatRequest{User2ID: "acct-missing"})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, data.ErrAccountNotFound)
}

func TestUserChatService_Create_ValidationError(t *testing.T) {
	svc, _, _ := newTestUserChatService(t)

	got, err := svc.Create(context.Background(), testIdentity(), &model.CreateUserChatRequest{})
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user2_id is required")
}

func TestUserChatService_Create_UnknownCallerIdentity(t *testing.T) {
	svc, _, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(nil, data.ErrAccountNotFound).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), &model.CreateUserChatRequest{User2ID: "acct-2"})
	assert.Nil(t, got)
	assert.Equal(t, domainauth.KindOwnershipMismatch, domainauth.KindOf(err))
}

func TestUserChatService_List_Success(t *testing.T) {
	svc, chatRepo, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	peer := testAccount("acct-2", "clerk-user-2")
	chats := []*model.UserChat{testUserChat("chat-1", caller.AccountID, peer.AccountID)}

	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	chatRepo.EXPECT().
		ListForAccount(ctx, caller.AccountID, 10, 0).
		Return(chats, nil).
		Times(1)
	accountRepo.EXPECT().
		GetByIDs(ctx, []string{caller.AccountID, peer.AccountID}).
		Return(map[string]*model.Account{
			caller.AccountID: caller,
			peer.AccountID:   peer,
		}, nil).
		Times(1)

	got, err := svc.List(ctx, testIdentity(), 10, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "chat-1", got[0].ChatID)
	assert.Equal(t, caller, got[0].User1)
	assert.Equal(t, peer, got[0].User2)
}

func TestUserChatService_Get_NonParticipantSeesNotFound(t *testing.T) {
	svc, chatRepo, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	caller := testAccount("acct-3", testClerkID)
	chat := testUserChat("chat-1", "acct-1", "acct-2")

	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	chatRepo.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)

	got, err := svc.Get(ctx, testIdentity(), chat.ChatID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, data.ErrUserChatNotFound)
}

func TestUserChatService_Touch_Success(t *testing.T) {
	svc, chatRepo, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	peer := testAccount("acct-2", "clerk-user-2")
	chat := testUserChat("chat-1", caller.AccountID, peer.AccountID)
	touched := testUserChat("chat-1", caller.AccountID, peer.AccountID)
	touched.Updated = chat.Updated.Add(time.Hour)

	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	chatRepo.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)
	chatRepo.EXPECT().
		Touch(ctx, chat.ChatID).
		Return(touched, nil).
		Times(1)
	accountRepo.EXPECT().
		GetByIDs(ctx, []string{caller.AccountID, peer.AccountID}).
		Return(map[string]*model.Account{
			caller.AccountID: caller,
			peer.AccountID:   peer,
		}, nil).
		Times(1)

	got, err := svc.Touch(ctx, testIdentity(), chat.ChatID)
	require.NoError(t, err)
	assert.Equal(t, touched.Updated, got.Updated)
}

func TestUserChatService_Touch_NonParticipantRejected(t *testing.T) {
	svc, chatRepo, accountRepo := newTestUserChatService(t)
	ctx := context.Background()

	caller := testAccount("acct-3", testClerkID)
	chat := testUserChat("chat-1", "acct-1", "acct-2")

	accountRepo.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	chatRepo.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)

	got, err := svc.Touch(ctx, testIdentity(), chat.ChatID)
	assert.Nil(t, got)
	assert.Equal(t, domainauth.KindOwnershipMismatch, domainauth.KindOf(err))
}
