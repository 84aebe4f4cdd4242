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
	"github.com/chatloop/chat-api/internal/testutil"
)

type messageServiceMocks struct {
	messages *mocks.MockMessageRepository
	chats    *mocks.MockUserChatRepository
	groups   *mocks.MockGroupChatRepository
	accounts *mocks.MockAccountRepository
}

// newTestMessageService wires a MessageService onto fresh repo mocks.
func newTestMessageService(t *testing.T) (*MessageService, messageServiceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := messageServiceMocks{
		messages: mocks.NewMockMessageRepository(ctrl),
		chats:    mocks.NewMockUserChatRepository(ctrl),
		groups:   mocks.NewMockGroupChatRepository(ctrl),
		accounts: mocks.NewMockAccountRepository(ctrl),
	}
	svc := NewMessageService(MessageServiceOptions{
		MessageRepo: m.messages,
		ChatRepo:    m.chats,
		GroupRepo:   m.groups,
		AccountRepo: m.accounts,
	})
	return svc, m
}

func testUserMessage(messageID, senderID, chatID string) *model.Message {
	return &model.Message{
		MessageID:   messageID,
		SenderID:    senderID,
		TextContent: "hello",
		ChatType:    model.ChatTypeUser,
		UserChatID:  testutil.StringPtr(chatID),
		Created:     time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMessageService_Create_UserChat_Success(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	chat := testUserChat("chat-1", caller.AccountID, "acct-2")
	req := &model.CreateMessageRequest{
		TextContent: "hello",
		ChatType:    model.ChatTypeUser,
		UserChatID:  testutil.StringPtr(chat.ChatID),
	}
	msg := testUserMessage("msg-1", caller.AccountID, chat.ChatID)

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.chats.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)
	m.messages.EXPECT().
		Create(ctx, caller.AccountID, req).
		Return(msg, nil).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), req)
	require.NoError(t, err)
	assert.Equal(t, msg.MessageID, got.MessageID)
	assert.Equal(t, caller, got.Sender)
	assert.Equal(t, model.ChatTypeUser, got.ChatType)
}

func TestMessageService_Create_NonParticipantRejected(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-9", testClerkID)
	chat := testUserChat("chat-1", "acct-1", "acct-2")
	req := &model.CreateMessageRequest{
		TextContent: "hello",
		ChatType:    model.ChatTypeUser,
		UserChatID:  testutil.StringPtr(chat.ChatID),
	}

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.chats.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), req)
	assert.Nil(t, got)
	assert.Equal(t, domainauth.KindOwnershipMismatch, domainauth.KindOf(err))
}

func TestMessageService_Create_GroupChat_NonMemberRejected(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-9", testClerkID)
	chat := testGroupChat("group-1", "acct-1")
	req := &model.CreateMessageRequest{
		TextContent: "hello",
		ChatType:    model.ChatTypeGroup,
		GroupChatID: testutil.StringPtr(chat.ChatID),
	}

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.groups.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)
	m.groups.EXPECT().
		IsMember(ctx, chat.ChatID, caller.AccountID).
		Return(false, nil).
		Times(1)

	got, err := svc.Create(ctx, testIdentity(), req)
	assert.Nil(t, got)
	assert.Equal(t, domainauth.KindOwnershipMismatch, domainauth.KindOf(err))
}

func TestMessageService_Create_ValidationError(t *testing.T) {
	svc, _ := newTestMessageService(t)

	got, err := svc.Create(context.Background(), testIdentity(), &model.CreateMessageRequest{
		TextContent: "hello",
		ChatType:    model.ChatTypeUser,
		// user_chat_id missing
	})
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user_chat_id is required")
}

func TestMessageService_ListForChat_Success(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	peer := testAccount("acct-2", "clerk-user-2")
	chat := testUserChat("chat-1", caller.AccountID, peer.AccountID)
	ref := model.ChatRef{Type: model.ChatTypeUser, ChatID: chat.ChatID}
	msgs := []*model.Message{
		testUserMessage("msg-1", caller.AccountID, chat.ChatID),
		testUserMessage("msg-2", peer.AccountID, chat.ChatID),
	}

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.chats.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)
	m.messages.EXPECT().
		ListForChat(ctx, ref, 50, 0).
		Return(msgs, nil).
		Times(1)
	m.accounts.EXPECT().
		GetByIDs(ctx, []string{caller.AccountID, peer.AccountID}).
		Return(map[string]*model.Account{
			caller.AccountID: caller,
			peer.AccountID:   peer,
		}, nil).
		Times(1)

	got, err := svc.ListForChat(ctx, testIdentity(), ref, 50, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, caller, got[0].Sender)
	assert.Equal(t, peer, got[1].Sender)
}

func TestMessageService_ListForChat_OutsiderSeesChatNotFound(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-9", testClerkID)
	chat := testUserChat("chat-1", "acct-1", "acct-2")
	ref := model.ChatRef{Type: model.ChatTypeUser, ChatID: chat.ChatID}

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.chats.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)

	got, err := svc.ListForChat(ctx, testIdentity(), ref, 50, 0)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, data.ErrUserChatNotFound)
}

func TestMessageService_ListForChat_InvalidRef(t *testing.T) {
	svc, _ := newTestMessageService(t)

	got, err := svc.ListForChat(context.Background(), testIdentity(), model.ChatRef{Type: "channel"}, 50, 0)
	assert.Nil(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat_type must be one of")
}

func TestMessageService_Get_OutsiderSeesMessageNotFound(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-9", testClerkID)
	chat := testUserChat("chat-1", "acct-1", "acct-2")
	msg := testUserMessage("msg-1", "acct-1", chat.ChatID)

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.messages.EXPECT().
		GetByID(ctx, msg.MessageID).
		Return(msg, nil).
		Times(1)
	m.chats.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)

	got, err := svc.Get(ctx, testIdentity(), msg.MessageID)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, data.ErrMessageNotFound)
}

func TestMessageService_Get_Success(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	peer := testAccount("acct-2", "clerk-user-2")
	chat := testUserChat("chat-1", caller.AccountID, peer.AccountID)
	msg := testUserMessage("msg-1", peer.AccountID, chat.ChatID)

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.messages.EXPECT().
		GetByID(ctx, msg.MessageID).
		Return(msg, nil).
		Times(1)
	m.chats.EXPECT().
		GetByID(ctx, chat.ChatID).
		Return(chat, nil).
		Times(1)
	m.accounts.EXPECT().
		GetByID(ctx, peer.AccountID).
		Return(peer, nil).
		Times(1)

	got, err := svc.Get(ctx, testIdentity(), msg.MessageID)
	require.NoError(t, err)
	assert.Equal(t, peer, got.Sender)
}

func TestMessageService_Update_SenderOnly(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-1", testClerkID)
	msg := testUserMessage("msg-1", caller.AccountID, "chat-1")
	req := model.UpdateMessageRequest{TextContent: testutil.StringPtr("edited")}
	updated := testUserMessage("msg-1", caller.AccountID, "chat-1")
	updated.TextContent = "edited"

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.messages.EXPECT().
		GetByID(ctx, msg.MessageID).
		Return(msg, nil).
		Times(1)
	m.messages.EXPECT().
		Update(ctx, msg.MessageID, req).
		Return(updated, nil).
		Times(1)

	got, err := svc.Update(ctx, testIdentity(), msg.MessageID, req)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.TextContent)
}

func TestMessageService_Update_NonSenderRejected(t *testing.T) {
	svc, m := newTestMessageService(t)
	ctx := context.Background()

	caller := testAccount("acct-2", testClerkID)
	msg := testUserMessage("msg-1", "acct-1", "chat-1")

	m.accounts.EXPECT().
		GetByClerkID(ctx, testClerkID).
		Return(caller, nil).
		Times(1)
	m.messages.EXPECT().
		GetByID(ctx, msg.MessageID).
		Return(msg, nil).
		Times(1)

	got, err := svc.Update(ctx, testIdentity(), msg.MessageID, model.UpdateMessageRequest{
		TextContent: testutil.StringPtr("edited"),
	})
	assert.Nil(t, got)
	assert.Equal(t, domainauth.KindOwnershipMismatch, domainauth.KindOf(err))
}
