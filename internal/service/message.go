package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/chatloop/chat-api/internal/core"
	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
)

// MessageServiceOptions groups dependencies for MessageService.
type MessageServiceOptions struct {
	MessageRepo core.MessageRepository
	ChatRepo    core.UserChatRepository
	GroupRepo   core.GroupChatRepository
	AccountRepo core.AccountRepository
}

// MessageService orchestrates sending and reading messages. Senders are
// stamped from the caller's account, and every operation checks the caller's
// standing in the target chat.
type MessageService struct {
	messages core.MessageRepository
	chats    core.UserChatRepository
	groups   core.GroupChatRepository
	accounts core.AccountRepository
}

// NewMessageService constructs a new MessageService.
func NewMessageService(opts MessageServiceOptions) *MessageService {
	return &MessageService{
		messages: opts.MessageRepo,
		chats:    opts.ChatRepo,
		groups:   opts.GroupRepo,
		accounts: opts.AccountRepo,
	}
}

// Create sends a message into the referenced chat. The caller must be a
// participant of the one-to-one chat or a member of the group.
func (s *MessageService) Create(
	ctx context.Context,
	ident domainauth.Identity,
	req *model.CreateMessageRequest,
) (*model.MessageDetail, error) {
	if req == nil {
		return nil, errors.New("create message request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	ref := model.ChatRef{Type: req.ChatType}
	switch req.ChatType {
	case model.ChatTypeUser:
		ref.ChatID = *req.UserChatID
	case model.ChatTypeGroup:
		ref.ChatID = *req.GroupChatID
	}
	if err := s.checkChatAccess(ctx, caller.AccountID, ref, true); err != nil {
		return nil, err
	}

	msg, err := s.messages.Create(ctx, caller.AccountID, req)
	if err != nil {
		return nil, err
	}
	return s.toDetail(msg, caller), nil
}

// ListForChat returns one chat's messages in the order they were sent. The
// caller must belong to the chat; otherwise the chat is reported as not found.
func (s *MessageService) ListForChat(
	ctx context.Context,
	ident domainauth.Identity,
	ref model.ChatRef,
	limit, offset int,
) ([]*model.MessageListItem, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}
	if err := s.checkChatAccess(ctx, caller.AccountID, ref, false); err != nil {
		return nil, err
	}

	msgs, err := s.messages.ListForChat(ctx, ref, limit, offset)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]string, 0, len(msgs))
	for _, m := range msgs {
		senderIDs = append(senderIDs, m.SenderID)
	}
	senders, err := s.accounts.GetByIDs(ctx, senderIDs)
	if err != nil {
		return nil, fmt.Errorf("load sender profiles: %w", err)
	}

	items := make([]*model.MessageListItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, &model.MessageListItem{
			MessageID:      m.MessageID,
			Sender:         senders[m.SenderID],
			TextContent:    m.TextContent,
			FileContentURL: m.FileContentURL,
			Created:        m.Created,
		})
	}
	return items, nil
}

// Get retrieves one message. The caller must belong to the chat it was sent
// into; otherwise the message is reported as not found.
func (s *MessageService) Get(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
) (*model.MessageDetail, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkChatAccess(ctx, caller.AccountID, chatRefOf(msg), false); err != nil {
		return nil, data.ErrMessageNotFound
	}

	sender, err := s.accounts.GetByID(ctx, msg.SenderID)
	if err != nil && !errors.Is(err, data.ErrAccountNotFound) {
		return nil, err
	}
	return s.toDetail(msg, sender), nil
}

// Update edits a message's content. Only the sender may edit it.
func (s *MessageService) Update(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
	req model.UpdateMessageRequest,
) (*model.MessageDetail, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !msg.SentBy(caller.AccountID) {
		return nil, domainauth.OwnershipMismatch()
	}

	updated, err := s.messages.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return s.toDetail(updated, caller), nil
}

// checkChatAccess verifies the caller belongs to the referenced chat. For
// writes an outsider is treated like a failed credential; for reads the chat
// is reported as not found.
func (s *MessageService) checkChatAccess(
	ctx context.Context,
	accountID string,
	ref model.ChatRef,
	write bool,
) error {
	switch ref.Type {
	case model.ChatTypeUser:
		chat, err := s.chats.GetByID(ctx, ref.ChatID)
		if err != nil {
			return err
		}
		if !chat.HasParticipant(accountID) {
			if write {
				return domainauth.OwnershipMismatch()
			}
			return data.ErrUserChatNotFound
		}
	case model.ChatTypeGroup:
		if _, err := s.groups.GetByID(ctx, ref.ChatID); err != nil {
			return err
		}
		isMember, err := s.groups.IsMember(ctx, ref.ChatID, accountID)
		if err != nil {
			return err
		}
		if !isMember {
			if write {
				return domainauth.OwnershipMismatch()
			}
			return data.ErrGroupChatNotFound
		}
	}
	return nil
}

func chatRefOf(msg *model.Message) model.ChatRef {
	ref := model.ChatRef{Type: msg.ChatType}
	switch {
	case msg.UserChatID != nil:
		ref.ChatID = *msg.UserChatID
	case msg.GroupChatID != nil:
		ref.ChatID = *msg.GroupChatID
	}
	return ref
}

func (s *MessageService) toDetail(msg *model.Message, sender *model.Account) *model.MessageDetail {
	return &model.MessageDetail{
		MessageID:      msg.MessageID,
		Sender:         sender,
		TextContent:    msg.TextContent,
		FileContentURL: msg.FileContentURL,
		ChatType:       msg.ChatType,
		UserChatID:     msg.UserChatID,
		GroupChatID:    msg.GroupChatID,
		Created:        msg.Created,
	}
}
