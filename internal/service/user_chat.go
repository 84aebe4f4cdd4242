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

// UserChatServiceOptions groups dependencies for UserChatService.
type UserChatServiceOptions struct {
	ChatRepo    core.UserChatRepository
	AccountRepo core.AccountRepository
}

// UserChatService orchestrates one-to-one chats. Every operation resolves the
// caller's account first and scopes reads and writes to chats the caller
// participates in.
type UserChatService struct {
	chats    core.UserChatRepository
	accounts core.AccountRepository
}

// NewUserChatService constructs a new UserChatService.
func NewUserChatService(opts UserChatServiceOptions) *UserChatService {
	return &UserChatService{chats: opts.ChatRepo, accounts: opts.AccountRepo}
}

// Create opens a one-to-one chat between the caller's account and the given
// peer. The first participant is always the caller; the request only names
// the other side.
func (s *UserChatService) Create(
	ctx context.Context,
	ident domainauth.Identity,
	req *model.CreateUserChatRequest,
) (*model.UserChatDetail, error) {
	if req == nil {
		return nil, errors.New("create user chat request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}
	if req.User2ID == caller.AccountID {
		return nil, errors.New("user2_id cannot be the caller's own account")
	}

	peer, err := s.accounts.GetByID(ctx, req.User2ID)
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.Create(ctx, caller.AccountID, peer.AccountID)
	if err != nil {
		return nil, err
	}
	return s.toDetail(ctx, chat, map[string]*model.Account{
		caller.AccountID: caller,
		peer.AccountID:   peer,
	})
}

// List returns the caller's chats with both participant profiles embedded,
// most recently active first.
func (s *UserChatService) List(
	ctx context.Context,
	ident domainauth.Identity,
	limit, offset int,
) ([]*model.UserChatListItem, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	chats, err := s.chats.ListForAccount(ctx, caller.AccountID, limit, offset)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(chats)*2)
	for _, c := range chats {
		ids = append(ids, c.User1ID, c.User2ID)
	}
	profiles, err := s.accounts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load participant profiles: %w", err)
	}

	items := make([]*model.UserChatListItem, 0, len(chats))
	for _, c := range chats {
		items = append(items, &model.UserChatListItem{
			ChatID:  c.ChatID,
			User1:   profiles[c.User1ID],
			User2:   profiles[c.User2ID],
			Updated: c.Updated,
		})
	}
	return items, nil
}

// Get retrieves one chat with participant profiles. Chats the caller does not
// participate in are reported as not found.
func (s *UserChatService) Get(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
) (*model.UserChatDetail, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(caller.AccountID) {
		return nil, data.ErrUserChatNotFound
	}
	return s.toDetail(ctx, chat, nil)
}

// Touch bumps the chat's activity timestamp on behalf of a participant. A
// caller outside the chat gets the same rejection as a failed credential.
func (s *UserChatService) Touch(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
) (*model.UserChatDetail, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	chat, err := s.chats.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !chat.HasParticipant(caller.AccountID) {
		return nil, domainauth.OwnershipMismatch()
	}

	touched, err := s.chats.Touch(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toDetail(ctx, touched, nil)
}

// toDetail embeds both participant profiles, reusing already-loaded accounts
// when the caller has them at hand.
func (s *UserChatService) toDetail(
	ctx context.Context,
	chat *model.UserChat,
	profiles map[string]*model.Account,
) (*model.UserChatDetail, error) {
	if profiles == nil {
		var err error
		profiles, err = s.accounts.GetByIDs(ctx, []string{chat.User1ID, chat.User2ID})
		if err != nil {
			return nil, fmt.Errorf("load participant profiles: %w", err)
		}
	}
	return &model.UserChatDetail{
		ChatID:  chat.ChatID,
		User1:   profiles[chat.User1ID],
		User2:   profiles[chat.User2ID],
		Created: chat.Created,
		Updated: chat.Updated,
	}, nil
}
