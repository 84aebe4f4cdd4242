package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chatloop/chat-api/internal/core"
	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
)

// enrichConcurrency caps parallel member-count lookups per listing request.
const enrichConcurrency = 8

// GroupChatServiceOptions groups dependencies for GroupChatService.
type GroupChatServiceOptions struct {
	GroupRepo   core.GroupChatRepository
	AccountRepo core.AccountRepository
}

// GroupChatService orchestrates group chats and their membership. Reads are
// scoped to groups the caller belongs to; structural changes are reserved for
// the creator.
type GroupChatService struct {
	groups   core.GroupChatRepository
	accounts core.AccountRepository
}

// NewGroupChatService constructs a new GroupChatService.
func NewGroupChatService(opts GroupChatServiceOptions) *GroupChatService {
	return &GroupChatService{groups: opts.GroupRepo, accounts: opts.AccountRepo}
}

// Create creates a group chat owned by the caller's account. The creator is
// enrolled as the first member.
func (s *GroupChatService) Create(
	ctx context.Context,
	ident domainauth.Identity,
	req *model.CreateGroupChatRequest,
) (*model.GroupChatDetail, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	chat, err := s.groups.Create(ctx, caller.AccountID, req)
	if err != nil {
		return nil, err
	}
	return &model.GroupChatDetail{
		ChatID:       chat.ChatID,
		Name:         chat.Name,
		Description:  chat.Description,
		Creator:      caller,
		Members:      []*model.Account{caller},
		MembersCount: 1,
		ProfilePic:   chat.ProfilePic,
		Created:      chat.Created,
		Updated:      chat.Updated,
	}, nil
}

// List returns the caller's groups with creator profiles and member counts,
// most recently active first. Member counts are loaded concurrently.
func (s *GroupChatService) List(
	ctx context.Context,
	ident domainauth.Identity,
	limit, offset int,
) ([]*model.GroupChatListItem, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	chats, err := s.groups.ListForAccount(ctx, caller.AccountID, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 {
		return []*model.GroupChatListItem{}, nil
	}

	creatorIDs := make([]string, 0, len(chats))
	for _, c := range chats {
		creatorIDs = append(creatorIDs, c.CreatorID)
	}

	var creators map[string]*model.Account
	counts := make([]int, len(chats))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	g.Go(func() error {
		var loadErr error
		creators, loadErr = s.accounts.GetByIDs(gctx, creatorIDs)
		return loadErr
	})
	for i, c := range chats {
		g.Go(func() error {
			count, countErr := s.groups.MemberCount(gctx, c.ChatID)
			if countErr != nil {
				return countErr
			}
			counts[i] = count
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("enrich group listing: %w", err)
	}

	items := make([]*model.GroupChatListItem, 0, len(chats))
	for i, c := range chats {
		items = append(items, &model.GroupChatListItem{
			ChatID:       c.ChatID,
			Name:         c.Name,
			Creator:      creators[c.CreatorID],
			MembersCount: counts[i],
			ProfilePic:   c.ProfilePic,
			Updated:      c.Updated,
		})
	}
	return items, nil
}

// Get retrieves one group with the creator and full member roster embedded.
// Groups the caller is not a member of are reported as not found.
func (s *GroupChatService) Get(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
) (*model.GroupChatDetail, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, err
	}

	chat, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	isMember, err := s.groups.IsMember(ctx, id, caller.AccountID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, data.ErrGroupChatNotFound
	}
	return s.toDetail(ctx, chat)
}

// Update updates a group's profile fields. Only the creator may change them.
func (s *GroupChatService) Update(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
	req model.UpdateGroupChatRequest,
) (*model.GroupChatDetail, error) {
	caller, chat, err := s.loadForWrite(ctx, ident, id)
	if err != nil {
		return nil, err
	}
	if !chat.CreatedBy(caller.AccountID) {
		return nil, domainauth.OwnershipMismatch()
	}

	updated, err := s.groups.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return s.toDetail(ctx, updated)
}

// AddMember enrolls an account into the group. Only the creator may add members.
func (s *GroupChatService) AddMember(
	ctx context.Context,
	ident domainauth.Identity,
	chatID, accountID string,
) error {
	caller, chat, err := s.loadForWrite(ctx, ident, chatID)
	if err != nil {
		return err
	}
	if !chat.CreatedBy(caller.AccountID) {
		return domainauth.OwnershipMismatch()
	}
	return s.groups.AddMember(ctx, chatID, accountID)
}

// RemoveMember removes an account from the group. The creator may remove any
// member; any member may remove themselves. The creator cannot leave their
// own group.
func (s *GroupChatService) RemoveMember(
	ctx context.Context,
	ident domainauth.Identity,
	chatID, accountID string,
) error {
	caller, chat, err := s.loadForWrite(ctx, ident, chatID)
	if err != nil {
		return err
	}
	if !chat.CreatedBy(caller.AccountID) && caller.AccountID != accountID {
		return domainauth.OwnershipMismatch()
	}
	if chat.CreatedBy(accountID) {
		return errors.New("the creator cannot be removed from the group")
	}

	removed, err := s.groups.RemoveMember(ctx, chatID, accountID)
	if err != nil {
		return err
	}
	if !removed {
		return data.ErrNotAMember
	}
	return nil
}

// loadForWrite resolves the caller and the target group for a mutating
// operation.
func (s *GroupChatService) loadForWrite(
	ctx context.Context,
	ident domainauth.Identity,
	chatID string,
) (*model.Account, *model.GroupChat, error) {
	caller, err := resolveCaller(ctx, s.accounts, ident)
	if err != nil {
		return nil, nil, err
	}
	chat, err := s.groups.GetByID(ctx, chatID)
	if err != nil {
		return nil, nil, err
	}
	return caller, chat, nil
}

// toDetail embeds the creator and member profiles.
func (s *GroupChatService) toDetail(ctx context.Context, chat *model.GroupChat) (*model.GroupChatDetail, error) {
	memberIDs, err := s.groups.MemberIDs(ctx, chat.ChatID)
	if err != nil {
		return nil, fmt.Errorf("load group roster: %w", err)
	}

	ids := make([]string, 0, len(memberIDs)+1)
	ids = append(ids, chat.CreatorID)
	ids = append(ids, memberIDs...)
	profiles, err := s.accounts.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load member profiles: %w", err)
	}

	members := make([]*model.Account, 0, len(memberIDs))
	for _, id := range memberIDs {
		if p, ok := profiles[id]; ok {
			members = append(members, p)
		}
	}
	return &model.GroupChatDetail{
		ChatID:       chat.ChatID,
		Name:         chat.Name,
		Description:  chat.Description,
		Creator:      profiles[chat.CreatorID],
		Members:      members,
		MembersCount: len(members),
		ProfilePic:   chat.ProfilePic,
		Created:      chat.Created,
		Updated:      chat.Updated,
	}, nil
}
