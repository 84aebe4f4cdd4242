// Package devseed populates a development database with demo accounts, chats,
// and messages. It is idempotent and only ever runs in dev mode.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/chatloop/chat-api/internal/data"
	"github.com/chatloop/chat-api/internal/domain/model"
)

// Repos bundles the repositories needed for development seeding.
type Repos struct {
	accounts   *data.AccountRepo
	userChats  *data.UserChatRepo
	groupChats *data.GroupChatRepo
	messages   *data.MessageRepo
}

// NewRepos constructs all repositories required for seeding using the provided DB.
func NewRepos(db *sql.DB) Repos {
	return Repos{
		accounts:   data.NewAccountRepo(db),
		userChats:  data.NewUserChatRepo(db),
		groupChats: data.NewGroupChatRepo(db),
		messages:   data.NewMessageRepo(db),
	}
}

type accountSeed struct {
	clerkID  string
	username string
}

func defaultAccountSeeds() []accountSeed {
	return []accountSeed{
		{clerkID: "dev-user-1", username: "alice"},
		{clerkID: "dev-user-2", username: "bob"},
		{clerkID: "dev-user-3", username: "carol"},
	}
}

// Run seeds demo data. Existing rows are left alone so repeated startups in
// dev mode do not duplicate anything.
func Run(ctx context.Context, repos Repos, logger *slog.Logger) error {
	accounts, err := seedAccounts(ctx, repos, logger)
	if err != nil {
		return err
	}
	if len(accounts) < 2 {
		logger.InfoContext(ctx, "dev seed skipped chats", "reason", "not enough accounts")
		return nil
	}

	userChat, err := seedUserChat(ctx, repos, logger, accounts[0], accounts[1])
	if err != nil {
		return err
	}

	groupChat, err := seedGroupChat(ctx, repos, logger, accounts)
	if err != nil {
		return err
	}

	return seedMessages(ctx, repos, logger, accounts, userChat, groupChat)
}

func seedAccounts(ctx context.Context, repos Repos, logger *slog.Logger) ([]*model.Account, error) {
	var out []*model.Account
	for _, seed := range defaultAccountSeeds() {
		username := seed.username
		account, err := repos.accounts.Create(ctx, seed.clerkID, &model.CreateAccountRequest{
			Username: &username,
		})
		switch {
		case err == nil:
			logger.InfoContext(ctx, "dev seed created account", "username", username)
		case errors.Is(err, data.ErrClerkIDExists) || errors.Is(err, data.ErrUsernameExists):
			account, err = repos.accounts.GetByClerkID(ctx, seed.clerkID)
			if err != nil {
				return nil, err
			}
			logger.DebugContext(ctx, "dev seed account already exists", "username", username)
		default:
			return nil, err
		}
		out = append(out, account)
	}
	return out, nil
}

func seedUserChat(
	ctx context.Context,
	repos Repos,
	logger *slog.Logger,
	a, b *model.Account,
) (*model.UserChat, error) {
	chat, err := repos.userChats.Create(ctx, a.AccountID, b.AccountID)
	switch {
	case err == nil:
		logger.InfoContext(ctx, "dev seed created user chat", "chat_id", chat.ChatID)
		return chat, nil
	case errors.Is(err, data.ErrUserChatExists):
		chats, listErr := repos.userChats.ListForAccount(ctx, a.AccountID, 0, 0)
		if listErr != nil {
			return nil, listErr
		}
		for _, existing := range chats {
			if (existing.User1ID == a.AccountID && existing.User2ID == b.AccountID) ||
				(existing.User1ID == b.AccountID && existing.User2ID == a.AccountID) {
				return existing, nil
			}
		}
		return nil, errors.New("dev seed: existing user chat not found after conflict")
	default:
		return nil, err
	}
}

func seedGroupChat(
	ctx context.Context,
	repos Repos,
	logger *slog.Logger,
	accounts []*model.Account,
) (*model.GroupChat, error) {
	creator := accounts[0]
	existing, err := repos.groupChats.ListForAccount(ctx, creator.AccountID, 0, 0)
	if err != nil {
		return nil, err
	}
	for _, chat := range existing {
		if chat.Name == devGroupName {
			return chat, nil
		}
	}

	description := "Everyone seeded into the dev database."
	chat, err := repos.groupChats.Create(ctx, creator.AccountID, &model.CreateGroupChatRequest{
		Name:        devGroupName,
		Description: &description,
	})
	if err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "dev seed created group chat", "chat_id", chat.ChatID, "name", chat.Name)

	for _, account := range accounts[1:] {
		if addErr := repos.groupChats.AddMember(ctx, chat.ChatID, account.AccountID); addErr != nil &&
			!errors.Is(addErr, data.ErrAlreadyMember) {
			return nil, addErr
		}
	}
	return chat, nil
}

const devGroupName = "dev lounge"

func seedMessages(
	ctx context.Context,
	repos Repos,
	logger *slog.Logger,
	accounts []*model.Account,
	userChat *model.UserChat,
	groupChat *model.GroupChat,
) error {
	// Only seed messages into an empty chat; anything else means a developer
	// has been using the database and we should stay out of the way.
	existing, err := repos.messages.ListForChat(ctx, model.ChatRef{
		Type:   model.ChatTypeUser,
		ChatID: userChat.ChatID,
	}, 1, 0)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	userChatID := userChat.ChatID
	groupChatID := groupChat.ChatID
	seeds := []struct {
		sender *model.Account
		req    *model.CreateMessageRequest
	}{
		{accounts[0], &model.CreateMessageRequest{
			TextContent: "hey, is this thing on?",
			ChatType:    model.ChatTypeUser,
			UserChatID:  &userChatID,
		}},
		{accounts[1], &model.CreateMessageRequest{
			TextContent: "loud and clear",
			ChatType:    model.ChatTypeUser,
			UserChatID:  &userChatID,
		}},
		{accounts[0], &model.CreateMessageRequest{
			TextContent: "welcome to the dev lounge",
			ChatType:    model.ChatTypeGroup,
			GroupChatID: &groupChatID,
		}},
	}

	for _, seed := range seeds {
		if _, err := repos.messages.Create(ctx, seed.sender.AccountID, seed.req); err != nil {
			return err
		}
	}
	logger.InfoContext(ctx, "dev seed created messages", "count", len(seeds))
	return nil
}
