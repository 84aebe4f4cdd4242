package data

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatloop/chat-api/internal/domain/model"
	"github.com/chatloop/chat-api/internal/testutil"
)

func TestGroupChatRepo_Create_Get_Update(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewGroupChatRepo(db)

		creator := createTestAccount(t, db, fmt.Sprintf("clerk-gc1-%d", time.Now().UnixNano()))

		chat, err := repo.Create(ctx, creator.AccountID, &model.CreateGroupChatRequest{
			Name:        "weekend plans",
			Description: testutil.StringPtr("where to next"),
		})
		require.NoError(t, err)
		require.NotEmpty(t, chat.ChatID)
		assert.Equal(t, creator.AccountID, chat.CreatorID)

		// creator is enrolled as the first member
		isMember, err := repo.IsMember(ctx, chat.ChatID, creator.AccountID)
		require.NoError(t, err)
		assert.True(t, isMember)

		count, err := repo.MemberCount(ctx, chat.ChatID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		got, err := repo.GetByID(ctx, chat.ChatID)
		require.NoError(t, err)
		assert.Equal(t, "weekend plans", got.Name)

		updated, err := repo.Update(ctx, chat.ChatID, model.UpdateGroupChatRequest{
			Name:        testutil.StringPtr("holiday plans"),
			Description: testutil.StringPtr(""),
		})
		require.NoError(t, err)
		assert.Equal(t, "holiday plans", updated.Name)
		assert.Nil(t, updated.Description)
		assert.True(t, updated.Updated.After(chat.Updated) || updated.Updated.Equal(chat.Updated))
	})
}

func TestGroupChatRepo_Membership(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewGroupChatRepo(db)

		creator := createTestAccount(t, db, fmt.Sprintf("clerk-m1-%d", time.Now().UnixNano()))
		member := createTestAccount(t, db, fmt.Sprintf("clerk-m2-%d", time.Now().UnixNano()))

		chat, err := repo.Create(ctx, creator.AccountID, &model.CreateGroupChatRequest{Name: "book club"})
		require.NoError(t, err)

		require.NoError(t, repo.AddMember(ctx, chat.ChatID, member.AccountID))

		// duplicate enrollment is rejected
		err = repo.AddMember(ctx, chat.ChatID, member.AccountID)
		require.ErrorIs(t, err, ErrAlreadyMember)

		ids, err := repo.MemberIDs(ctx, chat.ChatID)
		require.NoError(t, err)
		require.Len(t, ids, 2)
		assert.Equal(t, creator.AccountID, ids[0])

		// member listing surfaces the group for both accounts
		lst, err := repo.ListForAccount(ctx, member.AccountID, 10, 0)
		require.NoError(t, err)
		require.Len(t, lst, 1)
		assert.Equal(t, chat.ChatID, lst[0].ChatID)

		removed, err := repo.RemoveMember(ctx, chat.ChatID, member.AccountID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.RemoveMember(ctx, chat.ChatID, member.AccountID)
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestGroupChatRepo_AddMember_MissingParents(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewGroupChatRepo(db)

		creator := createTestAccount(t, db, fmt.Sprintf("clerk-mp1-%d", time.Now().UnixNano()))
		chat, err := repo.Create(ctx, creator.AccountID, &model.CreateGroupChatRequest{Name: "ghosts"})
		require.NoError(t, err)

		err = repo.AddMember(ctx, "00000000-0000-0000-0000-000000000000", creator.AccountID)
		require.ErrorIs(t, err, ErrGroupChatNotFound)

		err = repo.AddMember(ctx, chat.ChatID, "00000000-0000-0000-0000-000000000000")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestGroupChatRepo_NotFound(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewGroupChatRepo(db)

		_, err := repo.GetByID(ctx, "00000000-0000-0000-0000-000000000000")
		require.ErrorIs(t, err, ErrGroupChatNotFound)
	})
}
