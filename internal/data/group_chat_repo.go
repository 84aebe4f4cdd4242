package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/chatloop/chat-api/internal/errors"

	"github.com/chatloop/chat-api/internal/data/pgxutil"
	"github.com/chatloop/chat-api/internal/domain/model"
)

// ErrGroupChatNotFound is returned when a group chat is not found.
var ErrGroupChatNotFound = errors.New("group chat not found")

// GroupChatRepo provides database operations for group chats and their membership.
type GroupChatRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewGroupChatRepo creates a new GroupChatRepo with real time provider.
func NewGroupChatRepo(db *sql.DB) *GroupChatRepo {
	return &GroupChatRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewGroupChatRepoWithTimeProvider creates a new GroupChatRepo with a custom time provider (useful for tests).
func NewGroupChatRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *GroupChatRepo {
	return &GroupChatRepo{DB: db, timeProvider: tp}
}

// Create inserts a new group chat and enrolls the creator as its first member.
// Both writes happen in one transaction so a group never exists without its creator.
func (r *GroupChatRepo) Create(
	ctx context.Context,
	creatorID string,
	req *model.CreateGroupChatRequest,
) (*model.GroupChat, error) {
	if req == nil {
		return nil, errors.New("create group chat request is required")
	}
	if creatorID == "" {
		return nil, errors.New("creator ID is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.GroupChat
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO group_chats (
				name, description, creator_id, profile_pic, created, updated
			) VALUES (
				$1, $2, $3, $4, $5, $5
			) RETURNING chat_id, name, description, creator_id, profile_pic, created, updated
		`,
			strings.TrimSpace(req.Name),
			req.Description,
			creatorID,
			req.ProfilePic,
			now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GroupChat])
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO group_chat_members (group_chat_id, account_id, added_at)
			VALUES ($1, $2, $3)
		`, out.ChatID, creatorID, now)
		return err
	}})
	if err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a group chat by ID.
func (r *GroupChatRepo) GetByID(ctx context.Context, id string) (*model.GroupChat, error) {
	var chat model.GroupChat
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, groupChatGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		chat, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GroupChat])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGroupChatNotFound
		}
		return nil, fmt.Errorf("failed to get group chat by ID: %w", err)
	}
	return &chat, nil
}

// ListForAccount retrieves the group chats the account belongs to,
// most recently active first.
func (r *GroupChatRepo) ListForAccount(
	ctx context.Context,
	accountID string,
	limit, offset int,
) ([]*model.GroupChat, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.GroupChat
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, groupChatListForAccountQuery, accountID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.GroupChat])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list group chats: %w", err)
	}

	res := make([]*model.GroupChat, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a group chat and bumps its updated timestamp.
func (r *GroupChatRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateGroupChatRequest,
) (*model.GroupChat, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.GroupChat
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, groupChatGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GroupChat])
			return e
		}
		args = append(args, id)
		query := "UPDATE group_chats SET " + setClause + " WHERE chat_id = $" + strconv.Itoa(
			len(args),
		) + " RETURNING chat_id, name, description, creator_id, profile_pic, created, updated"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.GroupChat])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// AddMember enrolls an account into the group and bumps the group's updated timestamp.
func (r *GroupChatRepo) AddMember(ctx context.Context, chatID, accountID string) error {
	now := r.timeProvider.Now().UTC()
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO group_chat_members (group_chat_id, account_id, added_at)
			VALUES ($1, $2, $3)
		`, chatID, accountID, now); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `UPDATE group_chats SET updated = $2 WHERE chat_id = $1`, chatID, now)
		return err
	}})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyMember
			case pgerrcode.ForeignKeyViolation:
				if pgErr.ConstraintName == "group_chat_members_group_chat_id_fkey" {
					return ErrGroupChatNotFound
				}
				return ErrAccountNotFound
			}
		}
		return apperrors.MapDBError(err)
	}
	return nil
}

// RemoveMember removes an account from the group. It reports whether a
// membership row was actually deleted.
func (r *GroupChatRepo) RemoveMember(ctx context.Context, chatID, accountID string) (bool, error) {
	now := r.timeProvider.Now().UTC()
	var removed bool
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		ct, err := tx.Exec(ctx, `
			DELETE FROM group_chat_members
			WHERE group_chat_id = $1 AND account_id = $2
		`, chatID, accountID)
		if err != nil {
			return err
		}
		removed = ct.RowsAffected() > 0
		if !removed {
			return nil
		}
		_, err = tx.Exec(ctx, `UPDATE group_chats SET updated = $2 WHERE chat_id = $1`, chatID, now)
		return err
	}})
	if err != nil {
		return false, fmt.Errorf("failed to remove group member: %w", err)
	}
	return removed, nil
}

// MemberIDs retrieves the member account IDs of the group in enrollment order.
func (r *GroupChatRepo) MemberIDs(ctx context.Context, chatID string) ([]string, error) {
	var ids []string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT account_id FROM group_chat_members
			WHERE group_chat_id = $1
			ORDER BY added_at, account_id
		`, chatID)
		if err != nil {
			return err
		}
		defer rows.Close()
		ids, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	return ids, nil
}

// MemberCount retrieves the number of members in the group.
func (r *GroupChatRepo) MemberCount(ctx context.Context, chatID string) (int, error) {
	var count int
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT count(*) FROM group_chat_members WHERE group_chat_id = $1
		`, chatID).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count group members: %w", err)
	}
	return count, nil
}

// IsMember reports whether the account belongs to the group.
func (r *GroupChatRepo) IsMember(ctx context.Context, chatID, accountID string) (bool, error) {
	var exists bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM group_chat_members
				WHERE group_chat_id = $1 AND account_id = $2
			)
		`, chatID, accountID).Scan(&exists)
	})
	if err != nil {
		return false, fmt.Errorf("failed to check group membership: %w", err)
	}
	return exists, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a group chat based on the request.
// Any field change also bumps the updated timestamp.
func (r *GroupChatRepo) buildUpdateClause(req model.UpdateGroupChatRequest) (string, []any) {
	setParts := make([]string, 0, 4)
	args := make([]any, 0, 4)
	nextIdx := func() int { return len(args) + 1 }

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		if strings.TrimSpace(*req.Description) == "" {
			setParts = append(setParts, "description = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("description = $%d", nextIdx()))
			args = append(args, *req.Description)
		}
	}
	if req.ProfilePic != nil {
		if strings.TrimSpace(*req.ProfilePic) == "" {
			setParts = append(setParts, "profile_pic = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("profile_pic = $%d", nextIdx()))
			args = append(args, *req.ProfilePic)
		}
	}

	if len(setParts) == 0 {
		return "", nil
	}
	setParts = append(setParts, fmt.Sprintf("updated = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	groupChatGetByIDQuery = `
		SELECT chat_id, name, description, creator_id, profile_pic, created, updated
		FROM group_chats
		WHERE chat_id = $1`

	groupChatListForAccountQuery = `
		SELECT gc.chat_id, gc.name, gc.description, gc.creator_id, gc.profile_pic, gc.created, gc.updated
		FROM group_chats gc
		JOIN group_chat_members gcm ON gcm.group_chat_id = gc.chat_id
		WHERE gcm.account_id = $1
		ORDER BY gc.updated DESC
		LIMIT $2 OFFSET $3`
)

func (r *GroupChatRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrGroupChatNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		return ErrAccountNotFound
	}
	return apperrors.MapDBError(err)
}
