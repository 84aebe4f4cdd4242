package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/chatloop/chat-api/internal/errors"

	"github.com/chatloop/chat-api/internal/data/pgxutil"
	"github.com/chatloop/chat-api/internal/domain/model"
)

var (
	// ErrUserChatNotFound is returned when a one-to-one chat is not found.
	ErrUserChatNotFound = errors.New("user chat not found")
	// ErrUserChatExists is returned when a one-to-one chat already exists for the pair.
	ErrUserChatExists = errors.New("user chat already exists for this pair")
)

// UserChatRepo provides database operations for one-to-one chats.
type UserChatRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserChatRepo creates a new UserChatRepo with real time provider.
func NewUserChatRepo(db *sql.DB) *UserChatRepo {
	return &UserChatRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserChatRepoWithTimeProvider creates a new UserChatRepo with a custom time provider (useful for tests).
func NewUserChatRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserChatRepo {
	return &UserChatRepo{DB: db, timeProvider: tp}
}

// Create inserts a new one-to-one chat between the two accounts. The pair is
// stored in lexicographic order so the uniqueness constraint catches the chat
// regardless of which participant initiates it.
func (r *UserChatRepo) Create(ctx context.Context, user1ID, user2ID string) (*model.UserChat, error) {
	if user1ID == "" || user2ID == "" {
		return nil, errors.New("both participant IDs are required")
	}
	if user1ID == user2ID {
		return nil, errors.New("participants must be two distinct accounts")
	}
	if user2ID < user1ID {
		user1ID, user2ID = user2ID, user1ID
	}

	now := r.timeProvider.Now().UTC()
	var out model.UserChat
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO user_chats (
				user1_id, user2_id, created, updated
			) VALUES (
				$1, $2, $3, $3
			) RETURNING chat_id, user1_id, user2_id, created, updated
		`, user1ID, user2ID, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserChat])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a one-to-one chat by ID.
func (r *UserChatRepo) GetByID(ctx context.Context, id string) (*model.UserChat, error) {
	var chat model.UserChat
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userChatGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		chat, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserChat])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserChatNotFound
		}
		return nil, fmt.Errorf("failed to get user chat by ID: %w", err)
	}
	return &chat, nil
}

// ListForAccount retrieves the one-to-one chats the account participates in,
// most recently active first.
func (r *UserChatRepo) ListForAccount(
	ctx context.Context,
	accountID string,
	limit, offset int,
) ([]*model.UserChat, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.UserChat
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userChatListForAccountQuery, accountID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.UserChat])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list user chats: %w", err)
	}

	res := make([]*model.UserChat, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Touch bumps the chat's updated timestamp and returns the refreshed row.
// Used when new activity lands in the chat.
func (r *UserChatRepo) Touch(ctx context.Context, id string) (*model.UserChat, error) {
	now := r.timeProvider.Now().UTC()
	var out model.UserChat
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE user_chats SET updated = $2
			WHERE chat_id = $1
			RETURNING chat_id, user1_id, user2_id, created, updated
		`, id, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.UserChat])
		return err
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	userChatGetByIDQuery = `
		SELECT chat_id, user1_id, user2_id, created, updated
		FROM user_chats
		WHERE chat_id = $1`

	userChatListForAccountQuery = `
		SELECT chat_id, user1_id, user2_id, created, updated
		FROM user_chats
		WHERE user1_id = $1 OR user2_id = $1
		ORDER BY updated DESC
		LIMIT $2 OFFSET $3`
)

func (r *UserChatRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrUserChatNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrUserChatExists
	}
	return apperrors.MapDBError(err)
}
