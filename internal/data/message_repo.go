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

var (
	// ErrMessageNotFound is returned when a message is not found.
	ErrMessageNotFound = errors.New("message not found")
	// ErrMessageChatNotFound is returned when the referenced chat does not exist.
	ErrMessageChatNotFound = errors.New("referenced chat not found")
)

// MessageRepo provides database operations for messages.
type MessageRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMessageRepo creates a new MessageRepo with real time provider.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewMessageRepoWithTimeProvider creates a new MessageRepo with a custom time provider (useful for tests).
func NewMessageRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *MessageRepo {
	return &MessageRepo{DB: db, timeProvider: tp}
}

// Create inserts a new message and bumps the parent chat's updated timestamp in
// the same transaction, so chat listings surface the latest activity first.
func (r *MessageRepo) Create(
	ctx context.Context,
	senderID string,
	req *model.CreateMessageRequest,
) (*model.Message, error) {
	if req == nil {
		return nil, errors.New("create message request is required")
	}
	if senderID == "" {
		return nil, errors.New("sender ID is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Message
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO messages (
				sender_id, text_content, file_content_url, chat_type, user_chat_id, group_chat_id, created
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7
			) RETURNING message_id, sender_id, text_content, file_content_url, chat_type, user_chat_id, group_chat_id, created
		`,
			senderID,
			strings.TrimSpace(req.TextContent),
			req.FileContentURL,
			req.ChatType,
			req.UserChatID,
			req.GroupChatID,
			now,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		if err != nil {
			return err
		}
		switch req.ChatType {
		case model.ChatTypeUser:
			_, err = tx.Exec(ctx, `UPDATE user_chats SET updated = $2 WHERE chat_id = $1`, *req.UserChatID, now)
		case model.ChatTypeGroup:
			_, err = tx.Exec(ctx, `UPDATE group_chats SET updated = $2 WHERE chat_id = $1`, *req.GroupChatID, now)
		}
		return err
	}})
	if err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a message by ID.
func (r *MessageRepo) GetByID(ctx context.Context, id string) (*model.Message, error) {
	var msg model.Message
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, messageGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		msg, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, fmt.Errorf("failed to get message by ID: %w", err)
	}
	return &msg, nil
}

// ListForChat retrieves the messages of one chat in the order they were sent.
func (r *MessageRepo) ListForChat(
	ctx context.Context,
	ref model.ChatRef,
	limit, offset int,
) ([]*model.Message, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := messageListForUserChatQuery
	if ref.Type == model.ChatTypeGroup {
		query = messageListForGroupChatQuery
	}

	var rowsOut []model.Message
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, ref.ChatID, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Message])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	res := make([]*model.Message, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates the editable fields of a message. Chat references are immutable.
func (r *MessageRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateMessageRequest,
) (*model.Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Message
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, messageGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
			return e
		}
		args = append(args, id)
		query := "UPDATE messages SET " + setClause + " WHERE message_id = $" + strconv.Itoa(
			len(args),
		) + " RETURNING message_id, sender_id, text_content, file_content_url, chat_type, user_chat_id, group_chat_id, created"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Message])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a message based on the request.
func (r *MessageRepo) buildUpdateClause(req model.UpdateMessageRequest) (string, []any) {
	setParts := make([]string, 0, 2)
	args := make([]any, 0, 3)
	nextIdx := func() int { return len(args) + 1 }

	if req.TextContent != nil {
		setParts = append(setParts, fmt.Sprintf("text_content = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.TextContent))
	}
	if req.FileContentURL != nil {
		if strings.TrimSpace(*req.FileContentURL) == "" {
			setParts = append(setParts, "file_content_url = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("file_content_url = $%d", nextIdx()))
			args = append(args, *req.FileContentURL)
		}
	}

	if len(setParts) == 0 {
		return "", nil
	}
	return strings.Join(setParts, ", "), args
}

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	messageGetByIDQuery = `
		SELECT message_id, sender_id, text_content, file_content_url, chat_type, user_chat_id, group_chat_id, created
		FROM messages
		WHERE message_id = $1`

	messageListForUserChatQuery = `
		SELECT message_id, sender_id, text_content, file_content_url, chat_type, user_chat_id, group_chat_id, created
		FROM messages
		WHERE user_chat_id = $1
		ORDER BY created ASC
		LIMIT $2 OFFSET $3`

	messageListForGroupChatQuery = `
		SELECT message_id, sender_id, text_content, file_content_url, chat_type, user_chat_id, group_chat_id, created
		FROM messages
		WHERE group_chat_id = $1
		ORDER BY created ASC
		LIMIT $2 OFFSET $3`
)

func (r *MessageRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrMessageNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
		if pgErr.ConstraintName == "messages_sender_id_fkey" {
			return ErrAccountNotFound
		}
		return ErrMessageChatNotFound
	}
	return apperrors.MapDBError(err)
}
