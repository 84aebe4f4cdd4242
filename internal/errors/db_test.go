package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapDBError_Nil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, MapDBError(nil))
}

func TestMapDBError_ContextErrors(t *testing.T) {
	t.Parallel()

	timeout := MapDBError(fmt.Errorf("query: %w", context.DeadlineExceeded))
	assert.True(t, IsTimeout(timeout))

	canceled := MapDBError(fmt.Errorf("query: %w", context.Canceled))
	assert.True(t, IsCanceled(canceled))
}

func TestMapDBError_NoRows(t *testing.T) {
	t.Parallel()

	err := MapDBError(pgx.ErrNoRows)
	assert.True(t, IsNotFound(err))
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		Detail:         "Key (username)=(alice) already exists.",
		ConstraintName: "accounts_username_key",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "username", GetField(err))
}

func TestMapDBError_UniqueViolation_ConstraintFallback(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		ConstraintName: "accounts_clerk_id_key",
	}

	err := MapDBError(pgErr)
	require.True(t, IsConflict(err))
	assert.Equal(t, "clerk_id", GetField(err))
}

func TestMapDBError_ForeignKeyViolation_MissingParent(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Code:   pgerrcode.ForeignKeyViolation,
		Detail: `Key (user2_id)=(missing) is not present in table "accounts".`,
	}

	err := MapDBError(pgErr)
	require.True(t, IsForeignKey(err))
	assert.Contains(t, err.Error(), "referenced account does not exist")
}

func TestMapDBError_CheckAndNotNull(t *testing.T) {
	t.Parallel()

	check := MapDBError(&pgconn.PgError{Code: pgerrcode.CheckViolation, ColumnName: "chat_type"})
	require.True(t, IsValidation(check))
	assert.Equal(t, "chat_type", GetField(check))

	notNull := MapDBError(&pgconn.PgError{Code: pgerrcode.NotNullViolation, ColumnName: "text_content"})
	require.True(t, IsValidation(notNull))
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	t.Parallel()

	err := MapDBError(&pgconn.PgError{Code: pgerrcode.SerializationFailure})
	assert.True(t, IsInternal(err))
}

func TestMapDBError_UnrecognizedErrorPassesThrough(t *testing.T) {
	t.Parallel()

	original := errors.New("some transport failure")
	assert.Equal(t, original, MapDBError(original))
}

func TestMapTableToDomain(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "account", mapTableToDomain("accounts"))
	assert.Equal(t, "chat", mapTableToDomain("user_chats"))
	assert.Equal(t, "group chat", mapTableToDomain("group_chats"))
	assert.Equal(t, "group membership", mapTableToDomain("group_chat_members"))
	assert.Equal(t, "message", mapTableToDomain("messages"))
	assert.Equal(t, "widget", mapTableToDomain("widgets"))
}
