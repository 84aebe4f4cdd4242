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
	// ErrAccountNotFound is returned when an account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrUsernameExists is returned when attempting to create/update an account with a duplicate username.
	ErrUsernameExists = errors.New("username already exists")
	// ErrClerkIDExists is returned when the caller's identity already owns an account.
	ErrClerkIDExists = errors.New("account already exists for this identity")
)

// AccountRepo provides database operations for accounts.
type AccountRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAccountRepo creates a new AccountRepo with real time provider.
func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAccountRepoWithTimeProvider creates a new AccountRepo with a custom time provider (useful for tests).
func NewAccountRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AccountRepo {
	return &AccountRepo{DB: db, timeProvider: tp}
}

// Create inserts a new account owned by the given identity. The clerk ID is
// always supplied by the caller's verified identity, never by the request body.
func (r *AccountRepo) Create(
	ctx context.Context,
	clerkID string,
	req *model.CreateAccountRequest,
) (*model.Account, error) {
	if req == nil {
		return nil, errors.New("create account request is required")
	}
	if strings.TrimSpace(clerkID) == "" {
		return nil, errors.New("clerk ID is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO accounts (
				clerk_id, username, display_pic, created
			) VALUES (
				$1, $2, $3, $4
			) RETURNING account_id, clerk_id, username, display_pic, created
		`,
			strings.TrimSpace(clerkID),
			trimmedPtr(req.Username),
			req.DisplayPic,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id string) (*model.Account, error) {
	return r.getByQuery(ctx, accountGetByIDQuery, "failed to get account by ID", id)
}

// GetByClerkID retrieves the account owned by the given identity.
func (r *AccountRepo) GetByClerkID(ctx context.Context, clerkID string) (*model.Account, error) {
	return r.getByQuery(ctx, accountGetByClerkIDQuery, "failed to get account by clerk ID", clerkID)
}

// GetByIDs retrieves multiple accounts keyed by account ID. Missing IDs are
// simply absent from the result map.
func (r *AccountRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*model.Account, error) {
	if len(ids) == 0 {
		return map[string]*model.Account{}, nil
	}

	var rowsOut []model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, accountGetByIDsQuery, ids)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to get accounts by IDs: %w", err)
	}

	res := make(map[string]*model.Account, len(rowsOut))
	for i := range rowsOut {
		res[rowsOut[i].AccountID] = &rowsOut[i]
	}
	return res, nil
}

// ListByClerkID retrieves the accounts owned by the given identity.
func (r *AccountRepo) ListByClerkID(ctx context.Context, clerkID string) ([]*model.Account, error) {
	var rowsOut []model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, accountListByClerkIDQuery, clerkID)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list accounts by clerk ID: %w", err)
	}

	res := make([]*model.Account, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// List retrieves accounts with pagination, newest first.
func (r *AccountRepo) List(ctx context.Context, limit, offset int) ([]*model.Account, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Account
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, accountListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Account])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	res := make([]*model.Account, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an account.
func (r *AccountRepo) Update(
	ctx context.Context,
	id string,
	req model.UpdateAccountRequest,
) (*model.Account, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		if setClause == "" {
			rows, err := conn.Query(ctx, accountGetByIDQuery, id)
			if err != nil {
				return err
			}
			defer rows.Close()
			var e error
			out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
			return e
		}
		args = append(args, id)
		query := "UPDATE accounts SET " + setClause + " WHERE account_id = $" + strconv.Itoa(
			len(args),
		) + " RETURNING account_id, clerk_id, username, display_pic, created"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an account based on the request.
func (r *AccountRepo) buildUpdateClause(req model.UpdateAccountRequest) (string, []any) {
	setParts := make([]string, 0, 2)
	args := make([]any, 0, 3)
	nextIdx := func() int { return len(args) + 1 }

	if req.Username != nil {
		setParts = append(setParts, fmt.Sprintf("username = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Username))
	}
	if req.DisplayPic != nil {
		if strings.TrimSpace(*req.DisplayPic) == "" {
			setParts = append(setParts, "display_pic = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("display_pic = $%d", nextIdx()))
			args = append(args, *req.DisplayPic)
		}
	}

	if len(setParts) == 0 {
		return "", nil
	}
	return strings.Join(setParts, ", "), args
}

// --- helpers ---

// SQL query constants for static queries (no dynamic WHERE/ORDER BY).
const (
	accountGetByIDQuery = `
		SELECT account_id, clerk_id, username, display_pic, created
		FROM accounts
		WHERE account_id = $1`

	accountGetByClerkIDQuery = `
		SELECT account_id, clerk_id, username, display_pic, created
		FROM accounts
		WHERE clerk_id = $1`

	accountGetByIDsQuery = `
		SELECT account_id, clerk_id, username, display_pic, created
		FROM accounts
		WHERE account_id = ANY($1)`

	accountListByClerkIDQuery = `
		SELECT account_id, clerk_id, username, display_pic, created
		FROM accounts
		WHERE clerk_id = $1
		ORDER BY created DESC`

	// The directory lists oldest accounts first.
	accountListQuery = `
		SELECT account_id, clerk_id, username, display_pic, created
		FROM accounts
		ORDER BY created ASC
		LIMIT $1 OFFSET $2`
)

// getByQuery is a helper function to execute a query and return a single account.
// Uses variadic args to avoid slice allocation at call sites.
func (r *AccountRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Account, error) {
	var account model.Account
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		account, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &account, nil
}

func (r *AccountRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrAccountNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		switch pgErr.ConstraintName {
		case "accounts_clerk_id_key":
			return ErrClerkIDExists
		default:
			return ErrUsernameExists
		}
	}
	return apperrors.MapDBError(err)
}

// trimmedPtr trims whitespace on optional string inputs, preserving nil.
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
