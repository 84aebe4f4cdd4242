package service

import (
	"context"

	"github.com/chatloop/chat-api/internal/core"
	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	AccountRepo core.AccountRepository
}

// AccountService orchestrates account CRUD under the caller's ownership
// scope, plus the unscoped directory surface used for peer discovery.
type AccountService struct {
	accounts core.AccountRepository
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	return &AccountService{accounts: opts.AccountRepo}
}

// Create creates an account owned by the caller's identity. The owner binding
// comes from the verified identity, never from the request body.
func (s *AccountService) Create(
	ctx context.Context,
	ident domainauth.Identity,
	req *model.CreateAccountRequest,
) (*model.Account, error) {
	if ident.ClerkID == "" {
		return nil, domainauth.CredentialMissing()
	}
	return s.accounts.Create(ctx, ident.ClerkID, req)
}

// ListOwned returns the accounts owned by the caller's identity.
func (s *AccountService) ListOwned(ctx context.Context, ident domainauth.Identity) ([]*model.Account, error) {
	if ident.ClerkID == "" {
		return nil, domainauth.CredentialMissing()
	}
	return s.accounts.ListByClerkID(ctx, ident.ClerkID)
}

// GetOwned retrieves an account by ID within the caller's scope. An account
// owned by someone else is reported as not found, so the scoped surface never
// confirms foreign account IDs.
func (s *AccountService) GetOwned(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
) (*model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.OwnedBy(ident.ClerkID) {
		return nil, data.ErrAccountNotFound
	}
	return account, nil
}

// UpdateOwned updates an account after confirming the caller owns it. An
// ownership mismatch on a write is indistinguishable from a failed credential.
func (s *AccountService) UpdateOwned(
	ctx context.Context,
	ident domainauth.Identity,
	id string,
	req model.UpdateAccountRequest,
) (*model.Account, error) {
	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.OwnedBy(ident.ClerkID) {
		return nil, domainauth.OwnershipMismatch()
	}
	return s.accounts.Update(ctx, id, req)
}

// ListDirectory returns a page of all accounts, regardless of owner.
func (s *AccountService) ListDirectory(ctx context.Context, limit, offset int) ([]*model.Account, error) {
	return s.accounts.List(ctx, limit, offset)
}

// GetDirectory retrieves any account by ID, regardless of owner.
func (s *AccountService) GetDirectory(ctx context.Context, id string) (*model.Account, error) {
	return s.accounts.GetByID(ctx, id)
}
