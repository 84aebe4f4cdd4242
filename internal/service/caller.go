package service

import (
	"context"
	"errors"

	"github.com/chatloop/chat-api/internal/core"
	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
)

// resolveCaller maps a verified identity to its account row. A caller whose
// identity owns no account cannot act on chat resources; that outcome is
// reported the same way as any other ownership failure so responses do not
// reveal which accounts exist.
func resolveCaller(
	ctx context.Context,
	accounts core.AccountRepository,
	ident domainauth.Identity,
) (*model.Account, error) {
	if ident.ClerkID == "" {
		return nil, domainauth.CredentialMissing()
	}
	account, err := accounts.GetByClerkID(ctx, ident.ClerkID)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			return nil, domainauth.OwnershipMismatch()
		}
		return nil, err
	}
	return account, nil
}
