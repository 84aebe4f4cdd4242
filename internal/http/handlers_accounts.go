// Package httpx provides the JSON API handlers and the credential gate for
// the chat backend.
package httpx

import (
	"errors"
	"net/http"

	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
	"github.com/chatloop/chat-api/internal/service"
)

const (
	maxAccountListLimit = 100 // Maximum number of accounts that can be requested in one call
)

// AccountHandlers provides HTTP handlers for account-related operations.
type AccountHandlers struct {
	Svc *service.AccountService
}

// callerIdentity pulls the verified identity placed by the gate. A request
// that reaches a protected handler without one is mis-wired; it gets the
// generic rejection.
func callerIdentity(w http.ResponseWriter, r *http.Request) (domainauth.Identity, bool) {
	ident, ok := GetIdentityFromContext(r.Context())
	if !ok {
		WriteDomainAuthError(w, domainauth.CredentialMissing())
	}
	return ident, ok
}

// Create handles HTTP requests to create a new account.
func (h *AccountHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req model.CreateAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	account, err := h.Svc.Create(r.Context(), ident, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUsernameExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "username_conflict", Err: err})
		case errors.Is(err, data.ErrClerkIDExists):
			WriteError(w, ErrorParams{
				Code:    http.StatusConflict,
				ErrCode: "account_exists",
				Err:     errors.New("an account already exists for this identity"),
			})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, account)
}

// List handles HTTP requests to list the caller's own accounts.
func (h *AccountHandlers) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	accounts, err := h.Svc.ListOwned(r.Context(), ident)
	if err != nil {
		if domainauth.IsAuthError(err) {
			WriteDomainAuthError(w, err)
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"accounts": accounts})
}

// GetByID handles HTTP requests to get one of the caller's accounts by ID.
func (h *AccountHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	account, err := h.Svc.GetOwned(r.Context(), ident, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAccountNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, account)
}

// Update handles HTTP requests to update one of the caller's accounts.
func (h *AccountHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateAccountRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	account, err := h.Svc.UpdateOwned(r.Context(), ident, id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAccountNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
		case errors.Is(err, data.ErrUsernameExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "username_conflict", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, account)
}

// ListDirectory handles HTTP requests to browse all accounts for peer discovery.
func (h *AccountHandlers) ListDirectory(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAccountListLimit)

	accounts, err := h.Svc.ListDirectory(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"accounts": accounts,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetDirectory handles HTTP requests to fetch any account's public profile.
func (h *AccountHandlers) GetDirectory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	account, err := h.Svc.GetDirectory(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrAccountNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, account)
}
