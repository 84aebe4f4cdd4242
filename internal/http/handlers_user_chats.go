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
	maxChatListLimit = 100 // Maximum number of chats that can be requested in one call
)

// UserChatHandlers provides HTTP handlers for one-to-one chat operations.
type UserChatHandlers struct {
	Svc *service.UserChatService
}

// Create handles HTTP requests to open a one-to-one chat.
func (h *UserChatHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req model.CreateUserChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	chat, err := h.Svc.Create(r.Context(), ident, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserChatExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "chat_exists", Err: err})
		case errors.Is(err, data.ErrAccountNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, chat)
}

// List handles HTTP requests to list the caller's one-to-one chats.
func (h *UserChatHandlers) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	limit, offset := ParseLimitOffset(r, 50, maxChatListLimit)

	chats, err := h.Svc.List(r.Context(), ident, limit, offset)
	if err != nil {
		if domainauth.IsAuthError(err) {
			WriteDomainAuthError(w, err)
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"chats":  chats,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByID handles HTTP requests to retrieve one of the caller's chats.
func (h *UserChatHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	chat, err := h.Svc.Get(r.Context(), ident, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserChatNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "chat_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, chat)
}

// Touch handles HTTP requests to bump a chat's activity timestamp.
func (h *UserChatHandlers) Touch(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	chat, err := h.Svc.Touch(r.Context(), ident, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserChatNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "chat_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, chat)
}
