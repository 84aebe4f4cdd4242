package httpx

import (
	"errors"
	"net/http"

	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
	"github.com/chatloop/chat-api/internal/service"
)

// GroupChatHandlers provides HTTP handlers for group chat and membership operations.
type GroupChatHandlers struct {
	Svc *service.GroupChatService
}

// Create handles HTTP requests to create a group chat.
func (h *GroupChatHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req model.CreateGroupChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	chat, err := h.Svc.Create(r.Context(), ident, &req)
	if err != nil {
		switch {
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

// List handles HTTP requests to list the caller's group chats.
func (h *GroupChatHandlers) List(w http.ResponseWriter, r *http.Request) {
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

// GetByID handles HTTP requests to retrieve a group the caller belongs to.
func (h *GroupChatHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
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
		case errors.Is(err, data.ErrGroupChatNotFound):
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

// Update handles HTTP requests to update a group's profile fields.
func (h *GroupChatHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateGroupChatRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	chat, err := h.Svc.Update(r.Context(), ident, id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrGroupChatNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "chat_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, chat)
}

// AddMember handles HTTP requests to enroll an account into a group.
func (h *GroupChatHandlers) AddMember(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	accountID, ok := pathID(w, r, "accountID")
	if !ok {
		return
	}

	if err := h.Svc.AddMember(r.Context(), ident, chatID, accountID); err != nil {
		switch {
		case errors.Is(err, data.ErrAlreadyMember):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "already_member", Err: err})
		case errors.Is(err, data.ErrGroupChatNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "chat_not_found", Err: err})
		case errors.Is(err, data.ErrAccountNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "account_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "add_member_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"added": true})
}

// RemoveMember handles HTTP requests to remove an account from a group.
func (h *GroupChatHandlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	chatID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	accountID, ok := pathID(w, r, "accountID")
	if !ok {
		return
	}

	if err := h.Svc.RemoveMember(r.Context(), ident, chatID, accountID); err != nil {
		switch {
		case errors.Is(err, data.ErrNotAMember):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_a_member", Err: err})
		case errors.Is(err, data.ErrGroupChatNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "chat_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "remove_member_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
