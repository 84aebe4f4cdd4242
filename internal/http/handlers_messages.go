package httpx

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/chatloop/chat-api/internal/data"
	domainauth "github.com/chatloop/chat-api/internal/domain/auth"
	"github.com/chatloop/chat-api/internal/domain/model"
	"github.com/chatloop/chat-api/internal/service"
)

const (
	maxMessageListLimit = 200 // Maximum number of messages that can be requested in one call
)

// MessageHandlers provides HTTP handlers for message operations.
type MessageHandlers struct {
	Svc *service.MessageService
}

// Create handles HTTP requests to send a message.
func (h *MessageHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var req model.CreateMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	msg, err := h.Svc.Create(r.Context(), ident, &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserChatNotFound), errors.Is(err, data.ErrGroupChatNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "chat_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, msg)
}

// List handles HTTP requests to list one chat's messages, selected by the
// chat_type/chat_id query pair, oldest first.
func (h *MessageHandlers) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	chatType, ok := model.ParseChatType(r.URL.Query().Get("chat_type"))
	if !ok {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("chat_type must be one of: user, group"),
		})
		return
	}
	chatID := r.URL.Query().Get("chat_id")
	if _, err := uuid.Parse(chatID); err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("chat_id must be a valid UUID"),
		})
		return
	}
	limit, offset := ParseLimitOffset(r, 50, maxMessageListLimit)

	ref := model.ChatRef{Type: chatType, ChatID: chatID}
	msgs, err := h.Svc.ListForChat(r.Context(), ident, ref, limit, offset)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUserChatNotFound), errors.Is(err, data.ErrGroupChatNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "chat_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"messages": msgs,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetByID handles HTTP requests to retrieve one message.
func (h *MessageHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	msg, err := h.Svc.Get(r.Context(), ident, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrMessageNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "message_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, msg)
}

// Update handles HTTP requests to edit a message's content.
func (h *MessageHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := callerIdentity(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req model.UpdateMessageRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	msg, err := h.Svc.Update(r.Context(), ident, id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrMessageNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "message_not_found", Err: err})
		case domainauth.IsAuthError(err):
			WriteDomainAuthError(w, err)
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, msg)
}
