package model

import (
	"errors"
	"strings"
	"time"
)

// ChatType distinguishes one-to-one and group conversations.
type ChatType string

const (
	ChatTypeUser  ChatType = "user"
	ChatTypeGroup ChatType = "group"
)

// Valid reports whether the chat type is supported.
func (t ChatType) Valid() bool {
	switch t {
	case ChatTypeUser, ChatTypeGroup:
		return true
	default:
		return false
	}
}

// ParseChatType normalizes a chat type string and reports whether it is supported.
func ParseChatType(value string) (ChatType, bool) {
	t := ChatType(strings.ToLower(strings.TrimSpace(value)))
	if t.Valid() {
		return t, true
	}
	return "", false
}

// ChatRef identifies a single chat of either type, as selected by the
// chat_type/chat_id query pair on message listings.
type ChatRef struct {
	Type   ChatType
	ChatID string
}

// Validate validates ChatRef.
func (r ChatRef) Validate() error {
	if !r.Type.Valid() {
		return errors.New("chat_type must be one of: user, group")
	}
	if strings.TrimSpace(r.ChatID) == "" {
		return errors.New("chat_id is required and cannot be empty")
	}
	return nil
}

// Message is a single chat message. Exactly one of UserChatID/GroupChatID is
// set, matching ChatType. Listings are ordered by created ascending.
type Message struct {
	MessageID      string    `json:"message_id"                 db:"message_id"`
	SenderID       string    `json:"-"                          db:"sender_id"`
	TextContent    string    `json:"text_content"               db:"text_content"`
	FileContentURL *string   `json:"file_content_url,omitempty" db:"file_content_url"`
	ChatType       ChatType  `json:"chat_type"                  db:"chat_type"`
	UserChatID     *string   `json:"user_chat_id,omitempty"     db:"user_chat_id"`
	GroupChatID    *string   `json:"group_chat_id,omitempty"    db:"group_chat_id"`
	Created        time.Time `json:"created"                    db:"created"`
}

// SentBy reports whether the given account authored the message.
func (m *Message) SentBy(accountID string) bool {
	return accountID != "" && m.SenderID == accountID
}

// MessageDetail is the API shape for a single message with sender profile.
type MessageDetail struct {
	MessageID      string    `json:"message_id"`
	Sender         *Account  `json:"sender"`
	TextContent    string    `json:"text_content"`
	FileContentURL *string   `json:"file_content_url,omitempty"`
	ChatType       ChatType  `json:"chat_type"`
	UserChatID     *string   `json:"user_chat_id,omitempty"`
	GroupChatID    *string   `json:"group_chat_id,omitempty"`
	Created        time.Time `json:"created"`
}

// MessageListItem is the API shape for message listings; the chat reference
// is implied by the query and omitted from each row.
type MessageListItem struct {
	MessageID      string    `json:"message_id"`
	Sender         *Account  `json:"sender"`
	TextContent    string    `json:"text_content"`
	FileContentURL *string   `json:"file_content_url,omitempty"`
	Created        time.Time `json:"created"`
}

// CreateMessageRequest represents parameters to send a message. Sender is
// stamped server-side from the caller's account.
type CreateMessageRequest struct {
	TextContent    string   `json:"text_content"`
	FileContentURL *string  `json:"file_content_url,omitempty"`
	ChatType       ChatType `json:"chat_type"`
	UserChatID     *string  `json:"user_chat_id,omitempty"`
	GroupChatID    *string  `json:"group_chat_id,omitempty"`
}

// UpdateMessageRequest represents parameters to partially update a message.
type UpdateMessageRequest struct {
	TextContent    *string `json:"text_content,omitempty"`
	FileContentURL *string `json:"file_content_url,omitempty"`
}

// Validate validates CreateMessageRequest, including the cross-field pairing
// of chat_type and the chat reference.
func (r *CreateMessageRequest) Validate() error {
	if strings.TrimSpace(r.TextContent) == "" {
		return errors.New("text_content is required and cannot be empty")
	}
	if !r.ChatType.Valid() {
		return errors.New("chat_type must be one of: user, group")
	}
	switch r.ChatType {
	case ChatTypeUser:
		if r.UserChatID == nil || strings.TrimSpace(*r.UserChatID) == "" {
			return errors.New(`user_chat_id is required when chat_type is "user"`)
		}
		if r.GroupChatID != nil {
			return errors.New(`group_chat_id must not be set when chat_type is "user"`)
		}
	case ChatTypeGroup:
		if r.GroupChatID == nil || strings.TrimSpace(*r.GroupChatID) == "" {
			return errors.New(`group_chat_id is required when chat_type is "group"`)
		}
		if r.UserChatID != nil {
			return errors.New(`user_chat_id must not be set when chat_type is "group"`)
		}
	}
	if r.FileContentURL != nil {
		if err := validatePicURL(*r.FileContentURL, "file_content_url"); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateMessageRequest.
func (r *UpdateMessageRequest) HasUpdates() bool {
	return r.TextContent != nil || r.FileContentURL != nil
}

// Validate validates UpdateMessageRequest, ensuring at least one field is set.
func (r *UpdateMessageRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.TextContent != nil && strings.TrimSpace(*r.TextContent) == "" {
		return errors.New("text_content cannot be empty")
	}
	if r.FileContentURL != nil {
		if err := validatePicURL(*r.FileContentURL, "file_content_url"); err != nil {
			return err
		}
	}
	return nil
}
