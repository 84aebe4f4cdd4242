package model

import (
	"errors"
	"strings"
	"time"
)

// UserChat is a one-to-one conversation between two accounts.
// The (user1, user2) pair is stored in canonical order and is unique.
type UserChat struct {
	ChatID  string    `json:"chat_id" db:"chat_id"`
	User1ID string    `json:"-"       db:"user1_id"`
	User2ID string    `json:"-"       db:"user2_id"`
	Created time.Time `json:"created" db:"created"`
	Updated time.Time `json:"updated" db:"updated"`
}

// HasParticipant reports whether the given account takes part in the chat.
func (c *UserChat) HasParticipant(accountID string) bool {
	return accountID != "" && (c.User1ID == accountID || c.User2ID == accountID)
}

// UserChatDetail is the API shape for a single chat with embedded profiles.
type UserChatDetail struct {
	ChatID  string    `json:"chat_id"`
	User1   *Account  `json:"user1"`
	User2   *Account  `json:"user2"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// UserChatListItem is the API shape for chat listings (no created column).
type UserChatListItem struct {
	ChatID  string    `json:"chat_id"`
	User1   *Account  `json:"user1"`
	User2   *Account  `json:"user2"`
	Updated time.Time `json:"updated"`
}

// CreateUserChatRequest represents parameters to open a one-to-one chat.
// User1 is stamped server-side from the caller's account.
type CreateUserChatRequest struct {
	User2ID string `json:"user2_id"`
}

// Validate validates CreateUserChatRequest.
func (r *CreateUserChatRequest) Validate() error {
	if strings.TrimSpace(r.User2ID) == "" {
		return errors.New("user2_id is required and cannot be empty")
	}
	return nil
}
