package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxGroupNameLen = 100
)

// GroupChat is a multi-member conversation. Membership lives in the
// group_chat_members join table; CreatorID is the owning account.
type GroupChat struct {
	ChatID      string    `json:"chat_id"               db:"chat_id"`
	Name        string    `json:"name"                  db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatorID   string    `json:"-"                     db:"creator_id"`
	ProfilePic  *string   `json:"profile_pic,omitempty" db:"profile_pic"`
	Created     time.Time `json:"created"               db:"created"`
	Updated     time.Time `json:"updated"               db:"updated"`
}

// CreatedBy reports whether the given account created the group.
func (g *GroupChat) CreatedBy(accountID string) bool {
	return accountID != "" && g.CreatorID == accountID
}

// GroupChatDetail is the API shape for a single group with embedded profiles.
type GroupChatDetail struct {
	ChatID       string     `json:"chat_id"`
	Name         string     `json:"name"`
	Description  *string    `json:"description,omitempty"`
	Creator      *Account   `json:"creator"`
	Members      []*Account `json:"members"`
	MembersCount int        `json:"members_count"`
	ProfilePic   *string    `json:"profile_pic,omitempty"`
	Created      time.Time  `json:"created"`
	Updated      time.Time  `json:"updated"`
}

// GroupChatListItem is the API shape for group listings: member profiles and
// description are omitted, only the count is carried.
type GroupChatListItem struct {
	ChatID       string    `json:"chat_id"`
	Name         string    `json:"name"`
	Creator      *Account  `json:"creator"`
	MembersCount int       `json:"members_count"`
	ProfilePic   *string   `json:"profile_pic,omitempty"`
	Updated      time.Time `json:"updated"`
}

// CreateGroupChatRequest represents parameters to create a GroupChat.
// Creator is stamped server-side and enrolled as the first member.
type CreateGroupChatRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	ProfilePic  *string `json:"profile_pic,omitempty"`
}

// UpdateGroupChatRequest represents parameters to partially update a GroupChat.
type UpdateGroupChatRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ProfilePic  *string `json:"profile_pic,omitempty"`
}

// Validate validates CreateGroupChatRequest.
func (r *CreateGroupChatRequest) Validate() error {
	if err := validateGroupName(r.Name); err != nil {
		return err
	}
	if r.ProfilePic != nil {
		if err := validatePicURL(*r.ProfilePic, "profile_pic"); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateGroupChatRequest.
func (r *UpdateGroupChatRequest) HasUpdates() bool {
	return r.Name != nil || r.Description != nil || r.ProfilePic != nil
}

// Validate validates UpdateGroupChatRequest, ensuring at least one field is set.
func (r *UpdateGroupChatRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Name != nil {
		if err := validateGroupName(*r.Name); err != nil {
			return err
		}
	}
	if r.ProfilePic != nil {
		if err := validatePicURL(*r.ProfilePic, "profile_pic"); err != nil {
			return err
		}
	}
	return nil
}

func validateGroupName(raw string) error {
	name := strings.TrimSpace(raw)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxGroupNameLen {
		return errors.New("name cannot exceed 100 characters")
	}
	return nil
}
