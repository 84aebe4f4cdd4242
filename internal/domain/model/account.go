//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxUsernameLen = 16
)

// Account represents a chat user profile. ClerkID ties the record to the
// external identity provider and is never serialized to API callers.
type Account struct {
	AccountID  string    `json:"account_id"            db:"account_id"`
	ClerkID    *string   `json:"-"                     db:"clerk_id"`
	Username   *string   `json:"username"              db:"username"`
	DisplayPic *string   `json:"display_pic,omitempty" db:"display_pic"`
	Created    time.Time `json:"created"               db:"created"`
}

// OwnedBy reports whether the account belongs to the given external identifier.
func (a *Account) OwnedBy(clerkID string) bool {
	return a.ClerkID != nil && clerkID != "" && *a.ClerkID == clerkID
}

// CreateAccountRequest represents parameters to create an Account.
// ClerkID is stamped server-side from the verified identity; it is not
// accepted from the request body.
type CreateAccountRequest struct {
	Username   *string `json:"username,omitempty"`
	DisplayPic *string `json:"display_pic,omitempty"`
}

// UpdateAccountRequest represents parameters to partially update an Account.
type UpdateAccountRequest struct {
	Username   *string `json:"username,omitempty"`
	DisplayPic *string `json:"display_pic,omitempty"`
}

// Validate validates CreateAccountRequest.
func (r *CreateAccountRequest) Validate() error {
	if r.Username != nil {
		if err := validateUsername(*r.Username); err != nil {
			return err
		}
	}
	if r.DisplayPic != nil {
		if err := validatePicURL(*r.DisplayPic, "display_pic"); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateAccountRequest.
func (r *UpdateAccountRequest) HasUpdates() bool {
	return r.Username != nil || r.DisplayPic != nil
}

// Validate validates UpdateAccountRequest, ensuring at least one field is set.
func (r *UpdateAccountRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Username != nil {
		if err := validateUsername(*r.Username); err != nil {
			return err
		}
	}
	if r.DisplayPic != nil {
		if err := validatePicURL(*r.DisplayPic, "display_pic"); err != nil {
			return err
		}
	}
	return nil
}

func validateUsername(username string) error {
	name := strings.TrimSpace(username)
	if name == "" {
		return errors.New("username cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxUsernameLen {
		return errors.New("username cannot exceed 16 characters")
	}
	return nil
}

func validatePicURL(raw, field string) error {
	if strings.TrimSpace(raw) == "" {
		// Empty string clears the field.
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return errors.New(field + " must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New(field + " must use http or https scheme")
	}
	if u.Host == "" {
		return errors.New(field + " must have a valid host")
	}
	return nil
}
