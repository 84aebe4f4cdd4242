package data

import "errors"

// Shared sentinel errors for group membership operations. Repo-specific
// sentinels (not found, conflicts) live at the top of each repo file.
var (
	// ErrAlreadyMember is returned when adding an account that already belongs to the group.
	ErrAlreadyMember = errors.New("account is already a member of the group chat")
	// ErrNotAMember is returned when removing an account that does not belong to the group.
	ErrNotAMember = errors.New("account is not a member of the group chat")
)
