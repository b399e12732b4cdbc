package database

import "errors"

// The error values handlers translate into client responses. Ownership
// failures surface as the same not-found error as true absence so that a
// caller can never probe for another user's entries.
var (
	ErrFolderNotFound      = errors.New("folder not found or not owned by the caller")
	ErrFileNotFound        = errors.New("file not found or not owned by the caller")
	ErrDuplicateName       = errors.New("an entry with the same name already exists at this location")
	ErrRootFolderProtected = errors.New("the root folder cannot be deleted or moved")
	ErrInvalidMoveTarget   = errors.New("cannot move a folder into itself or one of its descendants")
	ErrEmailTaken          = errors.New("a user with this email already exists")

	// ErrParentMissing means a folder row references a parent that no
	// longer exists. It indicates a broken invariant, not bad input.
	ErrParentMissing = errors.New("parent folder record is missing")
)

// Postgres error codes the store translates into the sentinels above.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)
