package models

import "time"

// Folder is one node of a user's directory tree. ParentID is nil only for
// the single root folder each user owns. Path is a materialized string
// derived from ancestor names at the time the folder was last written;
// renaming or moving an ancestor does not rewrite descendant paths.
type Folder struct {
	ID        string    `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	ParentID  *string   `json:"parent_id"`
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	IsRoot    bool      `json:"is_root"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Breadcrumb is one level of the ancestry chain from the root down to a
// target folder.
type Breadcrumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// FolderTree is a folder with its subtree embedded, children ordered by
// name at every level.
type FolderTree struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Path      string        `json:"path"`
	IsRoot    bool          `json:"is_root"`
	Children  []*FolderTree `json:"children"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
