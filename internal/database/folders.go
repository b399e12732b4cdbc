package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drivebox/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// RootFolderName is the name of the folder created for every user at
// registration.
const RootFolderName = "My Drive"

// maxTreeDepth bounds every tree traversal. A correct tree never gets
// close; the bound keeps a corrupted parent chain from hanging a request.
const maxTreeDepth = 512

const folderColumns = "id, owner_id, parent_id, name, path, is_root, created_at, updated_at"

func scanFolder(row pgx.Row) (*models.Folder, error) {
	var f models.Folder
	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.ParentID,
		&f.Name,
		&f.Path,
		&f.IsRoot,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (q *Queries) GetFolderByID(ctx context.Context, id string, ownerID int64) (*models.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE id = $1 AND owner_id = $2
	`
	folder, err := scanFolder(q.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return folder, nil
}

func (q *Queries) GetRootFolder(ctx context.Context, ownerID int64) (*models.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE owner_id = $1 AND is_root
	`
	folder, err := scanFolder(q.db.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return folder, nil
}

// ListChildFolders returns the immediate subfolders of parentID, ordered
// by name. Children are always derived from parent_id by query; there is
// no stored child list to fall out of sync.
func (q *Queries) ListChildFolders(ctx context.Context, ownerID int64, parentID string) ([]models.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE owner_id = $1 AND parent_id = $2
		ORDER BY name
	`
	rows, err := q.db.Query(ctx, query, ownerID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, err
		}
		folders = append(folders, *folder)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if folders == nil {
		return []models.Folder{}, nil
	}

	return folders, nil
}

func (q *Queries) siblingNameExists(ctx context.Context, ownerID int64, parentID *string, name string, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM folders
			WHERE owner_id = $1
			  AND parent_id IS NOT DISTINCT FROM $2
			  AND name = $3
			  AND id <> $4
		)
	`
	var exists bool
	err := q.db.QueryRow(ctx, query, ownerID, parentID, name, excludeID).Scan(&exists)
	return exists, err
}

// FolderExists checks an ID against all folders regardless of owner. Used
// only for ID generation, never for access decisions.
func (q *Queries) FolderExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM folders WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// childPath derives the materialized path of a folder under parent. The
// parent row must be read at write time so the path reflects the tree as
// of this mutation; descendants keep their previously written paths.
func childPath(parent *models.Folder, name string) string {
	return parent.Path + "/" + name
}

func rootPath(name string) string {
	return "/" + name
}

type CreateFolderParams struct {
	ID       string
	OwnerID  int64
	ParentID *string
	Name     string
	IsRoot   bool
}

func (q *Queries) insertFolder(ctx context.Context, arg CreateFolderParams, path string) (*models.Folder, error) {
	query := `
		INSERT INTO folders (id, owner_id, parent_id, name, path, is_root, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING ` + folderColumns
	now := time.Now()

	folder, err := scanFolder(q.db.QueryRow(ctx, query,
		arg.ID,
		arg.OwnerID,
		arg.ParentID,
		arg.Name,
		path,
		arg.IsRoot,
		now,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateName
		}
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}

	return folder, nil
}

// CreateRootFolder inserts the single parentless root for a new user.
func (q *Queries) CreateRootFolder(ctx context.Context, id string, ownerID int64) (*models.Folder, error) {
	arg := CreateFolderParams{
		ID:      id,
		OwnerID: ownerID,
		Name:    RootFolderName,
		IsRoot:  true,
	}
	return q.insertFolder(ctx, arg, rootPath(RootFolderName))
}

func (q *Queries) createFolder(ctx context.Context, arg CreateFolderParams) (*models.Folder, error) {
	var parent *models.Folder
	var err error

	if arg.ParentID == nil {
		parent, err = q.GetRootFolder(ctx, arg.OwnerID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentMissing
		}
	} else {
		parent, err = q.GetFolderByID(ctx, *arg.ParentID, arg.OwnerID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrFolderNotFound
		}
	}

	taken, err := q.siblingNameExists(ctx, arg.OwnerID, &parent.ID, arg.Name, arg.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	arg.ParentID = &parent.ID
	arg.IsRoot = false
	return q.insertFolder(ctx, arg, childPath(parent, arg.Name))
}

// CreateFolder creates a subfolder. A nil ParentID targets the owner's
// root folder.
func (s *Store) CreateFolder(ctx context.Context, arg CreateFolderParams) (*models.Folder, error) {
	var folder *models.Folder
	err := s.ExecTx(ctx, func(q *Queries) error {
		var txErr error
		folder, txErr = q.createFolder(ctx, arg)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

func (q *Queries) updateFolder(ctx context.Context, folder *models.Folder) error {
	query := `
		UPDATE folders
		SET name = $1, parent_id = $2, path = $3, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`
	now := time.Now()
	res, err := q.db.Exec(ctx, query,
		folder.Name, folder.ParentID, folder.Path, now, folder.ID, folder.OwnerID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateName
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrFolderNotFound
	}
	folder.UpdatedAt = now
	return nil
}

// refreshFolderPath recomputes the materialized path from the current
// parent. Descendant paths are left untouched: they go stale until the
// descendant itself is next renamed or moved. Callers must not treat a
// descendant's path as fresh after an ancestor rename.
func (q *Queries) refreshFolderPath(ctx context.Context, folder *models.Folder) error {
	if folder.IsRoot || folder.ParentID == nil {
		folder.Path = rootPath(folder.Name)
		return nil
	}

	parent, err := q.GetFolderByID(ctx, *folder.ParentID, folder.OwnerID)
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrParentMissing
	}

	folder.Path = childPath(parent, folder.Name)
	return nil
}

// RenameFolder changes a folder's name and recomputes its path.
func (s *Store) RenameFolder(ctx context.Context, id string, ownerID int64, newName string) (*models.Folder, error) {
	var folder *models.Folder
	err := s.ExecTx(ctx, func(q *Queries) error {
		var txErr error
		folder, txErr = q.GetFolderByID(ctx, id, ownerID)
		if txErr != nil {
			return txErr
		}
		if folder == nil {
			return ErrFolderNotFound
		}

		taken, txErr := q.siblingNameExists(ctx, ownerID, folder.ParentID, newName, id)
		if txErr != nil {
			return txErr
		}
		if taken {
			return ErrDuplicateName
		}

		folder.Name = newName
		if txErr = q.refreshFolderPath(ctx, folder); txErr != nil {
			return txErr
		}
		return q.updateFolder(ctx, folder)
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// MoveFolder reparents a folder. Moves into the folder itself or any of
// its descendants are rejected; the destination must be an existing folder
// of the same owner. The root folder cannot be moved.
func (s *Store) MoveFolder(ctx context.Context, id string, ownerID int64, newParentID string) (*models.Folder, error) {
	var folder *models.Folder
	err := s.ExecTx(ctx, func(q *Queries) error {
		var txErr error
		folder, txErr = q.GetFolderByID(ctx, id, ownerID)
		if txErr != nil {
			return txErr
		}
		if folder == nil {
			return ErrFolderNotFound
		}
		if folder.IsRoot {
			return ErrRootFolderProtected
		}

		dest, txErr := q.GetFolderByID(ctx, newParentID, ownerID)
		if txErr != nil {
			return txErr
		}
		if dest == nil {
			return ErrFolderNotFound
		}

		if dest.ID == folder.ID {
			return ErrInvalidMoveTarget
		}
		descendants, txErr := q.ListDescendantFolders(ctx, ownerID, folder.ID)
		if txErr != nil {
			return txErr
		}
		for i := range descendants {
			if descendants[i].ID == dest.ID {
				return ErrInvalidMoveTarget
			}
		}

		taken, txErr := q.siblingNameExists(ctx, ownerID, &dest.ID, folder.Name, id)
		if txErr != nil {
			return txErr
		}
		if taken {
			return ErrDuplicateName
		}

		folder.ParentID = &dest.ID
		folder.Path = childPath(dest, folder.Name)
		return q.updateFolder(ctx, folder)
	})
	if err != nil {
		return nil, err
	}
	return folder, nil
}

// ListDescendantFolders walks the subtree below folderID breadth-first and
// returns every folder strictly below it. The walk follows parent_id links
// through indexed queries, so an entry either resolves or simply does not
// appear; there is no stale cache to chase.
func (q *Queries) ListDescendantFolders(ctx context.Context, ownerID int64, folderID string) ([]models.Folder, error) {
	var descendants []models.Folder

	queue := []string{folderID}
	for depth := 0; len(queue) > 0; depth++ {
		if depth > maxTreeDepth {
			return nil, fmt.Errorf("folder tree below %s exceeds depth limit %d", folderID, maxTreeDepth)
		}

		var next []string
		for _, id := range queue {
			children, err := q.ListChildFolders(ctx, ownerID, id)
			if err != nil {
				return nil, err
			}
			for i := range children {
				descendants = append(descendants, children[i])
				next = append(next, children[i].ID)
			}
		}
		queue = next
	}

	if descendants == nil {
		return []models.Folder{}, nil
	}
	return descendants, nil
}

// DeleteFolder removes a folder, every descendant folder and every file
// they contain, in one transaction. It returns the storage keys of the
// deleted files so the caller can remove the content blobs after commit.
// The root folder is never deletable.
func (s *Store) DeleteFolder(ctx context.Context, id string, ownerID int64) ([]string, error) {
	var storageKeys []string
	err := s.ExecTx(ctx, func(q *Queries) error {
		folder, txErr := q.GetFolderByID(ctx, id, ownerID)
		if txErr != nil {
			return txErr
		}
		if folder == nil {
			return ErrFolderNotFound
		}
		if folder.IsRoot {
			return ErrRootFolderProtected
		}

		descendants, txErr := q.ListDescendantFolders(ctx, ownerID, folder.ID)
		if txErr != nil {
			return txErr
		}

		folderIDs := make([]string, 0, len(descendants)+1)
		folderIDs = append(folderIDs, folder.ID)
		for i := range descendants {
			folderIDs = append(folderIDs, descendants[i].ID)
		}

		// Files first so no file row is ever left pointing at a deleted
		// folder.
		rows, txErr := q.db.Query(ctx,
			`DELETE FROM files WHERE owner_id = $1 AND folder_id = ANY($2) RETURNING storage_key`,
			ownerID, folderIDs,
		)
		if txErr != nil {
			return txErr
		}
		for rows.Next() {
			var key string
			if txErr = rows.Scan(&key); txErr != nil {
				rows.Close()
				return txErr
			}
			storageKeys = append(storageKeys, key)
		}
		rows.Close()
		if txErr = rows.Err(); txErr != nil {
			return txErr
		}

		// The whole subtree goes in one statement, so the parent_id
		// foreign key never sees a half-deleted tree.
		_, txErr = q.db.Exec(ctx, `DELETE FROM folders WHERE owner_id = $1 AND id = ANY($2)`, ownerID, folderIDs)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return storageKeys, nil
}

// GetBreadcrumbs walks from the target folder up to the root and returns
// the chain in root-to-target order. A nil folderID targets the root.
func (q *Queries) GetBreadcrumbs(ctx context.Context, folderID *string, ownerID int64) ([]models.Breadcrumb, error) {
	var current *models.Folder
	var err error

	if folderID == nil {
		current, err = q.GetRootFolder(ctx, ownerID)
	} else {
		current, err = q.GetFolderByID(ctx, *folderID, ownerID)
	}
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrFolderNotFound
	}

	var breadcrumbs []models.Breadcrumb
	for depth := 0; ; depth++ {
		if depth > maxTreeDepth {
			return nil, fmt.Errorf("folder ancestry of %s exceeds depth limit %d", current.ID, maxTreeDepth)
		}

		breadcrumbs = append([]models.Breadcrumb{{
			ID:   current.ID,
			Name: current.Name,
			Path: current.Path,
		}}, breadcrumbs...)

		if current.ParentID == nil {
			break
		}
		parent, err := q.GetFolderByID(ctx, *current.ParentID, ownerID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrParentMissing
		}
		current = parent
	}

	return breadcrumbs, nil
}

// GetFolderTree materializes a folder and its whole subtree as a nested
// structure, children ordered by name at every level. Levels beyond the
// depth bound are pruned rather than reported as an error.
func (q *Queries) GetFolderTree(ctx context.Context, folderID *string, ownerID int64) (*models.FolderTree, error) {
	var start *models.Folder
	var err error

	if folderID == nil {
		start, err = q.GetRootFolder(ctx, ownerID)
	} else {
		start, err = q.GetFolderByID(ctx, *folderID, ownerID)
	}
	if err != nil {
		return nil, err
	}
	if start == nil {
		return nil, ErrFolderNotFound
	}

	return q.buildFolderTree(ctx, start, 0)
}

func (q *Queries) buildFolderTree(ctx context.Context, folder *models.Folder, depth int) (*models.FolderTree, error) {
	tree := &models.FolderTree{
		ID:        folder.ID,
		Name:      folder.Name,
		Path:      folder.Path,
		IsRoot:    folder.IsRoot,
		Children:  []*models.FolderTree{},
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}

	if depth >= maxTreeDepth {
		return tree, nil
	}

	children, err := q.ListChildFolders(ctx, folder.OwnerID, folder.ID)
	if err != nil {
		return nil, err
	}
	for i := range children {
		subtree, err := q.buildFolderTree(ctx, &children[i], depth+1)
		if err != nil {
			return nil, err
		}
		if subtree != nil {
			tree.Children = append(tree.Children, subtree)
		}
	}

	return tree, nil
}
