package database

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"drivebox/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const fileColumns = "id, owner_id, folder_id, name, original_name, storage_key, size_bytes, mime_type, created_at, updated_at"

// searchResultLimit caps how many files a single search may return.
const searchResultLimit = 50

func scanFile(row pgx.Row) (*models.File, error) {
	var f models.File
	err := row.Scan(
		&f.ID,
		&f.OwnerID,
		&f.FolderID,
		&f.Name,
		&f.OriginalName,
		&f.StorageKey,
		&f.SizeBytes,
		&f.MimeType,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (q *Queries) GetFileByID(ctx context.Context, id string, ownerID int64) (*models.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE id = $1 AND owner_id = $2
	`
	file, err := scanFile(q.db.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return file, nil
}

func (q *Queries) ListFilesByFolder(ctx context.Context, ownerID int64, folderID string) ([]models.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		WHERE owner_id = $1 AND folder_id = $2
		ORDER BY name
	`
	rows, err := q.db.Query(ctx, query, ownerID, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if files == nil {
		return []models.File{}, nil
	}

	return files, nil
}

func (q *Queries) fileNameExists(ctx context.Context, ownerID int64, folderID, name, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM files
			WHERE owner_id = $1 AND folder_id = $2 AND name = $3 AND id <> $4
		)
	`
	var exists bool
	err := q.db.QueryRow(ctx, query, ownerID, folderID, name, excludeID).Scan(&exists)
	return exists, err
}

func (q *Queries) FileExists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM files WHERE id = $1)", id).Scan(&exists)
	return exists, err
}

// ResolveFileName returns the first free variant of desiredName inside a
// folder: the name itself, then "name (1).ext", "name (2).ext" and so on.
// An existing file is never overwritten.
func (q *Queries) ResolveFileName(ctx context.Context, ownerID int64, folderID, desiredName string) (string, error) {
	ext := path.Ext(desiredName)
	base := strings.TrimSuffix(desiredName, ext)

	name := desiredName
	for counter := 1; ; counter++ {
		taken, err := q.fileNameExists(ctx, ownerID, folderID, name, "")
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
		if counter > 1000 {
			return "", fmt.Errorf("no free name variant for %q in folder %s", desiredName, folderID)
		}
		name = fmt.Sprintf("%s (%d)%s", base, counter, ext)
	}
}

type CreateFileParams struct {
	ID           string
	OwnerID      int64
	FolderID     string
	Name         string
	OriginalName string
	StorageKey   string
	SizeBytes    int64
	MimeType     string
}

func (q *Queries) insertFile(ctx context.Context, arg CreateFileParams) (*models.File, error) {
	query := `
		INSERT INTO files (id, owner_id, folder_id, name, original_name, storage_key, size_bytes, mime_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING ` + fileColumns
	now := time.Now()

	file, err := scanFile(q.db.QueryRow(ctx, query,
		arg.ID,
		arg.OwnerID,
		arg.FolderID,
		arg.Name,
		arg.OriginalName,
		arg.StorageKey,
		arg.SizeBytes,
		arg.MimeType,
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

	return file, nil
}

// CreateFile records an uploaded file. The target folder must exist and
// belong to the owner; a name collision is resolved with a " (n)" suffix
// rather than rejected. The content blob must already sit at its final
// location under arg.StorageKey — the caller removes it if this fails.
func (s *Store) CreateFile(ctx context.Context, arg CreateFileParams) (*models.File, error) {
	var file *models.File
	err := s.ExecTx(ctx, func(q *Queries) error {
		folder, txErr := q.GetFolderByID(ctx, arg.FolderID, arg.OwnerID)
		if txErr != nil {
			return txErr
		}
		if folder == nil {
			return ErrFolderNotFound
		}

		arg.Name, txErr = q.ResolveFileName(ctx, arg.OwnerID, arg.FolderID, arg.Name)
		if txErr != nil {
			return txErr
		}

		file, txErr = q.insertFile(ctx, arg)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return file, nil
}

func (q *Queries) RenameFile(ctx context.Context, id string, ownerID int64, newName string) (*models.File, error) {
	file, err := q.GetFileByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}

	taken, err := q.fileNameExists(ctx, ownerID, file.FolderID, newName, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	query := `
		UPDATE files
		SET name = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4
		RETURNING ` + fileColumns
	file, err = scanFile(q.db.QueryRow(ctx, query, newName, time.Now(), id, ownerID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateName
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

// MoveFile relocates a file into another folder of the same owner. Unlike
// uploads, an explicit move does not auto-rename: a name already taken in
// the destination is a conflict.
func (q *Queries) MoveFile(ctx context.Context, id string, ownerID int64, destFolderID string) (*models.File, error) {
	file, err := q.GetFileByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}

	dest, err := q.GetFolderByID(ctx, destFolderID, ownerID)
	if err != nil {
		return nil, err
	}
	if dest == nil {
		return nil, ErrFolderNotFound
	}

	taken, err := q.fileNameExists(ctx, ownerID, dest.ID, file.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicateName
	}

	query := `
		UPDATE files
		SET folder_id = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4
		RETURNING ` + fileColumns
	file, err = scanFile(q.db.QueryRow(ctx, query, dest.ID, time.Now(), id, ownerID))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, ErrDuplicateName
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return file, nil
}

// DeleteFile removes the metadata record and returns the storage key so
// the caller can delete the content blob afterwards.
func (q *Queries) DeleteFile(ctx context.Context, id string, ownerID int64) (string, error) {
	var storageKey string
	err := q.db.QueryRow(ctx,
		`DELETE FROM files WHERE id = $1 AND owner_id = $2 RETURNING storage_key`,
		id, ownerID,
	).Scan(&storageKey)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	return storageKey, nil
}

// SearchFiles matches a case-insensitive substring against file names,
// optionally restricted to one folder, capped at searchResultLimit and
// ordered by name.
func (q *Queries) SearchFiles(ctx context.Context, ownerID int64, term string, folderID *string) ([]models.File, error) {
	pattern := "%" + escapeLikePattern(term) + "%"

	var rows pgx.Rows
	var err error
	if folderID == nil {
		query := `
			SELECT ` + fileColumns + `
			FROM files
			WHERE owner_id = $1 AND name ILIKE $2 ESCAPE '\'
			ORDER BY name
			LIMIT $3
		`
		rows, err = q.db.Query(ctx, query, ownerID, pattern, searchResultLimit)
	} else {
		query := `
			SELECT ` + fileColumns + `
			FROM files
			WHERE owner_id = $1 AND folder_id = $2 AND name ILIKE $3 ESCAPE '\'
			ORDER BY name
			LIMIT $4
		`
		rows, err = q.db.Query(ctx, query, ownerID, *folderID, pattern, searchResultLimit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, *file)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	if files == nil {
		return []models.File{}, nil
	}

	return files, nil
}

func escapeLikePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
