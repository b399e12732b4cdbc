package api

import (
	"context"
	"time"

	"drivebox/internal/models"
)

// FolderResponse is the client projection of a folder. Children is the
// list of direct subfolder IDs, derived by query at response time.
type FolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id"`
	Path      string    `json:"path"`
	IsRoot    bool      `json:"is_root"`
	Children  []string  `json:"children"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileResponse carries derived display fields; none of them are stored.
type FileResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	FolderID      string    `json:"folder_id"`
	SizeBytes     int64     `json:"size_bytes"`
	FormattedSize string    `json:"formatted_size"`
	MimeType      string    `json:"mime_type"`
	OriginalName  string    `json:"original_name"`
	IsImage       bool      `json:"is_image"`
	IsPDF         bool      `json:"is_pdf"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (s *Server) folderResponse(ctx context.Context, folder *models.Folder) (*FolderResponse, error) {
	children, err := s.store.ListChildFolders(ctx, folder.OwnerID, folder.ID)
	if err != nil {
		return nil, err
	}

	childIDs := make([]string, 0, len(children))
	for i := range children {
		childIDs = append(childIDs, children[i].ID)
	}

	return &FolderResponse{
		ID:        folder.ID,
		Name:      folder.Name,
		ParentID:  folder.ParentID,
		Path:      folder.Path,
		IsRoot:    folder.IsRoot,
		Children:  childIDs,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}, nil
}

func (s *Server) folderResponses(ctx context.Context, folders []models.Folder) ([]FolderResponse, error) {
	out := make([]FolderResponse, 0, len(folders))
	for i := range folders {
		resp, err := s.folderResponse(ctx, &folders[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func fileResponse(file *models.File) FileResponse {
	return FileResponse{
		ID:            file.ID,
		Name:          file.Name,
		FolderID:      file.FolderID,
		SizeBytes:     file.SizeBytes,
		FormattedSize: formatFileSize(file.SizeBytes),
		MimeType:      file.MimeType,
		OriginalName:  file.OriginalName,
		IsImage:       isImage(file.MimeType),
		IsPDF:         isPDF(file.MimeType),
		CreatedAt:     file.CreatedAt,
		UpdatedAt:     file.UpdatedAt,
	}
}

func fileResponses(files []models.File) []FileResponse {
	out := make([]FileResponse, 0, len(files))
	for i := range files {
		out = append(out, fileResponse(&files[i]))
	}
	return out
}
