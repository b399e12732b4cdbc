package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"drivebox/internal/database"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type MoveFileRequest struct {
	FolderID string `json:"folder_id" example:"V1StGXR8_Z5jdHi6B-myT"`
}

func (r MoveFileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FolderID, validation.Required, validation.Length(21, 21)),
	)
}

// @Summary      Upload a file
// @Description  Stores an uploaded file inside a folder, defaulting to the root folder when no folder_id is given. A name already taken in the folder gets a " (n)" suffix instead of overwriting. The size limit and MIME allow-list come from server configuration.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file       formData  file    true   "File content"
// @Param        folder_id  formData  string  false  "Destination folder ID (defaults to the root folder)"
// @Success      201        {object}  FileResponse
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /files/upload [post]
func (s *Server) UploadFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	// Multipart framing adds overhead on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Upload.MaxSizeBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form or file too large")
		return
	}

	folderID := r.FormValue("folder_id")
	if folderID != "" && len(folderID) != 21 {
		respondError(w, http.StatusBadRequest, "Invalid folder_id format")
		return
	}
	if folderID == "" {
		root, err := s.store.GetRootFolder(r.Context(), claims.UserID)
		if err != nil {
			respondStoreError(w, err, "Failed to upload file")
			return
		}
		if root == nil {
			respondStoreError(w, database.ErrParentMissing, "Failed to upload file")
			return
		}
		folderID = root.ID
	}

	formFile, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Missing 'file' form field")
		return
	}
	defer formFile.Close()

	if header.Filename == "" || !namePattern.MatchString(header.Filename) {
		respondError(w, http.StatusBadRequest, "Invalid file name")
		return
	}
	if header.Size > s.config.Upload.MaxSizeBytes {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("File exceeds the %d byte limit", s.config.Upload.MaxSizeBytes))
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	if !s.config.Upload.TypeAllowed(mimeType) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("File type %q is not allowed", mimeType))
		return
	}

	fileID, err := s.generateUniqueID(r.Context(), s.store.FileExists)
	if err != nil {
		respondStoreError(w, err, "Failed to upload file")
		return
	}

	// The blob goes to disk before the record, so a record never points at
	// a missing blob. The reverse, a blob without a record, is cleaned up
	// below on failure.
	storageKey := uuid.NewString()
	if err := s.storage.Save(storageKey, formFile); err != nil {
		log.Printf("ERROR: failed to save blob %s: %v", storageKey, err)
		respondError(w, http.StatusInternalServerError, "Failed to store file content")
		return
	}

	file, err := s.store.CreateFile(r.Context(), database.CreateFileParams{
		ID:           fileID,
		OwnerID:      claims.UserID,
		FolderID:     folderID,
		Name:         header.Filename,
		OriginalName: header.Filename,
		StorageKey:   storageKey,
		SizeBytes:    header.Size,
		MimeType:     mimeType,
	})
	if err != nil {
		if delErr := s.storage.Delete(storageKey); delErr != nil {
			log.Printf("WARN: failed to clean up blob %s: %v", storageKey, delErr)
		}
		respondStoreError(w, err, "Failed to upload file")
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFileUploaded, file); err != nil {
		log.Printf("WARN: failed to journal file.uploaded: %v", err)
	}

	respondJSON(w, http.StatusCreated, fileResponse(file))
}

// @Summary      File metadata
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        fileId  path      string  true  "File ID"
// @Success      200     {object}  FileResponse
// @Failure      404     {object}  map[string]string
// @Router       /files/{fileId} [get]
func (s *Server) GetFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	file, err := s.store.GetFileByID(r.Context(), fileID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to get file")
		return
	}
	if file == nil {
		respondError(w, http.StatusNotFound, database.ErrFileNotFound.Error())
		return
	}
	respondJSON(w, http.StatusOK, fileResponse(file))
}

// @Summary      Download a file
// @Description  Streams the file content with its stored MIME type and an attachment disposition.
// @Tags         files
// @Produce      octet-stream
// @Security     BearerAuth
// @Param        fileId  path  string  true  "File ID"
// @Success      200     {file}    file
// @Failure      404     {object}  map[string]string
// @Router       /files/{fileId}/download [get]
func (s *Server) DownloadFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	file, err := s.store.GetFileByID(r.Context(), fileID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to download file")
		return
	}
	if file == nil {
		respondError(w, http.StatusNotFound, database.ErrFileNotFound.Error())
		return
	}

	blob, err := s.storage.Get(file.StorageKey)
	if err != nil {
		log.Printf("ERROR: blob missing for file %s (key %s): %v", file.ID, file.StorageKey, err)
		respondError(w, http.StatusInternalServerError, "File content unavailable")
		return
	}
	defer blob.Close()

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", file.SizeBytes))
	if _, err := io.Copy(w, blob); err != nil {
		log.Printf("WARN: download of file %s aborted: %v", file.ID, err)
	}
}

// @Summary      Rename a file
// @Description  Changes the file's display name. The new name must be free within its folder; renames never auto-suffix.
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        fileId         path      string         true  "File ID"
// @Param        renameRequest  body      RenameRequest  true  "New name"
// @Success      200            {object}  FileResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Failure      409            {object}  map[string]string
// @Router       /files/{fileId}/rename [put]
func (s *Server) RenameFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := s.store.RenameFile(r.Context(), fileID, claims.UserID, req.Name)
	if err != nil {
		respondStoreError(w, err, "Failed to rename file")
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFileRenamed, file); err != nil {
		log.Printf("WARN: failed to journal file.renamed: %v", err)
	}

	respondJSON(w, http.StatusOK, fileResponse(file))
}

// @Summary      Move a file
// @Description  Relocates a file into another folder of the same user. A name conflict in the destination is rejected rather than auto-suffixed.
// @Tags         files
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        fileId           path      string           true  "File ID"
// @Param        moveFileRequest  body      MoveFileRequest  true  "Destination folder"
// @Success      200              {object}  FileResponse
// @Failure      400              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /files/{fileId}/move [put]
func (s *Server) MoveFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	var req MoveFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, err := s.store.MoveFile(r.Context(), fileID, claims.UserID, req.FolderID)
	if err != nil {
		respondStoreError(w, err, "Failed to move file")
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFileMoved, file); err != nil {
		log.Printf("WARN: failed to journal file.moved: %v", err)
	}

	respondJSON(w, http.StatusOK, fileResponse(file))
}

// @Summary      Delete a file
// @Description  Removes the file record, then its content blob. A blob that is already gone does not fail the delete.
// @Tags         files
// @Security     BearerAuth
// @Param        fileId  path  string  true  "File ID"
// @Success      204     "No Content"
// @Failure      404     {object}  map[string]string
// @Router       /files/{fileId} [delete]
func (s *Server) DeleteFileHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	fileID := chi.URLParam(r, "fileId")

	storageKey, err := s.store.DeleteFile(r.Context(), fileID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to delete file")
		return
	}

	if err := s.storage.Delete(storageKey); err != nil {
		log.Printf("WARN: failed to delete blob %s: %v", storageKey, err)
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFileDeleted, map[string]string{"id": fileID}); err != nil {
		log.Printf("WARN: failed to journal file.deleted: %v", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Search files
// @Description  Case-insensitive substring search over the user's file names, optionally restricted to one folder. Results are capped.
// @Tags         files
// @Produce      json
// @Security     BearerAuth
// @Param        query      query     string  true   "Search term"
// @Param        folder_id  query     string  false  "Restrict to this folder"
// @Success      200        {array}   FileResponse
// @Failure      400        {object}  map[string]string
// @Router       /files/search [get]
func (s *Server) SearchFilesHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	term := r.URL.Query().Get("query")
	if term == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'query' is required")
		return
	}

	folderID, ok := optionalFolderID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid folder_id format")
		return
	}

	files, err := s.store.SearchFiles(r.Context(), claims.UserID, term, folderID)
	if err != nil {
		respondStoreError(w, err, "Failed to search files")
		return
	}
	respondJSON(w, http.StatusOK, fileResponses(files))
}
