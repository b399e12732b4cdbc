package api

import (
	"encoding/json"
	"log"
	"net/http"
	"regexp"

	"drivebox/internal/database"
	"drivebox/internal/models"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// namePattern rejects names containing a slash, which would corrupt the
// materialized path.
var namePattern = regexp.MustCompile(`^[^/]+$`)

var nameRules = []validation.Rule{
	validation.Required,
	validation.Length(1, 255),
	validation.Match(namePattern).Error("must not contain '/'"),
}

type CreateFolderRequest struct {
	Name     string  `json:"name" example:"Documents"`
	ParentID *string `json:"parent_id" example:"V1StGXR8_Z5jdHi6B-myT"`
}

func (r CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.ParentID, validation.Length(21, 21)),
	)
}

type RenameRequest struct {
	Name string `json:"name" example:"Renamed folder"`
}

func (r RenameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules...),
	)
}

type MoveFolderRequest struct {
	ParentID *string `json:"parent_id" example:"V1StGXR8_Z5jdHi6B-myT"`
}

func (r MoveFolderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ParentID, validation.NotNil, validation.Length(21, 21)),
	)
}

// FolderContentsResponse is the listing of one folder: its subfolders and
// files plus the folder itself.
type FolderContentsResponse struct {
	CurrentFolder *FolderResponse  `json:"current_folder"`
	Folders       []FolderResponse `json:"folders"`
	Files         []FileResponse   `json:"files"`
}

// optionalFolderID reads the folder_id query parameter, nil when absent.
func optionalFolderID(r *http.Request) (*string, bool) {
	raw := r.URL.Query().Get("folder_id")
	if raw == "" {
		return nil, true
	}
	if len(raw) != 21 {
		return nil, false
	}
	return &raw, true
}

// @Summary      Create a folder
// @Description  Creates a subfolder under the given parent. A null parent_id targets the user's root folder. Sibling folder names must be unique.
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        createFolderRequest  body      CreateFolderRequest  true  "Folder to create"
// @Success      201                  {object}  FolderResponse
// @Failure      400                  {object}  map[string]string
// @Failure      404                  {object}  map[string]string
// @Failure      409                  {object}  map[string]string
// @Router       /folders [post]
func (s *Server) CreateFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req CreateFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folderID, err := s.generateUniqueID(r.Context(), s.store.FolderExists)
	if err != nil {
		respondStoreError(w, err, "Failed to create folder")
		return
	}

	folder, err := s.store.CreateFolder(r.Context(), database.CreateFolderParams{
		ID:       folderID,
		OwnerID:  claims.UserID,
		ParentID: req.ParentID,
		Name:     req.Name,
	})
	if err != nil {
		respondStoreError(w, err, "Failed to create folder")
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFolderCreated, folder); err != nil {
		log.Printf("WARN: failed to journal folder.created: %v", err)
	}

	resp, err := s.folderResponse(r.Context(), folder)
	if err != nil {
		respondStoreError(w, err, "Failed to create folder")
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// @Summary      Root folder contents
// @Description  Lists the subfolders and files of the user's root folder.
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  FolderContentsResponse
// @Failure      500  {object}  map[string]string
// @Router       /folders [get]
func (s *Server) GetRootContentsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	root, err := s.store.GetRootFolder(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to list folder contents")
		return
	}
	if root == nil {
		respondStoreError(w, database.ErrParentMissing, "Failed to list folder contents")
		return
	}

	s.respondFolderContents(w, r, root)
}

// @Summary      Folder contents
// @Description  Lists the subfolders and files of one folder. Folders owned by other users are reported as not found.
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      string  true  "Folder ID"
// @Success      200       {object}  FolderContentsResponse
// @Failure      404       {object}  map[string]string
// @Router       /folders/{folderId} [get]
func (s *Server) GetFolderContentsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderId")

	folder, err := s.store.GetFolderByID(r.Context(), folderID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to list folder contents")
		return
	}
	if folder == nil {
		respondError(w, http.StatusNotFound, database.ErrFolderNotFound.Error())
		return
	}

	s.respondFolderContents(w, r, folder)
}

func (s *Server) respondFolderContents(w http.ResponseWriter, r *http.Request, folder *models.Folder) {
	children, err := s.store.ListChildFolders(r.Context(), folder.OwnerID, folder.ID)
	if err != nil {
		respondStoreError(w, err, "Failed to list folder contents")
		return
	}
	files, err := s.store.ListFilesByFolder(r.Context(), folder.OwnerID, folder.ID)
	if err != nil {
		respondStoreError(w, err, "Failed to list folder contents")
		return
	}

	current, err := s.folderResponse(r.Context(), folder)
	if err != nil {
		respondStoreError(w, err, "Failed to list folder contents")
		return
	}
	folderResps, err := s.folderResponses(r.Context(), children)
	if err != nil {
		respondStoreError(w, err, "Failed to list folder contents")
		return
	}

	respondJSON(w, http.StatusOK, FolderContentsResponse{
		CurrentFolder: current,
		Folders:       folderResps,
		Files:         fileResponses(files),
	})
}

// @Summary      Files of a folder
// @Description  Lists only the files of one folder, ordered by name.
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folderId  path      string  true  "Folder ID"
// @Success      200       {array}   FileResponse
// @Failure      404       {object}  map[string]string
// @Router       /folders/{folderId}/files [get]
func (s *Server) ListFolderFilesHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderId")

	folder, err := s.store.GetFolderByID(r.Context(), folderID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to list files")
		return
	}
	if folder == nil {
		respondError(w, http.StatusNotFound, database.ErrFolderNotFound.Error())
		return
	}

	files, err := s.store.ListFilesByFolder(r.Context(), claims.UserID, folder.ID)
	if err != nil {
		respondStoreError(w, err, "Failed to list files")
		return
	}
	respondJSON(w, http.StatusOK, fileResponses(files))
}

// @Summary      Rename a folder
// @Description  Changes the folder's name and recomputes its path. The new name must be free among its siblings.
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        folderId       path      string         true  "Folder ID"
// @Param        renameRequest  body      RenameRequest  true  "New name"
// @Success      200            {object}  FolderResponse
// @Failure      400            {object}  map[string]string
// @Failure      404            {object}  map[string]string
// @Failure      409            {object}  map[string]string
// @Router       /folders/{folderId}/rename [put]
func (s *Server) RenameFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderId")

	var req RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := s.store.RenameFolder(r.Context(), folderID, claims.UserID, req.Name)
	if err != nil {
		respondStoreError(w, err, "Failed to rename folder")
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFolderRenamed, folder); err != nil {
		log.Printf("WARN: failed to journal folder.renamed: %v", err)
	}

	resp, err := s.folderResponse(r.Context(), folder)
	if err != nil {
		respondStoreError(w, err, "Failed to rename folder")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// @Summary      Move a folder
// @Description  Reparents a folder under another folder of the same user. Moving a folder into itself or its own subtree is rejected, as is moving the root folder.
// @Tags         folders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        folderId           path      string             true  "Folder ID"
// @Param        moveFolderRequest  body      MoveFolderRequest  true  "Destination parent"
// @Success      200                {object}  FolderResponse
// @Failure      400                {object}  map[string]string
// @Failure      404                {object}  map[string]string
// @Failure      409                {object}  map[string]string
// @Router       /folders/{folderId}/move [put]
func (s *Server) MoveFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderId")

	var req MoveFolderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	folder, err := s.store.MoveFolder(r.Context(), folderID, claims.UserID, *req.ParentID)
	if err != nil {
		respondStoreError(w, err, "Failed to move folder")
		return
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFolderMoved, folder); err != nil {
		log.Printf("WARN: failed to journal folder.moved: %v", err)
	}

	resp, err := s.folderResponse(r.Context(), folder)
	if err != nil {
		respondStoreError(w, err, "Failed to move folder")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// @Summary      Delete a folder
// @Description  Deletes a folder together with every descendant folder and file. The root folder cannot be deleted. Content blobs are removed after the records are gone.
// @Tags         folders
// @Security     BearerAuth
// @Param        folderId  path  string  true  "Folder ID"
// @Success      204       "No Content"
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /folders/{folderId} [delete]
func (s *Server) DeleteFolderHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	folderID := chi.URLParam(r, "folderId")

	storageKeys, err := s.store.DeleteFolder(r.Context(), folderID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to delete folder")
		return
	}

	// Records are gone; blob removal is best effort. An orphaned blob
	// wastes disk, a dangling record would break downloads.
	for _, key := range storageKeys {
		if err := s.storage.Delete(key); err != nil {
			log.Printf("WARN: failed to delete blob %s: %v", key, err)
		}
	}

	if err := s.store.LogEvent(r.Context(), claims.UserID, database.EventFolderDeleted, map[string]string{"id": folderID}); err != nil {
		log.Printf("WARN: failed to journal folder.deleted: %v", err)
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary      Folder breadcrumbs
// @Description  Returns the ancestor chain of a folder in root-to-target order. Without folder_id the chain is just the root folder.
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folder_id  query     string  false  "Folder ID (defaults to the root folder)"
// @Success      200        {array}   models.Breadcrumb
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /folders/breadcrumbs [get]
func (s *Server) GetBreadcrumbsHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	folderID, ok := optionalFolderID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid folder_id format")
		return
	}

	breadcrumbs, err := s.store.GetBreadcrumbs(r.Context(), folderID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to build breadcrumbs")
		return
	}
	respondJSON(w, http.StatusOK, breadcrumbs)
}

// @Summary      Folder tree
// @Description  Returns the folder hierarchy below a folder as a nested structure, children ordered by name. Without folder_id the tree starts at the root folder.
// @Tags         folders
// @Produce      json
// @Security     BearerAuth
// @Param        folder_id  query     string  false  "Folder ID (defaults to the root folder)"
// @Success      200        {array}   models.FolderTree
// @Failure      400        {object}  map[string]string
// @Failure      404        {object}  map[string]string
// @Router       /folders/tree [get]
func (s *Server) GetFolderTreeHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	folderID, ok := optionalFolderID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "Invalid folder_id format")
		return
	}

	tree, err := s.store.GetFolderTree(r.Context(), folderID, claims.UserID)
	if err != nil {
		respondStoreError(w, err, "Failed to build folder tree")
		return
	}
	respondJSON(w, http.StatusOK, []*models.FolderTree{tree})
}
