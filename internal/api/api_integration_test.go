package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"drivebox/internal/auth"

	"github.com/stretchr/testify/require"
)

// TestAPI_DriveLifecycle walks a fresh account through the whole drive
// surface: register, log in, build a folder tree, upload into it, reorganize
// and tear it down, checking the records and blobs at each step.
func TestAPI_DriveLifecycle(t *testing.T) {
	email := "lifecycle@test.local"
	tokens := registerAndLogin(t, email)

	claims, err := auth.VerifyJWT(tokens.AccessToken, testServer.config.JWT.Secret)
	require.NoError(t, err)

	authed := func(method, target string, body []byte) *http.Request {
		req := httptest.NewRequest(method, target, bytes.NewReader(body))
		return req.WithContext(context.WithValue(req.Context(), userContextKey, claims))
	}

	// Build /My Drive/Projects/Alpha.
	body, _ := json.Marshal(CreateFolderRequest{Name: "Projects"})
	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.CreateFolderHandler).ServeHTTP(rr, authed("POST", "/api/v1/folders", body))
	require.Equal(t, http.StatusCreated, rr.Code)
	var projects FolderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &projects))

	body, _ = json.Marshal(CreateFolderRequest{Name: "Alpha", ParentID: &projects.ID})
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.CreateFolderHandler).ServeHTTP(rr, authed("POST", "/api/v1/folders", body))
	require.Equal(t, http.StatusCreated, rr.Code)
	var alpha FolderResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &alpha))
	require.Equal(t, "/My Drive/Projects/Alpha", alpha.Path)

	// Upload the same name twice; the second gets the suffix.
	uploadBody, contentType := multipartUpload(t, alpha.ID, "spec-sheet.pdf", "application/pdf", []byte("%PDF-1"))
	req := authed("POST", "/api/v1/files/upload", uploadBody.Bytes())
	req.Header.Set("Content-Type", contentType)
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.UploadFileHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	var first FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))
	require.Equal(t, "spec-sheet.pdf", first.Name)

	uploadBody, contentType = multipartUpload(t, alpha.ID, "spec-sheet.pdf", "application/pdf", []byte("%PDF-2"))
	req = authed("POST", "/api/v1/files/upload", uploadBody.Bytes())
	req.Header.Set("Content-Type", contentType)
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.UploadFileHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)
	var second FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))
	require.Equal(t, "spec-sheet (1).pdf", second.Name)

	// Renaming the ancestor leaves the already-written subfolder path alone.
	body, _ = json.Marshal(RenameRequest{Name: "Projects 2026"})
	req = authed("PUT", "/api/v1/folders/"+projects.ID+"/rename", body)
	req = withURLParam(req, "folderId", projects.ID)
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.RenameFolderHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	stale, err := testServer.store.GetFolderByID(context.Background(), alpha.ID, claims.UserID)
	require.NoError(t, err)
	require.Equal(t, "/My Drive/Projects/Alpha", stale.Path)

	// Moving Projects into its own subtree is refused.
	body, _ = json.Marshal(MoveFolderRequest{ParentID: &alpha.ID})
	req = authed("PUT", "/api/v1/folders/"+projects.ID+"/move", body)
	req = withURLParam(req, "folderId", projects.ID)
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.MoveFolderHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// Deleting Projects cascades through Alpha and both uploads.
	req = authed("DELETE", "/api/v1/folders/"+projects.ID, nil)
	req = withURLParam(req, "folderId", projects.ID)
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.DeleteFolderHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)

	for _, id := range []string{projects.ID, alpha.ID} {
		folder, err := testServer.store.GetFolderByID(context.Background(), id, claims.UserID)
		require.NoError(t, err)
		require.Nil(t, folder)
	}
	for _, id := range []string{first.ID, second.ID} {
		file, err := testServer.store.GetFileByID(context.Background(), id, claims.UserID)
		require.NoError(t, err)
		require.Nil(t, file)
	}

	// Search confirms nothing of the subtree survived.
	req = authed("GET", "/api/v1/files/search?query=spec-sheet", nil)
	rr = httptest.NewRecorder()
	http.HandlerFunc(testServer.SearchFilesHandler).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var results []FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &results))
	require.Empty(t, results)
}
