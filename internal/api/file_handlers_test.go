package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"
)

// multipartUpload builds the request body the browser would send. An empty
// folderID omits the field entirely.
func multipartUpload(t *testing.T, folderID, filename, mimeType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if folderID != "" {
		require.NoError(t, writer.WriteField("folder_id", folderID))
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", mimeType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func uploadTestFile(t *testing.T, folderID, filename, mimeType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, folderID, filename, mimeType, content)

	req := httptest.NewRequest("POST", "/api/v1/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(context.WithValue(req.Context(), userContextKey, testUserClaims))

	rr := httptest.NewRecorder()
	http.HandlerFunc(testServer.UploadFileHandler).ServeHTTP(rr, req)
	return rr
}

func TestAPI_UploadFile_Success(t *testing.T) {
	folder := createAPIFolder(t, nil, "Upload target")

	rr := uploadTestFile(t, folder.ID, "notes.txt", "text/plain", []byte("hello"))

	require.Equal(t, http.StatusCreated, rr.Code)
	var file FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &file))
	require.Equal(t, "notes.txt", file.Name)
	require.Equal(t, folder.ID, file.FolderID)
	require.Equal(t, int64(5), file.SizeBytes)
	require.Equal(t, "5 Bytes", file.FormattedSize)
	require.False(t, file.IsImage)
}

func TestAPI_UploadFile_CollisionGetsSuffix(t *testing.T) {
	folder := createAPIFolder(t, nil, "Upload collisions")

	first := uploadTestFile(t, folder.ID, "dup.txt", "text/plain", []byte("one"))
	require.Equal(t, http.StatusCreated, first.Code)

	second := uploadTestFile(t, folder.ID, "dup.txt", "text/plain", []byte("two"))
	require.Equal(t, http.StatusCreated, second.Code)

	var file FileResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &file))
	require.Equal(t, "dup (1).txt", file.Name)
	require.Equal(t, "dup.txt", file.OriginalName)
}

func TestAPI_UploadFile_DefaultsToRootFolder(t *testing.T) {
	rr := uploadTestFile(t, "", "rootward.txt", "text/plain", []byte("r"))

	require.Equal(t, http.StatusCreated, rr.Code)
	var file FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &file))
	require.Equal(t, testRootFolder.ID, file.FolderID)

	got, err := testServer.store.GetFileByID(context.Background(), file.ID, testUserClaims.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, testRootFolder.ID, got.FolderID)
}

func TestAPI_UploadFile_ExceedsSizeCeiling(t *testing.T) {
	folder := createAPIFolder(t, nil, "Upload size ceiling")

	oversized := bytes.Repeat([]byte("a"), int(testServer.config.Upload.MaxSizeBytes)+1)
	rr := uploadTestFile(t, folder.ID, "huge.txt", "text/plain", oversized)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	// The rejection happens before any blob is written or record inserted.
	files, err := testServer.store.ListFilesByFolder(context.Background(), testUserClaims.UserID, folder.ID)
	require.NoError(t, err)
	require.Empty(t, files)
}

func TestAPI_UploadFile_DisallowedType(t *testing.T) {
	folder := createAPIFolder(t, nil, "Upload type check")

	rr := uploadTestFile(t, folder.ID, "run.exe", "application/x-msdownload", []byte{0x4d, 0x5a})

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_UploadFile_UnknownFolder(t *testing.T) {
	rr := uploadTestFile(t, "aaaaaaaaaaaaaaaaaaaaa", "lost.txt", "text/plain", []byte("x"))

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAPI_UploadFile_MissingFileField(t *testing.T) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("folder_id", testRootFolder.ID))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/v1/files/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req = req.WithContext(context.WithValue(req.Context(), userContextKey, testUserClaims))
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.UploadFileHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_DownloadFile(t *testing.T) {
	folder := createAPIFolder(t, nil, "Download folder")
	content := []byte("download me")

	rr := uploadTestFile(t, folder.ID, "down.txt", "text/plain", content)
	require.Equal(t, http.StatusCreated, rr.Code)
	var file FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &file))

	req := authedRequest(t, "GET", "/api/v1/files/"+file.ID+"/download", nil)
	req = withURLParam(req, "fileId", file.ID)
	dl := httptest.NewRecorder()

	http.HandlerFunc(testServer.DownloadFileHandler).ServeHTTP(dl, req)

	require.Equal(t, http.StatusOK, dl.Code)
	require.Equal(t, "text/plain", dl.Header().Get("Content-Type"))
	require.Contains(t, dl.Header().Get("Content-Disposition"), "down.txt")
	body, err := io.ReadAll(dl.Body)
	require.NoError(t, err)
	require.Equal(t, content, body)
}

func TestAPI_RenameFile_Conflict(t *testing.T) {
	folder := createAPIFolder(t, nil, "File rename folder")

	uploadTestFile(t, folder.ID, "taken.txt", "text/plain", []byte("a"))
	rr := uploadTestFile(t, folder.ID, "free.txt", "text/plain", []byte("b"))
	var file FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &file))

	body, _ := json.Marshal(RenameRequest{Name: "taken.txt"})
	req := authedRequest(t, "PUT", "/api/v1/files/"+file.ID+"/rename", body)
	req = withURLParam(req, "fileId", file.ID)
	res := httptest.NewRecorder()

	http.HandlerFunc(testServer.RenameFileHandler).ServeHTTP(res, req)

	require.Equal(t, http.StatusConflict, res.Code)
}

func TestAPI_MoveFile(t *testing.T) {
	src := createAPIFolder(t, nil, "File move src")
	dest := createAPIFolder(t, nil, "File move dest")

	rr := uploadTestFile(t, src.ID, "move.txt", "text/plain", []byte("m"))
	var file FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &file))

	body, _ := json.Marshal(MoveFileRequest{FolderID: dest.ID})
	req := authedRequest(t, "PUT", "/api/v1/files/"+file.ID+"/move", body)
	req = withURLParam(req, "fileId", file.ID)
	res := httptest.NewRecorder()

	http.HandlerFunc(testServer.MoveFileHandler).ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	var moved FileResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &moved))
	require.Equal(t, dest.ID, moved.FolderID)
}

func TestAPI_DeleteFile(t *testing.T) {
	folder := createAPIFolder(t, nil, "File delete folder")

	rr := uploadTestFile(t, folder.ID, "gone.txt", "text/plain", []byte("g"))
	var file FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &file))

	req := authedRequest(t, "DELETE", "/api/v1/files/"+file.ID, nil)
	req = withURLParam(req, "fileId", file.ID)
	res := httptest.NewRecorder()

	http.HandlerFunc(testServer.DeleteFileHandler).ServeHTTP(res, req)
	require.Equal(t, http.StatusNoContent, res.Code)

	getReq := authedRequest(t, "GET", "/api/v1/files/"+file.ID, nil)
	getReq = withURLParam(getReq, "fileId", file.ID)
	getRes := httptest.NewRecorder()
	http.HandlerFunc(testServer.GetFileHandler).ServeHTTP(getRes, getReq)
	require.Equal(t, http.StatusNotFound, getRes.Code)
}

func TestAPI_SearchFiles_RequiresQuery(t *testing.T) {
	req := authedRequest(t, "GET", "/api/v1/files/search", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.SearchFilesHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAPI_SearchFiles(t *testing.T) {
	folder := createAPIFolder(t, nil, "File search folder")
	uploadTestFile(t, folder.ID, "invoice-march.pdf", "application/pdf", []byte("%PDF"))

	req := authedRequest(t, "GET", "/api/v1/files/search?query=invoice-march", nil)
	rr := httptest.NewRecorder()

	http.HandlerFunc(testServer.SearchFilesHandler).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var files []FileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &files))
	require.Len(t, files, 1)
	require.Equal(t, "invoice-march.pdf", files[0].Name)
	require.True(t, files[0].IsPDF)
}
