package api

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"drivebox/internal/database"
)

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps store sentinels onto HTTP statuses. Anything
// unexpected is logged and hidden behind a generic message.
func respondStoreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, database.ErrFolderNotFound),
		errors.Is(err, database.ErrFileNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, database.ErrDuplicateName),
		errors.Is(err, database.ErrEmailTaken):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, database.ErrRootFolderProtected),
		errors.Is(err, database.ErrInvalidMoveTarget):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrParentMissing):
		log.Printf("ERROR: broken folder ancestry: %v", err)
		respondError(w, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("ERROR: %s: %v", fallback, err)
		respondError(w, http.StatusInternalServerError, fallback)
	}
}

// formatFileSize renders a byte count the way the web UI shows it:
// "1.5 MB", "0 Bytes".
func formatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizes) {
		i = len(sizes) - 1
	}
	value := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(value, 'f', -1, 64) + " " + sizes[i]
}

func isImage(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

func isPDF(mimeType string) bool {
	return mimeType == "application/pdf"
}
