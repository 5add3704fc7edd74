package handlers

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/jobstack-io/apiserver/internal/storage"
)

const (
	maxLogoMemory = 8 << 20
	maxLogoBytes  = 2 << 20
	formFieldLogo = "logo"
)

// LogoHandler accepts company logo uploads and returns the public URL
// to embed in a posting's logoUrl field.
type LogoHandler struct {
	logos *storage.LogoStore
}

// LogoRouter registers the upload route. With no store configured the
// route answers 503 so clients get a clear signal instead of a 404.
func LogoRouter(r chi.Router, logos *storage.LogoStore, authMiddleware func(http.Handler) http.Handler) {
	handler := &LogoHandler{logos: logos}
	r.With(authMiddleware).Post("/logo", handler.Upload)
}

// Upload stores a logo image from a multipart form.
func (h *LogoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.logos == nil {
		writeError(w, http.StatusServiceUnavailable, "logo storage is not configured")
		return
	}

	if err := r.ParseMultipartForm(maxLogoMemory); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	filename, data, contentType, err := parseLogoFile(r.MultipartForm)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ext := strings.ToLower(filepath.Ext(filename))
	logoURL, err := h.logos.Upload(r.Context(), ext, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to store logo")
		return
	}

	writeJSON(w, http.StatusOK, LogoResponse{LogoURL: logoURL})
}

// LogoResponse carries the public URL of an uploaded logo.
type LogoResponse struct {
	LogoURL string `json:"logoUrl"`
}

func parseLogoFile(form *multipart.Form) (filename string, data []byte, contentType string, err error) {
	if form == nil {
		return "", nil, "", errors.New("missing form data")
	}

	files := form.File[formFieldLogo]
	if len(files) == 0 {
		return "", nil, "", errors.New("logo file is required")
	}
	if len(files) > 1 {
		return "", nil, "", errors.New("only one logo file is allowed")
	}

	fileHeader := files[0]
	file, err := fileHeader.Open()
	if err != nil {
		return "", nil, "", errors.New("failed to read logo file")
	}

	data, err = readFileLimited(file, maxLogoBytes)
	_ = file.Close()
	if err != nil {
		return "", nil, "", err
	}

	return fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"), nil
}

func readFileLimited(reader io.Reader, limit int64) ([]byte, error) {
	limited := io.LimitReader(reader, limit+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.New("failed to read upload")
	}
	if int64(len(data)) > limit {
		return nil, errors.New("uploaded file too large")
	}
	return data, nil
}
