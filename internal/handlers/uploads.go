package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

var errNoFile = errors.New("no file provided")

// saveUpload spools a multipart file field to a temporary file so the media
// pipeline can probe and upload it. The caller owns the returned path until
// it hands the file to the ingestor, which removes it.
func saveUpload(r *http.Request, field, dir string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", errNoFile
		}
		return "", fmt.Errorf("read form file %q: %w", field, err)
	}
	defer file.Close()

	tmp, err := os.CreateTemp(dir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("spool upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("close temp file: %w", err)
	}

	return tmp.Name(), nil
}

// discardUpload removes a spooled file that will never reach the ingestor.
func discardUpload(path string) {
	if path != "" {
		os.Remove(path)
	}
}
