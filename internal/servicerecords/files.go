package servicerecords

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pocketbase/pocketbase/core"

	"projectorcare/internal/handlers"
)

const maxSignatureSize = 5 << 20

var (
	errInvalidFileName = errors.New("invalid stored file name")
	errFileTooLarge    = errors.New("stored file exceeds size limit")
)

// storedSignatures resolves the signature file names of record into inline data
// URIs read straight from the app storage, so protected file fields and
// unreachable base URLs do not matter. fallback is used when the read fails.
func storedSignatures(app core.App, record *core.Record, fallback FileURLFunc) FileURLFunc {
	return func(recordID, filename string) string {
		src, err := readStoredFile(app, record.BaseFilesPath(), filename)
		if err == nil {
			return src
		}
		handlers.LogWarn("Stored signature unreadable", "id", recordID, "file", filename, "error", err.Error())
		if fallback == nil {
			return ""
		}
		return fallback(recordID, filename)
	}
}

func readStoredFile(app core.App, dir, filename string) (string, error) {
	if filename == "" || filename != path.Base(filename) || strings.HasPrefix(filename, ".") {
		return "", errInvalidFileName
	}

	fsys, err := app.NewFilesystem()
	if err != nil {
		return "", fmt.Errorf("open storage: %w", err)
	}
	defer fsys.Close()

	r, err := fsys.GetFile(dir + "/" + filename)
	if err != nil {
		return "", fmt.Errorf("open stored file: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, maxSignatureSize+1))
	if err != nil {
		return "", fmt.Errorf("read stored file: %w", err)
	}
	if len(data) > maxSignatureSize {
		return "", errFileTooLarge
	}
	return dataURI(data), nil
}

func dataURI(data []byte) string {
	return "data:" + mimetype.Detect(data).String() + ";base64," + base64.StdEncoding.EncodeToString(data)
}
