package models

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/storefront/internal/filex"
)

// UploadFile is a file selected for upload. Open is called once per
// transfer attempt. Size is negative when the length is not known up front.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// PendingUpload pairs a selected file with the slot it is meant for.
type PendingUpload struct {
	File   UploadFile
	SlotID string
}

// FileFromPath builds an UploadFile for a local file.
func FileFromPath(path string) (UploadFile, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return UploadFile{}, err
	}
	if fi.IsDir() {
		return UploadFile{}, fmt.Errorf("%s is a directory", path)
	}

	ct, err := filex.DetectContentType(path)
	if err != nil {
		return UploadFile{}, err
	}

	return UploadFile{
		Name:        filepath.Base(path),
		ContentType: ct,
		Size:        fi.Size(),
		Open:        func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// FileFromBytes builds an in-memory UploadFile.
func FileFromBytes(name, contentType string, data []byte) UploadFile {
	return UploadFile{
		Name:        name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}
