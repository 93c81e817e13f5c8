package service

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paperdesk/paperdesk-be/types"
	"github.com/paperdesk/paperdesk-be/utils"
)

const (
	MaxUploadSize = 10 << 20 // 10 MiB per file
	MinUploadSize = 100      // anything smaller is junk
)

type UploadService struct {
	storage Storage
}

func NewUploadService(storage Storage) *UploadService {
	return &UploadService{
		storage: storage,
	}
}

// UploadBatch validates, classifies and stores each file in order. One file's
// failure never aborts the batch: every file ends up either in the stored
// list or in the error list, preserving the order of the multipart payload.
func (s *UploadService) UploadBatch(userID string, files []*multipart.FileHeader) ([]types.StoredFile, []types.UploadError) {
	var stored []types.StoredFile
	var errors []types.UploadError

	for _, header := range files {
		result, err := s.uploadOne(userID, header)
		if err != nil {
			errors = append(errors, types.UploadError{
				FileName: header.Filename,
				Error:    err.Error(),
			})
			continue
		}
		stored = append(stored, *result)
	}
	return stored, errors
}

func (s *UploadService) uploadOne(userID string, header *multipart.FileHeader) (*types.StoredFile, error) {
	if header.Size > MaxUploadSize {
		return nil, fmt.Errorf("file too large (%d bytes)", header.Size)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file")
	}

	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("file too large (%d bytes)", len(data))
	}
	if len(data) < MinUploadSize {
		return nil, fmt.Errorf("file is empty or corrupted")
	}

	fileType, ok := utils.DetectFileType(data, header.Filename, header.Header.Get("Content-Type"))
	if !ok {
		return nil, fmt.Errorf("unsupported file type")
	}

	key := buildStorageKey(userID, fileType.Ext)
	if err := s.storage.Put(key, data, fileType.MIME); err != nil {
		log.Printf("storage write failed for %s: %v", header.Filename, err)
		return nil, fmt.Errorf("failed to upload to storage")
	}

	return &types.StoredFile{
		FileName:     key,
		PublicURL:    s.storage.PublicURL(key),
		OriginalName: header.Filename,
	}, nil
}

// buildStorageKey scopes the key to the owning user and makes it unique with
// a timestamp plus a short random suffix, so re-uploading the same bytes
// never overwrites and keys cannot be guessed across users.
func buildStorageKey(userID, ext string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%d_%s%s", userID, time.Now().Unix(), suffix, ext)
}
