package upload

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/infrastructure/storage"
)

const (
	keyPrefix = "uploads/"
	sniffLen  = 3072
)

// Tracker receives best-effort upload analytics.
type Tracker interface {
	ImageUpload(success bool, fileSize int64, errorMessage string)
}

// Image is an uploaded file as received from the client. Size is the number
// of bytes actually received.
type Image struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Result struct {
	URL      string `json:"imageUrl"`
	Filename string `json:"filename"`
}

type UploadUseCase struct {
	storage  storage.Storage
	maxBytes int64
	tracker  Tracker
	now      func() time.Time
}

func NewUploadUseCase(store storage.Storage, maxBytes int64, tracker Tracker) *UploadUseCase {
	return &UploadUseCase{
		storage:  store,
		maxBytes: maxBytes,
		tracker:  tracker,
		now:      time.Now,
	}
}

// MaxBytes is the largest accepted upload.
func (uc *UploadUseCase) MaxBytes() int64 {
	return uc.maxBytes
}

// Upload validates img and stores it under a fresh name. Invalid images never
// reach storage.
func (uc *UploadUseCase) Upload(ctx context.Context, img *Image) (*Result, error) {
	if img == nil || img.Body == nil || img.Filename == "" {
		return nil, domain.ErrFileMissing
	}

	contentType, body, err := detectContentType(img)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, domain.ErrFileNotImage
	}
	if img.Size > uc.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	filename := ImageFilename(img.Filename, uc.now())
	key := keyPrefix + filename

	if err := uc.storage.Save(ctx, key, body, contentType); err != nil {
		uc.tracker.ImageUpload(false, img.Size, err.Error())
		return nil, storageError(err)
	}

	url, err := uc.storage.URL(ctx, key)
	if err != nil {
		uc.tracker.ImageUpload(false, img.Size, err.Error())
		return nil, fmt.Errorf("resolve upload url: %w", err)
	}

	uc.tracker.ImageUpload(true, img.Size, "")
	return &Result{URL: url, Filename: filename}, nil
}

// ImageFilename derives the stored name from the original name and the
// upload time: md5 hex digest plus the lower-cased original extension.
func ImageFilename(original string, at time.Time) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s%d", original, at.UnixNano())))
	return hex.EncodeToString(sum[:]) + strings.ToLower(filepath.Ext(original))
}

// detectContentType trusts a specific client-declared type and sniffs the
// leading bytes otherwise. The returned reader replays the sniffed bytes.
func detectContentType(img *Image) (string, io.Reader, error) {
	declared := strings.TrimSpace(strings.ToLower(img.ContentType))
	if declared != "" && declared != "application/octet-stream" {
		return declared, img.Body, nil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(img.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", nil, err
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	return mtype.String(), io.MultiReader(bytes.NewReader(head), img.Body), nil
}

func storageError(err error) error {
	if errors.Is(err, domain.ErrStorageDenied) || errors.Is(err, domain.ErrBucketNotFound) {
		return err
	}
	return fmt.Errorf("store upload: %w", err)
}
