package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/glosscard/glosscard-backend/internal/domain"
	"github.com/glosscard/glosscard-backend/internal/usecase/upload"
	"github.com/gin-gonic/gin"
)

// multipartOverhead allows for form fields and boundaries around the file.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadUseCase *upload.UploadUseCase
}

func NewUploadHandler(uploadUseCase *upload.UploadUseCase) *UploadHandler {
	return &UploadHandler{uploadUseCase: uploadUseCase}
}

// UploadResponse represents a successful image upload
type UploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	Filename string `json:"filename"`
}

// Upload handles POST /api/upload
// @Summary Upload an image
// @Description Store an image and return its public URL
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	maxBytes := h.uploadUseCase.MaxBytes()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

	img, closeFile, err := formImage(c, "file")
	if err != nil {
		status, msg := uploadError(err, maxBytes)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}
	defer closeFile()

	res, err := h.uploadUseCase.Upload(c.Request.Context(), img)
	if err != nil {
		_ = c.Error(err)
		status, msg := uploadError(err, maxBytes)
		c.JSON(status, ErrorResponse{Error: msg})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:  true,
		ImageURL: res.URL,
		Filename: res.Filename,
	})
}

// formImage opens the multipart file in field. A missing or empty file is
// domain.ErrFileMissing; a body over the limit is domain.ErrFileTooLarge.
func formImage(c *gin.Context, field string) (*upload.Image, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, nil, domain.ErrFileTooLarge
		}
		return nil, nil, domain.ErrFileMissing
	}
	if header.Filename == "" || header.Size == 0 {
		return nil, nil, domain.ErrFileMissing
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("open upload: %w", err)
	}

	return &upload.Image{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, func() { file.Close() }, nil
}

// uploadError maps upload failures to the status and message shown to the
// uploader.
func uploadError(err error, maxBytes int64) (int, string) {
	switch {
	case errors.Is(err, domain.ErrFileMissing):
		return http.StatusBadRequest, "No file provided"
	case errors.Is(err, domain.ErrFileNotImage):
		return http.StatusBadRequest, "File must be an image"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusBadRequest, fmt.Sprintf("File size must be less than %dMB", maxBytes>>20)
	case errors.Is(err, domain.ErrStorageDenied):
		return http.StatusForbidden, "Storage access denied. Please check storage permissions."
	case errors.Is(err, domain.ErrBucketNotFound):
		return http.StatusNotFound, "Storage bucket not found. Please check storage configuration."
	default:
		return http.StatusInternalServerError, "Failed to upload image. Please try again."
	}
}
