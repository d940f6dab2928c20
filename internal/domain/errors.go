package domain

import (
	"errors"
	"fmt"
)

// Data access
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnavailable      = errors.New("service unavailable")
	ErrOffline          = fmt.Errorf("%w: network offline", ErrUnavailable)
	ErrNotInitialized   = errors.New("not initialized")
	ErrInvalidInput     = errors.New("invalid input")
)

// Uploads
var (
	ErrFileMissing    = errors.New("no file provided")
	ErrFileNotImage   = errors.New("file must be an image")
	ErrFileTooLarge   = errors.New("file too large")
	ErrStorageDenied  = errors.New("storage access denied")
	ErrBucketNotFound = errors.New("storage bucket not found")
)

const GenericErrorMessage = "Something went wrong. Please try again."

// UserMessage converts an error into the fixed string shown to visitors.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, ErrPaymentNotFound):
		return "No payment data found for this ID"
	case errors.Is(err, ErrPermissionDenied):
		return "Access denied. Please check the database permissions."
	case errors.Is(err, ErrOffline):
		return "You appear to be offline. Please check your internet connection."
	case errors.Is(err, ErrUnavailable):
		return "Service is temporarily unavailable. Please try again later."
	case errors.Is(err, ErrNotInitialized):
		return "Database is not initialized. Please check the configuration."
	case errors.Is(err, ErrInvalidInput):
		return "Invalid request"
	default:
		return GenericErrorMessage
	}
}
