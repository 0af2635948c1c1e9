package storage

import (
	"mime"
	"regexp"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// KeyPrefix is the folder every uploaded object lives under
const KeyPrefix = "uploads/"

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9.-]`)

// SanitizeFileName replaces every character outside [a-zA-Z0-9.-] with an underscore
func SanitizeFileName(name string) string {
	return unsafeNameChars.ReplaceAllString(name, "_")
}

// GenerateKey returns a new object key "uploads/<uuid>-<sanitized name>"
func GenerateKey(fileName string) string {
	return KeyPrefix + uuid.New().String() + "-" + SanitizeFileName(fileName)
}

// allowedContentTypes lists the MIME types students may upload
var allowedContentTypes = []string{
	"application/pdf",
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"text/plain",
	"text/csv",
}

// IsAllowedContentType reports whether contentType (parameters such as charset ignored) may be uploaded
func IsAllowedContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return slices.Contains(allowedContentTypes, strings.ToLower(mediaType))
}

// sizeWriter tracks the total number of bytes written
type sizeWriter struct {
	size int64
}

// Write implements io.Writer interface
func (sw *sizeWriter) Write(p []byte) (int, error) {
	n := len(p)
	sw.size += int64(n)
	return n, nil
}

// Size returns the total number of bytes written
func (sw *sizeWriter) Size() int64 {
	return sw.size
}
