// Package validator implements the upload classifier for catalog documents.
// Classification is a pure function of the file name, the declared content
// type and the byte length; it runs before any object-store call so
// rejected uploads never reach external services.
package validator

import (
	"errors"
	"path/filepath"
	"strings"
)

// DeliveryMode describes how a stored object is exposed by the object store.
type DeliveryMode string

const (
	// ModeRawAttachment marks documents served as uninterpreted byte
	// streams with attachment-capable delivery (PDF).
	ModeRawAttachment DeliveryMode = "raw-attachment"
	// ModeImage marks image-processable assets. Images are classified for
	// completeness but are not part of the accepted catalog set.
	ModeImage DeliveryMode = "image"
	// ModeGenericRaw marks all other documents served as raw bytes.
	ModeGenericRaw DeliveryMode = "generic-raw"
)

// MaxFileSize is the upload ceiling in bytes. A file of exactly this size
// is accepted; one byte more is rejected.
const MaxFileSize = 10 * 1024 * 1024

// PDFContentType is the canonical media type a .pdf upload must declare.
const PDFContentType = "application/pdf"

// Classification is the accepted result of classifying an upload.
type Classification struct {
	Extension string
	Mode      DeliveryMode
}

// Rejection reasons.
var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrInvalidPDF      = errors.New("invalid PDF: content type must be application/pdf")
	ErrFileTooLarge    = errors.New("file exceeds the 10MB limit")
	ErrEmptyFile       = errors.New("file is empty")
)

// acceptedExtensions is the catalog whitelist.
var acceptedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".ppt":  true,
	".pptx": true,
	".txt":  true,
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// AcceptedExtensions returns the whitelist in a stable order, for the
// supported-types endpoint.
func AcceptedExtensions() []string {
	return []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt"}
}

// Classify validates an upload and decides its delivery mode.
func Classify(fileName, declaredType string, size int64) (*Classification, error) {
	if size <= 0 {
		return nil, ErrEmptyFile
	}
	if size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	ext := NormalizeExtension(fileName)
	if !acceptedExtensions[ext] {
		return nil, ErrUnsupportedType
	}

	if ext == ".pdf" && normalizeContentType(declaredType) != PDFContentType {
		return nil, ErrInvalidPDF
	}

	return &Classification{Extension: ext, Mode: DeliveryModeFor(ext)}, nil
}

// DeliveryModeFor maps an extension to its object-store delivery mode.
func DeliveryModeFor(ext string) DeliveryMode {
	switch {
	case ext == ".pdf":
		return ModeRawAttachment
	case imageExtensions[ext]:
		return ModeImage
	default:
		return ModeGenericRaw
	}
}

// NormalizeExtension extracts the lower-cased extension including the dot.
func NormalizeExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// normalizeContentType lower-cases a media type and strips parameters such
// as "; charset=utf-8".
func normalizeContentType(contentType string) string {
	normalized := strings.ToLower(strings.TrimSpace(contentType))
	if idx := strings.Index(normalized, ";"); idx > 0 {
		normalized = strings.TrimSpace(normalized[:idx])
	}
	return normalized
}
