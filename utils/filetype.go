package utils

import (
	"bytes"
	"path/filepath"
	"strings"
)

type FileKind string

const (
	FileKindPDF      FileKind = "pdf"
	FileKindImage    FileKind = "image"
	FileKindDocument FileKind = "document"
)

// FileType is the classified identity of an uploaded file: its logical kind
// plus the canonical MIME type and extension to persist it as.
type FileType struct {
	Kind FileKind
	MIME string
	Ext  string
}

var (
	sigPDF  = []byte("%PDF-")
	sigJPEG = []byte{0xFF, 0xD8, 0xFF}
	sigPNG  = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	sigRIFF = []byte("RIFF")
	sigWEBP = []byte("WEBP")
	sigOLE  = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	sigZIP  = []byte{0x50, 0x4B, 0x03, 0x04}
)

func matchAt(data, sig []byte, offset int) bool {
	if len(data) < offset+len(sig) {
		return false
	}
	return bytes.Equal(data[offset:offset+len(sig)], sig)
}

// DetectFileType classifies a file by its leading bytes, falling back to the
// declared filename/MIME type only where a format has no usable signature.
// The OLE and ZIP signatures are shared by other container formats, so the
// filename suffix gates which one we accept; that gate selects a format, it
// is not a trust boundary.
func DetectFileType(data []byte, filename, declaredMIME string) (FileType, bool) {
	lowerName := strings.ToLower(filename)
	lowerMIME := strings.ToLower(declaredMIME)

	switch {
	case matchAt(data, sigPDF, 0):
		return FileType{Kind: FileKindPDF, MIME: "application/pdf", Ext: ".pdf"}, true
	case matchAt(data, sigJPEG, 0):
		return FileType{Kind: FileKindImage, MIME: "image/jpeg", Ext: ".jpg"}, true
	case matchAt(data, sigPNG, 0):
		return FileType{Kind: FileKindImage, MIME: "image/png", Ext: ".png"}, true
	case matchAt(data, sigRIFF, 0) && matchAt(data, sigWEBP, 8):
		return FileType{Kind: FileKindImage, MIME: "image/webp", Ext: ".webp"}, true
	case matchAt(data, sigOLE, 0) && strings.HasSuffix(lowerName, ".doc"):
		return FileType{Kind: FileKindDocument, MIME: "application/msword", Ext: ".doc"}, true
	case matchAt(data, sigZIP, 0) && strings.HasSuffix(lowerName, ".docx"):
		return FileType{
			Kind: FileKindDocument,
			MIME: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			Ext:  ".docx",
		}, true
	}

	// HEIC/HEIF has no short stable magic; trust the declared type or suffix.
	if lowerMIME == "image/heic" || strings.HasSuffix(lowerName, ".heic") {
		return FileType{Kind: FileKindImage, MIME: "image/heic", Ext: ".heic"}, true
	}
	if lowerMIME == "image/heif" || strings.HasSuffix(lowerName, ".heif") {
		return FileType{Kind: FileKindImage, MIME: "image/heif", Ext: ".heif"}, true
	}

	// Any other declared image type passes through with its own extension.
	if strings.HasPrefix(lowerMIME, "image/") {
		ext := strings.ToLower(filepath.Ext(lowerName))
		if ext == "" {
			ext = ".jpg"
		}
		return FileType{Kind: FileKindImage, MIME: lowerMIME, Ext: ext}, true
	}

	return FileType{}, false
}
