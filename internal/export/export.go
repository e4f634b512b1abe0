// Package export persists a tree rendering as a plain-text or PDF file.
package export

import (
	"errors"
	"fmt"
	"strings"
)

// Format names an export target.
type Format string

const (
	// FormatText writes the rendering verbatim.
	FormatText Format = "text"
	// FormatPDF writes a paginated PDF document.
	FormatPDF Format = "pdf"

	textFormatAlias = "txt"
)

var (
	// ErrEmptyRendering is returned when there is nothing to export.
	ErrEmptyRendering = errors.New("there is no tree structure to save")
	// ErrUnsupportedFormat is returned for unknown export formats.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// FileFilter describes the destination files a format produces.
type FileFilter struct {
	Description string
	Pattern     string
	Extension   string
}

// ParseFormat accepts "text", "txt" and "pdf" in any letter case.
func ParseFormat(value string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(FormatText), textFormatAlias:
		return FormatText, nil
	case string(FormatPDF):
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
	}
}

// Filter returns the destination filter of the format.
func (format Format) Filter() FileFilter {
	if format == FormatPDF {
		return FileFilter{Description: "PDF files", Pattern: "*.pdf", Extension: ".pdf"}
	}
	return FileFilter{Description: "Text files", Pattern: "*.txt", Extension: ".txt"}
}

// IsEmpty reports whether rendering has no visible content.
func IsEmpty(rendering string) bool {
	return strings.TrimSpace(rendering) == ""
}

// Save exports rendering to destination in the requested format. An empty
// rendering is rejected before the filesystem is touched.
func Save(format Format, rendering string, destination string, layout Layout) error {
	if IsEmpty(rendering) {
		return ErrEmptyRendering
	}
	switch format {
	case FormatText:
		return Text(rendering, destination)
	case FormatPDF:
		return PDF(rendering, destination, layout)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
