package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	builtinFontFamily  = "Courier"
	embeddedFontFamily = "TreeMono"
	pdfOrientation     = "P"
	pdfUnit            = "pt"
	cp1252Descriptor   = ""
	temporaryPattern   = ".%s-*.tmp"
	exportedFileMode   = 0o644

	errorLoadFontFormat       = "load font %s: %w"
	errorLayoutPDFFormat      = "lay out pdf: %w"
	errorEncodePDFFormat      = "encode pdf: %w"
	errorTemporaryFileFormat  = "create temporary file for %s: %w"
	errorReplaceFileFormat    = "move pdf into place at %s: %w"
	errorPermissionFileFormat = "set permissions on %s: %w"
)

// branchGlyphReplacer maps box-drawing glyphs onto single-column ASCII so the
// built-in font keeps branch columns aligned.
var branchGlyphReplacer = strings.NewReplacer(
	"│", "|",
	"├", "|",
	"└", "`",
	"─", "-",
)

// PDF lays out rendering on fixed-size pages and writes the document to destination.
// The document is assembled in memory and moved into place only when complete, so a
// failed export never leaves a truncated document behind.
func PDF(rendering string, destination string, layout Layout) error {
	document, layoutError := buildDocument(SplitLines(rendering), layout)
	if layoutError != nil {
		return layoutError
	}
	var encoded bytes.Buffer
	if outputError := document.Output(&encoded); outputError != nil {
		return fmt.Errorf(errorEncodePDFFormat, outputError)
	}
	return replaceFile(destination, encoded.Bytes())
}

// buildDocument draws every line at a fixed pitch starting on the top margin,
// breaking pages whenever the next baseline would pass the bottom margin.
func buildDocument(lines []string, layout Layout) (*fpdf.Fpdf, error) {
	layout = layout.normalized()
	document := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: pdfOrientation,
		UnitStr:        pdfUnit,
		Size:           fpdf.SizeType{Wd: layout.PageWidth, Ht: layout.PageHeight},
	})
	document.SetMargins(layout.Margin, layout.Margin, layout.Margin)
	document.SetAutoPageBreak(false, layout.Margin)

	fontFamily, encodeLine, fontError := configureFont(document, layout)
	if fontError != nil {
		return nil, fontError
	}

	for _, pageLines := range layout.Paginate(lines) {
		document.AddPage()
		document.SetFont(fontFamily, "", layout.FontSize)
		baseline := layout.Margin
		for _, line := range pageLines {
			document.Text(layout.Margin, baseline, encodeLine(line))
			baseline += layout.LineHeight
		}
	}
	if document.Err() {
		return nil, fmt.Errorf(errorLayoutPDFFormat, document.Error())
	}
	return document, nil
}

// configureFont registers the font used for the tree and returns its family with
// the encoder that prepares lines for it.
func configureFont(document *fpdf.Fpdf, layout Layout) (string, func(string) string, error) {
	if layout.FontPath == "" {
		translate := document.UnicodeTranslatorFromDescriptor(cp1252Descriptor)
		encodeLine := func(line string) string {
			return translate(branchGlyphReplacer.Replace(line))
		}
		return builtinFontFamily, encodeLine, nil
	}
	fontBytes, readError := os.ReadFile(layout.FontPath)
	if readError != nil {
		return "", nil, fmt.Errorf(errorLoadFontFormat, layout.FontPath, readError)
	}
	document.AddUTF8FontFromBytes(embeddedFontFamily, "", fontBytes)
	if document.Err() {
		return "", nil, fmt.Errorf(errorLoadFontFormat, layout.FontPath, document.Error())
	}
	return embeddedFontFamily, func(line string) string { return line }, nil
}

// replaceFile writes data next to destination and renames it over destination.
func replaceFile(destination string, data []byte) (err error) {
	directory := filepath.Dir(destination)
	temporaryFile, createError := os.CreateTemp(directory, fmt.Sprintf(temporaryPattern, filepath.Base(destination)))
	if createError != nil {
		return fmt.Errorf(errorTemporaryFileFormat, destination, createError)
	}
	temporaryPath := temporaryFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(temporaryPath)
		}
	}()

	if _, writeError := temporaryFile.Write(data); writeError != nil {
		_ = temporaryFile.Close()
		return fmt.Errorf(errorWriteDestinationFormat, temporaryPath, writeError)
	}
	if closeError := temporaryFile.Close(); closeError != nil {
		return fmt.Errorf(errorCloseDestinationFormat, temporaryPath, closeError)
	}
	if chmodError := os.Chmod(temporaryPath, exportedFileMode); chmodError != nil {
		return fmt.Errorf(errorPermissionFileFormat, temporaryPath, chmodError)
	}
	if renameError := os.Rename(temporaryPath, destination); renameError != nil {
		return fmt.Errorf(errorReplaceFileFormat, destination, renameError)
	}
	return nil
}
