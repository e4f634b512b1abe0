package export_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tyemirov/dirtree/internal/export"
)

func TestSaveRejectsEmptyRendering(t *testing.T) {
	for _, format := range []export.Format{export.FormatText, export.FormatPDF} {
		t.Run(string(format), func(t *testing.T) {
			destination := filepath.Join(t.TempDir(), "tree"+format.Filter().Extension)
			saveError := export.Save(format, " \n\t", destination, export.DefaultLayout())
			if !errors.Is(saveError, export.ErrEmptyRendering) {
				t.Fatalf("expected ErrEmptyRendering, got %v", saveError)
			}
			if _, statError := os.Stat(destination); !os.IsNotExist(statError) {
				t.Fatalf("expected no file at %s", destination)
			}
		})
	}
}

func TestSaveDispatchesByFormat(t *testing.T) {
	directory := t.TempDir()
	textDestination := filepath.Join(directory, "tree.txt")
	if err := export.Save(export.FormatText, sampleRendering, textDestination, export.DefaultLayout()); err != nil {
		t.Fatalf("Save text error: %v", err)
	}
	pdfDestination := filepath.Join(directory, "tree.pdf")
	if err := export.Save(export.FormatPDF, sampleRendering, pdfDestination, export.DefaultLayout()); err != nil {
		t.Fatalf("Save pdf error: %v", err)
	}
	for _, destination := range []string{textDestination, pdfDestination} {
		if info, statError := os.Stat(destination); statError != nil || info.Size() == 0 {
			t.Fatalf("expected non-empty file at %s (%v)", destination, statError)
		}
	}
	if err := export.Save("docx", sampleRendering, filepath.Join(directory, "tree.docx"), export.DefaultLayout()); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		input             string
		expected          export.Format
		expectedExtension string
		expectError       bool
	}{
		{input: "text", expected: export.FormatText, expectedExtension: ".txt"},
		{input: "TXT", expected: export.FormatText, expectedExtension: ".txt"},
		{input: " pdf ", expected: export.FormatPDF, expectedExtension: ".pdf"},
		{input: "html", expectError: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			format, err := export.ParseFormat(testCase.input)
			if testCase.expectError {
				if !errors.Is(err, export.ErrUnsupportedFormat) {
					t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat error: %v", err)
			}
			if format != testCase.expected {
				t.Fatalf("expected %q, got %q", testCase.expected, format)
			}
			if extension := format.Filter().Extension; extension != testCase.expectedExtension {
				t.Fatalf("expected extension %q, got %q", testCase.expectedExtension, extension)
			}
		})
	}
}
