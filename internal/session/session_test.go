package session_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tyemirov/dirtree/internal/export"
	"github.com/tyemirov/dirtree/internal/session"
)

type notification struct {
	level   string
	title   string
	message string
}

type fakeHost struct {
	directory         string
	directoryChosen   bool
	directoryError    error
	destination       string
	destinationChosen bool
	requestedFilters  []export.FileFilter
	shown             []string
	notifications     []notification
}

func (host *fakeHost) ChooseDirectory() (string, bool, error) {
	return host.directory, host.directoryChosen, host.directoryError
}

func (host *fakeHost) ChooseDestination(filter export.FileFilter) (string, bool, error) {
	host.requestedFilters = append(host.requestedFilters, filter)
	return host.destination, host.destinationChosen, nil
}

func (host *fakeHost) Show(rendering string) {
	host.shown = append(host.shown, rendering)
}

func (host *fakeHost) Warn(title string, message string) {
	host.notifications = append(host.notifications, notification{level: "warn", title: title, message: message})
}

func (host *fakeHost) Info(title string, message string) {
	host.notifications = append(host.notifications, notification{level: "info", title: title, message: message})
}

func (host *fakeHost) Error(title string, message string) {
	host.notifications = append(host.notifications, notification{level: "error", title: title, message: message})
}

func projectDirectory(t *testing.T) string {
	t.Helper()
	rootDirectory := filepath.Join(t.TempDir(), "proj")
	if err := os.MkdirAll(filepath.Join(rootDirectory, "src"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, filePath := range []string{"a.txt", filepath.Join("src", "b.py")} {
		if err := os.WriteFile(filepath.Join(rootDirectory, filePath), []byte("x"), 0o600); err != nil {
			t.Fatalf("write %s: %v", filePath, err)
		}
	}
	return rootDirectory
}

func newSession(host *fakeHost) *session.Session {
	return session.New(host, session.Options{Layout: export.DefaultLayout()})
}

func TestBrowseShowsRendering(t *testing.T) {
	host := &fakeHost{directory: projectDirectory(t), directoryChosen: true}
	treeSession := newSession(host)

	if err := treeSession.Browse(); err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if len(host.shown) != 1 || !strings.HasPrefix(host.shown[0], "proj/\n") {
		t.Fatalf("expected rendering to be shown once, got %q", host.shown)
	}
	if treeSession.Rendering() != host.shown[0] {
		t.Fatalf("expected buffer to hold the shown rendering")
	}
	if treeSession.Root() != host.directory {
		t.Fatalf("expected root %s, got %s", host.directory, treeSession.Root())
	}
}

func TestBrowseCancellationIsNoOp(t *testing.T) {
	host := &fakeHost{}
	treeSession := newSession(host)
	if err := treeSession.Browse(); err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if len(host.shown) != 0 || len(host.notifications) != 0 {
		t.Fatalf("expected no display and no notification, got %v %v", host.shown, host.notifications)
	}
}

func TestBrowseFailureKeepsPreviousRendering(t *testing.T) {
	host := &fakeHost{directory: projectDirectory(t), directoryChosen: true}
	treeSession := newSession(host)
	if err := treeSession.Browse(); err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	previous := treeSession.Rendering()

	host.directory = filepath.Join(t.TempDir(), "missing")
	if err := treeSession.Browse(); err == nil {
		t.Fatalf("expected error for missing directory")
	}
	if treeSession.Rendering() != previous {
		t.Fatalf("expected previous rendering to be kept")
	}
	lastNotification := host.notifications[len(host.notifications)-1]
	if lastNotification.level != "error" {
		t.Fatalf("expected error notification, got %+v", lastNotification)
	}

	host.directoryError = errors.New("dialog unavailable")
	if err := treeSession.Browse(); err == nil {
		t.Fatalf("expected chooser error to propagate")
	}
}

func TestSaveWithEmptyBufferWarnsAndWritesNothing(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "tree.txt")
	host := &fakeHost{destination: destination, destinationChosen: true}
	treeSession := newSession(host)

	saveError := treeSession.Save(export.FormatText)
	if !errors.Is(saveError, export.ErrEmptyRendering) {
		t.Fatalf("expected ErrEmptyRendering, got %v", saveError)
	}
	if len(host.requestedFilters) != 0 {
		t.Fatalf("expected no destination prompt")
	}
	if len(host.notifications) != 1 || host.notifications[0].level != "warn" || host.notifications[0].title != "Empty Tree" {
		t.Fatalf("expected empty tree warning, got %+v", host.notifications)
	}
	if _, statError := os.Stat(destination); !os.IsNotExist(statError) {
		t.Fatalf("expected no file at %s", destination)
	}
}

func TestSaveWritesChosenFormat(t *testing.T) {
	testCases := []struct {
		name            string
		format          export.Format
		chosenName      string
		expectedName    string
		expectedMessage string
	}{
		{name: "text_adds_extension", format: export.FormatText, chosenName: "tree", expectedName: "tree.txt", expectedMessage: "Tree structure saved as a .txt file."},
		{name: "pdf_keeps_extension", format: export.FormatPDF, chosenName: "tree.pdf", expectedName: "tree.pdf", expectedMessage: "Tree structure saved as a .pdf file."},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			outputDirectory := t.TempDir()
			host := &fakeHost{
				directory:         projectDirectory(t),
				directoryChosen:   true,
				destination:       filepath.Join(outputDirectory, testCase.chosenName),
				destinationChosen: true,
			}
			treeSession := newSession(host)
			if err := treeSession.Browse(); err != nil {
				t.Fatalf("Browse error: %v", err)
			}
			if err := treeSession.Save(testCase.format); err != nil {
				t.Fatalf("Save error: %v", err)
			}
			if host.requestedFilters[0] != testCase.format.Filter() {
				t.Fatalf("expected filter %+v, got %+v", testCase.format.Filter(), host.requestedFilters[0])
			}
			written := filepath.Join(outputDirectory, testCase.expectedName)
			if _, statError := os.Stat(written); statError != nil {
				t.Fatalf("expected export at %s: %v", written, statError)
			}
			lastNotification := host.notifications[len(host.notifications)-1]
			if lastNotification.level != "info" || lastNotification.message != testCase.expectedMessage {
				t.Fatalf("unexpected notification %+v", lastNotification)
			}
		})
	}
}

func TestSaveRoundTripMatchesBuffer(t *testing.T) {
	destination := filepath.Join(t.TempDir(), "tree.txt")
	host := &fakeHost{directory: projectDirectory(t), directoryChosen: true, destination: destination, destinationChosen: true}
	treeSession := newSession(host)
	if err := treeSession.Browse(); err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if err := treeSession.Save(export.FormatText); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	written, readError := os.ReadFile(destination)
	if readError != nil {
		t.Fatalf("read export: %v", readError)
	}
	if string(written) != treeSession.Rendering() {
		t.Fatalf("expected byte-for-byte export, got %q", string(written))
	}
}

func TestSaveCancellationIsNoOp(t *testing.T) {
	host := &fakeHost{directory: projectDirectory(t), directoryChosen: true}
	treeSession := newSession(host)
	if err := treeSession.Browse(); err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if err := treeSession.Save(export.FormatPDF); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if len(host.notifications) != 0 {
		t.Fatalf("expected no notification on cancel, got %+v", host.notifications)
	}
}

func TestSaveFailureNotifiesAndKeepsSessionUsable(t *testing.T) {
	outputDirectory := t.TempDir()
	host := &fakeHost{
		directory:         projectDirectory(t),
		directoryChosen:   true,
		destination:       filepath.Join(outputDirectory, "missing", "tree.txt"),
		destinationChosen: true,
	}
	treeSession := newSession(host)
	if err := treeSession.Browse(); err != nil {
		t.Fatalf("Browse error: %v", err)
	}
	if err := treeSession.Save(export.FormatText); err == nil {
		t.Fatalf("expected save failure")
	}
	if host.notifications[len(host.notifications)-1].level != "error" {
		t.Fatalf("expected error notification, got %+v", host.notifications)
	}

	host.destination = filepath.Join(outputDirectory, "tree.txt")
	if err := treeSession.Save(export.FormatText); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
}

func TestWithDefaultExtension(t *testing.T) {
	if got := session.WithDefaultExtension("out", ".txt"); got != "out.txt" {
		t.Fatalf("expected out.txt, got %s", got)
	}
	if got := session.WithDefaultExtension("out.md", ".txt"); got != "out.md" {
		t.Fatalf("expected out.md, got %s", got)
	}
}
