// Package session drives the host-facing flows: choosing a folder, displaying
// its rendering, and saving that rendering to a user-chosen destination.
package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tyemirov/dirtree/internal/export"
	"github.com/tyemirov/dirtree/internal/tree"
)

const (
	emptyTreeTitle         = "Empty Tree"
	emptyTreeMessage       = "There is no tree structure to save."
	successTitle           = "Success"
	successMessageFormat   = "Tree structure saved as a %s file."
	browseFailedTitle      = "Unable to Read Folder"
	saveFailedTitle        = "Unable to Save Tree"
	errorChooseDirectory   = "choose directory: %w"
	errorChooseDestination = "choose destination: %w"
	errorBuildRendering    = "render %s: %w"
)

// DirectoryChooser asks the user for a traversal root. ok is false when the user cancels.
type DirectoryChooser interface {
	ChooseDirectory() (path string, ok bool, err error)
}

// DestinationChooser asks the user for an export destination matching filter.
// ok is false when the user cancels.
type DestinationChooser interface {
	ChooseDestination(filter export.FileFilter) (path string, ok bool, err error)
}

// Display shows the current rendering.
type Display interface {
	Show(rendering string)
}

// Notifier delivers fire-and-forget messages to the user.
type Notifier interface {
	Warn(title string, message string)
	Info(title string, message string)
	Error(title string, message string)
}

// Host bundles the collaborators a session needs from the surrounding UI.
type Host interface {
	DirectoryChooser
	DestinationChooser
	Display
	Notifier
}

// Options configures traversal and export behavior.
type Options struct {
	Order  tree.Order
	Layout export.Layout
}

// Session owns the display buffer between requests. It is not safe for concurrent use.
type Session struct {
	host      Host
	options   Options
	root      string
	rendering string
}

// New constructs a Session bound to host.
func New(host Host, options Options) *Session {
	return &Session{host: host, options: options}
}

// Rendering returns the rendering currently held in the display buffer.
func (session *Session) Rendering() string {
	return session.rendering
}

// Root returns the directory the current rendering was built from.
func (session *Session) Root() string {
	return session.root
}

// Browse asks for a directory, renders it, and shows the result. Cancelling is a
// no-op. On failure the user is notified and the previous rendering is kept.
func (session *Session) Browse() error {
	directory, chosen, chooseError := session.host.ChooseDirectory()
	if chooseError != nil {
		session.host.Error(browseFailedTitle, chooseError.Error())
		return fmt.Errorf(errorChooseDirectory, chooseError)
	}
	if !chosen {
		return nil
	}

	rendering, buildError := tree.BuildWithOptions(tree.Options{
		Root:  directory,
		Order: session.options.Order,
		Warn: func(message string) {
			session.host.Warn(browseFailedTitle, message)
		},
	})
	if buildError != nil {
		session.host.Error(browseFailedTitle, buildError.Error())
		return fmt.Errorf(errorBuildRendering, directory, buildError)
	}

	session.root = directory
	session.rendering = rendering
	session.host.Show(rendering)
	return nil
}

// Save exports the current rendering in format to a destination chosen by the
// user. An empty buffer produces a warning and ErrEmptyRendering without asking
// for a destination. Cancelling the destination prompt is a no-op.
func (session *Session) Save(format export.Format) error {
	snapshot := session.rendering
	if export.IsEmpty(snapshot) {
		session.host.Warn(emptyTreeTitle, emptyTreeMessage)
		return export.ErrEmptyRendering
	}

	filter := format.Filter()
	destination, chosen, chooseError := session.host.ChooseDestination(filter)
	if chooseError != nil {
		session.host.Error(saveFailedTitle, chooseError.Error())
		return fmt.Errorf(errorChooseDestination, chooseError)
	}
	if !chosen {
		return nil
	}
	destination = WithDefaultExtension(destination, filter.Extension)

	if saveError := export.Save(format, snapshot, destination, session.options.Layout); saveError != nil {
		if errors.Is(saveError, export.ErrEmptyRendering) {
			session.host.Warn(emptyTreeTitle, emptyTreeMessage)
		} else {
			session.host.Error(saveFailedTitle, saveError.Error())
		}
		return saveError
	}
	session.host.Info(successTitle, fmt.Sprintf(successMessageFormat, filter.Extension))
	return nil
}

// WithDefaultExtension appends extension to destination when destination has none.
func WithDefaultExtension(destination string, extension string) string {
	if filepath.Ext(destination) != "" || extension == "" {
		return destination
	}
	return destination + extension
}
