// Package tree walks a directory and renders its structure as an indented text tree.
package tree

import (
	"strings"
)

// Renderer folds traversal events into the rendering text.
type Renderer struct {
	builder strings.Builder
}

// Handle appends the line for event.
func (renderer *Renderer) Handle(event Event) error {
	switch event.Kind {
	case EventDirectory:
		renderer.builder.WriteString(DirectoryLine(event.Name, event.Depth))
	case EventFile:
		renderer.builder.WriteString(FileLine(event.Name, event.Depth, event.Last))
	}
	return nil
}

// String returns the lines rendered so far.
func (renderer *Renderer) String() string {
	return renderer.builder.String()
}

// Build renders the directory tree rooted at rootPath with entries sorted by name.
func Build(rootPath string) (string, error) {
	return BuildWithOptions(Options{Root: rootPath, Order: OrderName})
}

// BuildWithOptions renders the directory tree described by options.
func BuildWithOptions(options Options) (string, error) {
	var renderer Renderer
	if walkError := Walk(options, renderer.Handle); walkError != nil {
		return "", walkError
	}
	return renderer.String(), nil
}
