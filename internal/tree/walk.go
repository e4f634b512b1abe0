package tree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// EventKind identifies what a traversal event describes.
type EventKind int

const (
	// EventDirectory is emitted once per visited directory, before its files.
	EventDirectory EventKind = iota
	// EventFile is emitted for each non-directory entry of a directory.
	EventFile
)

// Order selects how directory entries are sequenced.
type Order string

const (
	// OrderName sorts entries by file name.
	OrderName Order = "name"
	// OrderListing keeps the order returned by the operating system listing.
	OrderListing Order = "listing"
)

const (
	errorNilHandler         = "tree handler is nil"
	errorReadRootFormat     = "reading directory %s: %w"
	errorUnsupportedOrder   = "unsupported entry order %q"
	errorAbsolutePathFormat = "getting absolute path for %s: %w"
	errorRootNotDirectory   = "%s: %w"
	warningSkipSubdirFormat = "skipping subdirectory %s: %v"
)

// ErrNotDirectory is returned when the traversal root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Event is a single step of a traversal.
type Event struct {
	Kind EventKind
	// Name is the final path segment of the entry.
	Name string
	// Path is the absolute path of the entry.
	Path string
	// Depth is the depth of the directory the event belongs to. For file events
	// that is the parent directory's depth.
	Depth int
	// Last is set on the final file event of a directory.
	Last bool
}

// Options configures a traversal.
type Options struct {
	Root  string
	Order Order
	// Warn receives messages for subdirectories that could not be listed.
	Warn func(message string)
}

// ParseOrder converts a configuration value into an Order. An empty value selects OrderName.
func ParseOrder(value string) (Order, error) {
	switch Order(value) {
	case "", OrderName:
		return OrderName, nil
	case OrderListing:
		return OrderListing, nil
	default:
		return "", fmt.Errorf(errorUnsupportedOrder, value)
	}
}

type walker struct {
	options Options
	handler func(Event) error
}

// Walk visits Root top-down. For every directory it emits the directory event,
// then the directory's files, then recurses into each subdirectory. Symbolic
// links are reported as files and never followed. A subdirectory that cannot
// be listed is skipped with a warning; a root that cannot be listed is an error.
func Walk(options Options, handler func(Event) error) error {
	if handler == nil {
		return errors.New(errorNilHandler)
	}
	if options.Warn == nil {
		options.Warn = func(string) {}
	}
	order, orderError := ParseOrder(string(options.Order))
	if orderError != nil {
		return orderError
	}
	options.Order = order

	absoluteRoot, absoluteError := filepath.Abs(options.Root)
	if absoluteError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, options.Root, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return statError
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorRootNotDirectory, absoluteRoot, ErrNotDirectory)
	}

	treeWalker := walker{options: options, handler: handler}
	directories, files, listError := treeWalker.list(absoluteRoot)
	if listError != nil {
		return fmt.Errorf(errorReadRootFormat, absoluteRoot, listError)
	}
	return treeWalker.visit(absoluteRoot, 0, directories, files)
}

func (treeWalker *walker) visit(path string, depth int, directories []string, files []string) error {
	directoryEvent := Event{Kind: EventDirectory, Name: filepath.Base(path), Path: path, Depth: depth}
	if err := treeWalker.handler(directoryEvent); err != nil {
		return err
	}

	for fileIndex, fileName := range files {
		fileEvent := Event{
			Kind:  EventFile,
			Name:  fileName,
			Path:  filepath.Join(path, fileName),
			Depth: depth,
			Last:  fileIndex == len(files)-1,
		}
		if err := treeWalker.handler(fileEvent); err != nil {
			return err
		}
	}

	for _, directoryName := range directories {
		childPath := filepath.Join(path, directoryName)
		childDirectories, childFiles, listError := treeWalker.list(childPath)
		if listError != nil {
			treeWalker.options.Warn(fmt.Sprintf(warningSkipSubdirFormat, childPath, listError))
			continue
		}
		if err := treeWalker.visit(childPath, depth+1, childDirectories, childFiles); err != nil {
			return err
		}
	}
	return nil
}

// list returns the subdirectory names and file names of path, each in the configured order.
func (treeWalker *walker) list(path string) ([]string, []string, error) {
	entries, readError := treeWalker.readEntries(path)
	if readError != nil {
		return nil, nil, readError
	}
	var directories []string
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			directories = append(directories, entry.Name())
			continue
		}
		files = append(files, entry.Name())
	}
	return directories, files, nil
}

func (treeWalker *walker) readEntries(path string) ([]os.DirEntry, error) {
	if treeWalker.options.Order == OrderName {
		return os.ReadDir(path)
	}
	directoryHandle, openError := os.Open(path)
	if openError != nil {
		return nil, openError
	}
	defer directoryHandle.Close()
	return directoryHandle.ReadDir(-1)
}
