package cli

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tyemirov/dirtree/internal/export"
	"github.com/tyemirov/dirtree/internal/session"
)

const (
	notificationDetailsKey = "details"
	destinationFilterKey   = "filter"
)

// commandHost adapts command line arguments to the interactive host collaborators.
// The root chosen on the command line is the directory selection and --output is
// the destination selection; an empty --output behaves like a cancelled dialog.
type commandHost struct {
	rootDirectory string
	destination   string
	display       io.Writer
	logger        *zap.Logger
}

func newCommandHost(rootDirectory string, destination string, display io.Writer, logger *zap.Logger) *commandHost {
	return &commandHost{rootDirectory: rootDirectory, destination: destination, display: display, logger: logger}
}

func (host *commandHost) ChooseDirectory() (string, bool, error) {
	return host.rootDirectory, host.rootDirectory != "", nil
}

func (host *commandHost) ChooseDestination(filter export.FileFilter) (string, bool, error) {
	if host.destination == "" {
		return "", false, nil
	}
	host.logger.Debug("destination selected", zap.String(destinationFilterKey, filter.Pattern))
	return host.destination, true, nil
}

func (host *commandHost) Show(rendering string) {
	fmt.Fprint(host.display, rendering)
}

func (host *commandHost) Warn(title string, message string) {
	host.logger.Warn(title, zap.String(notificationDetailsKey, message))
}

func (host *commandHost) Info(title string, message string) {
	host.logger.Info(title, zap.String(notificationDetailsKey, message))
}

func (host *commandHost) Error(title string, message string) {
	host.logger.Error(title, zap.String(notificationDetailsKey, message))
}

var _ session.Host = (*commandHost)(nil)
