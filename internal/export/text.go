package export

import (
	"fmt"
	"os"
)

const (
	errorCreateDestinationFormat = "create %s: %w"
	errorWriteDestinationFormat  = "write %s: %w"
	errorCloseDestinationFormat  = "close %s: %w"
)

// Text writes rendering to destination verbatim, creating or truncating the file.
// Bytes flushed before a write failure are left in place.
//
// #nosec G304
func Text(rendering string, destination string) (err error) {
	fileHandle, createError := os.Create(destination)
	if createError != nil {
		return fmt.Errorf(errorCreateDestinationFormat, destination, createError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil && err == nil {
			err = fmt.Errorf(errorCloseDestinationFormat, destination, closeError)
		}
	}()

	if _, writeError := fileHandle.WriteString(rendering); writeError != nil {
		return fmt.Errorf(errorWriteDestinationFormat, destination, writeError)
	}
	return nil
}
