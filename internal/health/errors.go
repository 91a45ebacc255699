package health

import (
	"errors"
	"fmt"
)

// ErrDocumentUnavailable indicates the document text could not be read.
// It is the only error the engine returns; empty or degenerate documents
// produce zero-valued metrics instead.
var ErrDocumentUnavailable = errors.New("document unavailable")

// DocumentUnavailableError records which document could not be read and why.
type DocumentUnavailableError struct {
	Path string
	Err  error
}

func (e *DocumentUnavailableError) Error() string {
	return fmt.Sprintf("document unavailable: %s: %v", e.Path, e.Err)
}

func (e *DocumentUnavailableError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrDocumentUnavailable) hold for any
// DocumentUnavailableError.
func (e *DocumentUnavailableError) Is(target error) bool {
	return target == ErrDocumentUnavailable
}
