// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// The closed error taxonomy. Every error returned by this module wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	ErrUnreachable    = errors.New("unreachable state")
	ErrInvalidData    = errors.New("invalid data")
	ErrMissingData    = errors.New("missing data")
	ErrUnsupported    = errors.New("unsupported")
	ErrSignalMismatch = errors.New("signal mismatch")
	ErrNotFound       = errors.New("not found")
	ErrNotReady       = errors.New("not ready")
	ErrEndOfStream    = errors.New("end of stream")
	ErrInterrupted    = errors.New("interrupted")
	ErrIO             = errors.New("i/o error")
	ErrOther          = errors.New("other error")
)

// WrapIO classifies an error coming from an io.Reader/io.Writer.
// io.EOF and io.ErrUnexpectedEOF become ErrEndOfStream, errors already in the
// taxonomy pass through, everything else is joined with ErrIO.
func WrapIO(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return fmt.Errorf("%w: %w", ErrEndOfStream, err)
	case inTaxonomy(err):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
}

// IsTransient reports whether err asks the caller to retry (ErrInterrupted)
// or to block and retry (ErrNotReady).
func IsTransient(err error) bool {
	return errors.Is(err, ErrNotReady) || errors.Is(err, ErrInterrupted)
}

func inTaxonomy(err error) bool {
	for _, e := range taxonomy {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

var taxonomy = [...]error{
	ErrUnreachable,
	ErrInvalidData,
	ErrMissingData,
	ErrUnsupported,
	ErrSignalMismatch,
	ErrNotFound,
	ErrNotReady,
	ErrEndOfStream,
	ErrInterrupted,
	ErrIO,
	ErrOther,
}
