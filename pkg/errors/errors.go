// Package errors holds the error kinds shared by the client, the loaders
// and the CLI. Wrap with WrapError and test with Is.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds
var (
	ErrAuthentication = errors.New("authentication error")
	ErrConfiguration  = errors.New("configuration error")
	ErrHTTPRequest    = errors.New("HTTP request error")
	ErrHTTPResponse   = errors.New("HTTP response error")
	ErrDecode         = errors.New("decode error")
	ErrValidation     = errors.New("validation error")
	ErrFixture        = errors.New("fixture error")
)

var kinds = []error{
	ErrAuthentication,
	ErrConfiguration,
	ErrHTTPRequest,
	ErrHTTPResponse,
	ErrDecode,
	ErrValidation,
	ErrFixture,
}

// WrapError tags err with kind and prefixes it with message.
func WrapError(err error, kind error, message string) error {
	return fmt.Errorf("%w: %s: %w", kind, message, err)
}

// KindOf returns the first kind err carries, or nil.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}

// Is wraps errors.Is
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As
func As(err error, target any) bool {
	return errors.As(err, target)
}
