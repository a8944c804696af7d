package scenario

import (
	"fmt"
	"net/http"
)

func expectStatus(what string, status int) error {
	if status != http.StatusOK {
		return fmt.Errorf("%s: expected status 200, got %d", what, status)
	}
	return nil
}

func expectEqual[T comparable](what string, want, got T) error {
	if want != got {
		return fmt.Errorf("%s: expected %v, got %v", what, want, got)
	}
	return nil
}

func expectDefined(what, id string) error {
	if id == "" {
		return fmt.Errorf("%s: expected an id", what)
	}
	return nil
}

// first returns the first non-nil error.
func first(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
