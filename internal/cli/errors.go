package cli

import (
	"errors"
	"fmt"

	"todoflex/internal/store"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func (e notFoundError) Unwrap() error { return store.ErrNotFound }

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// storeErr maps store sentinels to CLI errors.
func storeErr(kind, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return errNotFound(kind, id)
	}
	return err
}
