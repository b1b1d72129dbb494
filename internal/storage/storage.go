// Package storage keeps uploaded files outside the database. The core only
// hands it opaque bytes under a key; it never inspects them.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/yukikurage/project-tracker/internal/constants"
)

var (
	ErrNotFound   = errors.New("storage: object not found")
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Store persists objects by key.
type Store interface {
	// Put writes r under key, replacing any existing object.
	Put(ctx context.Context, key string, r io.Reader) error

	// Open returns the object stored under key or ErrNotFound.
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// PictureKey is the key a person's profile picture is stored under.
func PictureKey(personID uint64) string {
	return fmt.Sprintf("%d%s", personID, constants.ProfilePictureExt)
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." ||
		strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
