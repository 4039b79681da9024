// Package blobstore keeps the bytes of uploaded files outside the database.
// Objects are addressed by a flat name chosen by the caller.
package blobstore

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Store is a flat object namespace.
type Store interface {
	// Put writes data under name, replacing nothing: names are expected to
	// be unique.
	Put(ctx context.Context, name string, data []byte) error
	// Open returns common.ErrorNotFound when name does not exist.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Remove reports whether an object was deleted. A missing object is not
	// an error.
	Remove(ctx context.Context, name string) (bool, error)
}

// Presigner is implemented by stores that can hand out time-limited direct
// download links.
type Presigner interface {
	PresignGet(ctx context.Context, name string) (string, error)
}

// checkName rejects names that would escape a flat namespace.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("invalid object name %q", name)
	}
	return nil
}
