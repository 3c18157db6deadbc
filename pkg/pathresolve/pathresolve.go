// Package pathresolve finds the file which stores a record.
package pathresolve

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSource = errors.New("source path is not specified")
	ErrUnknownRecord = errors.New("unknown record")
)

// PathIndex resolves record IDs to file paths on its own.
type PathIndex interface {
	FullPath(id string) (string, error)
}

// Resolve returns the path of the record id.
//
// An explicit src mapping takes precedence; otherwise the path comes from
// index. If neither is given ErrMissingSource is returned.
func Resolve(id string, src map[string]string, index PathIndex) (string, error) {
	switch {
	case src != nil:
		path, ok := src[id]
		if !ok {
			return "", fmt.Errorf("%w: %q is not in the source mapping", ErrUnknownRecord, id)
		}
		return path, nil
	case index != nil:
		path, err := index.FullPath(id)
		if err != nil {
			return "", fmt.Errorf("unable to get the path of %q from the index: %w", id, err)
		}
		return path, nil
	default:
		return "", fmt.Errorf("%w: record %q", ErrMissingSource, id)
	}
}
