package pathresolve

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// FilesIndex is a PathIndex over a set of files, identified by their base
// names without the extension.
type FilesIndex struct {
	paths map[string]string
}

var _ PathIndex = (*FilesIndex)(nil)

// NewFilesIndex indexes all the files matching the glob patterns.
func NewFilesIndex(patterns ...string) (*FilesIndex, error) {
	idx := &FilesIndex{
		paths: map[string]string{},
	}
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if err := idx.add(match); err != nil {
				return nil, err
			}
		}
	}
	return idx, nil
}

func (idx *FilesIndex) add(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("unable to get the absolute path of %q: %w", path, err)
	}
	id := IDFromPath(path)
	if prev, ok := idx.paths[id]; ok && prev != absPath {
		return fmt.Errorf("files %q and %q have the same ID %q", prev, absPath, id)
	}
	idx.paths[id] = absPath
	return nil
}

// IDFromPath returns the base name of path without the extension.
func IDFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IDs returns the sorted IDs of the indexed files.
func (idx *FilesIndex) IDs() []string {
	ids := make([]string, 0, len(idx.paths))
	for id := range idx.paths {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (idx *FilesIndex) Len() int {
	return len(idx.paths)
}

func (idx *FilesIndex) FullPath(id string) (string, error) {
	path, ok := idx.paths[id]
	if !ok {
		return "", fmt.Errorf("%w: %q is not in the files index", ErrUnknownRecord, id)
	}
	return path, nil
}
