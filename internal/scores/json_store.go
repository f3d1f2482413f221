package scores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const documentExt = ".json"

// JSONStore keeps one JSON file per document in a directory.
type JSONStore struct {
	dir string
}

var _ Store = (*JSONStore)(nil)

// NewJSONStore returns a store rooted at dir, creating it if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create scores dir: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) Path(name string) string {
	return filepath.Join(s.dir, name+documentExt)
}

func (s *JSONStore) Load(ctx context.Context, name string) (Document, error) {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, nil
		}
		return nil, fmt.Errorf("read score document: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, &MalformedError{Name: name, Err: err}
	}
	return doc, nil
}

// Append loads the document, adds the entries and rewrites the file. A
// malformed existing document is left untouched and reported.
func (s *JSONStore) Append(ctx context.Context, name string, entries map[string]Entry) error {
	doc, err := s.Load(ctx, name)
	if err != nil {
		return err
	}
	doc.Merge(entries)

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal score document: %w", err)
	}
	return writeFileAtomic(s.Path(name), data)
}

func (s *JSONStore) List(ctx context.Context) ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list scores dir: %w", err)
	}
	var names []string
	for _, e := range dirEntries {
		n := e.Name()
		if e.IsDir() || strings.HasPrefix(n, ".") || filepath.Ext(n) != documentExt {
			continue
		}
		names = append(names, strings.TrimSuffix(n, documentExt))
	}
	slices.Sort(names)
	return names, nil
}

func (s *JSONStore) Close() error {
	return nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place so readers never see a partial document.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace score document: %w", err)
	}
	return nil
}
