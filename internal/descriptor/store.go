package descriptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// Store lists and loads descriptors by repository name.
type Store interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, name string) (*Descriptor, error)
}

// FSStore implements Store over a flat directory of descriptor files.
type FSStore struct {
	fsys fs.FS
}

// NewFSStore returns a store reading descriptors from the root of fsys.
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// NewDirStore returns a store rooted at dir on the local filesystem. The
// directory need not exist.
func NewDirStore(dir string) *FSStore {
	return NewFSStore(os.DirFS(dir))
}

// List returns the names of all descriptors, sorted. A missing directory
// yields an empty list. Entries that do not follow the naming convention are
// skipped silently.
func (s *FSStore) List(_ context.Context) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("descriptor: list: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Suffix) {
			continue
		}
		name := strings.TrimSuffix(e.Name(), Suffix)
		if !validName(name) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load reads and validates the descriptor for name.
func (s *FSStore) Load(_ context.Context, name string) (*Descriptor, error) {
	if !validName(name) {
		return nil, NewError(KindNotFound, name, errors.New("invalid repository name"))
	}
	path := NameToPath(name)
	info, err := fs.Stat(s.fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewError(KindNotFound, name, nil).WithPath(path)
		}
		return nil, NewError(KindNotFound, name, err).WithPath(path)
	}
	if !info.Mode().IsRegular() {
		return nil, NewError(KindNotFound, name, errors.New("not a regular file")).WithPath(path)
	}
	// Unreadable descriptors count as not found.
	data, err := fs.ReadFile(s.fsys, path)
	if err != nil {
		return nil, NewError(KindNotFound, name, err).WithPath(path)
	}
	return Decode(name, data)
}

// Decode parses descriptor JSON and checks it against DescriptorSchema. name
// is used only for error reporting.
func Decode(name string, data []byte) (*Descriptor, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, NewError(KindMalformed, name, err).WithPath(NameToPath(name))
	}
	if obj == nil {
		return nil, NewError(KindMalformed, name, errors.New("not a JSON object")).WithPath(NameToPath(name))
	}

	res := DescriptorSchema().Check(obj)
	if !res.Complete() {
		e := NewError(KindMalformed, name, nil).WithPath(NameToPath(name))
		e.missing = res.Missing
		e.invalid = res.Invalid
		return nil, e
	}

	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, NewError(KindMalformed, name, err).WithPath(NameToPath(name))
	}
	if d.Attractors == nil {
		d.Attractors = []string{}
	}
	return &d, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
