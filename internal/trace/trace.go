// Package trace persists generated instances as write-once trace files, one
// per invocation, named after the instance timestamp.
package trace

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cogcompress/internal/descriptor"
	"cogcompress/internal/instance"
	"cogcompress/internal/logging"
)

// Format selects the content of a trace file.
type Format string

const (
	// FormatJSON writes the instance exactly as printed on standard output.
	FormatJSON Format = "json"
	// FormatLine writes a single summary line per trace.
	FormatLine Format = "line"
)

// ParseFormat validates a configured trace format. Empty means FormatJSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatLine:
		return FormatLine, nil
	}
	return "", fmt.Errorf("unknown trace format %q (want json or line)", s)
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	if f == FormatLine {
		return ".txt"
	}
	return ".json"
}

// FileName derives a trace filename from a temporal_grounding value. Colons
// are replaced with hyphens.
func FileName(ts string, f Format) string {
	return strings.ReplaceAll(ts, ":", "-") + f.Ext()
}

// Line renders the one-line summary of inst used by FormatLine.
func Line(inst *instance.Instance) string {
	return fmt.Sprintf("[%s] [%s] Core: %s | Instance: %s\n",
		inst.TemporalGrounding, inst.Repository, inst.IntegrityHash, inst.InstanceHash)
}

// Writer creates trace files in Dir.
type Writer struct {
	Dir    string
	Format Format
	Logger *slog.Logger
}

// NewWriter returns a Writer for dir in the given format.
func NewWriter(dir string, f Format) *Writer {
	return &Writer{Dir: dir, Format: f, Logger: logging.New("trace")}
}

// Encode returns the bytes Persist would write for inst.
func (w *Writer) Encode(inst *instance.Instance) ([]byte, error) {
	if w.Format == FormatLine {
		return []byte(Line(inst)), nil
	}
	return instance.Marshal(inst)
}

// Persist writes inst to a new file and returns its path. The directory is
// created if needed. An existing file with the same name is never
// overwritten; every filesystem failure is reported as a write error.
func (w *Writer) Persist(inst *instance.Instance) (string, error) {
	data, err := w.Encode(inst)
	if err != nil {
		return "", descriptor.NewError(descriptor.KindWriteError, inst.Repository, err)
	}
	path := filepath.Join(w.Dir, FileName(inst.TemporalGrounding, w.Format))

	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", descriptor.NewError(descriptor.KindWriteError, inst.Repository, err).WithPath(w.Dir)
	}
	if err := writeNew(path, data); err != nil {
		return "", descriptor.NewError(descriptor.KindWriteError, inst.Repository, err).WithPath(path)
	}

	if w.Logger != nil {
		w.Logger.Info("trace written",
			slog.String("repository", inst.Repository),
			slog.String("path", path),
			slog.Int("bytes", len(data)))
	}
	return path, nil
}

// writeData writes the encoded trace into a freshly created file.
var writeData = func(f *os.File, data []byte) error {
	_, err := f.Write(data)
	return err
}

// writeNew creates path exclusively and fills it with data. A file that could
// not be completely written is removed again.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	err = writeData(f, data)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// List returns the trace filenames in dir, sorted. A missing directory yields
// an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("trace: list: %w", err)
	}
	names := []string{}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != FormatJSON.Ext() && ext != FormatLine.Ext()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Load reads a JSON trace file back into an Instance.
func Load(path string) (*instance.Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trace: read %q: %w", path, err)
	}
	inst, err := instance.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("trace: %q: %w", path, err)
	}
	return inst, nil
}
