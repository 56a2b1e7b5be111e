// Package export writes exported keyword files and presets to a directory
// and remembers the most recent ones.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"prompt-editor/document"
)

const (
	indexFile = "recent.json"
	maxRecent = 10
)

var (
	ErrInvalidName = errors.New("invalid export file name")
	ErrNotFound    = errors.New("export not found")
)

// Writer stores exports under one directory.
type Writer struct {
	mu     sync.RWMutex
	dir    string
	recent []string
}

// NewWriter opens dir, loading the recent-exports index if there is one.
// A missing index is not an error.
func NewWriter(dir string) (*Writer, error) {
	w := &Writer{dir: dir, recent: []string{}}

	data, err := os.ReadFile(filepath.Join(dir, indexFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return w, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, &w.recent); err != nil {
		return nil, err
	}
	if w.recent == nil {
		w.recent = []string{}
	}
	return w, nil
}

// Dir returns the export directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write encodes v as an export of the given kind named for now, and
// returns the file name. A second export of the same kind within one second
// gets a _2, _3 ... suffix instead of replacing the first.
func (w *Writer) Write(kind document.FileKind, v any, now time.Time) (string, error) {
	data, err := document.Encode(v)
	if err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	name := w.freeName(document.FileName(kind, now))
	if err := w.writeAtomic(name, data); err != nil {
		return "", err
	}
	w.markRecent(name)
	index, err := json.MarshalIndent(w.recent, "", "  ")
	if err != nil {
		return "", err
	}
	if err := w.writeAtomic(indexFile, index); err != nil {
		return "", err
	}
	return name, nil
}

// Recent returns the most recently written exports, newest first.
func (w *Writer) Recent() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]string, len(w.recent))
	copy(out, w.recent)
	return out
}

// Read returns the contents of a previous export.
func (w *Writer) Read(name string) ([]byte, error) {
	if !validName(name) {
		return nil, ErrInvalidName
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(w.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func validName(name string) bool {
	return name != "" &&
		name != indexFile &&
		filepath.Base(name) == name &&
		!strings.ContainsAny(name, `/\`) &&
		!strings.HasPrefix(name, ".") &&
		strings.HasSuffix(name, ".json")
}

// markRecent moves name to the front of the recent list, dropping entries
// whose file is gone and capping the list. Caller must hold w.mu.
func (w *Writer) markRecent(name string) {
	seen := map[string]bool{name: true}
	list := []string{name}
	for _, n := range w.recent {
		if seen[n] {
			continue
		}
		if _, err := os.Stat(filepath.Join(w.dir, n)); err != nil {
			continue
		}
		seen[n] = true
		list = append(list, n)
		if len(list) == maxRecent {
			break
		}
	}
	w.recent = list
}

// freeName returns name, or name with the first numeric suffix not yet
// taken in the export directory. Caller must hold w.mu.
func (w *Writer) freeName(name string) string {
	stem := strings.TrimSuffix(name, ".json")
	for i := 2; ; i++ {
		if _, err := os.Stat(filepath.Join(w.dir, name)); errors.Is(err, os.ErrNotExist) {
			return name
		}
		name = fmt.Sprintf("%s_%d.json", stem, i)
	}
}

// writeAtomic writes to a temp file then renames it over name.
// Caller must hold w.mu.
func (w *Writer) writeAtomic(name string, data []byte) error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return err
	}
	path := filepath.Join(w.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
