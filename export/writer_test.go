package export_test

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"prompt-editor/document"
	"prompt-editor/export"
	"prompt-editor/library"
)

var base = time.Date(2025, time.January, 2, 3, 4, 5, 0, time.Local)

func TestNewWriterMissingDir(t *testing.T) {
	w, err := export.NewWriter(filepath.Join(t.TempDir(), "nonexistent"))
	if err != nil {
		t.Fatalf("expected no error for missing dir, got %v", err)
	}
	if len(w.Recent()) != 0 {
		t.Fatalf("expected no recent exports, got %v", w.Recent())
	}
}

func TestWriteAndRead(t *testing.T) {
	dir := t.TempDir()
	w, _ := export.NewWriter(dir)

	name, err := w.Write(document.PresetsFile, document.Preset{}, base)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if name != "presets_20250102_030405.json" {
		t.Fatalf("unexpected name %q", name)
	}
	data, err := w.Read(name)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if _, err := document.ParsePreset(data); err != nil {
		t.Fatalf("written preset does not parse: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, name+".tmp")); !errors.Is(err, os.ErrNotExist) {
		t.Fatal("temp file left behind")
	}
}

func TestWriteKeywordFile(t *testing.T) {
	w, _ := export.NewWriter(t.TempDir())
	lib := library.New()
	lib.AddKeyword(library.Positive, "Style", "anime", "")
	name, err := w.Write(document.KeywordsFile, document.KeywordFile{Library: lib}, base)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := w.Read(name)
	f, err := document.ParseKeywordFile(data)
	if err != nil {
		t.Fatalf("ParseKeywordFile: %v", err)
	}
	if _, ok := f.Library.FindKeyword(library.Positive, "Style", "anime"); !ok {
		t.Fatal("keyword missing from export")
	}
}

func TestRecentOrderAndReload(t *testing.T) {
	dir := t.TempDir()
	w, _ := export.NewWriter(dir)
	var names []string
	for i := 0; i < 3; i++ {
		name, err := w.Write(document.PresetsFile, document.Preset{}, base.Add(time.Duration(i)*time.Second))
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		names = append(names, name)
	}

	w2, err := export.NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter reload: %v", err)
	}
	got := w2.Recent()
	want := []string{names[2], names[1], names[0]}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestWriteSameSecondKeepsBoth(t *testing.T) {
	w, _ := export.NewWriter(t.TempDir())
	first, _ := w.Write(document.PresetsFile, document.Preset{}, base)
	w.Write(document.KeywordsFile, document.KeywordFile{}, base)
	second, err := w.Write(document.PresetsFile, document.Preset{}, base)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if first != "presets_20250102_030405.json" || second != "presets_20250102_030405_2.json" {
		t.Fatalf("unexpected names %q, %q", first, second)
	}
	if _, err := w.Read(first); err != nil {
		t.Fatalf("first export was replaced: %v", err)
	}
	got := w.Recent()
	if len(got) != 3 || got[0] != second {
		t.Fatalf("unexpected recent list %v", got)
	}
}

func TestRecentCap10(t *testing.T) {
	w, _ := export.NewWriter(t.TempDir())
	for i := 0; i < 12; i++ {
		w.Write(document.PresetsFile, document.Preset{}, base.Add(time.Duration(i)*time.Second))
	}
	if got := w.Recent(); len(got) != 10 {
		t.Fatalf("expected cap of 10, got %d: %v", len(got), got)
	}
}

func TestRecentFiltersRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	w, _ := export.NewWriter(dir)
	old, _ := w.Write(document.PresetsFile, document.Preset{}, base)
	os.Remove(filepath.Join(dir, old))
	w.Write(document.PresetsFile, document.Preset{}, base.Add(time.Second))
	for _, n := range w.Recent() {
		if n == old {
			t.Fatalf("removed file %q should have been dropped: %v", old, w.Recent())
		}
	}
}

func TestReadRejectsBadNames(t *testing.T) {
	w, _ := export.NewWriter(t.TempDir())
	for _, name := range []string{"", "../etc/passwd", "a/b.json", `a\b.json`, ".hidden.json", "recent.json", "notes.txt"} {
		if _, err := w.Read(name); !errors.Is(err, export.ErrInvalidName) {
			t.Fatalf("%q: expected ErrInvalidName, got %v", name, err)
		}
	}
	if _, err := w.Read("presets_19990101_000000.json"); !errors.Is(err, export.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestConcurrentWrite(t *testing.T) {
	w, _ := export.NewWriter(t.TempDir())
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			w.Write(document.PresetsFile, document.Preset{}, base.Add(time.Duration(n)*time.Second))
		}(i)
	}
	wg.Wait()
	if got := len(w.Recent()); got != 10 {
		t.Fatalf("expected 10 recent exports, got %d", got)
	}
}
