package selection_test

import (
	"errors"
	"testing"

	"prompt-editor/library"
	"prompt-editor/selection"
)

func newLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, err := library.Parse([]byte(`{"promptCategories":[
		{"category":"Lighting","description":"","keywords":[{"key":"soft light","desc":"gentle"},{"key":"rim light","desc":"edge"}]},
		{"category":"Style","description":"","keywords":[{"key":"oil painting","desc":"classic"}]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return lib
}

func id(category, key string) selection.Identity {
	return selection.Identity{Category: category, Key: key}
}

func TestToggleAppendsWithDescription(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	if !l.Toggle(lib, id("Lighting", "soft light"), true) {
		t.Fatal("expected change")
	}
	entries := l.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Desc != "gentle" || e.Mode != selection.Normal || e.Value != 1.0 || e.Kind != library.Positive {
		t.Fatalf("unexpected entry %+v", e)
	}
}

func TestToggleIdempotent(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	l.Toggle(lib, id("Lighting", "soft light"), true)
	if l.Toggle(lib, id("Lighting", "soft light"), true) {
		t.Fatal("second check must be a no-op")
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", l.Len())
	}
	if l.Toggle(lib, id("Style", "oil painting"), false) {
		t.Fatal("unchecking an absent entry must be a no-op")
	}
	if !l.Toggle(lib, id("Lighting", "soft light"), false) || l.Len() != 0 {
		t.Fatal("uncheck should remove the entry")
	}
}

func TestIdentityUniqueness(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	ids := []selection.Identity{
		id("Lighting", "soft light"), id("Style", "oil painting"), id("Lighting", "rim light"),
	}
	for i := 0; i < 60; i++ {
		l.Toggle(lib, ids[i%3], i%4 != 3)
		seen := map[selection.Identity]bool{}
		for _, e := range l.Entries() {
			if seen[e.Identity] {
				t.Fatalf("duplicate identity %+v after step %d", e.Identity, i)
			}
			seen[e.Identity] = true
		}
	}
	l.Toggle(lib, id("Style", "oil painting"), true)
	before := l.Len()
	if l.Add(id("Style", "oil painting"), selection.Plain(), "") || l.Len() != before {
		t.Fatal("Add must not duplicate an identity")
	}
}

func TestMove(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	l.Toggle(lib, id("Lighting", "soft light"), true)
	l.Toggle(lib, id("Lighting", "rim light"), true)
	l.Toggle(lib, id("Style", "oil painting"), true)

	if err := l.Move(0, 2); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got := l.Render(); got != "rim light, oil painting, soft light" {
		t.Fatalf("unexpected order %q", got)
	}
	if err := l.Move(2, 0); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if got := l.Render(); got != "soft light, rim light, oil painting" {
		t.Fatalf("unexpected order %q", got)
	}
	for _, c := range [][2]int{{-1, 0}, {0, 3}, {3, 0}} {
		if err := l.Move(c[0], c[1]); !errors.Is(err, selection.ErrIndexOutOfRange) {
			t.Fatalf("Move(%d,%d): expected ErrIndexOutOfRange, got %v", c[0], c[1], err)
		}
	}
	if got := l.Render(); got != "soft light, rim light, oil painting" {
		t.Fatalf("failed move must not change order, got %q", got)
	}
}

func TestRemoveAndReset(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	l.Toggle(lib, id("Lighting", "soft light"), true)
	l.Toggle(lib, id("Style", "oil painting"), true)
	if !l.Remove(id("Lighting", "soft light")) {
		t.Fatal("Remove should report a change")
	}
	if l.Remove(id("Lighting", "soft light")) {
		t.Fatal("second Remove should be a no-op")
	}
	l.Reset()
	if l.Len() != 0 || l.Render() != "" {
		t.Fatalf("Reset left %d entries", l.Len())
	}
}

func TestSyncDropsOrphansAndRefreshesDesc(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	l.Toggle(lib, id("Lighting", "soft light"), true)
	l.Toggle(lib, id("Style", "oil painting"), true)

	if _, err := lib.DeleteKeywords([]library.Ref{{Kind: library.Positive, Category: "Style", Key: "oil painting"}}); err != nil {
		t.Fatalf("DeleteKeywords: %v", err)
	}
	if err := lib.EditDescription(library.Positive, "Lighting", "soft light", "diffused"); err != nil {
		t.Fatalf("EditDescription: %v", err)
	}

	removed := l.Sync(lib)
	if len(removed) != 1 || removed[0] != id("Style", "oil painting") {
		t.Fatalf("unexpected removed set %v", removed)
	}
	entries := l.Entries()
	if len(entries) != 1 || entries[0].Desc != "diffused" {
		t.Fatalf("unexpected survivors %+v", entries)
	}
}

func TestRekeyKeepsPositionAndEmphasis(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	l.Toggle(lib, id("Lighting", "soft light"), true)
	l.Toggle(lib, id("Lighting", "rim light"), true)
	l.Increase(id("Lighting", "soft light"))

	if !l.Rekey(id("Lighting", "soft light"), id("Lighting", "diffuse light")) {
		t.Fatal("Rekey should report a change")
	}
	if got := l.Render(); got != "(diffuse light), rim light" {
		t.Fatalf("unexpected render %q", got)
	}
	if l.Rekey(id("Lighting", "missing"), id("Lighting", "x")) {
		t.Fatal("Rekey of an absent identity must be a no-op")
	}
}

func TestEmphasisOnMissingEntry(t *testing.T) {
	l := selection.NewList(library.Negative)
	if l.Increase(id("A", "b")) || l.Decrease(id("A", "b")) {
		t.Fatal("emphasis change on an absent entry must be a no-op")
	}
}

func TestSoftLightEndToEnd(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	target := id("Lighting", "soft light")

	l.Toggle(lib, target, true)
	if got := l.Render(); got != "soft light" {
		t.Fatalf("got %q", got)
	}
	l.Increase(target)
	if got := l.Render(); got != "(soft light)" {
		t.Fatalf("got %q", got)
	}
	l.Increase(target)
	if got := l.Render(); got != "(soft light:1.2)" {
		t.Fatalf("got %q", got)
	}
	for i := 0; i < 5; i++ {
		l.Increase(target)
	}
	if got := l.Render(); got != "(soft light:2.0)" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderJoinsInOrder(t *testing.T) {
	lib := newLibrary(t)
	l := selection.NewList(library.Positive)
	l.Toggle(lib, id("Style", "oil painting"), true)
	l.Toggle(lib, id("Lighting", "rim light"), true)
	l.Decrease(id("Lighting", "rim light"))
	l.Decrease(id("Lighting", "rim light"))
	if got := l.Render(); got != "oil painting, [rim light:1.2]" {
		t.Fatalf("got %q", got)
	}
}
