package assetindex

import (
	"path/filepath"
	"testing"

	"github.com/veleiro/marionette/engine"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func TestRecordAndFindFold(t *testing.T) {
	idx := newTestIndex(t)
	rec := engine.AssetRecord{Name: "Widget", Path: "/Game/Blueprints/Widget", Class: "Blueprint"}
	if err := idx.Record(rec); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, ok := idx.FindFold("widget")
	if !ok {
		t.Fatal("case-insensitive lookup missed Widget")
	}
	if got != rec {
		t.Errorf("got %+v, want %+v", got, rec)
	}
	if _, ok := idx.FindFold("gadget"); ok {
		t.Error("unexpected hit for gadget")
	}
}

func TestRecordReplaces(t *testing.T) {
	idx := newTestIndex(t)
	if err := idx.Record(engine.AssetRecord{Name: "Widget", Path: "/Game/Old", Class: "Blueprint"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := idx.Record(engine.AssetRecord{Name: "Widget", Path: "/Game/New", Class: "Blueprint"}); err != nil {
		t.Fatalf("Record replace: %v", err)
	}
	got, _ := idx.FindFold("Widget")
	if got.Path != "/Game/New" {
		t.Errorf("path = %q, want /Game/New", got.Path)
	}
	all, err := idx.All()
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("len(All) = %d, want 1", len(all))
	}
}

func TestFileBackedIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.db")
	idx, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := idx.Record(engine.AssetRecord{Name: "Door", Path: "/Game/Blueprints/Door", Class: "Blueprint"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	idx.Close()

	// Rows survive reopening.
	idx2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer idx2.Close()
	if _, ok := idx2.FindFold("door"); !ok {
		t.Error("row lost across reopen")
	}
}
