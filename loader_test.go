package wealthtrack

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileIsEmptyBook(t *testing.T) {
	b, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(b.Ledger.holdings) != 0 {
		t.Error("missing file should yield an empty book")
	}
}

func TestSaveLoad(t *testing.T) {
	// the parent directory does not exist yet
	path := filepath.Join(t.TempDir(), "books", "wealthtrack.json")
	if err := Save(path, testBook(t)); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Ledger.holdings) != 2 || len(got.Deposits) != 1 {
		t.Errorf("book did not survive the disk round trip: %d holdings, %d deposits",
			len(got.Ledger.holdings), len(got.Deposits))
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a corrupt book file")
	}
}
