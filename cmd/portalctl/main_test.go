package main

import (
	"archive/zip"
	"context"
	"path/filepath"
	"testing"

	"connectong/internal/adapter/kv"
	"connectong/internal/adapter/repo"
)

func TestExportWritesStoredLists(t *testing.T) {
	ctx := context.Background()
	store := repo.NewPortalStore(kv.NewMemory()).ForVisitor("0b7e9a0e-5d3c-4a57-9c1b-1d2f3a4b5c6d")
	if _, err := store.CreateDonation(ctx, 12.5, "Food"); err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}

	path := filepath.Join(t.TempDir(), "export.zip")
	n, err := export(ctx, store, path)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	// The donation list and the last-donation pointer.
	if n != 2 {
		t.Fatalf("exported %d lists, want 2", n)
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer zr.Close()
	if zr.File[0].Name != repo.KeyDonations+".json" {
		t.Fatalf("first entry = %s", zr.File[0].Name)
	}
}
