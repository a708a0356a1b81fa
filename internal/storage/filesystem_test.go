package storage

import (
	"context"
	"testing"
)

func TestSaveUploadAndRead(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	key, err := store.SaveUpload(ctx, "logos", "ngo-1", `C:\Users\ana\logo.png`, []byte("png"))
	if err != nil {
		t.Fatalf("SaveUpload: %v", err)
	}
	if key != "logos/ngo-1/logo.png" {
		t.Fatalf("key = %q", key)
	}
	data, err := store.Read(ctx, key)
	if err != nil || string(data) != "png" {
		t.Fatalf("Read = %q, %v", data, err)
	}

	key, err = store.SaveUpload(ctx, "logos", "ngo-2", "../../escape.png", []byte("x"))
	if err != nil || key != "logos/ngo-2/escape.png" {
		t.Fatalf("SaveUpload with traversal = %q, %v", key, err)
	}
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "logos/a.png", want: "logos/a.png"},
		{key: "/logos//a.png", want: "logos/a.png"},
		{key: `logos\a.png`, want: "logos/a.png"},
		{key: "../a.png", wantErr: true},
		{key: "logos/../../a.png", wantErr: true},
		{key: " ", wantErr: true},
	}
	for _, tc := range tests {
		got, err := sanitizeKey(tc.key)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("sanitizeKey(%q) should fail, got %q", tc.key, got)
			}
			continue
		}
		if err != nil || got != tc.want {
			t.Fatalf("sanitizeKey(%q) = %q, %v; want %q", tc.key, got, err, tc.want)
		}
	}
}
