package zip

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestArchive(t *testing.T) {
	out, err := Archive([]Entry{
		{Name: "connect_ong_donations.json", Data: []byte(`[{"id":"a"}]`)},
		{Name: "connect_ong_contacts.json", Data: []byte(`[]`)},
	})
	if err != nil {
		t.Fatalf("Archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(out), int64(len(out)))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "connect_ong_donations.json" {
		t.Fatalf("unexpected files %#v", zr.File)
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != `[{"id":"a"}]` {
		t.Fatalf("content = %q", data)
	}
}

func TestArchiveRejectsDuplicates(t *testing.T) {
	if _, err := Archive([]Entry{{Name: "a"}, {Name: "a"}}); err == nil {
		t.Fatal("expected duplicate error")
	}
}
