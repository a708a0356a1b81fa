package geoip

import (
	"errors"
	"testing"
)

func TestOpenEmptyPathDisablesLookup(t *testing.T) {
	r, err := Open("  ")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil resolver, got %#v", r)
	}
	if r.Lookup() != nil {
		t.Fatal("expected nil lookup")
	}
	if _, err := r.CountryCode("203.0.113.9"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("CountryCode err = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenMissingDatabase(t *testing.T) {
	if _, err := Open(t.TempDir() + "/missing.mmdb"); err == nil {
		t.Fatal("expected error for missing database")
	}
}
