package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"connectong/internal/adapter/kv"
	"connectong/internal/domain"
)

func newTestStore(t *testing.T) (*PortalStore, *kv.Memory) {
	t.Helper()
	backend := kv.NewMemory()
	n := 0
	ids := IDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	clock := func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return NewPortalStore(backend, WithIDGenerator(ids), WithClock(clock)).ForVisitor("visitor-1"), backend
}

func TestReadListMissingAndMalformed(t *testing.T) {
	ctx := context.Background()
	store, backend := newTestStore(t)

	list, err := store.Donations(ctx)
	if err != nil {
		t.Fatalf("Donations: %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", list)
	}

	for _, raw := range []string{"not json", `{"id":"x"}`, `[{"amount":"oops"}]`} {
		if err := backend.Set(ctx, "visitor-1/"+KeyDonations, []byte(raw)); err != nil {
			t.Fatalf("Set: %v", err)
		}
		list, err := store.Donations(ctx)
		if err != nil {
			t.Fatalf("malformed value %q surfaced error: %v", raw, err)
		}
		if len(list) != 0 {
			t.Fatalf("malformed value %q produced %d entries", raw, len(list))
		}
	}
}

func TestCreateDonationPrependsWithFreshID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	first, err := store.CreateDonation(ctx, 50, "Food")
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	second, err := store.CreateDonation(ctx, 150, "Education")
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("ids should differ, both %q", first.ID)
	}

	list, _ := store.Donations(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Fatalf("expected newest first, got %q then %q", list[0].ID, list[1].ID)
	}
	if !list[0].Date.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("date not taken from clock: %s", list[0].Date)
	}

	stats := domain.SummarizeDonations(list)
	if stats.Total != 200 || stats.Count != 2 || stats.Average != 100 || stats.Progress != 10 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestRemoveDonationKeepsOrder(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	for _, amount := range []float64{10, 20, 30, 40} {
		if _, err := store.CreateDonation(ctx, amount, "Other"); err != nil {
			t.Fatalf("CreateDonation: %v", err)
		}
	}
	// list is id-4, id-3, id-2, id-1
	removed, err := store.RemoveDonation(ctx, "id-3")
	if err != nil || !removed {
		t.Fatalf("RemoveDonation = %v, %v", removed, err)
	}
	list, _ := store.Donations(ctx)
	want := []string{"id-4", "id-2", "id-1"}
	if len(list) != len(want) {
		t.Fatalf("expected %d donations, got %d", len(want), len(list))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Fatalf("list[%d] = %q, want %q", i, list[i].ID, id)
		}
	}

	removed, err = store.RemoveDonation(ctx, "missing")
	if err != nil || removed {
		t.Fatalf("RemoveDonation(missing) = %v, %v", removed, err)
	}
}

func TestLastPointersAreReadOnce(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if d, err := store.TakeLastDonation(ctx); err != nil || d != nil {
		t.Fatalf("expected no last donation, got %#v, %v", d, err)
	}

	created, _ := store.CreateDonation(ctx, 25, "Health")
	got, err := store.TakeLastDonation(ctx)
	if err != nil || got == nil || got.ID != created.ID {
		t.Fatalf("TakeLastDonation = %#v, %v", got, err)
	}
	if again, _ := store.TakeLastDonation(ctx); again != nil {
		t.Fatalf("last donation should be consumed, got %#v", again)
	}

	contact, err := store.CreateContact(ctx, domain.Contact{Name: "Ana", Preference: domain.PreferEmail})
	if err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	if contact.ID == "" || contact.CreatedAt.IsZero() {
		t.Fatalf("contact missing id or timestamp: %#v", contact)
	}
	last, _ := store.TakeLastContact(ctx)
	if last == nil || last.Name != "Ana" {
		t.Fatalf("TakeLastContact = %#v", last)
	}
	if again, _ := store.TakeLastContact(ctx); again != nil {
		t.Fatalf("last contact should be consumed")
	}
}

func TestVisitorsAreIsolated(t *testing.T) {
	ctx := context.Background()
	base := NewPortalStore(kv.NewMemory())
	alice := base.ForVisitor("alice")
	bob := base.ForVisitor("bob")

	if _, err := alice.CreateDonation(ctx, 10, "Food"); err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	list, _ := bob.Donations(ctx)
	if len(list) != 0 {
		t.Fatalf("bob sees alice's donations: %#v", list)
	}
}

func TestSeedAndCreateNGOs(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	seeded, err := store.SeedNGOs(ctx, []domain.NGORegistration{{Name: "Seed A"}, {Name: "Seed B", ID: "fixed"}})
	if err != nil {
		t.Fatalf("SeedNGOs: %v", err)
	}
	if seeded[0].ID == "" || seeded[1].ID != "fixed" {
		t.Fatalf("unexpected seeded ids: %q %q", seeded[0].ID, seeded[1].ID)
	}

	created, err := store.CreateNGO(ctx, domain.NGORegistration{Name: "Mine"})
	if err != nil {
		t.Fatalf("CreateNGO: %v", err)
	}
	if created.Color != domain.DefaultNGOColor {
		t.Fatalf("default color not applied: %q", created.Color)
	}
	list, _ := store.NGOs(ctx)
	if len(list) != 3 || list[0].Name != "Mine" || list[1].Name != "Seed A" {
		t.Fatalf("unexpected list order: %#v", list)
	}
}

func TestSeedKeepsEntriesCreatedMeanwhile(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	if list, _ := store.NGOs(ctx); len(list) != 0 {
		t.Fatalf("expected empty list before seeding, got %d", len(list))
	}
	if _, err := store.CreateNGO(ctx, domain.NGORegistration{Name: "Mine"}); err != nil {
		t.Fatalf("CreateNGO: %v", err)
	}
	got, err := store.SeedNGOs(ctx, []domain.NGORegistration{{Name: "Seed A"}})
	if err != nil {
		t.Fatalf("SeedNGOs: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Mine" {
		t.Fatalf("SeedNGOs should return the stored list, got %#v", got)
	}
	list, _ := store.NGOs(ctx)
	if len(list) != 1 || list[0].Name != "Mine" {
		t.Fatalf("registration lost to seed: %#v", list)
	}

	if _, err := store.SeedCompanies(ctx, []domain.CompanyPartner{{Name: "First"}}); err != nil {
		t.Fatalf("SeedCompanies: %v", err)
	}
	again, err := store.SeedCompanies(ctx, []domain.CompanyPartner{{Name: "Second"}, {Name: "Third"}})
	if err != nil {
		t.Fatalf("SeedCompanies: %v", err)
	}
	if len(again) != 1 || again[0].Name != "First" {
		t.Fatalf("second seed replaced the stored companies: %#v", again)
	}
}

// pointerFailKV fails every write to a last-record pointer.
type pointerFailKV struct {
	*kv.Memory
}

func (f pointerFailKV) Set(ctx context.Context, key string, value []byte) error {
	if strings.HasSuffix(key, KeyLastDonation) || strings.HasSuffix(key, KeyLastContact) {
		return errors.New("write refused")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestCreateSurvivesPointerWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := NewPortalStore(pointerFailKV{kv.NewMemory()}).ForVisitor("visitor-1")

	donation, err := store.CreateDonation(ctx, 30, "Food")
	if err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}
	list, _ := store.Donations(ctx)
	if len(list) != 1 || list[0].ID != donation.ID {
		t.Fatalf("donation not persisted exactly once: %#v", list)
	}
	if last, _ := store.TakeLastDonation(ctx); last != nil {
		t.Fatalf("unexpected last donation %#v", last)
	}

	if _, err := store.CreateContact(ctx, domain.Contact{Name: "Ana"}); err != nil {
		t.Fatalf("CreateContact: %v", err)
	}
	contacts, _ := store.Contacts(ctx)
	if len(contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(contacts))
	}
}

func TestExportAndClear(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	if _, err := store.CreateDonation(ctx, 10, "Food"); err != nil {
		t.Fatalf("CreateDonation: %v", err)
	}

	exported, err := store.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, ok := exported[KeyDonations]; !ok {
		t.Fatalf("donations missing from export: %v", exported)
	}
	if _, ok := exported[KeyContacts]; ok {
		t.Fatalf("absent keys should not be exported")
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	exported, _ = store.Export(ctx)
	if len(exported) != 0 {
		t.Fatalf("expected empty export after Clear, got %v", exported)
	}
}
