package domain

import "context"

// KV is the raw key/value backend the portal store serializes lists into.
type KV interface {
	// Get reports ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// PortalStore is the typed persistence surface page initializers depend on.
// Every list is ordered newest first.
type PortalStore interface {
	Donations(ctx context.Context) ([]Donation, error)
	CreateDonation(ctx context.Context, amount float64, category string) (Donation, error)
	RemoveDonation(ctx context.Context, id string) (bool, error)
	TakeLastDonation(ctx context.Context) (*Donation, error)

	Contacts(ctx context.Context) ([]Contact, error)
	CreateContact(ctx context.Context, contact Contact) (Contact, error)
	TakeLastContact(ctx context.Context) (*Contact, error)

	NGOs(ctx context.Context) ([]NGORegistration, error)
	CreateNGO(ctx context.Context, ngo NGORegistration) (NGORegistration, error)
	SeedNGOs(ctx context.Context, seed []NGORegistration) ([]NGORegistration, error)

	Companies(ctx context.Context) ([]CompanyPartner, error)
	SeedCompanies(ctx context.Context, seed []CompanyPartner) ([]CompanyPartner, error)
}
