package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"connectong/internal/domain"
)

// Keys of the persisted lists and read-once pointers.
const (
	KeyDonations    = "connect_ong_donations"
	KeyContacts     = "connect_ong_contacts"
	KeyNGOs         = "connect_ong_ngos"
	KeyCompanies    = "connect_ong_companies"
	KeyLastDonation = "connect_ong_last_donation"
	KeyLastContact  = "connect_ong_last_contact"
)

// Keys lists every key a visitor namespace may hold.
var Keys = []string{KeyDonations, KeyContacts, KeyNGOs, KeyCompanies, KeyLastDonation, KeyLastContact}

// PortalStore persists the record lists of one visitor namespace in a KV
// backend. Every mutation reads the whole list, changes it and writes the
// whole list back. The mutex only serialises writers inside this process;
// instances sharing a postgres or redis backend can still lose updates when
// the same visitor writes through two of them at once.
type PortalStore struct {
	kv        domain.KV
	ids       IDGenerator
	now       func() time.Time
	logger    zerolog.Logger
	mu        *sync.Mutex
	namespace string
}

// Option customizes a PortalStore.
type Option func(*PortalStore)

func WithIDGenerator(ids IDGenerator) Option {
	return func(s *PortalStore) { s.ids = ids }
}

func WithClock(now func() time.Time) Option {
	return func(s *PortalStore) { s.now = now }
}

// WithLogger sets the logger used for failures that do not fail the call.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *PortalStore) { s.logger = logger }
}

func NewPortalStore(kv domain.KV, opts ...Option) *PortalStore {
	s := &PortalStore{
		kv:     kv,
		ids:    UUIDGenerator{},
		now:    time.Now,
		logger: zerolog.Nop(),
		mu:     &sync.Mutex{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ForVisitor returns a view of the store scoped to the visitor id. Views
// share the backend and the write lock.
func (s *PortalStore) ForVisitor(visitorID string) *PortalStore {
	scoped := *s
	scoped.namespace = strings.TrimSpace(visitorID)
	return &scoped
}

func (s *PortalStore) key(name string) string {
	if s.namespace == "" {
		return name
	}
	return s.namespace + "/" + name
}

// ReadList returns the list stored under key. Absent and unparseable values
// both yield an empty list; only backend errors are returned.
func ReadList[T any](ctx context.Context, s *PortalStore, key string) ([]T, error) {
	raw, ok, err := s.kv.Get(ctx, s.key(key))
	if err != nil {
		return nil, fmt.Errorf("repo: read %s: %w", key, err)
	}
	var list []T
	if ok && len(raw) > 0 {
		if err := json.Unmarshal(raw, &list); err != nil {
			list = nil
		}
	}
	if list == nil {
		list = []T{}
	}
	return list, nil
}

// WriteList overwrites the whole value stored under key.
func (s *PortalStore) WriteList(ctx context.Context, key string, list any) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("repo: encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, s.key(key), raw); err != nil {
		return fmt.Errorf("repo: write %s: %w", key, err)
	}
	return nil
}

// take reads a pointer value and deletes it, so it is seen at most once.
func take[T any](ctx context.Context, s *PortalStore, key string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok, err := s.kv.Get(ctx, s.key(key))
	if err != nil {
		return nil, fmt.Errorf("repo: read %s: %w", key, err)
	}
	if !ok {
		return nil, nil
	}
	if err := s.kv.Delete(ctx, s.key(key)); err != nil {
		return nil, fmt.Errorf("repo: delete %s: %w", key, err)
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, nil
	}
	return &v, nil
}

func prepend[T any](item T, list []T) []T {
	return append([]T{item}, list...)
}

// point records v as the read-once pointer under key. The record it points
// to is already stored, so a failed write only costs the thank-you details.
func (s *PortalStore) point(ctx context.Context, key string, v any) {
	if err := s.WriteList(ctx, key, v); err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("last record pointer not saved")
	}
}

// seed persists items as the list under key unless the list already holds
// entries, in which case the stored list is returned untouched. Items
// without an id get a fresh one.
func seed[T any](ctx context.Context, s *PortalStore, key string, items []T, id func(*T) *string) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := ReadList[T](ctx, s, key)
	if err != nil {
		return nil, err
	}
	if len(current) > 0 {
		return current, nil
	}
	list := make([]T, len(items))
	copy(list, items)
	for i := range list {
		if p := id(&list[i]); *p == "" {
			*p = s.ids.NewID()
		}
	}
	return list, s.WriteList(ctx, key, list)
}

func (s *PortalStore) Donations(ctx context.Context) ([]domain.Donation, error) {
	return ReadList[domain.Donation](ctx, s, KeyDonations)
}

// CreateDonation prepends a donation and records it as the last donation.
func (s *PortalStore) CreateDonation(ctx context.Context, amount float64, category string) (domain.Donation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := ReadList[domain.Donation](ctx, s, KeyDonations)
	if err != nil {
		return domain.Donation{}, err
	}
	donation := domain.Donation{
		ID:       s.ids.NewID(),
		Amount:   amount,
		Category: category,
		Date:     s.now().UTC(),
	}
	if err := s.WriteList(ctx, KeyDonations, prepend(donation, list)); err != nil {
		return domain.Donation{}, err
	}
	s.point(ctx, KeyLastDonation, donation)
	return donation, nil
}

// RemoveDonation drops the donation with id and reports whether it existed.
func (s *PortalStore) RemoveDonation(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := ReadList[domain.Donation](ctx, s, KeyDonations)
	if err != nil {
		return false, err
	}
	kept := make([]domain.Donation, 0, len(list))
	for _, d := range list {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(list) {
		return false, nil
	}
	return true, s.WriteList(ctx, KeyDonations, kept)
}

func (s *PortalStore) TakeLastDonation(ctx context.Context) (*domain.Donation, error) {
	return take[domain.Donation](ctx, s, KeyLastDonation)
}

func (s *PortalStore) Contacts(ctx context.Context) ([]domain.Contact, error) {
	return ReadList[domain.Contact](ctx, s, KeyContacts)
}

// CreateContact assigns id and timestamp, prepends the contact and records it
// as the last contact.
func (s *PortalStore) CreateContact(ctx context.Context, contact domain.Contact) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := ReadList[domain.Contact](ctx, s, KeyContacts)
	if err != nil {
		return domain.Contact{}, err
	}
	contact.ID = s.ids.NewID()
	contact.CreatedAt = s.now().UTC()
	if contact.Interests == nil {
		contact.Interests = []string{}
	}
	if err := s.WriteList(ctx, KeyContacts, prepend(contact, list)); err != nil {
		return domain.Contact{}, err
	}
	s.point(ctx, KeyLastContact, contact)
	return contact, nil
}

func (s *PortalStore) TakeLastContact(ctx context.Context) (*domain.Contact, error) {
	return take[domain.Contact](ctx, s, KeyLastContact)
}

func (s *PortalStore) NGOs(ctx context.Context) ([]domain.NGORegistration, error) {
	return ReadList[domain.NGORegistration](ctx, s, KeyNGOs)
}

func (s *PortalStore) CreateNGO(ctx context.Context, ngo domain.NGORegistration) (domain.NGORegistration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := ReadList[domain.NGORegistration](ctx, s, KeyNGOs)
	if err != nil {
		return domain.NGORegistration{}, err
	}
	ngo.ID = s.ids.NewID()
	ngo.CreatedAt = s.now().UTC()
	if ngo.Color == "" {
		ngo.Color = domain.DefaultNGOColor
	}
	if err := s.WriteList(ctx, KeyNGOs, prepend(ngo, list)); err != nil {
		return domain.NGORegistration{}, err
	}
	return ngo, nil
}

// SeedNGOs persists seed entries as the initial list, keeping seed order.
// Entries without an id get one so identifiers stay unique. A list that
// already has entries wins over the seed and is returned as stored.
func (s *PortalStore) SeedNGOs(ctx context.Context, entries []domain.NGORegistration) ([]domain.NGORegistration, error) {
	return seed(ctx, s, KeyNGOs, entries, func(n *domain.NGORegistration) *string { return &n.ID })
}

func (s *PortalStore) Companies(ctx context.Context) ([]domain.CompanyPartner, error) {
	return ReadList[domain.CompanyPartner](ctx, s, KeyCompanies)
}

func (s *PortalStore) SeedCompanies(ctx context.Context, entries []domain.CompanyPartner) ([]domain.CompanyPartner, error) {
	return seed(ctx, s, KeyCompanies, entries, func(c *domain.CompanyPartner) *string { return &c.ID })
}

// Export returns the raw stored value of every key present in the namespace.
func (s *PortalStore) Export(ctx context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte, len(Keys))
	for _, key := range Keys {
		raw, ok, err := s.kv.Get(ctx, s.key(key))
		if err != nil {
			return nil, fmt.Errorf("repo: export %s: %w", key, err)
		}
		if ok {
			out[key] = raw
		}
	}
	return out, nil
}

// Clear deletes every key of the namespace.
func (s *PortalStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range Keys {
		if err := s.kv.Delete(ctx, s.key(key)); err != nil {
			return fmt.Errorf("repo: clear %s: %w", key, err)
		}
	}
	return nil
}

var _ domain.PortalStore = (*PortalStore)(nil)
