package pages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"connectong/internal/domain"
	"connectong/internal/router"
)

const (
	seedNGOs      = "ngos.json"
	seedCompanies = "companies.json"
)

// loadSeed fetches and decodes a seed file. Seed records never carry ids or
// timestamps; any present are kept as-is.
func loadSeed[T any](ctx context.Context, d Deps, name string) ([]T, error) {
	if d.Seeds == nil {
		return nil, fmt.Errorf("%w: no seed source for %s", domain.ErrFetch, name)
	}
	raw, err := d.Seeds.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrFetch, name, err)
	}
	return out, nil
}

func seedMessage(err error) string {
	if errors.Is(err, domain.ErrFragmentNotFound) {
		return "Could not load the list: data file not found."
	}
	return "Could not load the list. Try again later."
}

func (d Deps) initNGOListing(ctx context.Context, p *router.Page) error {
	el := p.Doc.ByID("ngo-list")
	if !el.Exists() {
		return nil
	}
	list, err := p.Session.Store.NGOs(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		seed, err := loadSeed[domain.NGORegistration](ctx, d, seedNGOs)
		if err != nil {
			d.Logger.Error().Err(err).Str("seed", seedNGOs).Msg("seed load failed")
			return el.SetInnerHTML(render("data-error", seedMessage(err)))
		}
		if list, err = p.Session.Store.SeedNGOs(ctx, seed); err != nil {
			return err
		}
		d.Metrics.Seeded("ngos")
	}

	var b strings.Builder
	for _, ngo := range list {
		b.WriteString(render("ngo", struct {
			Color, Name, Description, Email, Phone string
		}{safeColor(ngo.Color), ngo.Name, ngo.Description, ngo.Email, ngo.Phone}))
	}
	return el.SetInnerHTML(b.String())
}

func (d Deps) initCompanies(ctx context.Context, p *router.Page) error {
	el := p.Doc.ByID("company-list")
	if !el.Exists() {
		return nil
	}
	list, err := p.Session.Store.Companies(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		seed, err := loadSeed[domain.CompanyPartner](ctx, d, seedCompanies)
		if err != nil {
			d.Logger.Error().Err(err).Str("seed", seedCompanies).Msg("seed load failed")
			return el.SetInnerHTML(render("data-error", seedMessage(err)))
		}
		if list, err = p.Session.Store.SeedCompanies(ctx, seed); err != nil {
			return err
		}
		d.Metrics.Seeded("companies")
	}

	var b strings.Builder
	for _, c := range list {
		b.WriteString(render("company", c))
	}
	return el.SetInnerHTML(b.String())
}
