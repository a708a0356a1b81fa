package pages

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"connectong/internal/dom"
	"connectong/internal/domain"
	"connectong/internal/router"
	"connectong/internal/validation"
)

// recentDonations is how many donations the dashboard lists.
const recentDonations = 10

func (d Deps) initDonations(ctx context.Context, p *router.Page) error {
	list, err := p.Session.Store.Donations(ctx)
	if err != nil {
		return err
	}
	renderDonations(p, list)
	return nil
}

// renderDonations redraws the aggregates and the recent list from scratch.
func renderDonations(p *router.Page, list []domain.Donation) {
	stats := domain.SummarizeDonations(list)
	locale := p.Session.Locale

	p.Doc.ByID("stat-total").SetText(formatMoney(locale, stats.Total))
	p.Doc.ByID("stat-count").SetText(strconv.Itoa(stats.Count))
	p.Doc.ByID("stat-average").SetText(formatMoney(locale, stats.Average))
	if bar := p.Doc.ByID("stat-progress"); bar.Exists() {
		bar.SetAttr("style", fmt.Sprintf("width: %d%%", stats.Progress))
		bar.SetAttr("aria-valuenow", strconv.Itoa(stats.Progress))
	}

	el := p.Doc.ByID("donation-list")
	if !el.Exists() {
		return
	}
	if len(list) == 0 {
		_ = el.SetInnerHTML(render("no-donations", nil))
		return
	}
	var b strings.Builder
	for i, donation := range list {
		if i == recentDonations {
			break
		}
		b.WriteString(render("donation", struct {
			ID, Amount, Category, When string
		}{donation.ID, formatMoney(locale, donation.Amount), donation.Category, formatWhen(donation.Date)}))
	}
	_ = el.SetInnerHTML(b.String())
}

func (d Deps) donate(ctx context.Context, p *router.Page, in validation.Form) (router.Outcome, error) {
	amount, err := strconv.ParseFloat(strings.ReplaceAll(in.Get("amount"), ",", "."), 64)
	if err != nil || amount < 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		res := validation.Result{
			Violations: []validation.Violation{{Field: "amount", Target: "donation-feedback", Message: "Choose a valid amount."}},
			Focus:      "amount",
		}
		_ = p.Doc.ByID("donation-feedback").SetInnerHTML(alert("danger", res.Violations[0].Message))
		d.Metrics.Rejected("donation")
		return router.Outcome{Message: res.Violations[0].Message, Result: res}, fmt.Errorf("%w: donation amount %q", domain.ErrValidation, in.Get("amount"))
	}
	category := in.Get("category")
	if category == "" {
		category = "Other"
	}

	donation, err := p.Session.Store.CreateDonation(ctx, amount, category)
	if err != nil {
		return router.Outcome{}, err
	}
	d.Metrics.Created("donation")

	list, err := p.Session.Store.Donations(ctx)
	if err != nil {
		return router.Outcome{}, err
	}
	renderDonations(p, list)

	msg := fmt.Sprintf("Donation of %s registered (simulation). Thank you!", formatMoney(p.Session.Locale, amount))
	for _, btn := range p.Doc.Root().Find(func(e *dom.Element) bool { return e.HasClass("btn-donate") }) {
		btn.SetAttr("disabled", "")
	}
	if page := p.Doc.ByID("donations-page"); page.Exists() {
		_ = page.PrependHTML(alert("success", msg))
	}

	return router.Outcome{
		Record:   donation,
		Message:  msg,
		Continue: &router.Continuation{Route: RouteThankYou, After: DonationDelay},
	}, nil
}

func (d Deps) removeDonation(ctx context.Context, p *router.Page, in validation.Form) (router.Outcome, error) {
	id := in.Get("id")
	removed, err := p.Session.Store.RemoveDonation(ctx, id)
	if err != nil {
		return router.Outcome{}, err
	}
	list, err := p.Session.Store.Donations(ctx)
	if err != nil {
		return router.Outcome{}, err
	}
	renderDonations(p, list)
	if !removed {
		return router.Outcome{Message: "Donation not found."}, fmt.Errorf("%w: donation %q", domain.ErrNotFound, id)
	}
	d.Metrics.Removed("donation")
	return router.Outcome{Message: "Donation removed."}, nil
}
