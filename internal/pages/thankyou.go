package pages

import (
	"context"

	"connectong/internal/router"
)

// initThankYou shows the last donation, else the last contact, else a generic
// message. Only the pointer that was shown is consumed.
func (d Deps) initThankYou(ctx context.Context, p *router.Page) error {
	text := p.Doc.ByID("thank-you-text")
	details := p.Doc.ByID("thank-you-details")
	if !text.Exists() || !details.Exists() {
		return nil
	}

	donation, err := p.Session.Store.TakeLastDonation(ctx)
	if err != nil {
		return err
	}
	if donation != nil {
		text.SetText("Thank you for your donation!")
		return details.SetInnerHTML(render("thanks-donation", formatMoney(p.Session.Locale, donation.Amount)))
	}

	contact, err := p.Session.Store.TakeLastContact(ctx)
	if err != nil {
		return err
	}
	if contact != nil {
		subject := contact.Subject
		if subject == "" {
			subject = "your request"
		}
		text.SetText("Thank you, " + contact.Name + "!")
		return details.SetInnerHTML(render("thanks-contact", struct{ Subject, Preference string }{subject, string(contact.Preference)}))
	}

	text.SetText("Thank you for visiting Connect ONG!")
	details.SetText("Explore the organizations and find a way to help.")
	return nil
}
