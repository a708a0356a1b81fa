// Package pages holds the per-route initializers and actions: the donation
// dashboard, the contact and NGO registration forms, the seeded listings and
// the thank-you page.
package pages

import (
	"time"

	"github.com/rs/zerolog"

	"connectong/internal/fragment"
	"connectong/internal/metrics"
	"connectong/internal/router"
	"connectong/internal/storage"
)

// Route names.
const (
	RouteHome            = "home"
	RouteContact         = "contact"
	RouteNGORegistration = "ngo-registration"
	RouteDonations       = "donations"
	RouteCompanies       = "companies"
	RouteNGOListing      = "ngo-listing"
	RouteThankYou        = "thank-you"
)

// Routes lists every route the portal serves.
var Routes = []string{
	RouteHome, RouteContact, RouteNGORegistration, RouteDonations,
	RouteCompanies, RouteNGOListing, RouteThankYou,
}

// Action names.
const (
	ActionDonate = "donate"
	ActionRemove = "remove"
	ActionSubmit = "submit"
)

// How long success messages stay visible before the client moves on.
const (
	DonationDelay = 900 * time.Millisecond
	FormDelay     = 800 * time.Millisecond
)

// Deps are the collaborators shared by every page.
type Deps struct {
	// Seeds serves ngos.json and companies.json.
	Seeds fragment.Source
	// Uploads is optional; without it only file names are kept.
	Uploads *storage.FileStore
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
	Now     func() time.Time
}

// Register wires every initializer and action into r.
func Register(r *router.Router, d Deps) {
	if d.Now == nil {
		d.Now = time.Now
	}

	r.Register(RouteDonations, d.initDonations)
	r.Handle(RouteDonations, ActionDonate, d.donate)
	r.Handle(RouteDonations, ActionRemove, d.removeDonation)

	r.Handle(RouteContact, ActionSubmit, d.submitContact)

	r.Register(RouteNGORegistration, d.initNGORegistration)
	r.Handle(RouteNGORegistration, ActionSubmit, d.submitNGO)

	r.Register(RouteNGOListing, d.initNGOListing)
	r.Register(RouteCompanies, d.initCompanies)

	r.Register(RouteThankYou, d.initThankYou)
}
