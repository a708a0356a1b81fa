package domain

import "time"

// NGOCategory is the legal form selected on the registration form.
type NGOCategory string

const (
	CategoryAssociation NGOCategory = "association"
	CategoryFoundation  NGOCategory = "foundation"
	CategoryInstitute   NGOCategory = "institute"
	CategoryCooperative NGOCategory = "cooperative"
)

// NGOCategories lists the accepted category values.
var NGOCategories = []string{
	string(CategoryAssociation),
	string(CategoryFoundation),
	string(CategoryInstitute),
	string(CategoryCooperative),
}

// DefaultNGOColor is used when a registration carries no color.
const DefaultNGOColor = "#6c757d"

// NGORegistration is a registered organization, either submitted by a
// visitor or loaded from the seed file.
type NGORegistration struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Site        string      `json:"site,omitempty"`
	FoundedYear int         `json:"founded_year,omitempty"`
	State       string      `json:"state,omitempty"`
	Description string      `json:"description"`
	Services    []string    `json:"services,omitempty"`
	Category    NGOCategory `json:"category,omitempty"`
	Color       string      `json:"color,omitempty"`
	Priority    int         `json:"priority,omitempty"`
	LogoName    string      `json:"logo_name,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
}

// CompanyPartner is read-only partner data loaded from the seed file.
type CompanyPartner struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Area         string `json:"area"`
	City         string `json:"city"`
	DonationType string `json:"donation_type"`
}
