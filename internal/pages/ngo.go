package pages

import (
	"context"
	"strconv"

	"connectong/internal/domain"
	"connectong/internal/router"
	"connectong/internal/validation"
)

// defaultPriority is what the priority slider shows on a fresh form.
const defaultPriority = 5

// ngoSchema depends on the clock through the founding year range.
func (d Deps) ngoSchema() validation.Schema {
	return validation.Schema{
		Fields: []validation.Field{
			{Name: "name", Constraints: []validation.Constraint{validation.Required(), validation.MaxLen(maxNameLen)}},
			{Name: "email", Constraints: []validation.Constraint{validation.Required(), validation.Email()}},
			{Name: "phone", Constraints: []validation.Constraint{
				validation.Required(),
				validation.Pattern(validation.PhonePattern, "Enter a phone such as (11) 91234-5678."),
			}},
			{Name: "site", Constraints: []validation.Constraint{validation.URL()}},
			{Name: "founded_year", Constraints: []validation.Constraint{validation.Required(), validation.Number(0, 9999)}},
			// Two letter state code.
			{Name: "state", Constraints: []validation.Constraint{validation.Required(), validation.MinLen(2), validation.MaxLen(2)}},
			{Name: "description", Constraints: []validation.Constraint{validation.Required(), validation.MaxLen(maxTextLen)}},
			{Name: "color", Constraints: []validation.Constraint{validation.Pattern(hexColor, "Choose a valid color.")}},
			{Name: "priority", Constraints: []validation.Constraint{validation.Number(1, 10)}},
		},
		Rules: []validation.Rule{
			validation.AtLeastOneChecked("services", "services-feedback", "Select at least one service."),
			validation.OneSelected("category", domain.NGOCategories, "category-feedback", "Select the organization category."),
			validation.Upload("logo", validation.LogoTypes, validation.MaxLogoBytes, "logo-feedback"),
			validation.YearRange("founded_year", 1900, d.Now().Year(), "founded_year-feedback"),
		},
	}
}

func (d Deps) initNGORegistration(_ context.Context, p *router.Page) error {
	p.Doc.ByID("priority-value").SetText(strconv.Itoa(defaultPriority))
	return nil
}

func (d Deps) submitNGO(ctx context.Context, p *router.Page, in validation.Form) (router.Outcome, error) {
	form := p.Doc.ByID("ngo-form")
	res := d.ngoSchema().Validate(in)
	if !res.Valid() {
		outcome, err := d.reject(p, form, "ngo", in, res, "ngo-alert")
		if v := in.Get("priority"); v != "" {
			p.Doc.ByID("priority-value").SetText(v)
		}
		return outcome, err
	}

	year, _ := strconv.Atoi(in.Get("founded_year"))
	priority, err := strconv.Atoi(in.Get("priority"))
	if err != nil {
		priority = defaultPriority
	}
	ngo, err := p.Session.Store.CreateNGO(ctx, domain.NGORegistration{
		Name:        in.Get("name"),
		Email:       in.Get("email"),
		Phone:       in.Get("phone"),
		Site:        in.Get("site"),
		FoundedYear: year,
		State:       in.Get("state"),
		Description: in.Get("description"),
		Services:    in.All("services"),
		Category:    domain.NGOCategory(in.Get("category")),
		Color:       in.Get("color"),
		Priority:    priority,
		LogoName:    d.attachmentName(in, "logo"),
	})
	if err != nil {
		return router.Outcome{}, err
	}
	d.Metrics.Created("ngo")
	d.saveUpload(ctx, in, "logo", "ngos", ngo.ID)

	msg := "Organization registered successfully!"
	_ = p.Doc.ByID("ngo-alert").SetInnerHTML(alert("success", msg))
	p.Doc.ByID("priority-value").SetText(strconv.Itoa(defaultPriority))
	return router.Outcome{
		Record:   ngo,
		Message:  msg,
		Continue: &router.Continuation{Route: RouteThankYou, After: FormDelay},
	}, nil
}
