package pages

import (
	"context"
	"fmt"

	"connectong/internal/dom"
	"connectong/internal/domain"
	"connectong/internal/router"
	"connectong/internal/validation"
)

// Length caps for free text fields.
const (
	maxNameLen = 120
	maxTextLen = 2000
)

var contactSchema = validation.Schema{
	Fields: []validation.Field{
		{Name: "name", Constraints: []validation.Constraint{validation.Required(), validation.MaxLen(maxNameLen)}},
		{Name: "email", Constraints: []validation.Constraint{validation.Required(), validation.Email()}},
		{Name: "age", Constraints: []validation.Constraint{validation.Number(0, 120)}},
		{Name: "site", Constraints: []validation.Constraint{validation.URL()}},
		{Name: "preference", Constraints: []validation.Constraint{validation.Required(), validation.OneOf(domain.ContactPreferences...)}},
		{Name: "message", Constraints: []validation.Constraint{validation.Required(), validation.MaxLen(maxTextLen)}},
	},
	Rules: []validation.Rule{
		validation.MinLength("name", 3, "form-feedback", "Name must have at least 3 characters."),
		validation.MinLength("message", 10, "form-feedback", "Message must have at least 10 characters."),
		validation.PhoneWhenPreferred("preference", string(domain.PreferPhone), "phone", "form-feedback"),
	},
}

func (d Deps) submitContact(ctx context.Context, p *router.Page, in validation.Form) (router.Outcome, error) {
	form := p.Doc.ByID("contact-form")
	res := contactSchema.Validate(in)
	if !res.Valid() {
		return d.reject(p, form, "contact", in, res, "form-feedback")
	}

	contact, err := p.Session.Store.CreateContact(ctx, domain.Contact{
		Name:       in.Get("name"),
		Email:      in.Get("email"),
		Phone:      in.Get("phone"),
		Age:        in.Get("age"),
		Site:       in.Get("site"),
		Date:       in.Get("date"),
		Time:       in.Get("time"),
		Subject:    in.Get("subject"),
		Preference: domain.ContactPreference(in.Get("preference")),
		Interests:  in.All("interests"),
		Color:      in.Get("color"),
		Level:      in.Get("level"),
		Message:    in.Get("message"),
		Attachment: d.attachmentName(in, "attachment"),
	})
	if err != nil {
		return router.Outcome{}, err
	}
	d.Metrics.Created("contact")
	d.saveUpload(ctx, in, "attachment", "contacts", contact.ID)

	msg := "Message sent successfully! We will reply soon."
	_ = p.Doc.ByID("form-feedback").SetInnerHTML(alert("success", msg))
	return router.Outcome{
		Record:   contact,
		Message:  msg,
		Continue: &router.Continuation{Route: RouteThankYou, After: FormDelay},
	}, nil
}

// reject renders a failed validation onto the page: the submitted values are
// put back, messages placed and focus set on the first offending field.
func (d Deps) reject(p *router.Page, formEl *dom.Element, kind string, in validation.Form, res validation.Result, fallback string) (router.Outcome, error) {
	formEl.FillForm(in.Values)
	showViolations(p, formEl, res, fallback)
	d.Metrics.Rejected(kind)
	first := res.Violations[0]
	return router.Outcome{Message: first.Message, Result: res},
		fmt.Errorf("%w: %s: %s", domain.ErrValidation, kind, first.Field)
}

func (d Deps) attachmentName(in validation.Form, field string) string {
	if file, ok := in.File(field); ok {
		return file.Name
	}
	return ""
}

// saveUpload keeps the uploaded bytes when a file store is configured. A
// failure is logged; the record itself is already stored.
func (d Deps) saveUpload(ctx context.Context, in validation.Form, field, kind, recordID string) {
	file, ok := in.File(field)
	if !ok || d.Uploads == nil {
		return
	}
	key, err := d.Uploads.SaveUpload(ctx, kind, recordID, file.Name, file.Data)
	if err != nil {
		d.Logger.Error().Err(err).Str("kind", kind).Str("record_id", recordID).Msg("save upload failed")
		return
	}
	d.Logger.Debug().Str("key", key).Int64("size", file.Size).Msg("upload saved")
}
