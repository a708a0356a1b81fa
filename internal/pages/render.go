package pages

import (
	"html/template"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"connectong/internal/dom"
	"connectong/internal/router"
	"connectong/internal/validation"
)

var templates = template.Must(template.New("pages").Parse(`
{{define "alert"}}<div class="alert alert-{{.Kind}}" role="alert">{{.Message}}</div>{{end}}
{{define "donation"}}<li class="list-group-item d-flex justify-content-between align-items-start">
<div><div class="fw-bold">{{.Amount}} - {{.Category}}</div><small class="text-muted">{{.When}}</small></div>
<form method="post" action="/pages/donations/remove"><input type="hidden" name="id" value="{{.ID}}"><button type="submit" class="btn btn-sm btn-outline-danger btn-remove" data-id="{{.ID}}">Remove</button></form>
</li>{{end}}
{{define "no-donations"}}<li class="list-group-item text-muted">No donations yet.</li>{{end}}
{{define "ngo"}}<div class="col-md-6 col-lg-4"><div class="card h-100 card-list-item" style="border-color: {{.Color}}">
<div class="card-body"><h5 class="card-title">{{.Name}}</h5><p class="card-text">{{.Description}}</p></div>
<div class="card-footer bg-white border-0 pt-0"><small class="text-muted">{{.Email}}{{if .Phone}} | {{.Phone}}{{end}}</small></div>
</div></div>{{end}}
{{define "company"}}<div class="col-md-6"><div class="card h-100 card-list-item">
<div class="card-body"><h5 class="card-title">{{.Name}} <span class="badge bg-success">Partner</span></h5>
<p class="card-text">Area: {{.Area}} - City: {{.City}}.<br>Donation type: <span class="badge bg-secondary">{{.DonationType}}</span></p></div>
</div></div>{{end}}
{{define "data-error"}}<p class="text-danger">{{.}}</p>{{end}}
{{define "thanks-donation"}}We registered a contribution of <strong>{{.}}</strong>.<br>Your generosity makes a difference.{{end}}
{{define "thanks-contact"}}We received your message about <strong>{{.Subject}}</strong>.<br>We will reach you by {{.Preference}} soon.{{end}}
`))

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{3}([0-9a-fA-F]{3})?$`)

func render(name string, data any) string {
	var b strings.Builder
	// Templates are fixed and data is plain values; Execute cannot fail here.
	_ = templates.ExecuteTemplate(&b, name, data)
	return b.String()
}

func alert(kind, msg string) string {
	return render("alert", struct{ Kind, Message string }{kind, msg})
}

// formatMoney renders an amount as reais, with the separators of locale.
func formatMoney(locale string, amount float64) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.BrazilianPortuguese
	}
	return "R$ " + message.NewPrinter(tag).Sprintf("%.2f", amount)
}

func formatWhen(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

func safeColor(c string) string {
	if hexColor.MatchString(c) {
		return c
	}
	return "#6c757d"
}

// showViolations marks offending controls, writes each message next to its
// field (or into fallback when the page has no dedicated element) and moves
// focus to the first offending field.
func showViolations(p *router.Page, form *dom.Element, res validation.Result, fallback string) {
	for _, v := range res.Violations {
		for _, field := range form.Fields(v.Field) {
			field.AddClass("is-invalid")
		}
		target := v.Target
		if target == "" {
			target = v.Field + "-feedback"
		}
		el := p.Doc.ByID(target)
		if !el.Exists() {
			el = p.Doc.ByID(fallback)
		}
		if el.HasClass("invalid-feedback") {
			el.SetText(v.Message)
			el.Show()
			continue
		}
		_ = el.AppendHTML(alert("danger", v.Message))
	}
	if res.Focus != "" {
		p.Doc.Focus(form.Field(res.Focus))
	}
	form.AddClass("was-validated")
}
