package dom

import (
	"strings"
	"testing"
)

func TestSetInnerHTMLAndByID(t *testing.T) {
	doc := NewContainer("content-container")
	if err := doc.SetInnerHTML(`<section><h1 id="title">Old</h1><ul id="list"></ul></section>`); err != nil {
		t.Fatalf("SetInnerHTML: %v", err)
	}

	doc.ByID("title").SetText("New & <improved>")
	if err := doc.ByID("list").AppendHTML(`<li>one</li>`); err != nil {
		t.Fatalf("AppendHTML: %v", err)
	}
	if err := doc.ByID("list").PrependHTML(`<li>zero</li>`); err != nil {
		t.Fatalf("PrependHTML: %v", err)
	}

	out, err := doc.InnerHTML()
	if err != nil {
		t.Fatalf("InnerHTML: %v", err)
	}
	want := `<section><h1 id="title">New &amp; &lt;improved&gt;</h1><ul id="list"><li>zero</li><li>one</li></ul></section>`
	if out != want {
		t.Fatalf("InnerHTML = %q\nwant %q", out, want)
	}

	if err := doc.SetInnerHTML(`<p>replaced</p>`); err != nil {
		t.Fatalf("SetInnerHTML: %v", err)
	}
	if doc.ByID("title") != nil {
		t.Fatalf("old content survived SetInnerHTML")
	}
}

func TestMissingElementsAreNoOps(t *testing.T) {
	doc := NewContainer("c")
	missing := doc.ByID("nope")
	if missing.Exists() {
		t.Fatalf("missing element should not exist")
	}
	missing.SetText("x")
	missing.AddClass("is-invalid")
	missing.Show()
	if err := missing.SetInnerHTML("<b>x</b>"); err != nil {
		t.Fatalf("SetInnerHTML on nil element: %v", err)
	}
	if missing.Attr("id") != "" || missing.Text() != "" {
		t.Fatalf("nil element should report empty values")
	}
}

func TestClassesAndFocus(t *testing.T) {
	doc := NewContainer("c")
	_ = doc.SetInnerHTML(`<form id="f"><input name="a" class="form-control" autofocus><input name="b"></form>`)
	form := doc.ByID("f")

	b := form.Field("b")
	b.AddClass("is-invalid")
	b.AddClass("is-invalid")
	if b.Attr("class") != "is-invalid" {
		t.Fatalf("class = %q", b.Attr("class"))
	}
	doc.Focus(b)
	if form.Field("a").HasAttr("autofocus") || !b.HasAttr("autofocus") {
		t.Fatalf("focus not moved")
	}

	a := form.Field("a")
	a.AddClass("is-invalid")
	a.RemoveClass("form-control")
	if a.Attr("class") != "is-invalid" {
		t.Fatalf("class = %q", a.Attr("class"))
	}
}

func TestFillForm(t *testing.T) {
	doc := NewContainer("c")
	_ = doc.SetInnerHTML(`<form id="f">
<input name="name" type="text">
<input name="pref" type="radio" value="email" checked>
<input name="pref" type="radio" value="phone">
<input name="tags" type="checkbox" value="a">
<input name="tags" type="checkbox" value="b">
<select name="state"><option>SP</option><option value="RJ">Rio</option></select>
<textarea name="msg">default</textarea>
<input name="logo" type="file">
</form>`)
	form := doc.ByID("f")
	form.FillForm(map[string][]string{
		"name":  {"Ana"},
		"pref":  {"phone"},
		"tags":  {"b"},
		"state": {"RJ"},
		"msg":   {"hello <there>"},
		"logo":  {"ignored"},
	})

	if form.Field("name").Attr("value") != "Ana" {
		t.Fatalf("text input not filled")
	}
	prefs := form.Fields("pref")
	if prefs[0].HasAttr("checked") || !prefs[1].HasAttr("checked") {
		t.Fatalf("radio selection not applied")
	}
	tags := form.Fields("tags")
	if tags[0].HasAttr("checked") || !tags[1].HasAttr("checked") {
		t.Fatalf("checkbox selection not applied")
	}
	out, _ := form.InnerHTML()
	if !strings.Contains(out, `<option value="RJ" selected="">Rio</option>`) {
		t.Fatalf("select option not selected: %s", out)
	}
	if form.Field("msg").Text() != "hello <there>" {
		t.Fatalf("textarea = %q", form.Field("msg").Text())
	}
	if form.Field("logo").HasAttr("value") {
		t.Fatalf("file input must not be filled")
	}
}
