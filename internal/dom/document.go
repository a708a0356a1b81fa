// Package dom is a small server-side stand-in for the browser DOM: a
// container element whose markup can be replaced, and nil-safe element
// handles looked up by id. Lookups for absent ids return nil and every
// method on a nil *Element is a no-op.
package dom

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a container element and everything injected into it.
type Document struct {
	root *html.Node
}

// NewContainer returns an empty <div id="id"> container.
func NewContainer(id string) *Document {
	root := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "id", Val: id}},
	}
	return &Document{root: root}
}

// SetInnerHTML replaces the container content with markup.
func (d *Document) SetInnerHTML(markup string) error {
	return (&Element{node: d.root}).SetInnerHTML(markup)
}

// Root returns the container element.
func (d *Document) Root() *Element {
	return &Element{node: d.root}
}

// ByID returns the first descendant with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	n := find(d.root, func(n *html.Node) bool { return attr(n, "id") == id })
	if n == nil {
		return nil
	}
	return &Element{node: n}
}

// InnerHTML renders the container content.
func (d *Document) InnerHTML() (string, error) {
	return (&Element{node: d.root}).InnerHTML()
}

// Element is a handle on one node of a Document.
type Element struct {
	node *html.Node
}

// Exists reports whether the handle points at a node.
func (e *Element) Exists() bool { return e != nil && e.node != nil }

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(key string) string {
	if !e.Exists() {
		return ""
	}
	return attr(e.node, key)
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(key string) bool {
	if !e.Exists() {
		return false
	}
	for _, a := range e.node.Attr {
		if a.Key == key {
			return true
		}
	}
	return false
}

func (e *Element) SetAttr(key, val string) {
	if !e.Exists() {
		return
	}
	for i, a := range e.node.Attr {
		if a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

func (e *Element) RemoveAttr(key string) {
	if !e.Exists() {
		return
	}
	kept := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Key != key {
			kept = append(kept, a)
		}
	}
	e.node.Attr = kept
}

// HasClass reports whether class is one of the element's classes.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.Attr("class")) {
		if c == class {
			return true
		}
	}
	return false
}

func (e *Element) AddClass(class string) {
	if !e.Exists() || e.HasClass(class) {
		return
	}
	classes := append(strings.Fields(e.Attr("class")), class)
	e.SetAttr("class", strings.Join(classes, " "))
}

func (e *Element) RemoveClass(class string) {
	if !e.Exists() {
		return
	}
	var kept []string
	for _, c := range strings.Fields(e.Attr("class")) {
		if c != class {
			kept = append(kept, c)
		}
	}
	e.SetAttr("class", strings.Join(kept, " "))
}

// Show and Hide toggle the inline display style.
func (e *Element) Show() { e.SetAttr("style", "display: block") }
func (e *Element) Hide() { e.SetAttr("style", "display: none") }

// SetText replaces the children with a single text node.
func (e *Element) SetText(text string) {
	if !e.Exists() {
		return
	}
	removeChildren(e.node)
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Text returns the concatenated text of all descendants.
func (e *Element) Text() string {
	if !e.Exists() {
		return ""
	}
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return b.String()
}

// SetInnerHTML replaces the children with parsed markup.
func (e *Element) SetInnerHTML(markup string) error {
	if !e.Exists() {
		return nil
	}
	nodes, err := e.parse(markup)
	if err != nil {
		return err
	}
	removeChildren(e.node)
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// AppendHTML adds parsed markup after the existing children.
func (e *Element) AppendHTML(markup string) error {
	if !e.Exists() {
		return nil
	}
	nodes, err := e.parse(markup)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// PrependHTML adds parsed markup before the existing children.
func (e *Element) PrependHTML(markup string) error {
	if !e.Exists() {
		return nil
	}
	nodes, err := e.parse(markup)
	if err != nil {
		return err
	}
	first := e.node.FirstChild
	for _, n := range nodes {
		if first == nil {
			e.node.AppendChild(n)
		} else {
			e.node.InsertBefore(n, first)
		}
	}
	return nil
}

// InnerHTML renders the children of the element.
func (e *Element) InnerHTML() (string, error) {
	if !e.Exists() {
		return "", nil
	}
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("dom: render: %w", err)
		}
	}
	return buf.String(), nil
}

// Find returns descendants matching the predicate in document order.
func (e *Element) Find(match func(*Element) bool) []*Element {
	if !e.Exists() {
		return nil
	}
	var out []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				el := &Element{node: c}
				if match(el) {
					out = append(out, el)
				}
			}
			walk(c)
		}
	}
	walk(e.node)
	return out
}

// Tag returns the element name.
func (e *Element) Tag() string {
	if !e.Exists() {
		return ""
	}
	return e.node.Data
}

func (e *Element) parse(markup string) ([]*html.Node, error) {
	parent := &html.Node{Type: html.ElementNode, Data: e.node.Data, DataAtom: e.node.DataAtom}
	nodes, err := html.ParseFragment(strings.NewReader(markup), parent)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

func removeChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && match(c) {
			return c
		}
		if found := find(c, match); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
