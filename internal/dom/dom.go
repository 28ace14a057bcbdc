// Package dom provides an in-memory HTML element that syntax tree results
// are injected into. It plays the role of the host document element: text
// nodes for errors, embedded objects for rendered images.
package dom

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// containerClass marks the element created by NewElement.
const containerClass = "syntree"

// Element is a detached <div> container backed by goquery.
// Not safe for concurrent use; give each render its own Element.
type Element struct {
	sel *goquery.Selection
}

// NewElement creates an empty <div class="syntree"> container.
func NewElement() *Element {
	container := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Div.String(),
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: containerClass}},
	}
	return &Element{sel: goquery.NewDocumentFromNode(container).Selection}
}

// AppendText appends a <div> holding text as a single text node.
// The text is escaped on output; markup in it is never interpreted.
func (e *Element) AppendText(text string) {
	div := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Div.String(),
		DataAtom: atom.Div,
	}
	div.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	e.sel.AppendNodes(div)
}

// AppendObject appends an <object> embedding data (usually a data URI).
func (e *Element) AppendObject(data, mimeType string) {
	obj := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Object.String(),
		DataAtom: atom.Object,
		Attr: []html.Attribute{
			{Key: "data", Val: data},
			{Key: "type", Val: mimeType},
		},
	}
	e.sel.AppendNodes(obj)
}

// Len returns the number of child elements appended so far.
func (e *Element) Len() int {
	return e.sel.Children().Length()
}

// Objects returns the data attribute of every embedded <object>, in order.
func (e *Element) Objects() []string {
	var out []string
	e.sel.Find("object").Each(func(_ int, s *goquery.Selection) {
		if v, ok := s.Attr("data"); ok {
			out = append(out, v)
		}
	})
	return out
}

// Texts returns the text of every appended text <div>, in order.
func (e *Element) Texts() []string {
	var out []string
	e.sel.ChildrenFiltered("div").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

// Clear removes all children.
func (e *Element) Clear() {
	e.sel.Empty()
}

// InnerHTML renders the children of the container.
func (e *Element) InnerHTML() (string, error) {
	out, err := e.sel.Html()
	if err != nil {
		return "", fmt.Errorf("rendering element: %w", err)
	}
	return out, nil
}

// OuterHTML renders the container including its own tag.
func (e *Element) OuterHTML() (string, error) {
	var b strings.Builder
	for _, n := range e.sel.Nodes {
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("rendering element: %w", err)
		}
	}
	return b.String(), nil
}
