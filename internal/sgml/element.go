package sgml

import "strings"

// Element is one node of an extracted record tree. Tag names and attribute
// keys are normalized to lower case by the tokenizer, so lookups are
// effectively case-insensitive. Text holds the character data directly inside
// the node, already entity-unescaped.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// Attr is a single attribute on an element.
type Attr struct {
	Key string
	Val string
}

// Attr returns the value of the named attribute, or "" when absent.
func (e *Element) Attr(key string) string {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// Find returns the first descendant matching a slash-separated path of child
// tag names, e.g. "publication-reference/document-id/doc-number", or nil.
func (e *Element) Find(path string) *Element {
	if all := e.findAll(path, 1); len(all) > 0 {
		return all[0]
	}
	return nil
}

// FindAll returns every descendant matching the slash-separated path, in
// document order.
func (e *Element) FindAll(path string) []*Element {
	return e.findAll(path, -1)
}

func (e *Element) findAll(path string, limit int) []*Element {
	segs := strings.Split(strings.ToLower(path), "/")
	frontier := []*Element{e}
	for i, seg := range segs {
		last := i == len(segs)-1
		var next []*Element
		for _, el := range frontier {
			for _, c := range el.Children {
				if c.Tag == seg {
					next = append(next, c)
					if last && limit > 0 && len(next) >= limit {
						return next
					}
				}
			}
		}
		frontier = next
		if len(frontier) == 0 {
			return nil
		}
	}
	return frontier
}

// FindText returns the trimmed, lower-cased text of the first element
// matching path, or "" when the element is missing or empty. Archive values
// are compared lower-cased throughout, so normalization happens here.
func (e *Element) FindText(path string) string {
	c := e.Find(path)
	if c == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(c.Text))
}

// RawText joins the text of this element and all of its descendants in
// document order, separated by sep, trimmed and lower-cased.
func (e *Element) RawText(sep string) string {
	var parts []string
	var walk func(*Element)
	walk = func(el *Element) {
		if el.Text != "" {
			parts = append(parts, el.Text)
		}
		for _, c := range el.Children {
			walk(c)
		}
	}
	walk(e)
	return strings.ToLower(strings.TrimSpace(strings.Join(parts, sep)))
}
