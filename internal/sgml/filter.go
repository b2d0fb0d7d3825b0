package sgml

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// TagFilter tokenizes a markup stream and surfaces only completed instances
// of a single designated element. The html tokenizer recovers from malformed
// markup by degrading bogus constructs to text or comment tokens, so a broken
// sub-region never aborts the stream; the filter adds tree-level recovery on
// top (stray end tags ignored, unclosed children popped by an ancestor's end
// tag, stale designated elements abandoned).
//
// Tokens outside a designated element are discarded the moment they are read.
// This is the memory bound: for a multi-gigabyte input with millions of
// records, at most one record subtree is ever held.
type TagFilter struct {
	z     *html.Tokenizer
	tag   string
	stack []*Element
}

// NewTagFilter returns a filter yielding completed instances of tag from r.
// The reader is expected to be prologue-filtered so the feed is wrapped in a
// single synthetic root.
func NewTagFilter(r io.Reader, tag string) *TagFilter {
	return &TagFilter{z: html.NewTokenizer(r), tag: strings.ToLower(tag)}
}

// Next returns the next designated element in closing-boundary order. It
// returns io.EOF when the stream is exhausted; any other error is a fault of
// the underlying reader. Elements are never yielded twice.
func (f *TagFilter) Next() (*Element, error) {
	for {
		switch f.z.Next() {
		case html.ErrorToken:
			return nil, f.z.Err()

		case html.StartTagToken:
			f.z.NextIsNotRawText()
			el := f.tokenElement()
			if len(f.stack) == 0 {
				if el.Tag != f.tag {
					continue
				}
				f.stack = append(f.stack[:0], el)
				continue
			}
			if el.Tag == f.tag {
				// A fresh designated start while one is already open means
				// the previous record was truncated (segment boundary or
				// corruption). Abandon it and start over.
				f.stack = append(f.stack[:0], el)
				continue
			}
			parent := f.stack[len(f.stack)-1]
			parent.Children = append(parent.Children, el)
			f.stack = append(f.stack, el)

		case html.SelfClosingTagToken:
			el := f.tokenElement()
			if len(f.stack) == 0 {
				if el.Tag == f.tag {
					return el, nil
				}
				continue
			}
			parent := f.stack[len(f.stack)-1]
			parent.Children = append(parent.Children, el)

		case html.EndTagToken:
			name, _ := f.z.TagName()
			tag := string(name)
			if len(f.stack) == 0 {
				continue
			}
			idx := -1
			for i := len(f.stack) - 1; i >= 0; i-- {
				if f.stack[i].Tag == tag {
					idx = i
					break
				}
			}
			if idx == -1 {
				if tag == rootTag {
					// Synthetic wrapper closed with a record still open:
					// the partial record is lost, by design.
					f.stack = f.stack[:0]
				}
				continue
			}
			if idx == 0 {
				el := f.stack[0]
				f.stack = f.stack[:0]
				return el, nil
			}
			// Closing an ancestor implicitly closes unclosed children.
			f.stack = f.stack[:idx]

		case html.TextToken:
			if len(f.stack) == 0 {
				continue
			}
			top := f.stack[len(f.stack)-1]
			top.Text += string(f.z.Text())
		}
		// Comments and doctype tokens inside the feed carry no record data.
	}
}

func (f *TagFilter) tokenElement() *Element {
	name, hasAttr := f.z.TagName()
	el := &Element{Tag: string(name)}
	for hasAttr {
		var k, v []byte
		k, v, hasAttr = f.z.TagAttr()
		el.Attrs = append(el.Attrs, Attr{Key: string(k), Val: string(v)})
	}
	return el
}
