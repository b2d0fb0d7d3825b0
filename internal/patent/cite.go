package patent

import (
	"strings"

	"github.com/patsift/patsift/internal/sgml"
)

// CitesGen2 extracts cited document numbers from a generation-2 references
// section (B561 entries).
func CitesGen2(refs *sgml.Element) []string {
	var out []string
	for _, cite := range refs.FindAll("b561") {
		out = append(out, cite.FindText("pcit/doc/dnum/pdat"))
	}
	return out
}

// CitesGen3 extracts US granted-patent citations from a generation-3
// references section. prefix distinguishes the "us-" element naming used by
// later vintages; pass "" for the unprefixed form. Applications and foreign
// documents (kind "00") are skipped.
func CitesGen3(refs *sgml.Element, prefix string) []string {
	var out []string
	for _, cite := range refs.FindAll(prefix + "citation/patcit/document-id") {
		if cite.FindText("country") != "us" {
			continue
		}
		if cite.FindText("kind") == "00" {
			continue
		}
		out = append(out, cite.FindText("doc-number"))
	}
	return out
}

// ReassignedGen3 extracts the granted-patent numbers (kind B*) named in an
// assignment's patent-property list.
func ReassignedGen3(props *sgml.Element) []string {
	var out []string
	for _, doc := range props.FindAll("patent-property/document-id") {
		if !strings.HasPrefix(doc.FindText("kind"), "b") {
			continue
		}
		out = append(out, doc.FindText("doc-number"))
	}
	return out
}
