// Package patent holds the pure text helpers applied to extracted record
// fragments: number normalization, classification-code extraction per archive
// generation, citation and reassignment extraction, and name/conveyance
// classifiers. Everything here is stateless; the streaming pipeline feeds
// these functions one element at a time through its transform parameter.
package patent

import (
	"regexp"
	"strings"
)

// Patent numbers keep at most this many digits; USPTO numbers are seven
// digits, with anything beyond being a kind suffix or noise.
const maxNumberDigits = 7

var numberRe = regexp.MustCompile(`^([a-zA-Z]{1,2}|0)?([0-9]+)`)

// PruneNumber canonicalizes a patent number across document kinds: a one- or
// two-letter type prefix is kept (a literal "0" prefix is noise and dropped),
// digits are truncated to seven, and leading zeros are stripped.
func PruneNumber(pn string) string {
	prefix, digits := "", pn
	if m := numberRe.FindStringSubmatch(pn); m != nil {
		prefix, digits = m[1], m[2]
		if prefix == "0" {
			prefix = ""
		}
	}
	if len(digits) > maxNumberDigits {
		digits = digits[:maxNumberDigits]
	}
	return prefix + strings.TrimLeft(digits, "0")
}
