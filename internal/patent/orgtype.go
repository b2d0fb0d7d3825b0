package patent

import (
	"regexp"
	"strings"
)

// Org is the organization class detected from an assignee or assignor name.
type Org int

const (
	OrgCorp Org = iota
	OrgNonprofit
	OrgIndividual
)

// Conveyance is the class of an assignment's conveyance text.
type Conveyance int

const (
	ConvAssign Conveyance = iota
	ConvLicense
	ConvMerger
	ConvOther
)

// Names longer than this are assumed corporate regardless of keywords.
const longNameCut = 30

var corpKeys = []string{
	"corp", "co", "inc", "llc", "lp", "plc", "ltd", "limited", "company",
	"corporation", "incorporated", "international", "systems", "sa", "oy",
	"consulting", "bank", "gmbh", "kabushiki", "kaisha", "bv", "nv", "sl",
	"aktiengesellschaft", "maschinenfabrik", "ab", "ag", "as", "spa", "hf",
	"societe", "associates", "business", "industries", "group", "kk",
	"laboratories", "works", "studio", "telecom", "investments",
	"consultants", "electronics", "technologies", "microsystems",
	"multimedia", "networks", "technology", "partnership", "electric",
	"components", "automotive", "instruments", "communication",
	"enterprises", "network", "engineering", "designs", "sciences",
	"partners", "aktiengellschaft", "venture", "aerospace",
	"pharmaceuticals", "design", "medical", "products", "pharma", "energy",
	"solutions", "france", "isreal", "product", "plastics",
	"communications", "kgaa", "sas", "cellular", "gesellschaft", "se",
	"holdings", "kg", "srl", "chimie",
}

var nonprofitKeys = []string{
	"institute", "university", "hospital", "foundation", "college",
	"research", "administration", "recherche", "department", "trust",
	"association", "ministry", "laboratory", "board", "office", "univ",
	"ecole", "secretary", "universidad", "society", "universiteit",
	"centre", "center", "national", "school", "institut", "institutes",
	"universite",
}

// Conveyance texts matching these are neither assignments, licenses nor
// mergers: name/address changes, security agreements, corrections, releases.
var otherKeys = []string{
	"change", "secur", "correct", "release", "lien", "update", "nunc",
	"collat",
}

var (
	puncRe  = regexp.MustCompile(`[0-9&()]`)
	spacRe  = regexp.MustCompile(`[ ,]`)
	corpRe  = regexp.MustCompile(`\b(` + strings.Join(corpKeys, "|") + `)\b`)
	nonpRe  = regexp.MustCompile(`\b(` + strings.Join(nonprofitKeys, "|") + `)\b`)
	otherRe = regexp.MustCompile(strings.Join(otherKeys, "|"))
)

// OrgType classifies a lower-cased assignee name as corporate, nonprofit or
// individual using keyword, punctuation and length heuristics.
func OrgType(name string) Org {
	name = strings.ReplaceAll(name, ".", "")
	name = strings.ReplaceAll(name, "/", "")
	switch {
	case corpRe.MatchString(name),
		puncRe.MatchString(name),
		!spacRe.MatchString(name),
		len(name) > longNameCut:
		return OrgCorp
	case nonpRe.MatchString(name):
		return OrgNonprofit
	default:
		return OrgIndividual
	}
}

// ConveyType classifies a lower-cased conveyance text.
func ConveyType(convey string) Conveyance {
	switch {
	case otherRe.MatchString(convey):
		return ConvOther
	case strings.Contains(convey, "assign"):
		return ConvAssign
	case strings.Contains(convey, "license"):
		return ConvLicense
	case strings.Contains(convey, "merge"):
		return ConvMerger
	default:
		return ConvOther
	}
}
