package extract

import (
	"strings"

	"surge/internal/enrich/lexicon"
)

// ValidPersonName judges whether a capitalized word sequence plausibly names
// a person. Surface patterns frequently capture headings and product names
// shaped like "First Last"; the blocklists trade recall for precision.
func ValidPersonName(name string) bool {
	n := strings.TrimSpace(name)
	if len(n) < 4 || len(n) > 50 {
		return false
	}

	tokens := strings.Fields(n)
	if len(tokens) < 2 {
		return false
	}

	for _, tok := range tokens {
		up := strings.ToUpper(strings.Trim(tok, ".,"))
		if _, corp := lexicon.CorpWords[up]; corp {
			return false
		}
		if _, jargon := lexicon.FalseNameWords[up]; jargon {
			return false
		}
	}
	return true
}
