package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"surge/internal/enrich/models"
)

// maxNamelessCandidates bounds how many email-only candidates are synthesized
// when harvesting found addresses but no strategy found a person.
const maxNamelessCandidates = 3

// Extractor runs the strategy set over a page and assigns harvested emails to
// the named candidates.
type Extractor struct {
	strategies []Strategy
}

// NewExtractor builds an extractor with the default strategies.
func NewExtractor() *Extractor {
	return &Extractor{strategies: DefaultStrategies()}
}

// NewExtractorWith builds an extractor with a custom strategy set; used by
// tests and by callers experimenting with alternative matchers.
func NewExtractorWith(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Extract produces scraped candidates from one parsed page. All strategies
// run and their results are unioned; the container strategy's duplicates of
// names found earlier are dropped. Emails are then assigned by matching name
// tokens against local parts, and when only emails were found, up to three
// nameless candidates are synthesized so an email-only result is possible.
func (e *Extractor) Extract(doc *goquery.Document, domain string) []models.Candidate {
	page := NewPage(doc)
	emails := HarvestEmails(page, domain)

	var out []models.Candidate
	seen := make(map[string]struct{})

	for _, strategy := range e.strategies {
		skipKnown := strategy.Name() == "containers"
		for _, c := range strategy.Extract(page) {
			if c.Name != "" {
				if _, dup := seen[c.Name]; dup && skipKnown {
					continue
				}
				seen[c.Name] = struct{}{}
			}
			out = append(out, c)
		}
	}

	for i := range out {
		if out[i].Email != "" || out[i].Name == "" {
			continue
		}
		tokens := strings.Fields(strings.ToLower(out[i].Name))
		for _, addr := range emails {
			local := addr[:strings.LastIndexByte(addr, '@')]
			if localMatchesName(local, tokens) {
				out[i].Email = addr
				break
			}
		}
	}

	if len(out) == 0 && len(emails) > 0 {
		n := min(len(emails), maxNamelessCandidates)
		for _, addr := range emails[:n] {
			out = append(out, models.Candidate{
				Email:  addr,
				Source: models.SourceScraped,
			})
		}
	}

	return out
}
