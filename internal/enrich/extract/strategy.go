package extract

import (
	"surge/internal/enrich/models"
)

// Strategy extracts raw candidates from one page. The three built-in
// strategies are independent surface heuristics; all run on every page and
// their results are unioned. A future statistical matcher can slot in behind
// the same interface without touching the crawler or reconciler.
type Strategy interface {
	Name() string
	Extract(page *Page) []models.Candidate
}

// DefaultStrategies returns the built-in strategy set in evaluation order.
// The container strategy runs last because it skips names the earlier
// strategies already produced.
func DefaultStrategies() []Strategy {
	return []Strategy{
		titleBioStrategy{},
		inlineStrategy{},
		containerStrategy{},
	}
}

func scrapedCandidate(name, title string) models.Candidate {
	return models.Candidate{
		Name:   name,
		Title:  titleCase(title),
		Source: models.SourceScraped,
	}
}
