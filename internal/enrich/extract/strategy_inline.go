package extract

import (
	"strings"

	"surge/internal/enrich/models"
)

// inlineStrategy matches name and title on the same line, in either order:
// "Mark Doe, Managing Partner" or "Chief Compliance Officer: Mark Doe".
type inlineStrategy struct{}

func (inlineStrategy) Name() string { return "inline" }

func (inlineStrategy) Extract(page *Page) []models.Candidate {
	var out []models.Candidate

	for _, line := range page.Lines {
		if line == "" {
			continue
		}

		if m := inlineNameTitleRe.FindStringSubmatch(line); m != nil {
			name, title := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if ValidPersonName(name) {
				out = append(out, scrapedCandidate(name, title))
			}
			continue
		}
		if m := inlineTitleNameRe.FindStringSubmatch(line); m != nil {
			title, name := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if ValidPersonName(name) {
				out = append(out, scrapedCandidate(name, title))
			}
		}
	}

	return out
}
