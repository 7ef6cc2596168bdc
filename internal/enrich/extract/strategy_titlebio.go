package extract

import (
	"strings"

	"surge/internal/enrich/models"
)

// titleBioStrategy handles the layout small firm sites favor: a role alone on
// a short line ("Founder & Managing Partner") followed within a few lines by
// a biography paragraph that opens with the person's name and a verb cue
// ("Jane A. Smith has over twenty years...").
type titleBioStrategy struct{}

func (titleBioStrategy) Name() string { return "title-bio" }

// lookahead bounds how far below a standalone title the bio may start.
const bioLookahead = 10

func (titleBioStrategy) Extract(page *Page) []models.Candidate {
	var out []models.Candidate

	for i, line := range page.Lines {
		if line == "" || len(line) > 80 || !standaloneTitleRe.MatchString(line) {
			continue
		}

		// The first non-blank line below is the bio opening, if any.
		for j := i + 1; j < len(page.Lines) && j <= i+bioLookahead; j++ {
			next := page.Lines[j]
			if next == "" {
				continue
			}
			if m := bioOpenRe.FindStringSubmatch(next); m != nil {
				name := strings.TrimSpace(m[1])
				if ValidPersonName(name) {
					out = append(out, scrapedCandidate(name, line))
				}
			}
			break
		}
	}

	return out
}
