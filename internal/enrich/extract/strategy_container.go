package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"surge/internal/enrich/models"
)

// containerStrategy targets markup whose class or id hints at a team, staff,
// bio, member, advisor, or profile card. Inside a region it first tries a
// standalone title with a name on an adjacent line; failing that it pairs the
// first name-shaped match with the first title phrase anywhere in the region.
type containerStrategy struct{}

func (containerStrategy) Name() string { return "containers" }

const containerSelector = `[class*="team"], [class*="staff"], [class*="bio"], ` +
	`[class*="member"], [class*="advisor"], [class*="profile"], ` +
	`[id*="team"], [id*="staff"]`

// regionCap bounds how many matched regions are inspected per page; team
// pages can repeat card markup hundreds of times.
const regionCap = 10

func (containerStrategy) Extract(page *Page) []models.Candidate {
	var out []models.Candidate
	seen := make(map[string]struct{})

	page.Doc.Find(containerSelector).EachWithBreak(func(i int, region *goquery.Selection) bool {
		if i >= regionCap {
			return false
		}
		if c, ok := extractFromRegion(region); ok {
			if _, dup := seen[c.Name]; !dup {
				seen[c.Name] = struct{}{}
				out = append(out, c)
			}
		}
		return true
	})

	return out
}

func extractFromRegion(region *goquery.Selection) (models.Candidate, bool) {
	lines := splitLines(SelectionText(region))

	// Adjacent pairing: a standalone title line with the name one or two
	// lines away on either side.
	for i, line := range lines {
		if line == "" || len(line) > 80 || !standaloneTitleRe.MatchString(line) {
			continue
		}
		for _, off := range []int{-1, 1, -2, 2} {
			j := i + off
			if j < 0 || j >= len(lines) {
				continue
			}
			if name, ok := nameOnLine(lines[j]); ok {
				return scrapedCandidate(name, line), true
			}
		}
	}

	// Fallback: first name match and first title match anywhere in the
	// region, paired when both exist.
	text := strings.Join(lines, "\n")
	name := nameRe.FindString(text)
	title := titleSearchRe.FindString(text)
	if name != "" && title != "" && ValidPersonName(name) {
		return scrapedCandidate(strings.TrimSpace(name), title), true
	}

	return models.Candidate{}, false
}

// nameOnLine accepts a line that is entirely a person's name or that opens a
// bio the way titleBioStrategy expects.
func nameOnLine(line string) (string, bool) {
	if line == "" {
		return "", false
	}
	if m := nameRe.FindString(line); m == strings.TrimSpace(line) && ValidPersonName(m) {
		return m, true
	}
	if m := bioOpenRe.FindStringSubmatch(line); m != nil && ValidPersonName(m[1]) {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}
