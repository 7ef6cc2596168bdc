package extract

import (
	"regexp"
	"strings"

	"surge/internal/enrich/lexicon"
)

// The surface patterns are built from the lexicon tables at init so the word
// lists stay data, not regex literals.

// namePat matches a capitalized two-to-four token sequence with an optional
// middle initial: "Jane Smith", "Jane A. Smith", "Mary Jo Smith Jones".
const namePat = `[A-Z][a-z]+(?:\s+[A-Z]\.?)?\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?`

// twoTokenNamePat is the conservative same-line form used by the inline
// strategy to keep marketing text out.
const twoTokenNamePat = `[A-Z][a-z]+\s+(?:[A-Z]\.?\s+)?[A-Z][a-z]+`

var (
	// emailRe finds addresses anywhere in free text.
	emailRe = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	// emailExactRe validates a whole string as one address.
	emailExactRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	nameRe = regexp.MustCompile(`\b(` + namePat + `)\b`)
)

var (
	titleAlt          string
	standaloneTitleRe *regexp.Regexp
	titleSearchRe     *regexp.Regexp
	bioOpenRe         *regexp.Regexp
	inlineNameTitleRe *regexp.Regexp
	inlineTitleNameRe *regexp.Regexp
)

func init() {
	phrases := make([]string, len(lexicon.TitlePhrases))
	for i, p := range lexicon.TitlePhrases {
		phrases[i] = strings.ReplaceAll(regexp.QuoteMeta(p), ` `, `\s+`)
	}
	titleAlt = `(?:` + strings.Join(phrases, `|`) + `)`

	cues := strings.Join(lexicon.BioVerbCues, `|`)

	// A role alone on a line, possibly compound: "Founder & Managing Partner".
	standaloneTitleRe = regexp.MustCompile(`(?i)^\s*` + titleAlt + `(?:\s*[&+/,]\s*` + titleAlt + `)*\s*$`)

	// Any known title phrase anywhere in text.
	titleSearchRe = regexp.MustCompile(`(?i)` + titleAlt)

	// A bio paragraph opening: name followed by a verb cue or punctuation.
	bioOpenRe = regexp.MustCompile(`^\s*(` + namePat + `)(?:\s*[,–—(\-]|\s+(?:` + cues + `)\b)`)

	// "John Smith, Chief Compliance Officer" or "John Smith | CEO".
	inlineNameTitleRe = regexp.MustCompile(`\b(` + twoTokenNamePat + `)\s*[,|–—\-]\s*((?i:` + titleAlt + `))`)

	// "Chief Compliance Officer: John Smith" or "CCO - John Smith".
	inlineTitleNameRe = regexp.MustCompile(`((?i:` + titleAlt + `))\s*[:|–—\-]\s*(` + twoTokenNamePat + `)`)
}
