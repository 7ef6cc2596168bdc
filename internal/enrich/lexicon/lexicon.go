// Package lexicon holds the fixed word tables the extraction heuristics run
// on. They are process-wide immutable configuration: keeping them as data
// means the tables can be tuned and tested without touching extraction logic.
package lexicon

import "strings"

// TitlePriority orders job titles for contact selection; lower index wins.
// Compliance roles first because a compliance officer is the warmest door
// into a newly registered advisory firm.
var TitlePriority = []string{
	"chief compliance officer", "cco",
	"principal", "managing member", "managing partner",
	"founder", "co-founder",
	"chief executive officer", "ceo",
	"president",
	"owner",
	"chief operating officer", "coo",
	"chief financial officer", "cfo",
	"director", "managing director",
	"partner",
	"advisor", "adviser",
}

// TitleRank returns the priority index of the first matching title phrase, or
// 999 when no phrase matches.
func TitleRank(title string) int {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return 999
	}
	for i, phrase := range TitlePriority {
		if strings.Contains(t, phrase) {
			return i
		}
	}
	return 999
}

// TitlePhrases feed the title grammar. Ordered longest-first so a regex
// alternation built from them prefers the most specific phrase ("managing
// partner" before "partner").
var TitlePhrases = []string{
	"chief compliance officer", "chief executive officer",
	"chief operating officer", "chief financial officer",
	"chief investment officer",
	"managing member", "managing partner", "managing director",
	"co-founder", "founder", "principal", "president", "owner",
	"wealth advisor", "financial advisor",
	"director", "partner", "advisor", "adviser",
	"cco", "ceo", "coo", "cfo", "cio",
}

// ContactSubpages are the paths probed for contact info, both as discovered
// link fragments and as direct guesses against the site root.
var ContactSubpages = []string{
	"/contact", "/contact-us", "/about", "/about-us",
	"/team", "/our-team", "/people", "/leadership",
	"/staff", "/our-firm", "/bio", "/advisors",
}

// ExcludedEmailDomains are placeholder and regulator domains that never
// belong to a firm contact.
var ExcludedEmailDomains = map[string]struct{}{
	"sec.gov":         {},
	"finra.org":       {},
	"example.com":     {},
	"sampleemail.com": {},
	"email.com":       {},
	"domain.com":      {},
	"yourcompany.com": {},
	"company.com":     {},
}

// ExcludedEmailPrefixes reject role inboxes; a human contact never starts
// with these local parts.
var ExcludedEmailPrefixes = []string{
	"info@", "support@", "admin@", "webmaster@", "noreply@",
	"no-reply@", "sales@", "marketing@", "help@", "contact@",
	"hello@", "office@", "mail@", "general@",
}

// AssetExtensions flag pseudo-domains that are really static asset filenames
// picked up by the email regex inside asset URLs.
var AssetExtensions = []string{".png", ".jpg", ".gif", ".svg", ".css", ".js"}

// CorpWords are corporate-suffix tokens; a "name" containing one names an
// entity, not a person.
var CorpWords = map[string]struct{}{
	"LLC": {}, "INC": {}, "LTD": {}, "CORP": {}, "LP": {}, "LLP": {},
	"THE": {}, "AND": {}, "GROUP": {},
}

// FalseNameWords look like names (capitalized) but are financial or marketing
// terms. If ANY word in a candidate name matches, the name is rejected.
var FalseNameWords = map[string]struct{}{
	"CASH": {}, "ACCOUNT": {}, "ACCOUNTS": {}, "RESERVE": {}, "FUND": {},
	"FUNDS": {}, "TRUST": {}, "CAPITAL": {}, "INVESTMENT": {},
	"INVESTMENTS": {}, "ADVISORY": {}, "ADVISORS": {}, "ADVISERS": {},
	"WEALTH": {}, "MANAGEMENT": {}, "FINANCIAL": {}, "SECURITIES": {},
	"SERVICES": {}, "PORTFOLIO": {}, "ASSET": {}, "ASSETS": {}, "EQUITY": {},
	"BOND": {}, "BONDS": {}, "MARKET": {}, "MARKETS": {}, "TRADING": {},
	"RETIREMENT": {}, "PLANNING": {}, "BROKERAGE": {}, "BANKING": {},
	"INSURANCE": {}, "COMPLIANCE": {}, "REGISTERED": {}, "PROGRAM": {},
	"BANKS": {}, "BEST": {}, "HIGH": {}, "LOW": {}, "NET": {}, "WORTH": {},
	"RATE": {}, "RATES": {}, "YIELD": {}, "PERFORMANCE": {}, "REPORT": {},
	"RETURNS": {}, "INCOME": {}, "INTEREST": {}, "DEPOSIT": {},
	"SAVINGS": {}, "CHECKING": {}, "CREDIT": {}, "DEBIT": {}, "LOAN": {},
	"MORTGAGE": {}, "PREMIER": {}, "PREMIUM": {}, "BASIC": {},
	"STANDARD": {}, "ADVANCED": {}, "SELECT": {}, "ABOUT": {}, "MORE": {},
	"LEARN": {}, "VIEW": {}, "DETAILS": {}, "TERMS": {}, "PRIVACY": {},
	"POLICY": {}, "CONTACT": {}, "HELP": {}, "SUPPORT": {}, "HOME": {},
	"BACK": {}, "NEXT": {},
}

// BioVerbCues open a biography sentence right after a person's name
// ("Jane Smith has over twenty years...").
var BioVerbCues = []string{
	"is", "has", "was", "joined", "founded", "leads", "serves",
	"brings", "manages", "oversees", "co-founded",
}
