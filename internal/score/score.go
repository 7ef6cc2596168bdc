// Package score rates newly registered advisory firms against an ideal
// customer profile. The score blends registry data with homepage signals and
// normalizes against the points actually obtainable for that firm, so firms
// with unreachable sites are not penalized for unreadable content.
package score

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"surge/internal/enrich/extract"
	"surge/internal/enrich/models"
	"surge/internal/registry"
)

// nameAdvisoryKeywords mark wealth/advisory focus in the firm name.
var nameAdvisoryKeywords = []string{
	"wealth", "advisory", "advisors", "financial planning", "capital",
	"investment", "asset management", "portfolio", "retirement",
	"fiduciary", "private client", "family office",
}

// nameTeamKeywords mark a multi-person practice rather than a solo one.
var nameTeamKeywords = []string{
	"group", "partners", "associates", "& co", "team", "consulting",
	"services", "solutions", "global", "strategic",
}

var topFinancialStates = map[string]struct{}{
	"NY": {}, "CA": {}, "TX": {}, "FL": {}, "CT": {},
	"MA": {}, "IL": {}, "NJ": {}, "PA": {}, "CO": {},
}

// websiteSignal is one homepage keyword category with its point value.
type websiteSignal struct {
	name     string
	points   int
	keywords []string
}

var websiteSignals = []websiteSignal{
	{"compliance", 14, []string{
		"compliance", "regulatory", "fiduciary", "sec registered",
		"form adv", "disclosure", "audit", "examination",
	}},
	{"advisory_services", 12, []string{
		"wealth management", "financial planning", "investment advisory",
		"portfolio management", "asset management", "retirement planning",
		"estate planning", "tax planning", "financial advisor",
	}},
	{"team", 10, []string{
		"our team", "meet the team", "our advisors", "our professionals",
		"leadership", "managing director", "vice president", "partner",
		"staff", "employees",
	}},
	{"clients", 10, []string{
		"assets under management", "aum", "clients", "high net worth",
		"institutional", "individuals", "families", "client service",
	}},
	{"technology", 8, []string{
		"technology", "digital", "platform", "portal", "fintech",
		"innovation", "automated", "online", "app",
	}},
	{"cybersecurity", 11, []string{
		"cybersecurity", "data protection", "privacy", "information security",
		"data management", "secure", "encryption",
	}},
}

const (
	dataMaxPoints      = 50
	reachablePoints    = 5
	insufficientCutoff = 3
	fetchDelay         = 500 * time.Millisecond
)

// Result is one firm's fit assessment. Insufficient means the firm had no
// website and almost no registry data, so no number is meaningful.
type Result struct {
	Score        int      `json:"score"`
	Insufficient bool     `json:"insufficient,omitempty"`
	Reasons      []string `json:"reasons"`
}

// PageSource loads a homepage document; nil means unreachable. Satisfied by
// *fetch.Fetcher.
type PageSource interface {
	Page(ctx context.Context, url string) *goquery.Document
}

// Scorer computes fit scores. Website fetches are paced with a limiter so
// batch scoring does not hammer prospect sites.
type Scorer struct {
	pages   PageSource
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewScorer builds a Scorer; pages may be nil to score from registry data only.
func NewScorer(pages PageSource, logger *slog.Logger) *Scorer {
	return &Scorer{
		pages:   pages,
		limiter: rate.NewLimiter(rate.Every(fetchDelay), 1),
		logger:  logger,
	}
}

// Score rates one firm. It never returns an error: unreachable websites and
// missing data degrade the score instead of failing the call.
func (s *Scorer) Score(ctx context.Context, firm registry.Firm) Result {
	dataScore, dataReasons := scoreFromData(firm)

	hasWebsite := models.NormalizeURL(firm.Website) != ""
	if !hasWebsite && dataScore <= insufficientCutoff {
		return Result{Insufficient: true, Reasons: []string{"insufficient_data"}}
	}

	webScore, webMax := 0, 0
	var webReasons []string
	if hasWebsite && s.pages != nil {
		if err := s.limiter.Wait(ctx); err == nil {
			if doc := s.pages.Page(ctx, models.NormalizeURL(firm.Website)); doc != nil {
				text := strings.ToLower(extract.DocumentText(doc))
				webScore, webMax, webReasons = scoreFromWebsite(text)
			} else {
				s.logger.DebugContext(ctx, "homepage unreachable", "website", firm.Website, "crd", firm.CRD)
			}
		}
	}

	totalMax := dataMaxPoints + webMax
	normalized := (dataScore + webScore) * 100 / totalMax
	if normalized > 100 {
		normalized = 100
	}

	return Result{
		Score:   normalized,
		Reasons: append(dataReasons, webReasons...),
	}
}

func scoreFromData(firm registry.Firm) (int, []string) {
	score := 0
	var reasons []string

	company := strings.ToLower(firm.Company)
	state := strings.ToUpper(strings.TrimSpace(firm.State))

	if models.NormalizeURL(firm.Website) != "" {
		score += 8
		reasons = append(reasons, "has_website")
	}
	if strings.TrimSpace(firm.Phone) != "" {
		score += 3
		reasons = append(reasons, "has_phone")
	}
	if containsAny(company, nameAdvisoryKeywords) {
		score += 6
		reasons = append(reasons, "name_advisory")
	}
	if containsAny(company, nameTeamKeywords) {
		score += 4
		reasons = append(reasons, "name_team")
	}
	if _, ok := topFinancialStates[state]; ok {
		score += 4
		reasons = append(reasons, "top_state")
	}

	switch {
	case firm.Employees >= 10:
		score += 10
		reasons = append(reasons, "team_10+")
	case firm.Employees >= 3:
		score += 6
		reasons = append(reasons, "team_3+")
	case firm.Employees >= 1:
		score += 2
		reasons = append(reasons, "has_employees")
	}

	switch {
	case firm.AUM >= 1_000_000_000:
		score += 10
		reasons = append(reasons, "aum_1B+")
	case firm.AUM >= 100_000_000:
		score += 8
		reasons = append(reasons, "aum_100M+")
	case firm.AUM >= 10_000_000:
		score += 5
		reasons = append(reasons, "aum_10M+")
	case firm.AUM > 0:
		score += 2
		reasons = append(reasons, "has_aum")
	}

	switch {
	case firm.Clients >= 100:
		score += 5
		reasons = append(reasons, "clients_100+")
	case firm.Clients >= 10:
		score += 3
		reasons = append(reasons, "clients_10+")
	case firm.Clients > 0:
		score += 1
		reasons = append(reasons, "has_clients")
	}

	return score, reasons
}

// scoreFromWebsite returns the earned points, the obtainable maximum, and the
// categories that matched. The maximum includes every category plus the
// reachability base, since all were assessable once the page loaded.
func scoreFromWebsite(text string) (int, int, []string) {
	score := reachablePoints
	max := reachablePoints
	reasons := []string{"site_reachable"}

	for _, signal := range websiteSignals {
		max += signal.points
		if containsAny(text, signal.keywords) {
			score += signal.points
			reasons = append(reasons, signal.name)
		}
	}
	return score, max, reasons
}

func containsAny(haystack string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(haystack, needle) {
			return true
		}
	}
	return false
}

// RankFirms orders scored firms best first, with insufficient-data firms at
// the bottom in their original order. It returns indexes into the inputs.
func RankFirms(firms []registry.Firm, results []Result) []int {
	order := make([]int, len(firms))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := results[order[a]], results[order[b]]
		if ra.Insufficient != rb.Insufficient {
			return !ra.Insufficient
		}
		return ra.Score > rb.Score
	})
	return order
}
