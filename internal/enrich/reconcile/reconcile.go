// Package reconcile merges noisy, partially-overlapping candidates from
// scraping and the directory service into one best-guess contact.
package reconcile

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"surge/internal/enrich/directory"
	"surge/internal/enrich/lexicon"
	"surge/internal/enrich/models"
)

// PersonLookup backfills an email for a named contact; satisfied by
// *directory.Client. Each call consumes directory quota.
type PersonLookup interface {
	Enabled() bool
	FindEmail(ctx context.Context, domain, firstName, lastName string) (directory.PersonMatch, bool)
}

// Reconciler ranks and merges candidates. It never fails: absence of data is
// a normal outcome and yields an empty contact.
type Reconciler struct {
	lookup PersonLookup
	logger *slog.Logger
}

// New builds a Reconciler. lookup may be nil when no directory credential is
// configured.
func New(lookup PersonLookup, logger *slog.Logger) *Reconciler {
	return &Reconciler{lookup: lookup, logger: logger}
}

// Reconcile produces one contact from the combined candidate list. The merge
// is deterministic: the same candidates in the same order always produce the
// same contact.
func (r *Reconciler) Reconcile(ctx context.Context, domain string, candidates []models.Candidate) models.Contact {
	best := bestNamed(candidates)

	email, emailOwner := bestEmail(candidates, best)

	var contact models.Contact
	if best != nil {
		contact.Name = best.Name
		contact.Title = best.Title
	}
	contact.Email = email

	contact.Phone, contact.SocialProfile = supplemental(candidates, best, emailOwner)

	// Cost-control policy: one targeted, quota-consuming lookup, and only
	// when scraping and the domain search both failed to produce an email
	// for a known name.
	if best != nil && contact.Email == "" && r.lookup != nil && r.lookup.Enabled() && domain != "" {
		tokens := strings.Fields(best.Name)
		if len(tokens) >= 2 {
			match, ok := r.lookup.FindEmail(ctx, domain, tokens[0], tokens[len(tokens)-1])
			if ok && match.Email != "" {
				contact.Email = match.Email
				if contact.Phone == "" {
					contact.Phone = match.Phone
				}
				if contact.SocialProfile == "" {
					contact.SocialProfile = match.SocialProfile
				}
			}
		}
	}

	return contact
}

// bestNamed picks the top-ranked named candidate: best title first, then
// seniority, then directory over scraped, then higher confidence.
func bestNamed(candidates []models.Candidate) *models.Candidate {
	var named []models.Candidate
	for _, c := range candidates {
		if c.Name != "" {
			named = append(named, c)
		}
	}
	if len(named) == 0 {
		return nil
	}

	sort.SliceStable(named, func(i, j int) bool {
		ri, rj := lexicon.TitleRank(named[i].Title), lexicon.TitleRank(named[j].Title)
		if ri != rj {
			return ri < rj
		}
		si, sj := named[i].Seniority.Rank(), named[j].Seniority.Rank()
		if si != sj {
			return si < sj
		}
		di, dj := sourceRank(named[i].Source), sourceRank(named[j].Source)
		if di != dj {
			return di < dj
		}
		return named[i].Confidence > named[j].Confidence
	})

	return &named[0]
}

func sourceRank(s models.Source) int {
	if s == models.SourceDirectory {
		return 0
	}
	return 1
}

// bestEmail prefers an address already attached to the chosen contact;
// otherwise the first available, upgraded to a later verified address when
// the current pick is unverified.
func bestEmail(candidates []models.Candidate, best *models.Candidate) (string, *models.Candidate) {
	if best != nil && best.Email != "" {
		return best.Email, best
	}

	var email string
	var owner *models.Candidate
	for i := range candidates {
		c := &candidates[i]
		if c.Email == "" {
			continue
		}
		if email == "" {
			email, owner = c.Email, c
			continue
		}
		if c.Verified == models.VerificationValid && owner.Verified != models.VerificationValid {
			email, owner = c.Email, c
		}
	}
	return email, owner
}

// supplemental scans the best-named candidate, then the email owner, then
// everyone else, taking the first non-empty phone and social profile. The
// engine does not verify that these belong to the same individual as the
// matched name; that is a documented limitation.
func supplemental(candidates []models.Candidate, best, emailOwner *models.Candidate) (phone, social string) {
	scan := func(c *models.Candidate) {
		if c == nil {
			return
		}
		if phone == "" && c.Phone != "" {
			phone = c.Phone
		}
		if social == "" && c.SocialProfile != "" {
			social = c.SocialProfile
		}
	}

	scan(best)
	scan(emailOwner)
	for i := range candidates {
		if phone != "" && social != "" {
			break
		}
		scan(&candidates[i])
	}
	return phone, social
}
