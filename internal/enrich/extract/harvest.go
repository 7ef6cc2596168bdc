package extract

import (
	"net/url"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"surge/internal/enrich/lexicon"
)

// HarvestEmails extracts and filters email addresses from a page: mailto
// links plus regex matches over the visible text. Generic role inboxes,
// placeholder/regulator domains, and asset-URL artifacts are dropped.
// Addresses on the firm's own domain sort first so later assignment prefers
// the firm over third parties mentioned incidentally.
func HarvestEmails(page *Page, domain string) []string {
	found := make(map[string]struct{})

	page.Doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			return
		}
		addr := href[len("mailto:"):]
		if i := strings.Index(addr, "?"); i != -1 {
			addr = addr[:i]
		}
		if decoded, err := url.QueryUnescape(addr); err == nil {
			addr = decoded
		}
		addr = strings.ToLower(strings.TrimSpace(addr))
		if emailExactRe.MatchString(addr) {
			found[addr] = struct{}{}
		}
	})

	for _, m := range emailRe.FindAllString(page.Text, -1) {
		found[strings.ToLower(m)] = struct{}{}
	}

	filtered := make([]string, 0, len(found))
	for addr := range found {
		if excludedEmail(addr) {
			continue
		}
		filtered = append(filtered, addr)
	}

	sort.Slice(filtered, func(i, j int) bool {
		iOwn := domain != "" && strings.Contains(filtered[i], domain)
		jOwn := domain != "" && strings.Contains(filtered[j], domain)
		if iOwn != jOwn {
			return iOwn
		}
		return filtered[i] < filtered[j]
	})

	return filtered
}

func excludedEmail(addr string) bool {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return true
	}
	emailDomain := addr[at+1:]

	if _, excluded := lexicon.ExcludedEmailDomains[emailDomain]; excluded {
		return true
	}
	for _, prefix := range lexicon.ExcludedEmailPrefixes {
		if strings.HasPrefix(addr, prefix) {
			return true
		}
	}
	// Regex matches inside asset URLs produce "addresses" whose domain is a
	// filename ("logo@2x.png").
	for _, ext := range lexicon.AssetExtensions {
		if strings.HasSuffix(emailDomain, ext) {
			return true
		}
	}
	return false
}

func localMatchesName(local string, tokens []string) bool {
	for _, tok := range tokens {
		if len(tok) > 2 && strings.Contains(local, tok) {
			return true
		}
	}
	return false
}
