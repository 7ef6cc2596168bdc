package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageFrom(t *testing.T, html string) *Page {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return NewPage(doc)
}

func TestHarvestEmails(t *testing.T) {
	t.Run("collects mailto links and text matches", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<a href="mailto:Jane.Smith@acme.com?subject=hi">Email Jane</a>
			<p>Or reach bob@acme.com directly.</p>
		</body></html>`)

		got := HarvestEmails(page, "acme.com")
		assert.Equal(t, []string{"bob@acme.com", "jane.smith@acme.com"}, got)
	})

	t.Run("drops role inboxes and placeholder domains", func(t *testing.T) {
		page := pageFrom(t, `<html><body><p>
			info@acme.com support@acme.com staff@sec.gov jane@example.com jsmith@acme.com
		</p></body></html>`)

		got := HarvestEmails(page, "acme.com")
		assert.Equal(t, []string{"jsmith@acme.com"}, got)
	})

	t.Run("drops asset filename artifacts", func(t *testing.T) {
		page := pageFrom(t, `<html><body><p>See logo@2x.png and jane@acme.com</p></body></html>`)

		got := HarvestEmails(page, "acme.com")
		assert.Equal(t, []string{"jane@acme.com"}, got)
	})

	t.Run("own-domain addresses sort first", func(t *testing.T) {
		page := pageFrom(t, `<html><body><p>
			aaron@thirdparty.com jane@acme.com
		</p></body></html>`)

		got := HarvestEmails(page, "acme.com")
		assert.Equal(t, []string{"jane@acme.com", "aaron@thirdparty.com"}, got)
	})
}
