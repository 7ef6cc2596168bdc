package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"surge/internal/enrich/models"
)

func TestTitleBioStrategy(t *testing.T) {
	t.Run("standalone title followed by bio opening", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<h3>Chief Compliance Officer</h3>
			<p>Jane A. Smith has served advisory firms for two decades.</p>
		</body></html>`)

		got := titleBioStrategy{}.Extract(page)
		require.Len(t, got, 1)
		assert.Equal(t, "Jane A. Smith", got[0].Name)
		assert.Equal(t, "Chief Compliance Officer", got[0].Title)
		assert.Equal(t, models.SourceScraped, got[0].Source)
	})

	t.Run("compound title line", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<h3>Founder &amp; Managing Partner</h3>
			<p>Mark Doe founded the firm in 2019.</p>
		</body></html>`)

		got := titleBioStrategy{}.Extract(page)
		require.Len(t, got, 1)
		assert.Equal(t, "Mark Doe", got[0].Name)
	})

	t.Run("first non-blank line decides even when it is not a bio", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<h3>Chief Compliance Officer</h3>
			<p>Our firm takes compliance seriously.</p>
			<p>Jane Smith has served advisory firms for two decades.</p>
		</body></html>`)

		got := titleBioStrategy{}.Extract(page)
		assert.Empty(t, got)
	})

	t.Run("bio opening with invalid name rejected", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<h3>President</h3>
			<p>Wealth Management is our passion.</p>
		</body></html>`)

		got := titleBioStrategy{}.Extract(page)
		assert.Empty(t, got)
	})
}

func TestInlineStrategy(t *testing.T) {
	t.Run("name then title", func(t *testing.T) {
		page := pageFrom(t, `<html><body><p>Mark Doe, Managing Partner</p></body></html>`)

		got := inlineStrategy{}.Extract(page)
		require.Len(t, got, 1)
		assert.Equal(t, "Mark Doe", got[0].Name)
		assert.Equal(t, "Managing Partner", got[0].Title)
	})

	t.Run("title then name", func(t *testing.T) {
		page := pageFrom(t, `<html><body><p>Chief Executive Officer: John Smith</p></body></html>`)

		got := inlineStrategy{}.Extract(page)
		require.Len(t, got, 1)
		assert.Equal(t, "John Smith", got[0].Name)
		assert.Equal(t, "Chief Executive Officer", got[0].Title)
	})

	t.Run("specific phrase wins over its substring", func(t *testing.T) {
		page := pageFrom(t, `<html><body><p>Alice Johnson | Managing Partner</p></body></html>`)

		got := inlineStrategy{}.Extract(page)
		require.Len(t, got, 1)
		assert.Equal(t, "Managing Partner", got[0].Title)
	})

	t.Run("jargon name rejected", func(t *testing.T) {
		page := pageFrom(t, `<html><body><p>Wealth Management, Managing Partner</p></body></html>`)

		got := inlineStrategy{}.Extract(page)
		assert.Empty(t, got)
	})
}

func TestContainerStrategy(t *testing.T) {
	t.Run("title with adjacent name in a team card", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<div class="team-member">
				<h4>Alice Johnson</h4>
				<h5>Managing Partner</h5>
			</div>
		</body></html>`)

		got := containerStrategy{}.Extract(page)
		require.NotEmpty(t, got)
		assert.Equal(t, "Alice Johnson", got[0].Name)
		assert.Equal(t, "Managing Partner", got[0].Title)
	})

	t.Run("fallback pairs first name and first title in region", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<div class="advisor-profile">
				<p>Robert Jones serves as the firm's senior principal overseeing client accounts.</p>
			</div>
		</body></html>`)

		got := containerStrategy{}.Extract(page)
		require.NotEmpty(t, got)
		assert.Equal(t, "Robert Jones", got[0].Name)
		assert.Equal(t, "Principal", got[0].Title)
	})

	t.Run("no candidate without both name and title", func(t *testing.T) {
		page := pageFrom(t, `<html><body>
			<div class="team"><p>We are a dedicated staff of professionals.</p></div>
		</body></html>`)

		got := containerStrategy{}.Extract(page)
		assert.Empty(t, got)
	})
}
