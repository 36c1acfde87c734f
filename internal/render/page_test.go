package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/powerboard/internal/config"
	"github.com/omarshaarawi/powerboard/internal/models"
)

func executePage(t *testing.T, cfg config.Render, view models.View) string {
	t.Helper()
	page, err := NewPage(cfg)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, page.Execute(&buf, view))
	return buf.String()
}

func TestPageHasDOMContract(t *testing.T) {
	out := executePage(t, config.Render{}, RenderList(models.LeagueSnapshot{League: "Kappa", Week: "10"}))

	for _, id := range []string{`id="league-name"`, `id="week-label"`, `id="rankings-list"`, `id="refresh-btn"`} {
		assert.Contains(t, out, id)
	}
	assert.Contains(t, out, ">Kappa</h1>")
	assert.Contains(t, out, ">Week 10</p>")
	assert.Contains(t, out, `action="/refresh"`)
}

func TestPageRendersOneListItemPerTeam(t *testing.T) {
	view := RenderList(models.LeagueSnapshot{Teams: []models.Team{
		{Name: "Foo", Record: "3-1", PointsFor: ptr(120.0), Stars: []string{"A", "B"}},
		{Name: "Bar"},
		{Name: "Baz"},
	}})

	out := executePage(t, config.Render{}, view)

	assert.Equal(t, 3, strings.Count(out, `<li class="card tier-`))
	first := strings.Index(out, `data-rank="1"`)
	second := strings.Index(out, `data-rank="2"`)
	third := strings.Index(out, `data-rank="3"`)
	assert.True(t, first >= 0 && first < second && second < third, "cards out of order")
	assert.Contains(t, out, `<span class="team-name">Foo</span>`)
	assert.Contains(t, out, "3-1 · PF 120 · Stars: A, B")
	assert.Contains(t, out, `class="card tier-good"`)
}

func TestPageEmptyAndErrorCards(t *testing.T) {
	empty := executePage(t, config.Render{}, RenderList(models.LeagueSnapshot{}))
	assert.Equal(t, 1, strings.Count(empty, "<li "))
	assert.Contains(t, empty, EmptyMessage)

	failed := executePage(t, config.Render{}, RenderError("Could not load rankings (HTTP 503)."))
	assert.Equal(t, 1, strings.Count(failed, "<li "))
	assert.Contains(t, failed, `role="alert"`)
	assert.Contains(t, failed, "Could not load rankings (HTTP 503).")
	assert.NotContains(t, failed, "data-rank")
}

func TestPageEscapesTextButNotSummary(t *testing.T) {
	view := RenderList(models.LeagueSnapshot{Teams: []models.Team{{
		Name:        "<i>Foo</i>",
		SummaryHTML: `<p>Won <b>big</b></p><script>alert(1)</script>`,
	}}})

	out := executePage(t, config.Render{}, view)

	assert.Contains(t, out, "&lt;i&gt;Foo&lt;/i&gt;")
	assert.Contains(t, out, `<p>Won <b>big</b></p><script>alert(1)</script>`)
}

func TestPageSanitizesSummaryWhenEnabled(t *testing.T) {
	view := RenderList(models.LeagueSnapshot{Teams: []models.Team{{
		Name:        "Foo",
		SummaryHTML: `<p>Won <b>big</b></p><script>alert(1)</script>`,
	}}})

	out := executePage(t, config.Render{SanitizeSummaries: true}, view)

	assert.Contains(t, out, "<p>Won <b>big</b></p>")
	assert.NotContains(t, out, "alert(1)")
}
