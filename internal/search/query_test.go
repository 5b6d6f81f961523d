package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	base := "https://access.redhat.com/search/"

	t.Run("spaces become plus signs", func(t *testing.T) {
		q := Query{
			Text:     "memory leak",
			Products: []string{"Red Hat Enterprise Linux", "Red Hat OpenShift"},
			DocTypes: []string{"Solution", "Article"},
			Page:     1,
			Rows:     20,
			Sort:     SortRelevance,
		}
		got := BuildURL(base, q)
		want := "https://access.redhat.com/search/?q=memory+leak&p=1&rows=20" +
			"&product=Red+Hat+Enterprise+Linux%26Red+Hat+OpenShift" +
			"&documentKind=Solution%26Article&sort=relevant"
		require.Equal(t, want, got)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		q := Query{Text: "kernel panic", Page: 2, Rows: 10, Sort: SortLastModifiedDesc}
		require.Equal(t, BuildURL(base, q), BuildURL(base, q))
	})

	t.Run("sort values carry plus escaping", func(t *testing.T) {
		q := Query{Text: "selinux", Page: 1, Rows: 5, Sort: SortLastModifiedAsc}
		assert.Contains(t, BuildURL(base, q), "&sort=lastModifiedDate+asc")

		q.Sort = SortLastModifiedDesc
		assert.Contains(t, BuildURL(base, q), "&sort=lastModifiedDate+desc")
	})

	t.Run("empty filters render empty parameters", func(t *testing.T) {
		q := Query{Text: "podman", Page: 1, Rows: 20, Sort: SortRelevance}
		require.Equal(t,
			"https://access.redhat.com/search/?q=podman&p=1&rows=20&product=&documentKind=&sort=relevant",
			BuildURL(base, q))
	})
}

func TestQueryNormalize(t *testing.T) {
	q := Query{Text: "x", Page: 0, Rows: -1}.Normalize(20)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Rows)

	q = Query{Text: "x", Page: 3, Rows: 50}.Normalize(20)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 50, q.Rows)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortRelevance, ParseSort("relevant"))
	assert.Equal(t, SortRelevance, ParseSort(""))
	assert.Equal(t, SortRelevance, ParseSort("nonsense"))
	assert.Equal(t, SortLastModifiedAsc, ParseSort("lastModifiedDate asc"))
	assert.Equal(t, SortLastModifiedDesc, ParseSort("lastModifiedDate desc"))
	assert.Equal(t, SortLastModifiedDesc, ParseSort("lastModifiedDesc"))
}
