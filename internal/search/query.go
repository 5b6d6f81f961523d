package search

import (
	"fmt"
	"strings"
)

// Sort orders for search results.
type Sort string

const (
	SortRelevance        Sort = "relevance"
	SortLastModifiedAsc  Sort = "lastModifiedAsc"
	SortLastModifiedDesc Sort = "lastModifiedDesc"
)

// portalValue maps the sort order to the portal's query-string value.
func (s Sort) portalValue() string {
	switch s {
	case SortLastModifiedAsc:
		return "lastModifiedDate asc"
	case SortLastModifiedDesc:
		return "lastModifiedDate desc"
	default:
		return "relevant"
	}
}

// ParseSort accepts both the public sort names and the portal's own values,
// defaulting to relevance for anything unrecognized.
func ParseSort(s string) Sort {
	switch strings.TrimSpace(s) {
	case string(SortLastModifiedAsc), "lastModifiedDate asc":
		return SortLastModifiedAsc
	case string(SortLastModifiedDesc), "lastModifiedDate desc":
		return SortLastModifiedDesc
	default:
		return SortRelevance
	}
}

// Query describes one search invocation. Immutable once built into a URL.
type Query struct {
	Text     string
	Products []string
	DocTypes []string
	Page     int
	Rows     int
	Sort     Sort
}

// Normalize clamps page/rows to their minimums.
func (q Query) Normalize(defaultRows int) Query {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Rows <= 0 {
		q.Rows = defaultRows
	}
	return q
}

// BuildURL renders the portal search URL. It is a pure function of the query
// fields: the same query always yields a byte-identical URL. Spaces in the
// free text and in filter values become '+', and multi-value filters are
// joined with a literal '%26' as the portal expects.
func BuildURL(base string, q Query) string {
	var b strings.Builder
	b.WriteString(base)
	if !strings.HasSuffix(base, "?") {
		b.WriteString("?")
	}
	b.WriteString("q=")
	b.WriteString(plusEscape(q.Text))
	fmt.Fprintf(&b, "&p=%d", q.Page)
	fmt.Fprintf(&b, "&rows=%d", q.Rows)
	b.WriteString("&product=")
	b.WriteString(joinFilter(q.Products))
	b.WriteString("&documentKind=")
	b.WriteString(joinFilter(q.DocTypes))
	b.WriteString("&sort=")
	b.WriteString(plusEscape(q.Sort.portalValue()))
	return b.String()
}

func plusEscape(s string) string {
	return strings.ReplaceAll(s, " ", "+")
}

func joinFilter(values []string) string {
	escaped := make([]string, 0, len(values))
	for _, v := range values {
		escaped = append(escaped, plusEscape(v))
	}
	return strings.Join(escaped, "%26")
}
