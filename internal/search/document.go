package search

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
)

// Document is a single portal document's content plus its metadata pairs.
type Document struct {
	Title    string            `json:"title"`
	Content  string            `json:"content"`
	URL      string            `json:"url"`
	Metadata map[string]string `json:"metadata"`
}

// DocumentExtractor pulls title, body text and label/value metadata off a
// document page.
type DocumentExtractor struct {
	cfg config.Config
	log zerolog.Logger
}

func NewDocumentExtractor(cfg config.Config, log zerolog.Logger) *DocumentExtractor {
	return &DocumentExtractor{cfg: cfg, log: log}
}

// Extract returns ok=false when the document content never appears; that is
// the page-level retryable condition, everything below it degrades field by
// field.
func (e *DocumentExtractor) Extract(ctx context.Context, pc browser.Controller) (Document, bool) {
	sel := e.cfg.Selectors
	doc := Document{URL: pc.URL(), Metadata: map[string]string{}}

	if err := pc.WaitForSelector(ctx, sel.DocumentContent, e.cfg.ResultsWait); err != nil {
		e.log.Warn().Err(err).Msg("document content did not load")
		return doc, false
	}

	if titles, err := pc.Elements(ctx, sel.DocumentTitle); err == nil && len(titles) > 0 {
		if text, err := titles[0].Text(ctx); err == nil {
			doc.Title = text
		}
	}
	if bodies, err := pc.Elements(ctx, sel.DocumentContent); err == nil && len(bodies) > 0 {
		if text, err := bodies[0].Text(ctx); err == nil {
			doc.Content = text
		}
	}

	groups, err := pc.Elements(ctx, sel.MetadataGroups)
	if err != nil {
		e.log.Debug().Err(err).Msg("metadata group lookup failed")
		return doc, true
	}
	for _, group := range groups {
		label := childText(ctx, group, sel.MetadataTerm)
		value := childText(ctx, group, sel.MetadataValue)
		label = strings.TrimSuffix(strings.TrimSpace(label), ":")
		if label != "" && value != "" {
			doc.Metadata[label] = value
		}
	}

	e.log.Info().Str("title", doc.Title).Int("metadata", len(doc.Metadata)).
		Msg("document extraction finished")
	return doc, true
}
