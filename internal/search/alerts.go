package search

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
)

// Alert is one security advisory for a product.
type Alert struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Severity      string `json:"severity"`
	PublishedDate string `json:"published_date"`
	Summary       string `json:"summary"`
}

// BuildAlertsURL renders the security-updates listing URL for one product.
func BuildAlertsURL(base, product string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(product), "+", "%20")
	return fmt.Sprintf("%s/security/security-updates/#/?q=%s&p=1&sort=portal_publication_date%%20desc&rows=10&portal_advisory_type=Security%%20Advisory",
		strings.TrimRight(base, "/"), encoded)
}

// AlertExtractor reads advisory cards off the security-updates page. It
// shares the extractor's wait/skip shape against a different DOM target.
type AlertExtractor struct {
	cfg config.Config
	log zerolog.Logger
}

func NewAlertExtractor(cfg config.Config, log zerolog.Logger) *AlertExtractor {
	return &AlertExtractor{cfg: cfg, log: log}
}

// Extract enumerates advisory cards; cards missing the title link are
// skipped, optional fields default to empty strings.
func (e *AlertExtractor) Extract(ctx context.Context, pc browser.Controller) []Alert {
	sel := e.cfg.Selectors

	if err := pc.WaitForSelector(ctx, sel.AlertCards, e.cfg.ResultsWait); err != nil {
		e.log.Warn().Err(err).Msg("advisory cards did not load")
		return nil
	}
	cards, err := pc.Elements(ctx, sel.AlertCards)
	if err != nil {
		e.log.Warn().Err(err).Msg("advisory card lookup failed")
		return nil
	}

	alerts := make([]Alert, 0, len(cards))
	for i, card := range cards {
		titleEl, err := card.Find(ctx, sel.AlertTitle)
		if err != nil {
			e.log.Debug().Int("card", i+1).Msg("advisory card without title link skipped")
			continue
		}
		title, err := titleEl.Text(ctx)
		if err != nil {
			e.log.Debug().Int("card", i+1).Err(err).Msg("advisory title read failed")
			continue
		}
		href, _ := titleEl.Attribute(ctx, "href")

		alerts = append(alerts, Alert{
			Title:         title,
			URL:           href,
			Severity:      childText(ctx, card, sel.AlertSeverity),
			PublishedDate: childText(ctx, card, sel.AlertDate),
			Summary:       childText(ctx, card, sel.AlertSynopsis),
		})
	}
	e.log.Info().Int("alerts", len(alerts)).Msg("advisory extraction finished")
	return alerts
}

// childText resolves an optional child element to its text, or "".
func childText(ctx context.Context, el browser.Element, selector string) string {
	child, err := el.Find(ctx, selector)
	if err != nil {
		return ""
	}
	text, err := child.Text(ctx)
	if err != nil {
		return ""
	}
	return text
}
