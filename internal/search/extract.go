package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
	"github.com/woodgate/woodgate/internal/snapshot"
)

// Attempt holds per-call extraction diagnostics. It is discarded after each
// attempt; only the record list travels further.
type Attempt struct {
	Found    int
	Parsed   int
	Failures []string
}

// Extractor pulls normalized records out of the rendered results page.
type Extractor struct {
	cfg config.Config
	log zerolog.Logger
}

func NewExtractor(cfg config.Config, log zerolog.Logger) *Extractor {
	return &Extractor{cfg: cfg, log: log}
}

// Extract waits for the results DOM to settle, enumerates result elements
// and parses each element's embedded JSON payload. Element-level failures
// are skipped and counted; they never abort the batch. An empty list is a
// valid, retryable outcome, not an error.
func (e *Extractor) Extract(ctx context.Context, pc browser.Controller, maxResults int) ([]Record, Attempt) {
	attempt := Attempt{}
	sel := e.cfg.Selectors

	snap := snapshot.Collect(ctx, pc)
	e.log.Debug().Stringer("page", snap).Msg("starting extraction")

	e.handleLoginBounce(ctx, pc)

	if err := pc.WaitForSelector(ctx, "body", e.cfg.BodyWait); err != nil {
		e.log.Warn().Err(err).Msg("page body did not load, returning empty for retry")
		return nil, attempt
	}

	// Fixed-offset scroll to trigger lazy-loaded content; failure is logged
	// and ignored.
	if _, err := pc.Evaluate(ctx, "() => window.scrollTo(0, 300)"); err != nil {
		e.log.Debug().Err(err).Msg("scroll trigger failed")
	}

	items, err := pc.Elements(ctx, sel.ResultItems.Selector)
	if err != nil {
		e.log.Warn().Err(err).Msg("result element lookup failed")
		return nil, attempt
	}
	if len(items) == 0 {
		items, err = pc.Elements(ctx, sel.ResultItemsFallback.Selector)
		if err != nil {
			e.log.Warn().Err(err).Msg("fallback result element lookup failed")
			return nil, attempt
		}
		if len(items) > 0 {
			e.log.Debug().Int("count", len(items)).Str("locator", sel.ResultItemsFallback.Name).
				Msg("results found via fallback selector")
		}
	}
	if maxResults > 0 && len(items) > maxResults {
		items = items[:maxResults]
	}
	attempt.Found = len(items)

	records := make([]Record, 0, len(items))
	for i, item := range items {
		data, err := item.Attribute(ctx, sel.ResultDataAttribute)
		if err != nil || strings.TrimSpace(data) == "" {
			attempt.Failures = append(attempt.Failures, fmt.Sprintf("element %d: missing %s attribute", i+1, sel.ResultDataAttribute))
			continue
		}
		rec, err := parseRecord(data)
		if err != nil {
			attempt.Failures = append(attempt.Failures, fmt.Sprintf("element %d: %v", i+1, err))
			continue
		}
		records = append(records, rec)
	}
	attempt.Parsed = len(records)

	e.log.Info().Int("found", attempt.Found).Int("parsed", attempt.Parsed).
		Int("failed", len(attempt.Failures)).Msg("extraction attempt finished")
	for _, failure := range attempt.Failures {
		e.log.Debug().Str("failure", failure).Msg("result element skipped")
	}
	return records, attempt
}

// handleLoginBounce detects an authentication redirect back to the SSO page
// and waits it out, reloading once if the page stays on the login title.
func (e *Extractor) handleLoginBounce(ctx context.Context, pc browser.Controller) {
	sel := e.cfg.Selectors
	title, _ := pc.Title()
	bounced := strings.Contains(title, sel.LoginTitleMarker) ||
		strings.Contains(pc.URL(), sel.LoginBounceURLMarker) ||
		strings.Contains(pc.URL(), sel.SSOURLMarker)
	if !bounced {
		return
	}

	e.log.Debug().Str("title", title).Msg("login bounce detected, waiting for redirect to settle")
	err := pc.WaitForURL(ctx, func(u string) bool {
		return !strings.Contains(u, sel.LoginBounceURLMarker) && !strings.Contains(u, sel.SSOURLMarker)
	}, e.cfg.BounceWait)

	title, _ = pc.Title()
	if err != nil || strings.Contains(title, sel.LoginTitleMarker) {
		e.log.Debug().Msg("still on login page, forcing reload")
		if err := pc.Reload(ctx); err != nil {
			e.log.Warn().Err(err).Msg("reload after login bounce failed")
			return
		}
		if err := pc.WaitReady(ctx, e.cfg.BodyWait); err != nil {
			e.log.Debug().Err(err).Msg("page not ready after bounce reload")
		}
	}
}
