package search

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
	"github.com/woodgate/woodgate/internal/consent"
)

// Retrier wraps the extractor with bounded retry. Between failed attempts it
// reloads the page, waits for the results container to reappear and re-runs
// consent suppression, since a reload can resurface the overlay.
type Retrier struct {
	cfg        config.Config
	extractor  *Extractor
	suppressor *consent.Suppressor
	log        zerolog.Logger
}

func NewRetrier(cfg config.Config, extractor *Extractor, suppressor *consent.Suppressor, log zerolog.Logger) *Retrier {
	return &Retrier{cfg: cfg, extractor: extractor, suppressor: suppressor, log: log}
}

// Run returns as soon as an attempt yields records. After maxAttempts the
// last (possibly empty) list is returned; the caller must treat an empty
// list as "no results or extraction degraded", never as an error.
func (r *Retrier) Run(ctx context.Context, pc browser.Controller, maxAttempts, maxResults int) []Record {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	var last []Record
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return last
		}
		records, _ := r.extractor.Extract(ctx, pc, maxResults)
		if len(records) > 0 {
			if attempt > 1 {
				r.log.Info().Int("attempt", attempt).Int("records", len(records)).
					Msg("extraction succeeded after retry")
			}
			return records
		}
		last = records
		if attempt == maxAttempts {
			break
		}

		r.log.Info().Int("attempt", attempt).Int("max", maxAttempts).
			Msg("extraction returned nothing, reloading page")
		r.reloadCycle(ctx, pc)
	}
	r.log.Warn().Int("attempts", maxAttempts).Msg("extraction attempts exhausted")
	return last
}

func (r *Retrier) reloadCycle(ctx context.Context, pc browser.Controller) {
	if err := pc.WaitReady(ctx, r.cfg.BodyWait); err != nil {
		r.log.Debug().Err(err).Msg("load-complete wait before reload timed out")
	}
	if r.cfg.RetryDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(r.cfg.RetryDelay):
		}
	}
	if err := pc.Reload(ctx); err != nil {
		r.log.Warn().Err(err).Msg("page reload failed")
		return
	}
	if err := pc.WaitReady(ctx, r.cfg.BodyWait); err != nil {
		r.log.Debug().Err(err).Msg("load-complete wait after reload timed out")
	}
	if err := pc.WaitForSelector(ctx, r.cfg.Selectors.ResultsContainer, r.cfg.ResultsWait); err != nil {
		r.log.Debug().Err(err).Msg("results container did not reappear after reload")
	}
	r.suppressor.Suppress(ctx, pc)
}
