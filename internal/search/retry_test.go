package search

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/browser/browsertest"
	"github.com/woodgate/woodgate/internal/consent"
)

func newRetrier(fakeCfgReloads int) (*Retrier, *browsertest.Fake) {
	cfg := testConfig()
	cfg.RetryDelay = 0
	fake := browsertest.New()
	fake.Present["body"] = true
	fake.OnReload = func() {
		if fake.ReloadCalls >= fakeCfgReloads {
			fake.ElementSets["result-item"] = []browser.Element{goodResult("finally", 1)}
		}
	}
	suppressor := consent.New(cfg.Selectors, cfg.ConsentWait, zerolog.Nop())
	extractor := NewExtractor(cfg, zerolog.Nop())
	return NewRetrier(cfg, extractor, suppressor, zerolog.Nop()), fake
}

func TestRetrierRun(t *testing.T) {
	ctx := context.Background()

	t.Run("returns immediately on first success", func(t *testing.T) {
		retrier, fake := newRetrier(0)
		fake.ElementSets["result-item"] = []browser.Element{goodResult("instant", 1)}

		records := retrier.Run(ctx, fake, 3, 20)
		require.Len(t, records, 1)
		assert.Zero(t, fake.ReloadCalls)
	})

	t.Run("empty until attempt N performs exactly N-1 reload cycles", func(t *testing.T) {
		retrier, fake := newRetrier(2)

		records := retrier.Run(ctx, fake, 3, 20)
		require.Len(t, records, 1)
		assert.Equal(t, "finally", records[0].PublishedTitle)
		assert.Equal(t, 2, fake.ReloadCalls)
	})

	t.Run("exhausted attempts return empty list", func(t *testing.T) {
		retrier, fake := newRetrier(99)

		records := retrier.Run(ctx, fake, 3, 20)
		assert.Empty(t, records)
		assert.Equal(t, 2, fake.ReloadCalls)
	})

	t.Run("reload cycle re-runs consent suppression", func(t *testing.T) {
		retrier, fake := newRetrier(1)
		fake.Present["#onetrust-banner-sdk"] = true
		fake.Present["#onetrust-banner-sdk button.pf-c-button[aria-label='Close']"] = true

		records := retrier.Run(ctx, fake, 2, 20)
		require.Len(t, records, 1)
		assert.Equal(t, []string{"#onetrust-banner-sdk button.pf-c-button[aria-label='Close']"}, fake.ClickCalls)
	})
}
