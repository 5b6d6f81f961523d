package consent

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodgate/woodgate/internal/browser/browsertest"
	"github.com/woodgate/woodgate/internal/config"
)

func newSuppressor() *Suppressor {
	return New(config.DefaultSelectors(), 50*time.Millisecond, zerolog.Nop())
}

func TestSuppress(t *testing.T) {
	ctx := context.Background()

	t.Run("no overlay present", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present["body"] = true

		out := newSuppressor().Suppress(ctx, fake)
		assert.Equal(t, NotPresent, out)
		assert.False(t, out.DidDismiss())
		assert.Empty(t, fake.ClickCalls)
	})

	t.Run("overlay dismissed via scoped close control", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present["#onetrust-banner-sdk"] = true
		fake.Present["#onetrust-banner-sdk #onetrust-accept-btn-handler"] = true

		out := newSuppressor().Suppress(ctx, fake)
		assert.Equal(t, Dismissed, out)
		assert.True(t, out.DidDismiss())
		require.Len(t, fake.ClickCalls, 1)
		assert.Equal(t, "#onetrust-banner-sdk #onetrust-accept-btn-handler", fake.ClickCalls[0])
	})

	t.Run("close controls scoped to the found container", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present[".pf-c-modal-box"] = true
		// An unscoped control existing elsewhere on the page must not count.
		fake.Present["#onetrust-accept-btn-handler"] = true
		fake.Present[".pf-c-modal-box button.pf-c-button[aria-label='Close']"] = true

		out := newSuppressor().Suppress(ctx, fake)
		assert.Equal(t, Dismissed, out)
		require.Len(t, fake.ClickCalls, 1)
		assert.Equal(t, ".pf-c-modal-box button.pf-c-button[aria-label='Close']", fake.ClickCalls[0])
	})

	t.Run("text label fallback when no close control matches", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present["[role='dialog'][aria-modal='true']"] = true
		fake.ButtonLabels["I agree"] = true

		out := newSuppressor().Suppress(ctx, fake)
		assert.Equal(t, Dismissed, out)
		assert.Empty(t, fake.ClickCalls)
		require.Len(t, fake.LabelClicks, 1)
		assert.Equal(t, "I agree", fake.LabelClicks[0])
	})

	t.Run("localized label matches", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present["#onetrust-banner-sdk"] = true
		fake.ButtonLabels["接受"] = true

		out := newSuppressor().Suppress(ctx, fake)
		assert.Equal(t, Dismissed, out)
		assert.Equal(t, []string{"接受"}, fake.LabelClicks)
	})

	t.Run("overlay found but nothing clickable", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present["#onetrust-banner-sdk"] = true

		out := newSuppressor().Suppress(ctx, fake)
		assert.Equal(t, Failed, out)
		assert.False(t, out.DidDismiss())
	})

	t.Run("outcome strings", func(t *testing.T) {
		assert.Equal(t, "not-present", NotPresent.String())
		assert.Equal(t, "dismissed", Dismissed.String())
		assert.Equal(t, "failed", Failed.String())
	})
}
