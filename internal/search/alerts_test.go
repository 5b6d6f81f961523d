package search

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/browser/browsertest"
)

func TestBuildAlertsURL(t *testing.T) {
	got := BuildAlertsURL("https://access.redhat.com", "Red Hat Enterprise Linux")
	want := "https://access.redhat.com/security/security-updates/#/?q=Red%20Hat%20Enterprise%20Linux" +
		"&p=1&sort=portal_publication_date%20desc&rows=10&portal_advisory_type=Security%20Advisory"
	require.Equal(t, want, got)
	assert.Equal(t, got, BuildAlertsURL("https://access.redhat.com/", "Red Hat Enterprise Linux"))
}

func advisoryCard(title, href, severity, date, synopsis string) *browsertest.FakeElement {
	sel := testConfig().Selectors
	card := &browsertest.FakeElement{Children: map[string]*browsertest.FakeElement{
		sel.AlertTitle: {
			Inner: title,
			Attrs: map[string]string{"href": href},
		},
	}}
	if severity != "" {
		card.Children[sel.AlertSeverity] = &browsertest.FakeElement{Inner: severity}
	}
	if date != "" {
		card.Children[sel.AlertDate] = &browsertest.FakeElement{Inner: date}
	}
	if synopsis != "" {
		card.Children[sel.AlertSynopsis] = &browsertest.FakeElement{Inner: synopsis}
	}
	return card
}

func TestAlertExtractorExtract(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	sel := cfg.Selectors

	t.Run("extracts cards and skips those without a title link", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present[sel.AlertCards] = true
		fake.ElementSets[sel.AlertCards] = []browser.Element{
			advisoryCard("RHSA-2024:0001", "https://access.redhat.com/errata/RHSA-2024:0001",
				"Critical", "2024-01-10", "kernel security update"),
			&browsertest.FakeElement{},
			advisoryCard("RHSA-2024:0002", "https://access.redhat.com/errata/RHSA-2024:0002",
				"", "", ""),
		}

		extractor := NewAlertExtractor(cfg, zerolog.Nop())
		alerts := extractor.Extract(ctx, fake)

		require.Len(t, alerts, 2)
		assert.Equal(t, "RHSA-2024:0001", alerts[0].Title)
		assert.Equal(t, "Critical", alerts[0].Severity)
		assert.Equal(t, "kernel security update", alerts[0].Summary)
		assert.Equal(t, "RHSA-2024:0002", alerts[1].Title)
		assert.Equal(t, "", alerts[1].Severity)
		assert.Equal(t, "", alerts[1].PublishedDate)
	})

	t.Run("missing card container yields empty list", func(t *testing.T) {
		fake := browsertest.New()
		extractor := NewAlertExtractor(cfg, zerolog.Nop())
		assert.Empty(t, extractor.Extract(ctx, fake))
	})
}
