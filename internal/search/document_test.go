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

func TestDocumentExtractorExtract(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	sel := cfg.Selectors

	t.Run("title, content and metadata", func(t *testing.T) {
		fake := browsertest.New()
		fake.CurrentURL = "https://access.redhat.com/solutions/12345"
		fake.Present[sel.DocumentContent] = true
		fake.ElementSets[sel.DocumentTitle] = []browser.Element{
			&browsertest.FakeElement{Inner: "How to fix a memory leak"},
		}
		fake.ElementSets[sel.DocumentContent] = []browser.Element{
			&browsertest.FakeElement{Inner: "Apply the following kernel update."},
		}
		fake.ElementSets[sel.MetadataGroups] = []browser.Element{
			&browsertest.FakeElement{Children: map[string]*browsertest.FakeElement{
				sel.MetadataTerm:  {Inner: "Environment:"},
				sel.MetadataValue: {Inner: "Red Hat Enterprise Linux 9"},
			}},
			&browsertest.FakeElement{Children: map[string]*browsertest.FakeElement{
				sel.MetadataTerm: {Inner: "Orphan label"},
			}},
		}

		extractor := NewDocumentExtractor(cfg, zerolog.Nop())
		doc, ok := extractor.Extract(ctx, fake)

		require.True(t, ok)
		assert.Equal(t, "How to fix a memory leak", doc.Title)
		assert.Equal(t, "Apply the following kernel update.", doc.Content)
		assert.Equal(t, "https://access.redhat.com/solutions/12345", doc.URL)
		assert.Equal(t, map[string]string{"Environment": "Red Hat Enterprise Linux 9"}, doc.Metadata)
	})

	t.Run("content never appearing reports not ok", func(t *testing.T) {
		fake := browsertest.New()
		extractor := NewDocumentExtractor(cfg, zerolog.Nop())
		_, ok := extractor.Extract(ctx, fake)
		assert.False(t, ok)
	})
}
