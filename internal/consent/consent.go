// Package consent dismisses cookie/consent overlays before page elements
// become interactable. Suppression is strictly best-effort: the overlay may
// legitimately be absent, and a failed dismissal must never stop the caller.
package consent

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
)

// Outcome reports which branch suppression took.
type Outcome int

const (
	// NotPresent means no known overlay container was found.
	NotPresent Outcome = iota
	// Dismissed means a container was found and a close control was clicked.
	Dismissed
	// Failed means a container was found but no close control matched.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Dismissed:
		return "dismissed"
	case Failed:
		return "failed"
	default:
		return "not-present"
	}
}

// DidDismiss is the boolean view callers use when the branch does not matter.
func (o Outcome) DidDismiss() bool { return o == Dismissed }

// Suppressor tries an ordered list of overlay container selectors, then an
// ordered list of close controls scoped to the found container, then a
// text-label scan. Controls are clicked via script, not pointer events.
type Suppressor struct {
	containers []config.Locator
	closers    []config.Locator
	labels     []string
	perWait    time.Duration
	log        zerolog.Logger
}

func New(sel config.Selectors, perWait time.Duration, log zerolog.Logger) *Suppressor {
	if perWait <= 0 {
		perWait = 500 * time.Millisecond
	}
	return &Suppressor{
		containers: sel.ConsentContainers,
		closers:    sel.ConsentCloseControls,
		labels:     sel.ConsentButtonLabels,
		perWait:    perWait,
		log:        log,
	}
}

// Suppress never returns an error: every lookup failure degrades to the next
// strategy, and a missing overlay is a normal outcome.
func (s *Suppressor) Suppress(ctx context.Context, pc browser.Controller) Outcome {
	for _, container := range s.containers {
		if err := pc.WaitForSelector(ctx, container.Selector, s.perWait); err != nil {
			continue
		}
		s.log.Debug().Str("container", container.Name).Msg("consent overlay found")

		for _, closer := range s.closers {
			scoped := container.Selector + " " + closer.Selector
			if err := pc.ScriptClick(ctx, scoped); err == nil {
				s.log.Debug().Str("container", container.Name).Str("control", closer.Name).
					Msg("consent overlay dismissed")
				return Dismissed
			}
		}

		label, err := pc.ClickButtonByText(ctx, s.labels)
		if err == nil && label != "" {
			s.log.Debug().Str("label", label).Msg("consent overlay dismissed via text button")
			return Dismissed
		}

		s.log.Debug().Str("container", container.Name).Msg("consent overlay found but no close control matched")
		return Failed
	}
	return NotPresent
}
