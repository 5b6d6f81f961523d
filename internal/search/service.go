package search

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/auth"
	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
	"github.com/woodgate/woodgate/internal/consent"
)

// ControllerFactory yields a fresh page controller per operation.
// *browser.Launcher satisfies it.
type ControllerFactory interface {
	NewController(ctx context.Context, storagePath string) (browser.Controller, error)
}

// Service runs the full authenticated pipeline: acquire a page, log in,
// navigate, suppress overlays, extract with retry, release the page. Each
// operation drives its own page, so access to the page handle is serialized
// by construction. Automation failures never escape as panics or raw driver
// errors; callers get an empty result or a failed verdict plus a diagnostic
// log line.
type Service struct {
	cfg     config.Config
	factory ControllerFactory
	log     zerolog.Logger
}

func NewService(cfg config.Config, factory ControllerFactory, log zerolog.Logger) *Service {
	return &Service{cfg: cfg, factory: factory, log: log}
}

// Search logs in and extracts records for the query. An empty slice with a
// nil error means "no results found or extraction degraded".
func (s *Service) Search(ctx context.Context, creds auth.Credentials, q Query) (records []Record, err error) {
	defer s.guard("search", &err)

	q = q.Normalize(s.cfg.DefaultRows)
	pc, authenticator, suppressor, err := s.openSession(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, pc, authenticator)

	searchURL := BuildURL(s.cfg.SearchURL(), q)
	s.log.Info().Str("url", searchURL).Msg("navigating to search results")
	if err := pc.Navigate(ctx, searchURL); err != nil {
		return nil, fmt.Errorf("navigate to search results: %w", err)
	}
	suppressor.Suppress(ctx, pc)

	extractor := NewExtractor(s.cfg, s.log.With().Str("comp", "extract").Logger())
	retrier := NewRetrier(s.cfg, extractor, suppressor, s.log.With().Str("comp", "retry").Logger())
	records = retrier.Run(ctx, pc, s.cfg.MaxRetries, q.Rows)
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

// ProductAlerts logs in and extracts the security advisories for a product.
func (s *Service) ProductAlerts(ctx context.Context, creds auth.Credentials, product string) (alerts []Alert, err error) {
	defer s.guard("alerts", &err)

	pc, authenticator, suppressor, err := s.openSession(ctx, creds)
	if err != nil {
		return nil, err
	}
	defer s.release(ctx, pc, authenticator)

	alertsURL := BuildAlertsURL(s.cfg.BaseURL, product)
	s.log.Info().Str("url", alertsURL).Msg("navigating to product advisories")
	if err := pc.Navigate(ctx, alertsURL); err != nil {
		return nil, fmt.Errorf("navigate to advisories: %w", err)
	}
	suppressor.Suppress(ctx, pc)

	extractor := NewAlertExtractor(s.cfg, s.log.With().Str("comp", "alerts").Logger())
	alerts = extractor.Extract(ctx, pc)
	if alerts == nil {
		alerts = []Alert{}
	}
	return alerts, nil
}

// DocumentContent logs in and extracts one document's content and metadata.
func (s *Service) DocumentContent(ctx context.Context, creds auth.Credentials, docURL string) (doc Document, err error) {
	defer s.guard("document", &err)

	pc, authenticator, suppressor, err := s.openSession(ctx, creds)
	if err != nil {
		return Document{}, err
	}
	defer s.release(ctx, pc, authenticator)

	s.log.Info().Str("url", docURL).Msg("navigating to document")
	if err := pc.Navigate(ctx, docURL); err != nil {
		return Document{}, fmt.Errorf("navigate to document: %w", err)
	}
	suppressor.Suppress(ctx, pc)

	extractor := NewDocumentExtractor(s.cfg, s.log.With().Str("comp", "document").Logger())
	doc, ok := extractor.Extract(ctx, pc)
	if !ok {
		return Document{}, fmt.Errorf("document content did not load: %s", docURL)
	}
	return doc, nil
}

// openSession acquires a page and drives it through the login state machine.
// The authenticator and suppressor live exactly as long as the page.
func (s *Service) openSession(ctx context.Context, creds auth.Credentials) (browser.Controller, *auth.Authenticator, *consent.Suppressor, error) {
	pc, err := s.factory.NewController(ctx, s.cfg.StorageStatePath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("acquire page: %w", err)
	}
	suppressor := consent.New(s.cfg.Selectors, s.cfg.ConsentWait, s.log.With().Str("comp", "consent").Logger())
	authenticator := auth.New(s.cfg, suppressor, s.log.With().Str("comp", "auth").Logger())

	state := authenticator.Login(ctx, pc, creds)
	if !state.Authenticated {
		_ = pc.Close(ctx)
		return nil, nil, nil, fmt.Errorf("login failed: %s", state.Reason)
	}
	return pc, authenticator, suppressor, nil
}

// release persists storage state for verified sessions, then closes the page.
func (s *Service) release(ctx context.Context, pc browser.Controller, authenticator *auth.Authenticator) {
	if s.cfg.StorageStatePath != "" && authenticator.State().Authenticated {
		if err := pc.SaveState(ctx, s.cfg.StorageStatePath); err != nil {
			s.log.Debug().Err(err).Msg("storage state save failed")
		}
	}
	if err := pc.Close(ctx); err != nil {
		s.log.Debug().Err(err).Msg("page close failed")
	}
}

// guard is the outermost boundary: unknown panics become a logged error
// value instead of escaping to the transport.
func (s *Service) guard(op string, err *error) {
	if r := recover(); r != nil {
		s.log.Error().Interface("panic", r).Str("op", op).
			Str("stack", string(debug.Stack())).Msg("unexpected automation failure")
		*err = fmt.Errorf("%s: unexpected automation failure", op)
	}
}
