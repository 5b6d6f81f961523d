// Package auth drives the portal's multi-step SSO login form and verifies
// the resulting session through redundant, independent signals.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/config"
	"github.com/woodgate/woodgate/internal/consent"
	"github.com/woodgate/woodgate/internal/snapshot"
)

// State names the position in the login state machine.
type State int

const (
	StateAnonymous State = iota
	StateUsernameEntered
	StatePasswordPrompt
	StateSubmitted
	StateVerified
	StateFailed
)

// FailureReason explains a Failed terminal state.
type FailureReason string

const (
	ReasonNone              FailureReason = ""
	ReasonPageLoadTimeout   FailureReason = "PageLoadTimeout"
	ReasonUsernameNotFound  FailureReason = "UsernameFieldNotFound"
	ReasonPasswordTimeout   FailureReason = "PasswordStepTimeout"
	ReasonRedirectToLogin   FailureReason = "RedirectToLogin"
	ReasonUnhandledLoginErr FailureReason = "UnhandledLoginError"
)

// VerificationMethod records which signal confirmed the session.
type VerificationMethod string

const (
	VerifyURL        VerificationMethod = "url"
	VerifyDOMElement VerificationMethod = "domElement"
	VerifyCookie     VerificationMethod = "cookie"
	VerifyFallback   VerificationMethod = "fallbackNavigation"
)

// SessionState is re-derived on every verification; it is never trusted
// beyond the lifetime of one browser session.
type SessionState struct {
	Authenticated  bool
	LastVerifiedAt time.Time
	Method         VerificationMethod
	Reason         FailureReason
}

// Credentials are consumed at form entry only and never logged.
type Credentials struct {
	Username string
	Password string
}

// Authenticator owns the SessionState for one browser session.
type Authenticator struct {
	cfg        config.Config
	suppressor *consent.Suppressor
	log        zerolog.Logger
	state      SessionState
}

func New(cfg config.Config, suppressor *consent.Suppressor, log zerolog.Logger) *Authenticator {
	return &Authenticator{cfg: cfg, suppressor: suppressor, log: log}
}

// State returns the current session verdict.
func (a *Authenticator) State() SessionState { return a.state }

// Login runs the login state machine against the given page. It is
// idempotent: once the session is verified, subsequent calls perform no form
// interaction. Failures set a Failed state instead of returning an error;
// only the verdict is surfaced to the caller.
func (a *Authenticator) Login(ctx context.Context, pc browser.Controller, creds Credentials) SessionState {
	if a.state.Authenticated {
		a.log.Debug().Msg("session already verified, skipping login")
		return a.state
	}
	sel := a.cfg.Selectors

	if err := pc.Navigate(ctx, a.cfg.LoginURL); err != nil {
		return a.fail(ctx, pc, ReasonPageLoadTimeout, err)
	}
	if err := pc.WaitForSelector(ctx, "body", a.cfg.BodyWait); err != nil {
		return a.fail(ctx, pc, ReasonPageLoadTimeout, err)
	}

	a.suppressor.Suppress(ctx, pc)

	usernameLoc, ok := firstPresent(ctx, pc, sel.UsernameFields, a.cfg.FieldWait)
	if !ok {
		return a.fail(ctx, pc, ReasonUsernameNotFound, nil)
	}
	if err := pc.Fill(ctx, usernameLoc.Selector, creds.Username, a.cfg.FieldWait); err != nil {
		return a.fail(ctx, pc, ReasonUsernameNotFound, err)
	}
	a.log.Debug().Str("locator", usernameLoc.Name).Msg("username entered")

	// Some flows auto-advance to the password step, so a missing Next
	// control is not an error.
	if loc, ok := firstPresent(ctx, pc, sel.NextButtons, 2*time.Second); ok {
		if err := pc.ScriptClick(ctx, loc.Selector); err != nil {
			a.log.Debug().Err(err).Str("locator", loc.Name).Msg("next button click failed")
		}
	} else {
		a.log.Debug().Msg("no next button found, assuming single-step form")
	}

	passwordLoc, ok := firstPresent(ctx, pc, sel.PasswordFields, a.cfg.PasswordWait)
	if !ok {
		return a.fail(ctx, pc, ReasonPasswordTimeout, nil)
	}

	// The step transition can re-trigger a consent overlay.
	a.suppressor.Suppress(ctx, pc)

	if err := pc.Fill(ctx, passwordLoc.Selector, creds.Password, a.cfg.FieldWait); err != nil {
		return a.fail(ctx, pc, ReasonPasswordTimeout, err)
	}
	a.log.Debug().Str("locator", passwordLoc.Name).Msg("password entered")

	if loc, ok := firstPresent(ctx, pc, sel.LoginButtons, 2*time.Second); ok {
		if err := pc.ScriptClick(ctx, loc.Selector); err != nil {
			a.log.Debug().Err(err).Str("locator", loc.Name).Msg("login button click failed")
		}
	} else {
		a.log.Warn().Msg("no login button found")
	}

	return a.verify(ctx, pc)
}

// verify runs the ordered verification checks; the first success wins. When
// all of them time out, direct navigation to the search resource decides.
func (a *Authenticator) verify(ctx context.Context, pc browser.Controller) SessionState {
	sel := a.cfg.Selectors

	checks := []struct {
		method VerificationMethod
		run    func() bool
	}{
		{VerifyURL, func() bool {
			return pc.WaitForURL(ctx, func(u string) bool {
				return strings.Contains(u, sel.AuthenticatedURLMarker) && !strings.Contains(u, sel.SSOURLMarker)
			}, a.cfg.VerifyWait) == nil
		}},
		{VerifyDOMElement, func() bool {
			return pc.WaitForSelector(ctx, sel.AuthenticatedElements, a.cfg.VerifyWait) == nil
		}},
		{VerifyCookie, func() bool {
			cookies, err := pc.Cookies(ctx)
			return err == nil && snapshot.HasCookieMarker(cookies, sel.SSOCookieMarker)
		}},
	}

	for _, check := range checks {
		if check.run() {
			a.state = SessionState{Authenticated: true, LastVerifiedAt: time.Now(), Method: check.method}
			a.log.Info().Str("method", string(check.method)).Msg("login verified")
			return a.state
		}
		a.log.Debug().Str("method", string(check.method)).Msg("verification check did not succeed")
	}

	// Recovery path: reaching the authenticated resource directly counts as
	// implicit verification, unless the SSO domain bounces us back.
	a.log.Debug().Msg("all verification checks timed out, trying direct navigation")
	if err := pc.Navigate(ctx, a.cfg.SearchURL()); err != nil {
		return a.fail(ctx, pc, ReasonUnhandledLoginErr, err)
	}
	if err := pc.WaitForSelector(ctx, "body", a.cfg.BodyWait); err != nil {
		a.log.Debug().Err(err).Msg("body wait after fallback navigation")
	}
	if strings.Contains(pc.URL(), sel.SSOURLMarker) {
		return a.fail(ctx, pc, ReasonRedirectToLogin, nil)
	}
	a.state = SessionState{Authenticated: true, LastVerifiedAt: time.Now(), Method: VerifyFallback}
	a.log.Info().Str("method", string(VerifyFallback)).Msg("login verified via direct navigation")
	return a.state
}

func (a *Authenticator) fail(ctx context.Context, pc browser.Controller, reason FailureReason, err error) SessionState {
	snap := snapshot.Collect(ctx, pc)
	a.log.Error().Err(err).Str("reason", string(reason)).Stringer("page", snap).Msg("login failed")
	a.state = SessionState{Reason: reason}
	return a.state
}

// firstPresent is the interpreter over an ordered locator list: each entry
// gets its own bounded wait, and a miss advances to the next entry.
func firstPresent(ctx context.Context, pc browser.Controller, locs []config.Locator, per time.Duration) (config.Locator, bool) {
	for _, loc := range locs {
		if err := pc.WaitForSelector(ctx, loc.Selector, per); err == nil {
			return loc, true
		}
	}
	return config.Locator{}, false
}
