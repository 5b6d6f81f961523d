package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woodgate/woodgate/internal/browser"
	"github.com/woodgate/woodgate/internal/browser/browsertest"
	"github.com/woodgate/woodgate/internal/config"
	"github.com/woodgate/woodgate/internal/consent"
)

func testConfig() config.Config {
	return config.Config{
		BaseURL:      "https://access.redhat.com",
		LoginURL:     "https://access.redhat.com/login",
		BodyWait:     50 * time.Millisecond,
		FieldWait:    50 * time.Millisecond,
		PasswordWait: 50 * time.Millisecond,
		VerifyWait:   50 * time.Millisecond,
		ConsentWait:  50 * time.Millisecond,
		Selectors:    config.DefaultSelectors(),
	}
}

func newAuthenticator(cfg config.Config) *Authenticator {
	suppressor := consent.New(cfg.Selectors, cfg.ConsentWait, zerolog.Nop())
	return New(cfg, suppressor, zerolog.Nop())
}

// formFake scripts a page carrying the two-step login form.
func formFake() *browsertest.Fake {
	fake := browsertest.New()
	fake.Present["body"] = true
	fake.Present["input#username"] = true
	fake.Present[`button:text-is("Next")`] = true
	fake.Present["input[type='password']"] = true
	fake.Present["button[type='submit']"] = true
	fake.OnNavigate = func(url string) {
		if strings.HasSuffix(url, "/login") {
			fake.CurrentURL = "https://sso.redhat.com/auth/realms/redhat-external"
		}
	}
	return fake
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	creds := Credentials{Username: "user@example.com", Password: "secret"}

	t.Run("verified via URL change after submit", func(t *testing.T) {
		fake := formFake()
		fake.OnScriptClick = func(selector string) {
			if selector == "button[type='submit']" {
				fake.CurrentURL = "https://access.redhat.com/management"
			}
		}

		a := newAuthenticator(testConfig())
		state := a.Login(ctx, fake, creds)

		require.True(t, state.Authenticated)
		assert.Equal(t, VerifyURL, state.Method)
		assert.False(t, state.LastVerifiedAt.IsZero())
		require.Len(t, fake.FillCalls, 2)
		assert.Equal(t, "input#username", fake.FillCalls[0].Selector)
		assert.Equal(t, "input[type='password']", fake.FillCalls[1].Selector)
	})

	t.Run("verified via DOM element when URL stays on SSO", func(t *testing.T) {
		cfg := testConfig()
		fake := formFake()
		fake.Present[cfg.Selectors.AuthenticatedElements] = true

		a := newAuthenticator(cfg)
		state := a.Login(ctx, fake, creds)
		require.True(t, state.Authenticated)
		assert.Equal(t, VerifyDOMElement, state.Method)
	})

	t.Run("verified via session cookie marker", func(t *testing.T) {
		fake := formFake()
		fake.CookieJar = []browser.Cookie{
			{Name: "rh_sso_session", Value: "abc", Domain: ".redhat.com"},
		}

		a := newAuthenticator(testConfig())
		state := a.Login(ctx, fake, creds)
		require.True(t, state.Authenticated)
		assert.Equal(t, VerifyCookie, state.Method)
	})

	t.Run("fallback navigation verifies when direct checks time out", func(t *testing.T) {
		fake := formFake()
		// No URL change, no authenticated element, no marker cookie. The
		// direct navigation to the search resource succeeds.

		a := newAuthenticator(testConfig())
		state := a.Login(ctx, fake, creds)
		require.True(t, state.Authenticated)
		assert.Equal(t, VerifyFallback, state.Method)
		last := fake.NavigateCalls[len(fake.NavigateCalls)-1]
		assert.Contains(t, last, "/search/")
	})

	t.Run("redirect back to SSO fails the session", func(t *testing.T) {
		fake := formFake()
		fake.OnNavigate = func(url string) {
			// Every navigation bounces to the SSO domain.
			fake.CurrentURL = "https://sso.redhat.com/auth/realms/redhat-external"
		}

		a := newAuthenticator(testConfig())
		state := a.Login(ctx, fake, creds)
		require.False(t, state.Authenticated)
		assert.Equal(t, ReasonRedirectToLogin, state.Reason)
	})

	t.Run("missing username field fails without raising", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present["body"] = true

		a := newAuthenticator(testConfig())
		state := a.Login(ctx, fake, creds)
		require.False(t, state.Authenticated)
		assert.Equal(t, ReasonUsernameNotFound, state.Reason)
		assert.Empty(t, fake.FillCalls)
	})

	t.Run("missing password step fails with its own reason", func(t *testing.T) {
		fake := browsertest.New()
		fake.Present["body"] = true
		fake.Present["input#username"] = true

		a := newAuthenticator(testConfig())
		state := a.Login(ctx, fake, creds)
		require.False(t, state.Authenticated)
		assert.Equal(t, ReasonPasswordTimeout, state.Reason)
	})

	t.Run("missing body fails with page load timeout", func(t *testing.T) {
		fake := browsertest.New()

		a := newAuthenticator(testConfig())
		state := a.Login(ctx, fake, creds)
		require.False(t, state.Authenticated)
		assert.Equal(t, ReasonPageLoadTimeout, state.Reason)
	})

	t.Run("second login on a verified session is a no-op", func(t *testing.T) {
		fake := formFake()
		fake.OnScriptClick = func(selector string) {
			if selector == "button[type='submit']" {
				fake.CurrentURL = "https://access.redhat.com/management"
			}
		}

		a := newAuthenticator(testConfig())
		first := a.Login(ctx, fake, creds)
		require.True(t, first.Authenticated)

		fills := len(fake.FillCalls)
		clicks := len(fake.ClickCalls)
		navs := len(fake.NavigateCalls)

		second := a.Login(ctx, fake, creds)
		assert.True(t, second.Authenticated)
		assert.Equal(t, first.Method, second.Method)
		assert.Len(t, fake.FillCalls, fills)
		assert.Len(t, fake.ClickCalls, clicks)
		assert.Len(t, fake.NavigateCalls, navs)
	})
}
