package snapshot

import (
	"context"
	"fmt"
	"strings"

	"github.com/woodgate/woodgate/internal/browser"
)

// Summary is a compact diagnostic view of the current page, logged at
// failure points so the failure position can be reconstructed from one line.
type Summary struct {
	URL            string
	Title          string
	AuthCookies    []string
	SessionCookies []string
	OtherCookies   int
}

// Collect gathers URL, title and a classified cookie overview. Cookie values
// are truncated; nothing sensitive lands in the log.
func Collect(ctx context.Context, pc browser.Controller) Summary {
	s := Summary{URL: pc.URL()}
	if title, err := pc.Title(); err == nil {
		s.Title = title
	}
	cookies, err := pc.Cookies(ctx)
	if err != nil {
		return s
	}
	for _, ck := range cookies {
		name := strings.ToLower(ck.Name)
		switch {
		case strings.Contains(name, "auth") || strings.Contains(name, "token"):
			s.AuthCookies = append(s.AuthCookies, describe(ck))
		case strings.Contains(name, "session"):
			s.SessionCookies = append(s.SessionCookies, describe(ck))
		default:
			s.OtherCookies++
		}
	}
	return s
}

// HasCookieMarker reports whether any cookie name contains the marker.
func HasCookieMarker(cookies []browser.Cookie, marker string) bool {
	for _, ck := range cookies {
		if strings.Contains(ck.Name, marker) {
			return true
		}
	}
	return false
}

func describe(ck browser.Cookie) string {
	val := ck.Value
	if len(val) > 10 {
		val = val[:10]
	}
	return fmt.Sprintf("%s=%s (%s)", ck.Name, val, ck.Domain)
}

func (s Summary) String() string {
	return fmt.Sprintf("url=%s title=%q auth_cookies=%d session_cookies=%d other_cookies=%d",
		s.URL, s.Title, len(s.AuthCookies), len(s.SessionCookies), s.OtherCookies)
}
