package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

const (
	defaultNavTimeout = 30 * time.Second
	defaultWait       = 10 * time.Second
	urlPollInterval   = 250 * time.Millisecond
)

// Cookie is the driver-independent view of a browser cookie.
type Cookie struct {
	Name   string
	Value  string
	Domain string
}

// Element is a handle to one matched DOM node.
type Element interface {
	Attribute(ctx context.Context, name string) (string, error)
	Text(ctx context.Context) (string, error)
	Find(ctx context.Context, selector string) (Element, error)
}

// Controller exposes the minimal page capabilities the extraction pipeline
// needs. One controller drives one page; callers serialize access.
type Controller interface {
	Close(ctx context.Context) error
	Navigate(ctx context.Context, url string) error
	Reload(ctx context.Context) error
	URL() string
	Title() (string, error)
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error
	WaitReady(ctx context.Context, timeout time.Duration) error
	WaitForURL(ctx context.Context, match func(string) bool, timeout time.Duration) error
	Fill(ctx context.Context, selector, text string, timeout time.Duration) error
	ScriptClick(ctx context.Context, selector string) error
	ClickButtonByText(ctx context.Context, labels []string) (string, error)
	Evaluate(ctx context.Context, script string, args ...any) (any, error)
	Elements(ctx context.Context, selector string) ([]Element, error)
	Cookies(ctx context.Context) ([]Cookie, error)
	SaveState(ctx context.Context, path string) error
}

// Launcher owns the playwright lifecycle.
type Launcher struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	navTimeout time.Duration
}

func NewLauncher(ctx context.Context, headless bool, navTimeout time.Duration) (*Launcher, error) {
	if navTimeout <= 0 {
		navTimeout = defaultNavTimeout
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}
	br, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--disable-dev-shm-usage",
			"--no-sandbox",
			"--disable-gpu",
			"--disable-notifications",
			"--window-size=1920,1080",
		},
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch chromium: %w", err)
	}
	return &Launcher{pw: pw, browser: br, navTimeout: navTimeout}, nil
}

// NewController opens a fresh context and page. When storagePath points at an
// existing storage-state file, its cookies are applied to the new context.
func (l *Launcher) NewController(ctx context.Context, storagePath string) (Controller, error) {
	opts := playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
	}
	if strings.TrimSpace(storagePath) != "" {
		if _, err := os.Stat(storagePath); err == nil {
			opts.StorageStatePath = playwright.String(storagePath)
		}
	}
	bctx, err := l.browser.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("new context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	page.SetDefaultTimeout(float64(l.navTimeout.Milliseconds()))
	return &controller{context: bctx, page: page, navTimeout: l.navTimeout}, nil
}

func (l *Launcher) Close() error {
	if l.browser != nil {
		_ = l.browser.Close()
	}
	if l.pw != nil {
		return l.pw.Stop()
	}
	return nil
}

type controller struct {
	context    playwright.BrowserContext
	page       playwright.Page
	navTimeout time.Duration
}

func (c *controller) Close(ctx context.Context) error {
	_ = ctx
	if c.page != nil {
		_ = c.page.Close()
	}
	if c.context != nil {
		return c.context.Close()
	}
	return nil
}

func (c *controller) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(c.navTimeout.Milliseconds())),
	})
	return wrap(err)
}

func (c *controller) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.page.Reload(playwright.PageReloadOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(float64(c.navTimeout.Milliseconds())),
	})
	return wrap(err)
}

func (c *controller) URL() string {
	return c.page.URL()
}

func (c *controller) Title() (string, error) {
	title, err := c.page.Title()
	return title, wrap(err)
}

// WaitForSelector waits for the first match to be attached to the DOM.
func (c *controller) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = defaultWait
	}
	first := c.page.Locator(selector).First()
	return wrap(first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}))
}

func (c *controller) WaitReady(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = defaultWait
	}
	return wrap(c.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateLoad,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}))
}

// WaitForURL polls the current URL until the predicate matches.
func (c *controller) WaitForURL(ctx context.Context, match func(string) bool, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = defaultWait
	}
	deadline := time.Now().Add(timeout)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if match(c.page.URL()) {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("url predicate not satisfied after %v (current %s)", timeout, c.page.URL())
		}
		time.Sleep(urlPollInterval)
	}
}

// Fill clears the first match and types the given text.
func (c *controller) Fill(ctx context.Context, selector, text string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if timeout <= 0 {
		timeout = defaultWait
	}
	first := c.page.Locator(selector).First()
	if err := first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	}); err != nil {
		return wrap(err)
	}
	return wrap(first.Fill(text))
}

// ScriptClick clicks via element.click() in page context, bypassing
// overlay occlusion a pointer click would trip on.
func (c *controller) ScriptClick(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	first := c.page.Locator(selector).First()
	if err := first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(2000),
	}); err != nil {
		return wrap(err)
	}
	_, err := first.Evaluate("el => el.click()", nil)
	return wrap(err)
}

// ClickButtonByText script-clicks the first button whose text contains any of
// the given labels, returning the label that matched ("" when none did).
func (c *controller) ClickButtonByText(ctx context.Context, labels []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	script := `(labels) => {
		const buttons = document.querySelectorAll("button");
		for (const label of labels) {
			for (const btn of buttons) {
				const text = (btn.innerText || btn.textContent || "").trim();
				if (text.includes(label)) {
					btn.click();
					return label;
				}
			}
		}
		return "";
	}`
	val, err := c.page.Evaluate(script, labels)
	if err != nil {
		return "", wrap(err)
	}
	label, _ := val.(string)
	return label, nil
}

func (c *controller) Evaluate(ctx context.Context, script string, args ...any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	val, err := c.page.Evaluate(script, args...)
	return val, wrap(err)
}

func (c *controller) Elements(ctx context.Context, selector string) ([]Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	locs, err := c.page.Locator(selector).All()
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]Element, 0, len(locs))
	for _, loc := range locs {
		out = append(out, &element{loc: loc})
	}
	return out, nil
}

func (c *controller) Cookies(ctx context.Context) ([]Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := c.context.Cookies()
	if err != nil {
		return nil, wrap(err)
	}
	out := make([]Cookie, 0, len(raw))
	for _, ck := range raw {
		out = append(out, Cookie{Name: ck.Name, Value: ck.Value, Domain: ck.Domain})
	}
	return out, nil
}

func (c *controller) SaveState(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	state, err := c.context.StorageState()
	if err != nil {
		return wrap(err)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal storage: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

type element struct {
	loc playwright.Locator
}

func (e *element) Attribute(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	val, err := e.loc.GetAttribute(name)
	return val, wrap(err)
}

func (e *element) Text(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	val, err := e.loc.InnerText(playwright.LocatorInnerTextOptions{
		Timeout: playwright.Float(2000),
	})
	return strings.TrimSpace(val), wrap(err)
}

func (e *element) Find(ctx context.Context, selector string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sub := e.loc.Locator(selector).First()
	count, err := sub.Count()
	if err != nil {
		return nil, wrap(err)
	}
	if count == 0 {
		return nil, fmt.Errorf("no match for %q", selector)
	}
	return &element{loc: sub}, nil
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("playwright: %w", err)
}
