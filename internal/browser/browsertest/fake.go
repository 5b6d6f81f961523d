// Package browsertest provides a scripted in-memory Controller for component
// tests. Waits resolve immediately against the scripted DOM state instead of
// polling, so tests stay fast and deterministic.
package browsertest

import (
	"context"
	"fmt"
	"time"

	"github.com/woodgate/woodgate/internal/browser"
)

// FakeElement implements browser.Element over scripted data.
type FakeElement struct {
	Attrs    map[string]string
	Inner    string
	Children map[string]*FakeElement
}

func (e *FakeElement) Attribute(ctx context.Context, name string) (string, error) {
	_ = ctx
	val, ok := e.Attrs[name]
	if !ok {
		return "", nil
	}
	return val, nil
}

func (e *FakeElement) Text(ctx context.Context) (string, error) {
	_ = ctx
	return e.Inner, nil
}

func (e *FakeElement) Find(ctx context.Context, selector string) (browser.Element, error) {
	_ = ctx
	child, ok := e.Children[selector]
	if !ok {
		return nil, fmt.Errorf("no match for %q", selector)
	}
	return child, nil
}

// Fake is a scripted browser.Controller. Fields describe the page the fake
// pretends to show; call records let tests assert on interactions. Hooks run
// after the recorded action and may mutate the fake to simulate transitions.
type Fake struct {
	CurrentURL string
	PageTitle  string

	// Selectors considered present/visible in the scripted DOM.
	Present map[string]bool
	// Element lists returned by Elements, keyed by selector.
	ElementSets map[string][]browser.Element
	// Button labels that exist for ClickButtonByText.
	ButtonLabels map[string]bool

	CookieJar []browser.Cookie
	ReadyErr  error

	NavigateCalls []string
	ReloadCalls   int
	FillCalls     []FillCall
	ClickCalls    []string
	LabelClicks   []string
	SavedStates   []string
	EvalCalls     []string

	OnNavigate    func(url string)
	OnReload      func()
	OnScriptClick func(selector string)
	EvaluateFunc  func(script string, args ...any) (any, error)
}

type FillCall struct {
	Selector string
	Text     string
}

// New returns a Fake with empty scripted state.
func New() *Fake {
	return &Fake{
		Present:      map[string]bool{},
		ElementSets:  map[string][]browser.Element{},
		ButtonLabels: map[string]bool{},
	}
}

func (f *Fake) Close(ctx context.Context) error { return nil }

func (f *Fake) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.NavigateCalls = append(f.NavigateCalls, url)
	f.CurrentURL = url
	if f.OnNavigate != nil {
		f.OnNavigate(url)
	}
	return nil
}

func (f *Fake) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.ReloadCalls++
	if f.OnReload != nil {
		f.OnReload()
	}
	return nil
}

func (f *Fake) URL() string { return f.CurrentURL }

func (f *Fake) Title() (string, error) { return f.PageTitle, nil }

func (f *Fake) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.Present[selector] {
		return nil
	}
	return fmt.Errorf("timeout waiting for %q", selector)
}

func (f *Fake) WaitReady(ctx context.Context, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.ReadyErr
}

func (f *Fake) WaitForURL(ctx context.Context, match func(string) bool, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if match(f.CurrentURL) {
		return nil
	}
	return fmt.Errorf("url predicate not satisfied (current %s)", f.CurrentURL)
}

func (f *Fake) Fill(ctx context.Context, selector, text string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.Present[selector] {
		return fmt.Errorf("timeout waiting for %q", selector)
	}
	f.FillCalls = append(f.FillCalls, FillCall{Selector: selector, Text: text})
	return nil
}

func (f *Fake) ScriptClick(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.Present[selector] {
		return fmt.Errorf("timeout waiting for %q", selector)
	}
	f.ClickCalls = append(f.ClickCalls, selector)
	if f.OnScriptClick != nil {
		f.OnScriptClick(selector)
	}
	return nil
}

func (f *Fake) ClickButtonByText(ctx context.Context, labels []string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, label := range labels {
		if f.ButtonLabels[label] {
			f.LabelClicks = append(f.LabelClicks, label)
			return label, nil
		}
	}
	return "", nil
}

func (f *Fake) Evaluate(ctx context.Context, script string, args ...any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.EvalCalls = append(f.EvalCalls, script)
	if f.EvaluateFunc != nil {
		return f.EvaluateFunc(script, args...)
	}
	return nil, nil
}

func (f *Fake) Elements(ctx context.Context, selector string) ([]browser.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.ElementSets[selector], nil
}

func (f *Fake) Cookies(ctx context.Context) ([]browser.Cookie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.CookieJar, nil
}

func (f *Fake) SaveState(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.SavedStates = append(f.SavedStates, path)
	return nil
}
