package config

// Locator is one entry of an ordered fallback list: a named selector tried
// in sequence until one matches. Selectors use Playwright syntax, so CSS,
// text engines and xpath all fit in the same string.
type Locator struct {
	Name     string
	Selector string
}

// Selectors holds every portal-specific selector and marker string as data.
// The site markup changes independently of the algorithms, so nothing in
// auth/consent/search hard-codes a class name or cookie substring.
type Selectors struct {
	// Login form.
	UsernameFields []Locator
	NextButtons    []Locator
	PasswordFields []Locator
	LoginButtons   []Locator

	// Post-login verification, first success wins.
	AuthenticatedURLMarker string
	AuthenticatedElements  string
	SSOCookieMarker        string
	SSOURLMarker           string
	LoginTitleMarker       string
	LoginBounceURLMarker   string

	// Consent/cookie overlays.
	ConsentContainers    []Locator
	ConsentCloseControls []Locator
	ConsentButtonLabels  []string

	// Search results.
	ResultItems         Locator
	ResultItemsFallback Locator
	ResultDataAttribute string
	ResultsContainer    string

	// Product security advisories.
	AlertCards    string
	AlertTitle    string
	AlertSeverity string
	AlertDate     string
	AlertSynopsis string

	// Single document pages.
	DocumentContent string
	DocumentTitle   string
	MetadataGroups  string
	MetadataTerm    string
	MetadataValue   string
}

// DefaultSelectors returns the selector set for the current portal markup.
func DefaultSelectors() Selectors {
	return Selectors{
		UsernameFields: []Locator{
			{Name: "id", Selector: "input#username"},
			{Name: "name", Selector: "input[name='username']"},
			{Name: "type", Selector: "input[type='text']"},
		},
		NextButtons: []Locator{
			{Name: "exact-text", Selector: `button:text-is("Next")`},
			{Name: "substring", Selector: `button:has-text("Next")`},
			{Name: "submit", Selector: "button[type='submit']"},
		},
		PasswordFields: []Locator{
			{Name: "type", Selector: "input[type='password']"},
			{Name: "name", Selector: "input[name='password']"},
			{Name: "id", Selector: "input#password"},
		},
		LoginButtons: []Locator{
			{Name: "submit", Selector: "button[type='submit']"},
			{Name: "exact-text", Selector: `button:text-is("Log in")`},
			{Name: "input-submit", Selector: "input[type='submit']"},
		},

		AuthenticatedURLMarker: "access.redhat.com",
		AuthenticatedElements:  ".pf-c-page__header, .rh-header, .rh-user-menu",
		SSOCookieMarker:        "rh_sso",
		SSOURLMarker:           "sso.redhat.com",
		LoginTitleMarker:       "Login - Red Hat Customer Portal",
		LoginBounceURLMarker:   "scribe",

		ConsentContainers: []Locator{
			{Name: "onetrust", Selector: "#onetrust-banner-sdk"},
			{Name: "pf-modal", Selector: ".pf-c-modal-box"},
			{Name: "aria-dialog", Selector: "[role='dialog'][aria-modal='true']"},
		},
		ConsentCloseControls: []Locator{
			{Name: "pf-close", Selector: "button.pf-c-button[aria-label='Close']"},
			{Name: "onetrust-accept", Selector: "#onetrust-accept-btn-handler"},
			{Name: "pf-primary", Selector: "button.pf-c-button.pf-m-primary"},
			{Name: "close-class", Selector: ".close-button"},
			{Name: "aria-close", Selector: "button[aria-label='Close']"},
		},
		ConsentButtonLabels: []string{"Accept", "I agree", "Close", "OK", "接受", "同意", "关闭"},

		ResultItems:         Locator{Name: "tag", Selector: "result-item"},
		ResultItemsFallback: Locator{Name: "testid", Selector: "[data-testid='result-item']"},
		ResultDataAttribute: "data",
		ResultsContainer:    "result-item, [data-testid='result-item']",

		AlertCards:    ".pf-c-card, .portal-advisory",
		AlertTitle:    "h2 a, .pf-c-title a",
		AlertSeverity: ".security-severity, .pf-c-label",
		AlertDate:     ".portal-advisory-date, time",
		AlertSynopsis: ".portal-advisory-synopsis, .pf-c-card__body",

		DocumentContent: ".field-item, .pf-c-content, article",
		DocumentTitle:   "h1, .pf-c-title",
		MetadataGroups:  ".field, .pf-c-description-list__group",
		MetadataTerm:    ".field-label, .pf-c-description-list__term",
		MetadataValue:   ".field-item, .pf-c-description-list__description",
	}
}
