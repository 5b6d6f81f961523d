package search

import "encoding/json"

// Record is one normalized search hit. Every field is always present with a
// type-stable default; the shape never varies with the source payload, only
// the values do. Wire keys match the portal's card payload so the record can
// be forwarded verbatim.
type Record struct {
	Snippet              string   `json:"snippet"`
	DocumentKind         string   `json:"documentKind"`
	PublishedTitle       string   `json:"publishedTitle"`
	LastModifiedDate     string   `json:"lastModifiedDate"`
	PublishedAbstract    string   `json:"publishedAbstract"`
	Abstract             string   `json:"abstract"`
	ModerationState      string   `json:"ModerationState"`
	URI                  string   `json:"uri"`
	RequiresSubscription bool     `json:"requires_subscription"`
	StandardProduct      []string `json:"standard_product"`
	AllTitle             string   `json:"allTitle"`
	ID                   string   `json:"id"`
	ViewURI              string   `json:"view_uri"`
	HighlightedText      []string `json:"highlightedText"`
	Position             int      `json:"position"`
	DisplayFeature       string   `json:"displayFeature"`
	IsAuthenticated      bool     `json:"isAuthenticated"`
}

// cardPayload mirrors the JSON a result element carries in its data
// attribute: the card fields nested under cardData plus a top-level
// authentication flag.
type cardPayload struct {
	CardData struct {
		Snippet              string   `json:"snippet"`
		DocumentKind         string   `json:"documentKind"`
		PublishedTitle       string   `json:"publishedTitle"`
		LastModifiedDate     string   `json:"lastModifiedDate"`
		PublishedAbstract    string   `json:"publishedAbstract"`
		Abstract             string   `json:"abstract"`
		ModerationState      string   `json:"ModerationState"`
		URI                  string   `json:"uri"`
		RequiresSubscription bool     `json:"requires_subscription"`
		StandardProduct      []string `json:"standard_product"`
		AllTitle             string   `json:"allTitle"`
		ID                   string   `json:"id"`
		ViewURI              string   `json:"view_uri"`
		HighlightedText      []string `json:"highlightedText"`
		Position             int      `json:"position"`
		DisplayFeature       string   `json:"displayFeature"`
	} `json:"cardData"`
	IsAuthenticated bool `json:"isAuthenticated"`
}

// parseRecord decodes one element's data attribute into a Record with all
// defaults applied. Absent lists become empty slices, never null.
func parseRecord(data string) (Record, error) {
	var payload cardPayload
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		return Record{}, err
	}
	card := payload.CardData
	rec := Record{
		Snippet:              card.Snippet,
		DocumentKind:         card.DocumentKind,
		PublishedTitle:       card.PublishedTitle,
		LastModifiedDate:     card.LastModifiedDate,
		PublishedAbstract:    card.PublishedAbstract,
		Abstract:             card.Abstract,
		ModerationState:      card.ModerationState,
		URI:                  card.URI,
		RequiresSubscription: card.RequiresSubscription,
		StandardProduct:      card.StandardProduct,
		AllTitle:             card.AllTitle,
		ID:                   card.ID,
		ViewURI:              card.ViewURI,
		HighlightedText:      card.HighlightedText,
		Position:             card.Position,
		DisplayFeature:       card.DisplayFeature,
		IsAuthenticated:      payload.IsAuthenticated,
	}
	if rec.StandardProduct == nil {
		rec.StandardProduct = []string{}
	}
	if rec.HighlightedText == nil {
		rec.HighlightedText = []string{}
	}
	return rec, nil
}
