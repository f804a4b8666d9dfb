package models

// NewsDocument is one normalized headline/snippet unit from a feed.
// Documents are immutable after ingestion; at least one of Title/Snippet
// is non-empty (empty entries are dropped by the feed client).
type NewsDocument struct {
	Title   string   `json:"title"`
	URL     string   `json:"url"`
	Source  string   `json:"source"` // hostname, "www." stripped
	Snippet string   `json:"snippet"`
	Tickers []string `json:"tickers"` // <=5, deduplicated, discovery order
}

// Grouping maps tickers to the documents mentioning them. A document
// with N tickers appears under N keys. Order records first-discovery
// order of tickers and is the tie-break order for ranking.
type Grouping struct {
	Order []string
	Docs  map[string][]NewsDocument
}

// NewGrouping builds a Grouping from documents, fanning each document
// out to every ticker it carries. Documents without tickers are dropped.
func NewGrouping(docs []NewsDocument) *Grouping {
	g := &Grouping{Docs: make(map[string][]NewsDocument)}
	for _, d := range docs {
		for _, t := range d.Tickers {
			if _, ok := g.Docs[t]; !ok {
				g.Order = append(g.Order, t)
			}
			g.Docs[t] = append(g.Docs[t], d)
		}
	}
	return g
}

// Empty reports whether no ticker was discovered at all.
func (g *Grouping) Empty() bool { return len(g.Order) == 0 }
