// Package index holds the inverted-index data model and its construction
// logic: posting lists with document frequencies, per-document normalisation
// factors, and champion-list trimming.
package index

// PostingList pairs a term's document frequency with its postings map
// (document ID to raw term frequency). DocFreq equals the number of postings
// until champion-list trimming caps the map while keeping the original
// document frequency for idf computation.
type PostingList struct {
	DocFreq  int            `json:"df"`
	Postings map[string]int `json:"p"`
}

// InvertedIndex maps a normalised term to its posting list. Instances are
// immutable once a build completes; the query path only reads them.
type InvertedIndex map[string]*PostingList

// DocInfo carries per-document metadata: the display name and the L2 norms
// of the log-weighted term frequencies for the content and, in zoned mode,
// the title.
type DocInfo struct {
	Name        string  `json:"name"`
	ContentNorm float64 `json:"cnorm"`
	TitleNorm   float64 `json:"tnorm,omitempty"`
}

// Document is one corpus entry as delivered by a corpus source.
type Document struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}
