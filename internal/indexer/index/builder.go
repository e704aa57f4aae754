package index

import (
	"math"
)

// Zone selects between the content index and the title index.
type Zone int

const (
	ZoneContent Zone = iota
	ZoneTitle
)

// Builder accumulates documents into the content index, the optional title
// index, and the shared per-document metadata map. It is not safe for
// concurrent use: corpus processing may be sharded across workers, but
// merging must remain single-writer.
type Builder struct {
	content InvertedIndex
	title   InvertedIndex
	docs    map[string]*DocInfo
}

func NewBuilder() *Builder {
	return &Builder{
		content: make(InvertedIndex),
		title:   make(InvertedIndex),
		docs:    make(map[string]*DocInfo),
	}
}

// AddDocument registers a document's metadata entry. It must be called once
// per document before merging either of its zones.
func (b *Builder) AddDocument(docID, name string) {
	b.docs[docID] = &DocInfo{Name: name}
}

// Merge folds a document's term-frequency map into the zone's index: each
// term's document frequency grows by one and the document's raw frequency is
// recorded in the postings. The document's normalisation factor for the zone
// is computed in the same pass as sqrt(sum (1+log10(tf))^2). Only observed
// terms appear in freqs, so tf >= 1 always holds when the log is taken.
func (b *Builder) Merge(docID string, freqs map[string]int, zone Zone) {
	idx := b.content
	if zone == ZoneTitle {
		idx = b.title
	}
	normSquared := 0.0
	for term, tf := range freqs {
		pl, ok := idx[term]
		if !ok {
			pl = &PostingList{Postings: make(map[string]int)}
			idx[term] = pl
		}
		pl.DocFreq++
		pl.Postings[docID] = tf

		logTF := 1 + math.Log10(float64(tf))
		normSquared += logTF * logTF
	}
	norm := math.Sqrt(normSquared)
	if zone == ZoneTitle {
		b.docs[docID].TitleNorm = norm
	} else {
		b.docs[docID].ContentNorm = norm
	}
}

// Content returns the accumulated content index.
func (b *Builder) Content() InvertedIndex {
	return b.content
}

// Title returns the accumulated title index.
func (b *Builder) Title() InvertedIndex {
	return b.title
}

// Docs returns the accumulated document metadata as a plain value map.
func (b *Builder) Docs() map[string]DocInfo {
	docs := make(map[string]DocInfo, len(b.docs))
	for id, info := range b.docs {
		docs[id] = *info
	}
	return docs
}

// DocCount returns the number of documents merged so far.
func (b *Builder) DocCount() int {
	return len(b.docs)
}
