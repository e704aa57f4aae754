package index

import (
	"math"
	"testing"
)

func TestBuilderDocFreqInvariant(t *testing.T) {
	b := NewBuilder()
	b.AddDocument("d1", "one")
	b.Merge("d1", map[string]int{"apple": 2, "banana": 1}, ZoneContent)
	b.AddDocument("d2", "two")
	b.Merge("d2", map[string]int{"apple": 5}, ZoneContent)
	b.AddDocument("d3", "three")
	b.Merge("d3", map[string]int{"banana": 3, "cherry": 1}, ZoneContent)

	for term, pl := range b.Content() {
		if pl.DocFreq != len(pl.Postings) {
			t.Errorf("term %q: DocFreq = %d, postings = %d", term, pl.DocFreq, len(pl.Postings))
		}
	}
	if got := b.Content()["apple"].DocFreq; got != 2 {
		t.Errorf("apple DocFreq = %d, want 2", got)
	}
	if got := b.Content()["apple"].Postings["d2"]; got != 5 {
		t.Errorf("apple tf in d2 = %d, want 5", got)
	}
}

// Content norm factor is sqrt(sum (1+log10(tf))^2) over the document's
// terms: frequencies {2, 3} give sqrt((1+log10 2)^2 + (1+log10 3)^2).
func TestBuilderNormFactor(t *testing.T) {
	b := NewBuilder()
	b.AddDocument("d1", "doc")
	b.Merge("d1", map[string]int{"apple": 2, "banana": 3}, ZoneContent)

	want := math.Sqrt(math.Pow(1+math.Log10(2), 2) + math.Pow(1+math.Log10(3), 2))
	got := b.Docs()["d1"].ContentNorm
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("ContentNorm = %v, want %v", got, want)
	}
}

func TestBuilderZonesIndependent(t *testing.T) {
	b := NewBuilder()
	b.AddDocument("d1", "Apple Pie")
	b.Merge("d1", map[string]int{"crust": 1, "apple": 4}, ZoneContent)
	b.Merge("d1", map[string]int{"apple": 1, "pie": 1}, ZoneTitle)

	if _, ok := b.Content()["pie"]; ok {
		t.Error("title term leaked into content index")
	}
	if _, ok := b.Title()["crust"]; ok {
		t.Error("content term leaked into title index")
	}
	info := b.Docs()["d1"]
	if info.ContentNorm == 0 || info.TitleNorm == 0 {
		t.Errorf("both zone norms must be set, got content=%v title=%v", info.ContentNorm, info.TitleNorm)
	}
	wantTitle := math.Sqrt(2) // two terms with tf 1
	if math.Abs(info.TitleNorm-wantTitle) > 1e-12 {
		t.Errorf("TitleNorm = %v, want %v", info.TitleNorm, wantTitle)
	}
}

func TestBuilderEmptyDocument(t *testing.T) {
	b := NewBuilder()
	b.AddDocument("d1", "empty")
	b.Merge("d1", map[string]int{}, ZoneContent)

	if len(b.Content()) != 0 {
		t.Errorf("empty document added %d terms", len(b.Content()))
	}
	if norm := b.Docs()["d1"].ContentNorm; norm != 0 {
		t.Errorf("empty document norm = %v, want 0", norm)
	}
}
