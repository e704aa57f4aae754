package tokenizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercase and whitespace split",
			input: "The Quick  Brown\tFox",
			want:  []string{"the", "quick", "brown", "fox"},
		},
		{
			name:  "hyphen splits words",
			input: "state-of-the-art",
			want:  []string{"state", "of", "the", "art"},
		},
		{
			name:  "underscore and dashes split words",
			input: "snake_case en–dash em—dash",
			want:  []string{"snake", "case", "en", "dash", "em", "dash"},
		},
		{
			name:  "punctuation stripped without splitting",
			input: "don't, stop! (really)",
			want:  []string{"dont", "stop", "really"},
		},
		{
			name:  "digits kept",
			input: "glove 6B 100d",
			want:  []string{"glove", "6b", "100d"},
		},
		{
			name:  "empty input",
			input: "   \n ",
			want:  nil,
		},
		{
			name:  "pure punctuation",
			input: "--- ... !!!",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// Index-time and query-time normalisation must agree exactly, or term
// matching silently breaks.
func TestTokenizeSymmetry(t *testing.T) {
	doc := "Vector-Space retrieval: a TF_IDF overview"
	query := "vector space retrieval a tf idf overview"
	if !reflect.DeepEqual(Tokenize(doc), Tokenize(query)) {
		t.Errorf("document and query tokenisation diverged: %v vs %v", Tokenize(doc), Tokenize(query))
	}
}

func TestTermFrequencies(t *testing.T) {
	freqs := TermFrequencies("to be or not to be")
	want := map[string]int{"to": 2, "be": 2, "or": 1, "not": 1}
	if !reflect.DeepEqual(freqs, want) {
		t.Errorf("TermFrequencies = %v, want %v", freqs, want)
	}
}
