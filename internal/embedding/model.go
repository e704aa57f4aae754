// Package embedding provides the word-embedding similarity source used for
// query expansion: loading word2vec-text-format vectors, trimming them to a
// corpus vocabulary, and nearest-neighbour lookup by cosine similarity.
package embedding

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"vsmsearch/internal/store"
	pkgerrors "vsmsearch/pkg/errors"
)

// Neighbor is one similar term with its cosine similarity score in [-1, 1].
type Neighbor struct {
	Term  string
	Score float64
}

// Similarity exposes nearest-term lookup. ok is false when the term has no
// embedding; that is an expected outcome, not an error.
type Similarity interface {
	Nearest(term string, topN int) (neighbors []Neighbor, ok bool)
}

// Model holds term vectors. Immutable after load.
type Model struct {
	vectors map[string][]float32
	norms   map[string]float64
}

func newModel(vectors map[string][]float32) *Model {
	m := &Model{
		vectors: vectors,
		norms:   make(map[string]float64, len(vectors)),
	}
	for term, vec := range vectors {
		m.norms[term] = vectorNorm(vec)
	}
	return m
}

// Len returns the vocabulary size of the model.
func (m *Model) Len() int {
	return len(m.vectors)
}

// Has reports whether the model contains a vector for term.
func (m *Model) Has(term string) bool {
	_, ok := m.vectors[term]
	return ok
}

// LoadWord2VecText parses headerless word2vec text format: one term per
// line followed by its float components, as GloVe distributes.
func LoadWord2VecText(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening embeddings file: %w", err)
	}
	defer f.Close()

	vectors := make(map[string][]float32)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	dims := -1
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		if dims == -1 {
			dims = len(fields) - 1
		} else if len(fields)-1 != dims {
			return nil, fmt.Errorf("embeddings file %s line %d: expected %d components, found %d", path, lineNo, dims, len(fields)-1)
		}
		vec := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			val, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("embeddings file %s line %d: %w", path, lineNo, err)
			}
			vec[i] = float32(val)
		}
		vectors[fields[0]] = vec
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading embeddings file: %w", err)
	}
	return newModel(vectors), nil
}

// Trim returns a new model containing only the terms present in vocab.
// Terms without a vector are skipped, mirroring the lossy nature of
// pretrained embeddings against a real corpus vocabulary.
func (m *Model) Trim(vocab map[string]struct{}) *Model {
	trimmed := make(map[string][]float32)
	for term := range vocab {
		if vec, ok := m.vectors[term]; ok {
			trimmed[term] = vec
		}
	}
	return newModel(trimmed)
}

// Save persists the model through the shared artifact container.
func (m *Model) Save(path string) error {
	return store.WriteArtifact(path, store.KindEmbeddings, len(m.vectors), m.vectors)
}

// LoadModel reads a model persisted by Save. A missing file surfaces
// ErrEmbeddingsMissing so the caller can point at the trim step rather than
// the indexer.
func LoadModel(path string) (*Model, error) {
	vectors := make(map[string][]float32)
	if err := store.ReadArtifact(path, store.KindEmbeddings, &vectors); err != nil {
		if errors.Is(err, pkgerrors.ErrArtifactMissing) {
			return nil, pkgerrors.Newf(pkgerrors.ErrEmbeddingsMissing, "model %s", path)
		}
		return nil, err
	}
	return newModel(vectors), nil
}

// Nearest returns up to topN most similar terms by cosine similarity,
// descending, excluding the query term itself. Selection is a bounded
// min-heap pass over the vocabulary. ok is false for unknown terms.
func (m *Model) Nearest(term string, topN int) ([]Neighbor, bool) {
	queryVec, exists := m.vectors[term]
	if !exists || topN <= 0 {
		return nil, exists
	}
	queryNorm := m.norms[term]
	if queryNorm == 0 {
		return nil, true
	}
	h := neighborHeap{}
	for candidate, vec := range m.vectors {
		if candidate == term {
			continue
		}
		norm := m.norms[candidate]
		if norm == 0 {
			continue
		}
		score := dot(queryVec, vec) / (queryNorm * norm)
		h.push(Neighbor{Term: candidate, Score: score}, topN)
	}
	return h.sorted(), true
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func vectorNorm(vec []float32) float64 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}
