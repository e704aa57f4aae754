package store

import (
	"path/filepath"

	"vsmsearch/internal/indexer/index"
)

const (
	contentFile = "content.idx"
	titleFile   = "title.idx"
	docsFile    = "docs.idx"

	basicDir = "basic"
	zonedDir = "zoned"
)

// Store is the immutable query-time view of a corpus snapshot: the content
// index, the title index in zoned mode, and the document metadata. Rebuilds
// produce a fresh Store; readers never observe in-place mutation.
type Store struct {
	Content index.InvertedIndex
	Title   index.InvertedIndex
	Docs    map[string]index.DocInfo
	Zoned   bool
}

// CorpusSize returns the number of documents in the snapshot.
func (s *Store) CorpusSize() int {
	return len(s.Docs)
}

// Dir returns the directory holding the artifacts for the given mode,
// keeping basic and zoned snapshots side by side.
func Dir(dataDir string, zoned bool) string {
	if zoned {
		return filepath.Join(dataDir, zonedDir)
	}
	return filepath.Join(dataDir, basicDir)
}

// Save persists the store under dataDir. The title index is written only in
// zoned mode.
func Save(dataDir string, s *Store) error {
	dir := Dir(dataDir, s.Zoned)
	if err := WriteArtifact(filepath.Join(dir, contentFile), KindContentIndex, len(s.Content), s.Content); err != nil {
		return err
	}
	if err := WriteArtifact(filepath.Join(dir, docsFile), KindDocInfo, len(s.Docs), s.Docs); err != nil {
		return err
	}
	if s.Zoned {
		if err := WriteArtifact(filepath.Join(dir, titleFile), KindTitleIndex, len(s.Title), s.Title); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a previously saved store back wholesale. Any missing artifact
// makes the load fail with ErrArtifactMissing; querying must not proceed on
// partial index data.
func Load(dataDir string, zoned bool) (*Store, error) {
	dir := Dir(dataDir, zoned)
	s := &Store{
		Content: make(index.InvertedIndex),
		Docs:    make(map[string]index.DocInfo),
		Zoned:   zoned,
	}
	if err := ReadArtifact(filepath.Join(dir, contentFile), KindContentIndex, &s.Content); err != nil {
		return nil, err
	}
	if err := ReadArtifact(filepath.Join(dir, docsFile), KindDocInfo, &s.Docs); err != nil {
		return nil, err
	}
	if zoned {
		s.Title = make(index.InvertedIndex)
		if err := ReadArtifact(filepath.Join(dir, titleFile), KindTitleIndex, &s.Title); err != nil {
			return nil, err
		}
	}
	return s, nil
}
