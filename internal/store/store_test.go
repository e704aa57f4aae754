package store

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"vsmsearch/internal/indexer/index"
	pkgerrors "vsmsearch/pkg/errors"
)

func sampleStore(zoned bool) *Store {
	s := &Store{
		Content: index.InvertedIndex{
			"apple":  {DocFreq: 2, Postings: map[string]int{"d1": 3, "d2": 1}},
			"banana": {DocFreq: 1, Postings: map[string]int{"d1": 7}},
		},
		Docs: map[string]index.DocInfo{
			"d1": {Name: "First Document", ContentNorm: 2.1, TitleNorm: 1.0},
			"d2": {Name: "Second Document", ContentNorm: 1.0},
		},
		Zoned: zoned,
	}
	if zoned {
		s.Title = index.InvertedIndex{
			"first": {DocFreq: 1, Postings: map[string]int{"d1": 1}},
		}
	}
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	for _, zoned := range []bool{false, true} {
		dir := t.TempDir()
		want := sampleStore(zoned)
		if err := Save(dir, want); err != nil {
			t.Fatalf("Save: %v", err)
		}
		got, err := Load(dir, zoned)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if !reflect.DeepEqual(got.Content, want.Content) {
			t.Errorf("zoned=%t: content index did not round-trip", zoned)
		}
		if !reflect.DeepEqual(got.Docs, want.Docs) {
			t.Errorf("zoned=%t: doc info did not round-trip", zoned)
		}
		if zoned && !reflect.DeepEqual(got.Title, want.Title) {
			t.Error("title index did not round-trip")
		}
	}
}

func TestLoadMissingArtifact(t *testing.T) {
	_, err := Load(t.TempDir(), false)
	if !errors.Is(err, pkgerrors.ErrArtifactMissing) {
		t.Errorf("Load from empty dir: got %v, want ErrArtifactMissing", err)
	}
}

func TestLoadCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	if err := Save(dir, sampleStore(false)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	path := filepath.Join(Dir(dir, false), "content.idx")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	// Flip one byte inside the payload.
	data[HeaderSize+2] ^= 0xFF
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(dir, false)
	if !errors.Is(err, pkgerrors.ErrArtifactCorrupt) {
		t.Errorf("Load of corrupted file: got %v, want ErrArtifactCorrupt", err)
	}
}

func TestReadArtifactKindMismatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact")
	if err := WriteArtifact(path, KindDocInfo, 0, map[string]string{}); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	var out map[string]string
	err := ReadArtifact(path, KindContentIndex, &out)
	if !errors.Is(err, pkgerrors.ErrArtifactCorrupt) {
		t.Errorf("kind mismatch: got %v, want ErrArtifactCorrupt", err)
	}
}

func TestWriteArtifactLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "artifact")
	if err := WriteArtifact(path, KindDocInfo, 1, map[string]int{"a": 1}); err != nil {
		t.Fatalf("WriteArtifact: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after successful write")
	}
}
