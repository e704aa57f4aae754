package errors

import (
	stderrors "errors"
	"testing"
)

func TestNewfWrapsSentinel(t *testing.T) {
	err := Newf(ErrArtifactCorrupt, "file %s", "content.idx")
	if !stderrors.Is(err, ErrArtifactCorrupt) {
		t.Error("wrapped error lost its sentinel")
	}
	if got, want := err.Error(), "artifact corrupt: file content.idx"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIsFatalArtifact(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"missing index", Newf(ErrArtifactMissing, "content index"), true},
		{"corrupt artifact", ErrArtifactCorrupt, true},
		{"missing embeddings", Newf(ErrEmbeddingsMissing, "kv_model"), true},
		{"invalid input", Newf(ErrInvalidInput, "bad source"), false},
		{"unrelated", stderrors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsFatalArtifact(tt.err); got != tt.want {
				t.Errorf("IsFatalArtifact(%v) = %t, want %t", tt.err, got, tt.want)
			}
		})
	}
}
