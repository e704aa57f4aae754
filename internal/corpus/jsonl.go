package corpus

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"vsmsearch/internal/indexer/index"
)

// JSONLSource streams documents from newline-delimited JSON files in a
// directory. Each line is one {"id": ..., "title": ..., "text": ...} object.
type JSONLSource struct {
	files   []string
	current *os.File
	scanner *bufio.Scanner
}

// OpenJSONL lists the .jsonl files under dir in name order.
func OpenJSONL(dir string) (*JSONLSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading corpus directory %s: %w", dir, err)
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".jsonl") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return &JSONLSource{files: files}, nil
}

func (s *JSONLSource) Next(ctx context.Context) (index.Document, error) {
	for {
		if err := ctx.Err(); err != nil {
			return index.Document{}, err
		}
		if s.scanner == nil {
			if len(s.files) == 0 {
				return index.Document{}, io.EOF
			}
			f, err := os.Open(s.files[0])
			if err != nil {
				return index.Document{}, fmt.Errorf("opening corpus file: %w", err)
			}
			s.files = s.files[1:]
			s.current = f
			s.scanner = bufio.NewScanner(f)
			s.scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		}
		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return index.Document{}, fmt.Errorf("reading corpus file %s: %w", s.current.Name(), err)
			}
			s.current.Close()
			s.current = nil
			s.scanner = nil
			continue
		}
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var doc index.Document
		if err := json.Unmarshal(line, &doc); err != nil {
			return index.Document{}, fmt.Errorf("parsing corpus record in %s: %w", s.current.Name(), err)
		}
		return doc, nil
	}
}

func (s *JSONLSource) Close() error {
	if s.current != nil {
		return s.current.Close()
	}
	return nil
}
