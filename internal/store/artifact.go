// Package store persists the index artifacts. Every artifact shares one
// on-disk container: a fixed 64-byte header (magic, format version, kind,
// entry count, payload extent), a JSON payload, and a footer carrying a
// CRC32 of the payload. Writes go to a .tmp file and are renamed into place
// so a crashed build never leaves a half-written artifact behind.
package store

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"
	"time"

	pkgerrors "vsmsearch/pkg/errors"
)

const (
	MagicBytes    uint32 = 0x56534D58
	FormatVersion uint32 = 1
	HeaderSize    int    = 64
	FooterSize    int    = 16
)

// Kind tags what an artifact file contains.
type Kind uint32

const (
	KindContentIndex Kind = 1
	KindTitleIndex   Kind = 2
	KindDocInfo      Kind = 3
	KindEmbeddings   Kind = 4
)

func (k Kind) String() string {
	switch k {
	case KindContentIndex:
		return "content-index"
	case KindTitleIndex:
		return "title-index"
	case KindDocInfo:
		return "doc-info"
	case KindEmbeddings:
		return "embeddings"
	}
	return fmt.Sprintf("kind(%d)", uint32(k))
}

// WriteArtifact serialises payload into a new artifact file at path,
// creating parent directories as needed.
func WriteArtifact(path string, kind Kind, entryCount int, payload any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating artifact directory: %w", err)
	}
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("creating temp artifact file: %w", err)
	}
	defer f.Close()

	payloadData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling %s payload: %w", kind, err)
	}

	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(header[4:8], FormatVersion)
	binary.LittleEndian.PutUint32(header[8:12], uint32(kind))
	binary.LittleEndian.PutUint32(header[12:16], uint32(entryCount))
	binary.LittleEndian.PutUint64(header[16:24], uint64(time.Now().Unix()))
	binary.LittleEndian.PutUint64(header[24:32], uint64(HeaderSize))
	binary.LittleEndian.PutUint64(header[32:40], uint64(len(payloadData)))

	if _, err := f.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := f.Write(payloadData); err != nil {
		return fmt.Errorf("writing %s payload: %w", kind, err)
	}
	footer := make([]byte, FooterSize)
	binary.LittleEndian.PutUint32(footer[0:4], crc32.ChecksumIEEE(payloadData))
	binary.LittleEndian.PutUint64(footer[4:12], uint64(len(payloadData)))
	if _, err := f.Write(footer); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing artifact file: %w", err)
	}
	f.Close()
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming artifact file: %w", err)
	}
	return nil
}

// ReadArtifact loads an artifact written by WriteArtifact, validating magic,
// version, kind, and checksum before unmarshaling into out. A missing file
// surfaces ErrArtifactMissing so the caller can tell "rebuild required"
// apart from corruption.
func ReadArtifact(path string, kind Kind, out any) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return pkgerrors.Newf(pkgerrors.ErrArtifactMissing, "%s artifact %s", kind, path)
		}
		return fmt.Errorf("opening artifact file: %w", err)
	}
	defer f.Close()

	header := make([]byte, HeaderSize)
	if _, err := f.ReadAt(header, 0); err != nil {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: truncated header", path)
	}
	magic := binary.LittleEndian.Uint32(header[0:4])
	if magic != MagicBytes {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: bad magic bytes %x", path, magic)
	}
	version := binary.LittleEndian.Uint32(header[4:8])
	if version != FormatVersion {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: unsupported format version %d", path, version)
	}
	gotKind := Kind(binary.LittleEndian.Uint32(header[8:12]))
	if gotKind != kind {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: expected %s, found %s", path, kind, gotKind)
	}
	payloadOffset := int64(binary.LittleEndian.Uint64(header[24:32]))
	payloadSize := int64(binary.LittleEndian.Uint64(header[32:40]))

	payloadData := make([]byte, payloadSize)
	if _, err := f.ReadAt(payloadData, payloadOffset); err != nil {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: truncated payload", path)
	}
	footer := make([]byte, FooterSize)
	if _, err := f.ReadAt(footer, payloadOffset+payloadSize); err != nil {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: truncated footer", path)
	}
	wantChecksum := binary.LittleEndian.Uint32(footer[0:4])
	if got := crc32.ChecksumIEEE(payloadData); got != wantChecksum {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: checksum mismatch %08x != %08x", path, got, wantChecksum)
	}
	if err := json.Unmarshal(payloadData, out); err != nil {
		return pkgerrors.Newf(pkgerrors.ErrArtifactCorrupt, "%s: parsing payload: %v", path, err)
	}
	return nil
}
