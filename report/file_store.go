package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/klauspost/compress/zstd"
)

const (
	reportFile           = "report.json"
	compressedReportFile = "report.json.zst"
)

// FileStore keeps one directory per session under root, holding
// report.json or, when compression is on, report.json.zst.
type FileStore struct {
	root     string
	compress bool
	mu       sync.RWMutex
}

func NewFileStore(root string, compress bool) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}
	return &FileStore{root: root, compress: compress}, nil
}

func (s *FileStore) sessionDir(id string) string { return filepath.Join(s.root, id) }

func (s *FileStore) Save(ctx context.Context, r *Report) error {
	if r == nil {
		return errors.New("report cannot be nil")
	}
	if !validID(r.SessionID) {
		return ErrInvalidID
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := s.sessionDir(r.SessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	name, stale := reportFile, compressedReportFile
	if s.compress {
		name, stale = stale, name
	}
	if err := writeJSON(filepath.Join(dir, name), r, s.compress); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	_ = os.Remove(filepath.Join(dir, stale))
	return nil
}

func (s *FileStore) Load(ctx context.Context, id string) (*Report, error) {
	if !validID(id) {
		return nil, ErrInvalidID
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.load(id)
}

func (s *FileStore) load(id string) (*Report, error) {
	dir := s.sessionDir(id)
	for _, c := range []struct {
		name       string
		compressed bool
	}{
		{compressedReportFile, true},
		{reportFile, false},
	} {
		r, err := readJSON(filepath.Join(dir, c.name), c.compressed)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read report %s: %w", id, err)
		}
		return r, nil
	}
	return nil, ErrNotFound
}

func (s *FileStore) List(ctx context.Context) ([]Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("read reports directory: %w", err)
	}
	out := make([]Summary, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		r, err := s.load(e.Name())
		if err != nil {
			// skip directories that hold no readable report
			continue
		}
		out = append(out, r.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *FileStore) Close() error { return nil }

func writeJSON(path string, v any, compress bool) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	var enc *zstd.Encoder
	if compress {
		enc, err = zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("create zstd encoder: %w", err)
		}
		w = enc
	}
	je := json.NewEncoder(w)
	je.SetIndent("", "  ")
	if err := je.Encode(v); err != nil {
		if enc != nil {
			enc.Close()
		}
		return err
	}
	if enc != nil {
		if err := enc.Close(); err != nil {
			return fmt.Errorf("finalize compression: %w", err)
		}
	}
	return f.Sync()
}

func readJSON(path string, compressed bool) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rd io.Reader = f
	if compressed {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("create zstd decoder: %w", err)
		}
		defer dec.Close()
		rd = dec
	}
	var r Report
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &r, nil
}
