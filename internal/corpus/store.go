// Package corpus persists posts as an append-only JSON Lines file and
// applies the ingestion-time filtering pipeline.
package corpus

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"voice-ghostwriter/internal/domain"
)

// Write stores posts one JSON object per line. Append mode adds lines without
// reading existing content; otherwise the file is truncated first. Single
// writer is assumed: each line is an independent record, so interleaved
// writers cannot silently corrupt earlier records.
func Write(path string, posts []domain.Post, appendMode bool) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create corpus dir: %w", err)
		}
	}
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, post := range posts {
		if err := enc.Encode(post); err != nil {
			return fmt.Errorf("encode post: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush corpus: %w", err)
	}
	return nil
}

// Read returns all posts from the corpus file. A missing file yields an empty
// slice; individual malformed lines are skipped, not fatal.
func Read(path string) ([]domain.Post, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open corpus: %w", err)
	}
	defer f.Close()

	var posts []domain.Post
	r := bufio.NewReader(f)
	for {
		line, readErr := r.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			var post domain.Post
			if err := json.Unmarshal(trimmed, &post); err == nil {
				posts = append(posts, post)
			}
		}
		if readErr == io.EOF {
			return posts, nil
		}
		if readErr != nil {
			return nil, fmt.Errorf("read corpus: %w", readErr)
		}
	}
}
