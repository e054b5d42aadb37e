package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/svnstat/svnstat/internal/models"
)

// FileStore persists one JSON document per repository under a data directory.
// Timestamps serialize as RFC 3339 strings, so a store/load cycle preserves
// them well past the contractual one-second precision.
type FileStore struct {
	dir string
}

// repoDocument is the on-disk shape: the full record set plus the recomputed
// persisted span.
type repoDocument struct {
	RepositoryURL string            `json:"repository_url"`
	DateRange     *models.DateRange `json:"date_range,omitempty"`
	Commits       []*models.Commit  `json:"commits"`
}

// NewFileStore creates a JSON file store rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(repoURL string) string {
	sum := sha256.Sum256([]byte(repoURL))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:8])+".json")
}

func (s *FileStore) load(repoURL string) (*repoDocument, error) {
	data, err := os.ReadFile(s.path(repoURL))
	if os.IsNotExist(err) {
		return &repoDocument{RepositoryURL: repoURL}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read record set: %w", err)
	}

	var doc repoDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode record set: %w", err)
	}
	return &doc, nil
}

// LoadCommits returns the persisted set, empty for an unknown repository.
func (s *FileStore) LoadCommits(_ context.Context, repoURL string) ([]*models.Commit, error) {
	doc, err := s.load(repoURL)
	if err != nil {
		return nil, err
	}
	return doc.Commits, nil
}

// LoadRange returns the persisted span, nil when nothing is recorded.
func (s *FileStore) LoadRange(_ context.Context, repoURL string) (*models.DateRange, error) {
	doc, err := s.load(repoURL)
	if err != nil {
		return nil, err
	}
	return doc.DateRange, nil
}

// SaveCommits writes the merged set atomically via a temp file rename.
func (s *FileStore) SaveCommits(_ context.Context, repoURL string, commits []*models.Commit, span models.DateRange) error {
	doc := repoDocument{
		RepositoryURL: repoURL,
		DateRange:     &span,
		Commits:       commits,
	}

	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode record set: %w", err)
	}

	target := s.path(repoURL)
	tmp, err := os.CreateTemp(s.dir, "svnstat-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write record set: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace record set: %w", err)
	}
	return nil
}

// ListCommits pages through the set ordered by revision descending.
func (s *FileStore) ListCommits(_ context.Context, repoURL string, limit, offset int) ([]*models.Commit, int64, error) {
	doc, err := s.load(repoURL)
	if err != nil {
		return nil, 0, err
	}

	ordered := make([]*models.Commit, len(doc.Commits))
	copy(ordered, doc.Commits)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Revision > ordered[j].Revision })

	total := int64(len(ordered))
	if offset >= len(ordered) {
		return []*models.Commit{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > len(ordered) {
		end = len(ordered)
	}
	return ordered[offset:end], total, nil
}

// TopAuthors computes per-author totals from the persisted set.
func (s *FileStore) TopAuthors(_ context.Context, repoURL string, limit int) ([]*models.AuthorStats, error) {
	doc, err := s.load(repoURL)
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*models.AuthorStats)
	for _, c := range doc.Commits {
		st, ok := byName[c.Author]
		if !ok {
			st = &models.AuthorStats{Name: c.Author, FirstCommitAt: c.Date, LastCommitAt: c.Date}
			byName[c.Author] = st
		}
		st.CommitCount++
		if c.Date.Before(st.FirstCommitAt) {
			st.FirstCommitAt = c.Date
		}
		if c.Date.After(st.LastCommitAt) {
			st.LastCommitAt = c.Date
		}
	}

	authors := make([]*models.AuthorStats, 0, len(byName))
	for _, st := range byName {
		authors = append(authors, st)
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].CommitCount != authors[j].CommitCount {
			return authors[i].CommitCount > authors[j].CommitCount
		}
		return authors[i].Name < authors[j].Name
	})

	if limit > 0 && len(authors) > limit {
		authors = authors[:limit]
	}
	return authors, nil
}

// DeleteCommits removes the repository document.
func (s *FileStore) DeleteCommits(_ context.Context, repoURL string) error {
	err := os.Remove(s.path(repoURL))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record set: %w", err)
	}
	return nil
}
