// Package catalog loads the immutable posting list the engine works over.
// The catalog is external read-only input: loaded once at startup, validated
// hard, never written back.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"jobtrack-engine/internal/domain"
)

// Load reads and validates a catalog JSON file (an array of postings).
func Load(path string) ([]domain.JobPosting, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var postings []domain.JobPosting
	if err := json.Unmarshal(b, &postings); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	if err := Validate(postings); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return postings, nil
}

// Validate checks the invariants the engine relies on: unique non-empty IDs,
// known enum values, non-negative posting age.
func Validate(postings []domain.JobPosting) error {
	seen := make(map[string]bool, len(postings))
	for i, p := range postings {
		if strings.TrimSpace(p.ID) == "" {
			return fmt.Errorf("posting[%d]: empty id", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("posting[%d]: duplicate id %q", i, p.ID)
		}
		seen[p.ID] = true

		if _, err := domain.ParseWorkMode(string(p.Mode)); err != nil {
			return fmt.Errorf("posting %s: %w", p.ID, err)
		}
		if _, err := domain.ParseExperienceBand(string(p.Experience)); err != nil {
			return fmt.Errorf("posting %s: %w", p.ID, err)
		}
		if p.PostedDaysAgo < 0 {
			return fmt.Errorf("posting %s: postedDaysAgo must be >= 0 (got %d)", p.ID, p.PostedDaysAgo)
		}
	}
	return nil
}

// EnsureUserCatalog copies the bundled seed catalog into the data dir on
// first run, mirroring the config bootstrap.
func EnsureUserCatalog(dataDir, defaultPath string) (string, error) {
	userPath := filepath.Join(dataDir, filepath.Base(defaultPath))

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	src, err := os.Open(defaultPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(userPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return userPath, nil
}

// Meta is the distinct values the dashboard needs for its dropdowns.
type Meta struct {
	Locations []string `json:"locations"`
	Sources   []string `json:"sources"`
}

// CollectMeta gathers distinct locations and sources in first-seen order.
func CollectMeta(postings []domain.JobPosting) Meta {
	m := Meta{Locations: []string{}, Sources: []string{}}
	seenLoc := map[string]bool{}
	seenSrc := map[string]bool{}
	for _, p := range postings {
		if !seenLoc[p.Location] {
			seenLoc[p.Location] = true
			m.Locations = append(m.Locations, p.Location)
		}
		if !seenSrc[p.Source] {
			seenSrc[p.Source] = true
			m.Sources = append(m.Sources, p.Source)
		}
	}
	return m
}
