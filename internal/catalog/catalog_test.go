package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtrack-engine/internal/domain"
)

func validPosting(id string) domain.JobPosting {
	return domain.JobPosting{
		ID:         id,
		Title:      "Engineer",
		Mode:       domain.ModeRemote,
		Experience: domain.ExpOneToThree,
	}
}

func TestValidate(t *testing.T) {
	ok := []domain.JobPosting{validPosting("a"), validPosting("b")}
	assert.NoError(t, Validate(ok))

	dup := []domain.JobPosting{validPosting("a"), validPosting("a")}
	assert.ErrorContains(t, Validate(dup), "duplicate id")

	blank := []domain.JobPosting{validPosting("")}
	assert.ErrorContains(t, Validate(blank), "empty id")

	badMode := validPosting("a")
	badMode.Mode = "Teleport"
	assert.ErrorContains(t, Validate([]domain.JobPosting{badMode}), "work mode")

	badDays := validPosting("a")
	badDays.PostedDaysAgo = -1
	assert.ErrorContains(t, Validate([]domain.JobPosting{badDays}), "postedDaysAgo")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
  {"id":"x","title":"Engineer","mode":"Remote","experience":"1-3 Years","postedDaysAgo":2}
]`), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
	assert.Equal(t, domain.ModeRemote, got[0].Mode)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"an array"}`), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "parse catalog")
}

func TestEnsureUserCatalog(t *testing.T) {
	src := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(src, []byte(`[]`), 0o644))

	dataDir := t.TempDir()
	userPath, err := EnsureUserCatalog(dataDir, src)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dataDir, "catalog.json"), userPath)

	// Second run leaves the user's copy alone.
	require.NoError(t, os.WriteFile(userPath, []byte(`[ ]`), 0o644))
	again, err := EnsureUserCatalog(dataDir, src)
	require.NoError(t, err)
	b, err := os.ReadFile(again)
	require.NoError(t, err)
	assert.Equal(t, "[ ]", string(b))
}

func TestCollectMeta(t *testing.T) {
	a := validPosting("a")
	a.Location, a.Source = "Bangalore", "LinkedIn"
	b := validPosting("b")
	b.Location, b.Source = "Pune", "Naukri"
	c := validPosting("c")
	c.Location, c.Source = "Bangalore", "LinkedIn"

	m := CollectMeta([]domain.JobPosting{a, b, c})
	assert.Equal(t, []string{"Bangalore", "Pune"}, m.Locations)
	assert.Equal(t, []string{"LinkedIn", "Naukri"}, m.Sources)
}
