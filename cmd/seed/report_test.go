package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/usecase"
)

func TestLoadDrafts(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "listings.json")
		require.NoError(t, os.WriteFile(path, []byte(`[
			{"title": "Mountain Retreat", "description": "Unplug", "location": "Aspen", "country": "United States", "price": 1000,
			 "image": {"url": "https://example.com/a.jpg", "filename": "a"}}
		]`), 0o600))

		drafts, err := loadDrafts(path)

		require.NoError(t, err)
		require.Len(t, drafts, 1)
		assert.Equal(t, "Aspen", drafts[0].Location)
		assert.Equal(t, 1000.0, drafts[0].Price)
		assert.Equal(t, "a", drafts[0].Image.Filename)
		assert.Nil(t, drafts[0].Geometry)
	})

	t.Run("no path", func(t *testing.T) {
		_, err := loadDrafts("")
		assert.Error(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"title":`), 0o600))

		_, err := loadDrafts(path)
		assert.Error(t, err)
	})
}

func TestLoadDrafts_SampleData(t *testing.T) {
	drafts, err := loadDrafts(filepath.Join("..", "..", "data", "listings.json"))

	require.NoError(t, err)
	assert.NotEmpty(t, drafts)
	for _, d := range drafts {
		assert.NotEmpty(t, d.Title)
		assert.NotEmpty(t, d.Location)
		assert.LessOrEqual(t, len(d.Description), domain.MaxDescriptionLength)
	}
}

func TestPrintReport(t *testing.T) {
	report := &usecase.SeedReport{
		Items: []usecase.SeedItemResult{
			{Title: "Cabin", Query: "Aspen, United States", Category: domain.CategoryMountains},
			{Title: "Nowhere", Query: "Atlantis", Category: domain.CategoryTrending, Err: errors.New("no results")},
		},
		Succeeded: 1,
		Failed:    1,
		Removed:   5,
		CategoryBreakdown: map[domain.Category]int{
			domain.CategoryMountains: 1,
			domain.CategoryTrending:  1,
		},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "removed:   5")
	assert.Contains(t, out, "geocoded:  1")
	assert.Contains(t, out, "[0, 0] Nowhere (Atlantis): no results")
	assert.Contains(t, out, "Mountains")
	assert.NotContains(t, out, "[0, 0] Cabin")
}
