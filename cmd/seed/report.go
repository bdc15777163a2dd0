package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/usecase"
)

// loadDrafts читает JSON-массив объявлений
func loadDrafts(path string) ([]domain.ListingDraft, error) {
	if path == "" {
		return nil, fmt.Errorf("seed file is not set (use --file or SEED_FILE)")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	var drafts []domain.ListingDraft
	if err := json.NewDecoder(f).Decode(&drafts); err != nil {
		return nil, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return drafts, nil
}

func printReport(w io.Writer, report *usecase.SeedReport) {
	fmt.Fprintln(w, "Seed completed")
	fmt.Fprintf(w, "  removed:   %d\n", report.Removed)
	fmt.Fprintf(w, "  geocoded:  %d\n", report.Succeeded)
	fmt.Fprintf(w, "  fallback:  %d\n", report.Failed)

	for _, item := range report.Items {
		if item.Err != nil {
			fmt.Fprintf(w, "  [0, 0] %s (%s): %v\n", item.Title, item.Query, item.Err)
		}
	}

	fmt.Fprintln(w, "Categories:")
	for _, c := range report.Categories() {
		fmt.Fprintf(w, "  %-14s %d\n", c, report.CategoryBreakdown[c])
	}
}
