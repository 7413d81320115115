package feedimport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	"giftwise/internal/services"
	"giftwise/internal/store"
	"giftwise/pkg/categorizer"

	log "github.com/sirupsen/logrus"
)

// FeedItem is one entry of a retailer feed file. Category and tags may be
// absent; the categorizer fills them in when configured.
type FeedItem struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Retailer    string   `json:"retailer"`
	Brand       string   `json:"brand"`
}

// Report summarizes one import run.
type Report struct {
	Imported   int
	Duplicates int
	Failed     int
}

// Importer loads retailer feeds into the catalog.
type Importer struct {
	catalog     *services.CatalogService
	categorizer categorizer.ItemCategorizer
}

// NewImporter builds an importer. The categorizer is optional; without it,
// feed entries missing a category are counted as failures.
func NewImporter(catalog *services.CatalogService, cat categorizer.ItemCategorizer) *Importer {
	return &Importer{catalog: catalog, categorizer: cat}
}

// ImportSource reads a feed from a local file, a directory of feed files,
// or an http(s) URL, and inserts its items. Individual bad entries are
// counted and skipped; only an unreadable source fails the run.
func (im *Importer) ImportSource(ctx context.Context, source string) (Report, error) {
	var report Report

	if fi, err := os.Stat(source); err == nil && fi.IsDir() {
		paths, err := DiscoverFeedFiles(source)
		if err != nil {
			return report, err
		}
		if len(paths) == 0 {
			return report, fmt.Errorf("no feed files found under %s", source)
		}
		for _, path := range paths {
			r, err := im.importOne(ctx, path)
			if err != nil {
				return report, err
			}
			report.Imported += r.Imported
			report.Duplicates += r.Duplicates
			report.Failed += r.Failed
		}
		return report, nil
	}

	return im.importOne(ctx, source)
}

func (im *Importer) importOne(ctx context.Context, source string) (Report, error) {
	data, err := readSource(ctx, source)
	if err != nil {
		return Report{}, err
	}

	var entries []FeedItem
	if err := json.Unmarshal(data, &entries); err != nil {
		return Report{}, fmt.Errorf("parse feed %s: %w", source, err)
	}

	var report Report
	for i, entry := range entries {
		if err := im.importEntry(ctx, &entry); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				report.Duplicates++
				continue
			}
			log.Warnf("Skipping feed entry %d (%q) from %s: %v", i, entry.Title, source, err)
			report.Failed++
			continue
		}
		report.Imported++
	}

	log.Infof("Imported feed %s: %d added, %d duplicates, %d failed",
		source, report.Imported, report.Duplicates, report.Failed)
	return report, nil
}

func (im *Importer) importEntry(ctx context.Context, entry *FeedItem) error {
	if entry.Category == "" && im.categorizer != nil {
		result, err := im.categorizer.Categorize(ctx, categorizer.CategorizationRequest{
			Title:        entry.Title,
			Description:  entry.Description,
			ExistingTags: entry.Tags,
		})
		if err != nil {
			return fmt.Errorf("categorize: %w", err)
		}
		entry.Category = result.SuggestedCategory
		if len(entry.Tags) == 0 {
			entry.Tags = result.SuggestedTags
		}
	}

	_, err := im.catalog.AddItem(ctx, services.AddItemParams{
		Title:       entry.Title,
		Description: entry.Description,
		Price:       entry.Price,
		Category:    entry.Category,
		Tags:        entry.Tags,
		Retailer:    entry.Retailer,
		Brand:       entry.Brand,
	})
	return err
}

// DiscoverFeedFiles finds all .json feed files under rootDir.
func DiscoverFeedFiles(rootDir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) == ".json" {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan feed directory %s: %w", rootDir, err)
	}
	return paths, nil
}

// readSource fetches feed bytes from a local path or an http(s) URL.
func readSource(ctx context.Context, source string) ([]byte, error) {
	if parsed, err := url.Parse(source); err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build feed request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch feed %s: %w", source, err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch feed %s: status %d", source, resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	return data, nil
}
