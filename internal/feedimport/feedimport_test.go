package feedimport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"giftwise/internal/models"
	"giftwise/internal/services"
	"giftwise/internal/store"
	"giftwise/pkg/categorizer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalogStore keeps items in memory and flags duplicate titles.
type fakeCatalogStore struct {
	items []*models.Item
}

func (f *fakeCatalogStore) CreateItem(ctx context.Context, item *models.Item) error {
	for _, existing := range f.items {
		if existing.Title == item.Title {
			return store.ErrDuplicate
		}
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	f.items = append(f.items, item)
	return nil
}

func (f *fakeCatalogStore) GetItem(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	for _, item := range f.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeCatalogStore) GetItemsByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Item, error) {
	return f.items, nil
}

func (f *fakeCatalogStore) ListItems(ctx context.Context, limit, offset int) ([]*models.Item, error) {
	return f.items, nil
}

func (f *fakeCatalogStore) FetchCandidates(ctx context.Context, maxPrice float64, limit int) ([]*models.Item, error) {
	return f.items, nil
}

func (f *fakeCatalogStore) Ping(ctx context.Context) error { return nil }

type fixedCategorizer struct {
	result categorizer.CategorizationResult
	calls  int
}

func (c *fixedCategorizer) Categorize(ctx context.Context, req categorizer.CategorizationRequest) (categorizer.CategorizationResult, error) {
	c.calls++
	return c.result, nil
}

func writeFeed(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportSource_File(t *testing.T) {
	catalogStore := &fakeCatalogStore{}
	importer := NewImporter(services.NewCatalogService(catalogStore), nil)

	path := writeFeed(t, t.TempDir(), "feed.json", `[
		{"title": "Wireless Mouse", "price": 45.0, "category": "Electronics", "tags": ["gaming"]},
		{"title": "Scented Candle", "price": 15.0, "category": "Home", "description": "<p>Lavender</p>"}
	]`)

	report, err := importer.ImportSource(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 2}, report)
	require.Len(t, catalogStore.items, 2)
	// Descriptions pass through the sanitizer on the way in.
	assert.Equal(t, "Lavender", catalogStore.items[1].Description)
}

func TestImportSource_DuplicatesCountedNotFatal(t *testing.T) {
	catalogStore := &fakeCatalogStore{}
	importer := NewImporter(services.NewCatalogService(catalogStore), nil)

	path := writeFeed(t, t.TempDir(), "feed.json", `[
		{"title": "Wireless Mouse", "price": 45.0, "category": "Electronics"},
		{"title": "Wireless Mouse", "price": 45.0, "category": "Electronics"}
	]`)

	report, err := importer.ImportSource(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 1, Duplicates: 1}, report)
}

func TestImportSource_BadEntriesSkipped(t *testing.T) {
	catalogStore := &fakeCatalogStore{}
	importer := NewImporter(services.NewCatalogService(catalogStore), nil)

	path := writeFeed(t, t.TempDir(), "feed.json", `[
		{"title": "", "price": 10.0, "category": "Home"},
		{"title": "No Category", "price": 10.0},
		{"title": "Fine Item", "price": 10.0, "category": "Home"}
	]`)

	report, err := importer.ImportSource(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 1, Failed: 2}, report)
}

func TestImportSource_CategorizerFillsMissingCategory(t *testing.T) {
	catalogStore := &fakeCatalogStore{}
	cat := &fixedCategorizer{result: categorizer.CategorizationResult{
		SuggestedCategory: "Electronics",
		SuggestedTags:     []string{"gaming", "tech"},
		Confidence:        0.9,
	}}
	importer := NewImporter(services.NewCatalogService(catalogStore), cat)

	path := writeFeed(t, t.TempDir(), "feed.json", `[
		{"title": "Mystery Gadget", "price": 30.0},
		{"title": "Known Item", "price": 20.0, "category": "Books"}
	]`)

	report, err := importer.ImportSource(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 2}, report)
	assert.Equal(t, 1, cat.calls, "only the uncategorized entry should hit the categorizer")
	assert.Equal(t, "Electronics", catalogStore.items[0].Category)
	assert.Equal(t, []string{"gaming", "tech"}, catalogStore.items[0].Tags)
}

func TestImportSource_Directory(t *testing.T) {
	catalogStore := &fakeCatalogStore{}
	importer := NewImporter(services.NewCatalogService(catalogStore), nil)

	dir := t.TempDir()
	writeFeed(t, dir, "a.json", `[{"title": "Item A", "price": 10.0, "category": "Home"}]`)
	writeFeed(t, dir, "b.json", `[{"title": "Item B", "price": 20.0, "category": "Home"}]`)
	writeFeed(t, dir, "notes.txt", "not a feed")

	report, err := importer.ImportSource(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, Report{Imported: 2}, report)
}

func TestImportSource_MalformedFeedFails(t *testing.T) {
	catalogStore := &fakeCatalogStore{}
	importer := NewImporter(services.NewCatalogService(catalogStore), nil)

	path := writeFeed(t, t.TempDir(), "feed.json", `{"not": "an array"`)

	_, err := importer.ImportSource(context.Background(), path)
	require.Error(t, err)
}
