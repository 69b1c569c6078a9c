package repository

import (
	"os"
	"path/filepath"
	"testing"

	"wm-assistant/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "support_database.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const twoEntries = `[
	{
		"id": "billing-basics",
		"title": "Billing question",
		"category": "Billing",
		"keywords": ["bill", "invoice"],
		"content": "pay your bill online",
		"url": "https://www.wm.com/billing"
	},
	{
		"id": "recycling-guide",
		"title": "Recycling guide",
		"category": "Recycling",
		"keywords": ["recycle"],
		"content": "bin colors for recycling"
	}
]`

func newLoadedStore(t *testing.T, content string) *KnowledgeStore {
	t.Helper()
	store := NewKnowledgeStore(zap.NewNop())
	require.NoError(t, store.Load(writeFixture(t, content)))
	return store
}

func TestLoad(t *testing.T) {
	store := newLoadedStore(t, twoEntries)

	assert.Equal(t, 2, store.Count())
	assert.True(t, store.IsLoaded())
	assert.False(t, store.LastLoaded().IsZero())

	entry, ok := store.GetByID("billing-basics")
	require.True(t, ok)
	assert.Equal(t, "Billing question", entry.Title)

	_, ok = store.GetByID("missing")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	store := NewKnowledgeStore(zap.NewNop())
	err := store.Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadNotAnArray(t *testing.T) {
	store := NewKnowledgeStore(zap.NewNop())
	err := store.Load(writeFixture(t, `{"id": "x"}`))
	assert.Error(t, err)
	assert.False(t, store.IsLoaded())
}

func TestLoadSkipsInvalidEntries(t *testing.T) {
	// Second record has no content; third has a bad category. Both are
	// dropped without failing the load.
	store := newLoadedStore(t, `[
		{"id": "ok", "title": "Valid entry", "category": "Billing", "keywords": ["bill"], "content": "long enough content"},
		{"id": "no-content", "title": "Broken", "category": "Billing", "keywords": ["bill"]},
		{"id": "bad-cat", "title": "Broken too", "category": "Nope", "keywords": ["x"], "content": "long enough content"}
	]`)

	assert.Equal(t, 1, store.Count())
	_, ok := store.GetByID("no-content")
	assert.False(t, ok)
}

func TestLoadReplacesIndexes(t *testing.T) {
	store := newLoadedStore(t, twoEntries)
	require.Equal(t, 2, store.Count())

	path := writeFixture(t, `[
		{"id": "fresh", "title": "Fresh entry", "category": "Service Issues", "keywords": ["pickup"], "content": "missed pickup instructions"}
	]`)
	require.NoError(t, store.Load(path))

	assert.Equal(t, 1, store.Count())
	_, ok := store.GetByID("billing-basics")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	store := newLoadedStore(t, twoEntries)
	report := store.Validate()

	assert.True(t, report.IsValid)
	assert.Equal(t, 2, report.TotalEntries)
	assert.Equal(t, 1, report.Categories["Billing"])
	assert.Equal(t, 1, report.Categories["Recycling"])
	assert.Empty(t, report.Errors)
	// One entry has no URL.
	require.Len(t, report.Warnings, 1)
	assert.Contains(t, report.Warnings[0], "1 entries without URLs")
}

func TestValidateEmptyStore(t *testing.T) {
	store := NewKnowledgeStore(zap.NewNop())
	report := store.Validate()

	assert.False(t, report.IsValid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "no support entries loaded")
}

func TestValidateDuplicateID(t *testing.T) {
	store := newLoadedStore(t, `[
		{"id": "dup", "title": "First occurrence", "category": "Billing", "keywords": ["bill"], "content": "long enough content"},
		{"id": "dup", "title": "Second occurrence", "category": "Billing", "keywords": ["bill"], "content": "long enough content"}
	]`)

	// Load keeps both occurrences; Validate flags the id.
	assert.Equal(t, 2, store.Count())

	report := store.Validate()
	assert.False(t, report.IsValid)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "dup")
}

func TestInitializeFailsOnInvalidDatabase(t *testing.T) {
	store := NewKnowledgeStore(zap.NewNop())
	err := store.Initialize(writeFixture(t, `[]`))
	assert.Error(t, err)
}

func TestAccessorsReturnCopies(t *testing.T) {
	store := newLoadedStore(t, twoEntries)

	all := store.GetAll()
	require.Len(t, all, 2)
	all[0] = nil
	entry, ok := store.GetByID("billing-basics")
	require.True(t, ok)
	assert.NotNil(t, entry)
	assert.NotNil(t, store.GetAll()[0])

	billing := store.GetByCategory(models.CategoryBilling)
	require.Len(t, billing, 1)
	billing[0] = nil
	assert.NotNil(t, store.GetByCategory(models.CategoryBilling)[0])
}

func TestCategoriesInsertionOrder(t *testing.T) {
	store := newLoadedStore(t, twoEntries)
	assert.Equal(t, []models.Category{models.CategoryBilling, models.CategoryRecycling}, store.Categories())
}
