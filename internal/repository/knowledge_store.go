package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"wm-assistant/internal/models"

	"go.uber.org/zap"
)

// KnowledgeStore owns the support knowledge base: it loads entries from a
// JSON file, indexes them, and serves read-only lookups. The store is loaded
// once at startup; after that every access path is a read.
type KnowledgeStore struct {
	logger *zap.Logger

	mu         sync.RWMutex
	entries    []*models.SupportEntry
	byID       map[string]*models.SupportEntry
	byCategory map[models.Category][]*models.SupportEntry
	lastLoaded time.Time
}

// ValidationReport summarizes the health of the loaded knowledge base.
type ValidationReport struct {
	IsValid      bool           `json:"is_valid"`
	TotalEntries int            `json:"total_entries"`
	Categories   map[string]int `json:"categories"`
	Errors       []string       `json:"errors"`
	Warnings     []string       `json:"warnings"`
}

func NewKnowledgeStore(logger *zap.Logger) *KnowledgeStore {
	return &KnowledgeStore{
		logger:     logger,
		byID:       make(map[string]*models.SupportEntry),
		byCategory: make(map[models.Category][]*models.SupportEntry),
	}
}

// Load reads a JSON array of support entries from path and replaces all
// indexes atomically. A missing file or a non-array top level is fatal;
// individual invalid records are logged and skipped.
func (s *KnowledgeStore) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("support database file not found: %s: %w", path, err)
	}

	var rawEntries []json.RawMessage
	if err := json.Unmarshal(data, &rawEntries); err != nil {
		return fmt.Errorf("support database must be a JSON array: %w", err)
	}

	entries := make([]*models.SupportEntry, 0, len(rawEntries))
	byID := make(map[string]*models.SupportEntry, len(rawEntries))
	byCategory := make(map[models.Category][]*models.SupportEntry)

	for _, raw := range rawEntries {
		var decoded models.SupportEntry
		if err := json.Unmarshal(raw, &decoded); err != nil {
			s.logger.Warn("Failed to decode support entry", zap.Error(err))
			continue
		}
		entry, err := models.NewSupportEntry(decoded)
		if err != nil {
			s.logger.Warn("Skipping invalid support entry",
				zap.String("id", decoded.ID),
				zap.Error(err),
			)
			continue
		}

		entries = append(entries, entry)
		byID[entry.ID] = entry
		byCategory[entry.Category] = append(byCategory[entry.Category], entry)
	}

	s.mu.Lock()
	s.entries = entries
	s.byID = byID
	s.byCategory = byCategory
	s.lastLoaded = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info("Loaded support entries",
		zap.Int("count", len(entries)),
		zap.String("path", path),
	)
	return nil
}

// Validate recomputes the health report over the loaded entries: entry and
// per-category counts, duplicate ids, and entries missing a URL.
func (s *KnowledgeStore) Validate() *ValidationReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := &ValidationReport{
		IsValid:      true,
		TotalEntries: len(s.entries),
		Categories:   make(map[string]int),
	}

	if len(s.entries) == 0 {
		report.IsValid = false
		report.Errors = append(report.Errors, "no support entries loaded")
		return report
	}

	for category, entries := range s.byCategory {
		report.Categories[string(category)] = len(entries)
	}

	seen := make(map[string]struct{}, len(s.entries))
	for _, entry := range s.entries {
		if _, dup := seen[entry.ID]; dup {
			report.Errors = append(report.Errors, fmt.Sprintf("duplicate ID found: %s", entry.ID))
			report.IsValid = false
		}
		seen[entry.ID] = struct{}{}
	}

	withoutURL := 0
	for _, entry := range s.entries {
		if entry.URL == "" {
			withoutURL++
		}
	}
	if withoutURL > 0 {
		report.Warnings = append(report.Warnings, fmt.Sprintf("%d entries without URLs", withoutURL))
	}

	return report
}

// Initialize loads the knowledge base and fails when validation reports it
// unusable. This is the startup entry point.
func (s *KnowledgeStore) Initialize(path string) error {
	s.logger.Info("Initializing support database", zap.String("path", path))

	if err := s.Load(path); err != nil {
		return err
	}

	report := s.Validate()
	if !report.IsValid {
		return fmt.Errorf("support database validation failed: %s", strings.Join(report.Errors, "; "))
	}
	if len(report.Warnings) > 0 {
		s.logger.Warn("Support database validation warnings", zap.Strings("warnings", report.Warnings))
	}

	s.logger.Info("Support database initialized", zap.Int("entries", report.TotalEntries))
	return nil
}

// GetByID returns the entry with the given id.
func (s *KnowledgeStore) GetByID(id string) (*models.SupportEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.byID[id]
	return entry, ok
}

// GetByCategory returns the entries of one category in insertion order.
func (s *KnowledgeStore) GetByCategory(category models.Category) []*models.SupportEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.byCategory[category]
	out := make([]*models.SupportEntry, len(entries))
	copy(out, entries)
	return out
}

// GetAll returns every entry in insertion order.
func (s *KnowledgeStore) GetAll() []*models.SupportEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.SupportEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Count returns the number of loaded entries.
func (s *KnowledgeStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Categories returns the categories present, in first-seen order.
func (s *KnowledgeStore) Categories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[models.Category]struct{}, len(s.byCategory))
	var categories []models.Category
	for _, entry := range s.entries {
		if _, ok := seen[entry.Category]; ok {
			continue
		}
		seen[entry.Category] = struct{}{}
		categories = append(categories, entry.Category)
	}
	return categories
}

// IsLoaded reports whether a load has completed with at least one entry.
func (s *KnowledgeStore) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries) > 0 && !s.lastLoaded.IsZero()
}

// LastLoaded returns when the store was last populated.
func (s *KnowledgeStore) LastLoaded() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLoaded
}
