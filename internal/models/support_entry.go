package models

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Category is the closed set of support categories an entry may belong to.
type Category string

const (
	CategoryServiceChanges     Category = "Service Changes"
	CategoryContainerGuides    Category = "Container Guidelines"
	CategorySafetyHealth       Category = "Safety & Health"
	CategoryAdditionalServices Category = "Additional Services"
	CategoryBilling            Category = "Billing"
	CategoryServiceIssues      Category = "Service Issues"
	CategoryRecycling          Category = "Recycling"
	CategoryServiceQuestions   Category = "Service Questions"
)

var validCategories = map[Category]struct{}{
	CategoryServiceChanges:     {},
	CategoryContainerGuides:    {},
	CategorySafetyHealth:       {},
	CategoryAdditionalServices: {},
	CategoryBilling:            {},
	CategoryServiceIssues:      {},
	CategoryRecycling:          {},
	CategoryServiceQuestions:   {},
}

// SupportEntry is a single topic from the support knowledge base.
type SupportEntry struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  Category  `json:"category"`
	Keywords  []string  `json:"keywords"`
	Content   string    `json:"content"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Extended metadata used only for context enrichment, never for ranking.
	SourceID     string            `json:"source_id,omitempty"`
	LastReviewed string            `json:"last_reviewed,omitempty"`
	GeoScope     string            `json:"geo_scope,omitempty"`
	Audience     []string          `json:"audience,omitempty"`
	Entities     []string          `json:"entities,omitempty"`
	AltQuestions []string          `json:"alt_questions,omitempty"`
	PolicyNotes  []string          `json:"policy_notes,omitempty"`
	ActionLinks  map[string]string `json:"action_links,omitempty"`
}

// NewSupportEntry validates and normalizes a decoded entry. Invalid records
// are rejected here rather than carried around half-formed.
func NewSupportEntry(raw SupportEntry) (*SupportEntry, error) {
	entry := raw

	if !isURLSafeID(entry.ID) {
		return nil, fmt.Errorf("id %q must be URL-safe (alphanumeric, hyphens, underscores only)", entry.ID)
	}

	entry.Title = strings.TrimSpace(entry.Title)
	if entry.Title == "" {
		return nil, fmt.Errorf("entry %s: title must be non-empty", entry.ID)
	}

	if _, ok := validCategories[entry.Category]; !ok {
		return nil, fmt.Errorf("entry %s: unknown category %q", entry.ID, entry.Category)
	}

	keywords := make([]string, 0, len(entry.Keywords))
	for _, kw := range entry.Keywords {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("entry %s: keywords must contain at least one keyword", entry.ID)
	}
	entry.Keywords = keywords

	entry.Content = strings.TrimSpace(entry.Content)
	if len(entry.Content) < 10 {
		return nil, fmt.Errorf("entry %s: content must provide actionable information (minimum 10 characters)", entry.ID)
	}

	if entry.URL != "" && !strings.HasPrefix(entry.URL, "http://") && !strings.HasPrefix(entry.URL, "https://") {
		return nil, fmt.Errorf("entry %s: url must start with http:// or https://", entry.ID)
	}

	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = now
	}

	return &entry, nil
}

// isURLSafeID reports whether id consists of letters, digits, hyphens and
// underscores, with at least one letter or digit.
func isURLSafeID(id string) bool {
	hasAlnum := false
	for _, r := range id {
		switch {
		case r == '-' || r == '_':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			hasAlnum = true
		default:
			return false
		}
	}
	return hasAlnum
}
