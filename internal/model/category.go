package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/expense-tracker/internal/common"
)

// ErrInvalidCategory is returned when text does not name a known category.
var ErrInvalidCategory = fmt.Errorf("%w: invalid category", common.ErrValidation)

// Category classifies what an expense was spent on.
// The zero value is not a valid category.
type Category string

// The closed set of categories, in display order.
const (
	CategoryFood          Category = "FOOD"
	CategoryTransport     Category = "TRANSPORT"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealth        Category = "HEALTH"
	CategoryEducation     Category = "EDUCATION"
	CategoryHome          Category = "HOME"
	CategoryMisc          Category = "MISC"
)

var categoryCatalog = []struct {
	category Category
	label    string
}{
	{CategoryFood, "Food & Dining"},
	{CategoryTransport, "Transportation"},
	{CategoryEntertainment, "Entertainment"},
	{CategoryHealth, "Health & Medical"},
	{CategoryEducation, "Education"},
	{CategoryHome, "Home & Utilities"},
	{CategoryMisc, "Miscellaneous"},
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryCatalog))
	for _, entry := range categoryCatalog {
		out = append(out, entry.category)
	}
	return out
}

// ParseCategory accepts a canonical name ("FOOD") or a display label
// ("Food & Dining"), ignoring case and surrounding whitespace.
func ParseCategory(text string) (Category, error) {
	normalized := strings.TrimSpace(text)
	if normalized != "" {
		for _, entry := range categoryCatalog {
			if strings.EqualFold(normalized, string(entry.category)) ||
				strings.EqualFold(normalized, entry.label) {
				return entry.category, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, text)
}

// IsValid reports whether c is part of the catalog.
func (c Category) IsValid() bool {
	for _, entry := range categoryCatalog {
		if entry.category == c {
			return true
		}
	}
	return false
}

// DisplayName returns the human readable label used in output.
func (c Category) DisplayName() string {
	for _, entry := range categoryCatalog {
		if entry.category == c {
			return entry.label
		}
	}
	return string(c)
}

// String returns the canonical name.
func (c Category) String() string {
	return string(c)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Only canonical
// names are accepted; labels are an input convenience for the CLI.
func (c *Category) UnmarshalText(text []byte) error {
	candidate := Category(text)
	if !candidate.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(text))
	}
	*c = candidate
	return nil
}
