// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"
)

// DefaultCategoryIcon is the icon used when a category is added without one.
const DefaultCategoryIcon = "📌"

// Category represents an expense category. Names are unique.
type Category struct {
	ID        int64
	Name      string
	Icon      string
	CreatedAt time.Time
}

// NewCategory creates a new Category entity.
func NewCategory(name, icon string) *Category {
	if icon == "" {
		icon = DefaultCategoryIcon
	}

	return &Category{
		Name:      name,
		Icon:      icon,
		CreatedAt: time.Now().UTC(),
	}
}

// DefaultCategories returns the category set seeded into a fresh store.
func DefaultCategories() []*Category {
	seed := []struct {
		name string
		icon string
	}{
		{"Food & Dining", "🍔"},
		{"Transportation", "🚗"},
		{"Shopping", "🛍️"},
		{"Entertainment", "🎬"},
		{"Healthcare", "🏥"},
		{"Bills & Utilities", "💡"},
		{"Education", "📚"},
		{"Travel", "✈️"},
		{"Groceries", "🛒"},
		{"Personal Care", "💅"},
		{"Rent", "🏠"},
		{"Investments", "📈"},
		{"Others", "📌"},
	}

	categories := make([]*Category, len(seed))
	for i, s := range seed {
		categories[i] = NewCategory(s.name, s.icon)
	}
	return categories
}
