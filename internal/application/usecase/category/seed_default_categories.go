package category

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SeedDefaultCategoriesOutput reports how many default categories were added.
type SeedDefaultCategoriesOutput struct {
	Created int
}

// SeedDefaultCategoriesUseCase installs the default category set. Categories
// that already exist are left untouched, so running it twice is harmless.
type SeedDefaultCategoriesUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewSeedDefaultCategoriesUseCase creates a new SeedDefaultCategoriesUseCase instance.
func NewSeedDefaultCategoriesUseCase(categoryRepo adapter.CategoryRepository) *SeedDefaultCategoriesUseCase {
	return &SeedDefaultCategoriesUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute seeds any missing default category.
func (uc *SeedDefaultCategoriesUseCase) Execute(ctx context.Context) (*SeedDefaultCategoriesOutput, error) {
	created := 0
	for _, category := range entity.DefaultCategories() {
		exists, err := uc.categoryRepo.ExistsByName(ctx, category.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check category %q: %w", category.Name, err)
		}
		if exists {
			continue
		}
		if err := uc.categoryRepo.Create(ctx, category); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", category.Name, err)
		}
		created++
	}

	if created > 0 {
		slog.Info("Seeded default categories", "count", created)
	}

	return &SeedDefaultCategoriesOutput{
		Created: created,
	}, nil
}
