// Package category contains category-related use cases.
package category

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// MaxCategoryNameLength is the maximum allowed length for category names.
const MaxCategoryNameLength = 50

// AddCategoryInput represents the input for category creation.
type AddCategoryInput struct {
	Name string
	Icon string // Optional, defaults to DefaultCategoryIcon
}

// AddCategoryOutput represents the output of category creation.
type AddCategoryOutput struct {
	Category *entity.Category
}

// AddCategoryUseCase handles category creation logic.
type AddCategoryUseCase struct {
	categoryRepo adapter.CategoryRepository
}

// NewAddCategoryUseCase creates a new AddCategoryUseCase instance.
func NewAddCategoryUseCase(categoryRepo adapter.CategoryRepository) *AddCategoryUseCase {
	return &AddCategoryUseCase{
		categoryRepo: categoryRepo,
	}
}

// Execute performs the category creation.
func (uc *AddCategoryUseCase) Execute(ctx context.Context, input AddCategoryInput) (*AddCategoryOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}

	exists, err := uc.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name existence: %w", err)
	}
	if exists {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			fmt.Sprintf("category '%s' already exists", name),
			domainerror.ErrCategoryNameExists,
		)
	}

	category := entity.NewCategory(name, strings.TrimSpace(input.Icon))
	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &AddCategoryOutput{
		Category: category,
	}, nil
}
