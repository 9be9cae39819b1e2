package persistence

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// likeEscaper escapes LIKE wildcards so keywords match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// expenseQuery scopes a query on the expenses table to the filter. Dates are
// stored as YYYY-MM-DD text, so inclusive bounds compare lexicographically.
func expenseQuery(ctx context.Context, db *gorm.DB, filter entity.ExpenseFilter) *gorm.DB {
	query := db.WithContext(ctx).Model(&model.ExpenseModel{})

	if filter.Start != nil {
		query = query.Where("date >= ?", dateutil.FormatDate(*filter.Start))
	}
	if filter.End != nil {
		query = query.Where("date <= ?", dateutil.FormatDate(*filter.End))
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Keyword != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Keyword)) + "%"
		query = query.Where(
			`(LOWER(description) LIKE ? ESCAPE '\' OR LOWER(category) LIKE ? ESCAPE '\')`,
			pattern, pattern,
		)
	}
	return query
}

func findExpenses(ctx context.Context, db *gorm.DB, filter entity.ExpenseFilter, limit int) ([]*entity.Expense, error) {
	query := expenseQuery(ctx, db, filter).Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var expenseModels []model.ExpenseModel
	if err := query.Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]*entity.Expense, len(expenseModels))
	for i := range expenseModels {
		expenses[i] = expenseModels[i].ToEntity()
	}
	return expenses, nil
}

func sumExpenseCents(ctx context.Context, db *gorm.DB, filter entity.ExpenseFilter) (int64, error) {
	var cents int64
	err := expenseQuery(ctx, db, filter).
		Select("COALESCE(SUM(amount_cents), 0)").
		Scan(&cents).Error
	return cents, err
}
