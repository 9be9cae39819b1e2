package model

import (
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID                int64     `gorm:"primaryKey;autoIncrement"`
	Category          string    `gorm:"type:varchar(50);not null;uniqueIndex"`
	MonthlyLimitCents int64     `gorm:"not null"`
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:           m.ID,
		Category:     m.Category,
		MonthlyLimit: FromCents(m.MonthlyLimitCents),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:                budget.ID,
		Category:          budget.Category,
		MonthlyLimitCents: ToCents(budget.MonthlyLimit),
		CreatedAt:         budget.CreatedAt,
		UpdatedAt:         budget.UpdatedAt,
	}
}
