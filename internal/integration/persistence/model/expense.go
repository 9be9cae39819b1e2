package model

import (
	"time"

	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Date          string    `gorm:"type:varchar(10);not null;index"` // YYYY-MM-DD
	Category      string    `gorm:"type:varchar(50);not null;index"`
	AmountCents   int64     `gorm:"not null"`
	Description   string    `gorm:"type:text"`
	PaymentMethod string    `gorm:"type:varchar(30);not null;default:'Cash'"`
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	date, _ := dateutil.ParseDate(m.Date)

	return &entity.Expense{
		ID:            m.ID,
		Date:          date,
		Category:      m.Category,
		Amount:        FromCents(m.AmountCents),
		Description:   m.Description,
		PaymentMethod: m.PaymentMethod,
		CreatedAt:     m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(expense *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:            expense.ID,
		Date:          dateutil.FormatDate(expense.Date),
		Category:      expense.Category,
		AmountCents:   ToCents(expense.Amount),
		Description:   expense.Description,
		PaymentMethod: expense.PaymentMethod,
		CreatedAt:     expense.CreatedAt,
	}
}
