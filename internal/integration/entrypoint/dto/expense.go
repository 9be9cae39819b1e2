// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// CreateExpenseRequest represents the request body for recording an expense.
type CreateExpenseRequest struct {
	Date          string          `json:"date,omitempty"`
	Category      string          `json:"category" binding:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
}

// UpdateExpenseRequest represents the request body for a partial expense update.
type UpdateExpenseRequest struct {
	Date          *string          `json:"date,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Description   *string          `json:"description,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
}

// ExpenseResponse represents a single expense in API responses.
type ExpenseResponse struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date"`
	Category      string    `json:"category"`
	Amount        float64   `json:"amount"`
	Description   string    `json:"description"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

// BudgetWarningResponse describes the category budget after an expense is recorded.
type BudgetWarningResponse struct {
	Category   string  `json:"category"`
	Status     string  `json:"status"`
	Spent      float64 `json:"spent"`
	Limit      float64 `json:"limit"`
	Percentage float64 `json:"percentage"`
	Message    string  `json:"message"`
}

// CreateExpenseResponse represents the response for recording an expense.
type CreateExpenseResponse struct {
	Expense       ExpenseResponse        `json:"expense"`
	BudgetWarning *BudgetWarningResponse `json:"budget_warning,omitempty"`
}

// ExpenseListResponse represents a list of expenses.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    int               `json:"total"`
}

// RejectedRowResponse describes an import row that was not stored.
type RejectedRowResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportExpensesResponse represents the outcome of a CSV import.
type ImportExpensesResponse struct {
	Imported int                   `json:"imported"`
	Rejected []RejectedRowResponse `json:"rejected"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:            e.ID,
		Date:          dateutil.FormatDate(e.Date),
		Category:      e.Category,
		Amount:        money(e.Amount),
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt,
	}
}

// ToCreateExpenseResponse converts an AddExpenseOutput to a CreateExpenseResponse DTO.
func ToCreateExpenseResponse(output *expense.AddExpenseOutput) CreateExpenseResponse {
	response := CreateExpenseResponse{
		Expense: ToExpenseResponse(output.Expense),
	}

	if w := output.BudgetWarning; w != nil {
		response.BudgetWarning = &BudgetWarningResponse{
			Category:   w.Category,
			Status:     string(w.Status),
			Spent:      money(w.Spent),
			Limit:      money(w.Limit),
			Percentage: percent(w.Percentage),
			Message:    w.Message,
		}
	}

	return response
}

// ToExpenseListResponse converts a ListExpensesOutput to an ExpenseListResponse DTO.
func ToExpenseListResponse(output *expense.ListExpensesOutput) ExpenseListResponse {
	expenses := make([]ExpenseResponse, len(output.Expenses))
	for i, e := range output.Expenses {
		expenses[i] = ToExpenseResponse(e)
	}
	return ExpenseListResponse{
		Expenses: expenses,
		Total:    output.Total,
	}
}

// ToImportExpensesResponse converts an ImportExpensesOutput to its response DTO.
func ToImportExpensesResponse(output *expense.ImportExpensesOutput) ImportExpensesResponse {
	rejected := make([]RejectedRowResponse, len(output.Rejected))
	for i, r := range output.Rejected {
		rejected[i] = RejectedRowResponse{Line: r.Line, Reason: r.Reason}
	}
	return ImportExpensesResponse{
		Imported: output.Imported,
		Rejected: rejected,
	}
}
