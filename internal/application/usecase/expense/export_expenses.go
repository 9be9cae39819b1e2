package expense

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExportExpensesInput represents the input for an expense export.
type ExportExpensesInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
	Writer    io.Writer
}

// ExportExpensesOutput reports how many expenses were written.
type ExportExpensesOutput struct {
	Count int
}

// ExportExpensesUseCase writes the matching expenses through a codec.
type ExportExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
	codec       adapter.ExpenseCodec
}

// NewExportExpensesUseCase creates a new ExportExpensesUseCase instance.
func NewExportExpensesUseCase(expenseRepo adapter.ExpenseRepository, codec adapter.ExpenseCodec) *ExportExpensesUseCase {
	return &ExportExpensesUseCase{
		expenseRepo: expenseRepo,
		codec:       codec,
	}
}

// ContentType is the MIME type of the exported document.
func (uc *ExportExpensesUseCase) ContentType() string {
	return uc.codec.ContentType()
}

// Execute encodes the expenses to input.Writer, newest first.
func (uc *ExportExpensesUseCase) Execute(ctx context.Context, input ExportExpensesInput) (*ExportExpensesOutput, error) {
	if input.StartDate != nil && input.EndDate != nil && input.StartDate.After(*input.EndDate) {
		return nil, invalidDate("start date must not be after end date")
	}

	expenses, err := uc.expenseRepo.FindByFilter(ctx, entity.ExpenseFilter{
		Start:    input.StartDate,
		End:      input.EndDate,
		Category: input.Category,
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for export: %w", err)
	}

	if err := uc.codec.Encode(input.Writer, expenses); err != nil {
		return nil, fmt.Errorf("failed to encode expenses: %w", err)
	}

	return &ExportExpensesOutput{
		Count: len(expenses),
	}, nil
}
