package expense

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ImportExpensesInput represents the input for an expense import.
type ImportExpensesInput struct {
	Reader io.Reader
}

// RejectedRow describes an import row that failed validation.
type RejectedRow struct {
	Line   int
	Reason string
}

// ImportExpensesOutput summarizes an import.
type ImportExpensesOutput struct {
	Imported int
	Rejected []RejectedRow
}

// ImportExpensesUseCase reads expenses through a codec and stores every row
// that passes the same validation as AddExpense. Invalid rows are reported
// and skipped. Valid rows are stored in a single batch.
type ImportExpensesUseCase struct {
	expenseRepo  adapter.ExpenseRepository
	categoryRepo adapter.CategoryRepository
	codec        adapter.ExpenseCodec
}

// NewImportExpensesUseCase creates a new ImportExpensesUseCase instance.
func NewImportExpensesUseCase(
	expenseRepo adapter.ExpenseRepository,
	categoryRepo adapter.CategoryRepository,
	codec adapter.ExpenseCodec,
) *ImportExpensesUseCase {
	return &ImportExpensesUseCase{
		expenseRepo:  expenseRepo,
		categoryRepo: categoryRepo,
		codec:        codec,
	}
}

// Execute performs the import.
func (uc *ImportExpensesUseCase) Execute(ctx context.Context, input ImportExpensesInput) (*ImportExpensesOutput, error) {
	records, err := uc.codec.Decode(input.Reader)
	if err != nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidImportFile,
			"could not read import file",
			errors.Join(domainerror.ErrInvalidImportFile, err),
		)
	}

	output := &ImportExpensesOutput{Rejected: make([]RejectedRow, 0)}
	expenses := make([]*entity.Expense, 0, len(records))
	for _, record := range records {
		expense, err := uc.parse(ctx, record)
		if err != nil {
			var expErr *domainerror.ExpenseError
			if !errors.As(err, &expErr) {
				return nil, err
			}
			output.Rejected = append(output.Rejected, RejectedRow{Line: record.Line, Reason: expErr.Message})
			continue
		}
		expenses = append(expenses, expense)
	}

	if len(expenses) > 0 {
		if err := uc.expenseRepo.CreateBatch(ctx, expenses); err != nil {
			return nil, fmt.Errorf("failed to store imported expenses: %w", err)
		}
	}
	output.Imported = len(expenses)

	slog.Info("Imported expenses",
		"imported", output.Imported,
		"rejected", len(output.Rejected),
	)

	return output, nil
}

func (uc *ImportExpensesUseCase) parse(ctx context.Context, record adapter.ExpenseRecord) (*entity.Expense, error) {
	date, err := dateutil.ParseDate(strings.TrimSpace(record.Date))
	if err != nil {
		return nil, invalidDate(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", record.Date))
	}

	raw, err := decimal.NewFromString(strings.TrimSpace(record.Amount))
	if err != nil {
		return nil, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAmount,
			fmt.Sprintf("invalid amount %q", record.Amount),
			domainerror.ErrInvalidAmount,
		)
	}
	amount, err := normalizeAmount(raw)
	if err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, uc.categoryRepo, record.Category)
	if err != nil {
		return nil, err
	}

	return entity.NewExpense(
		date,
		category,
		amount,
		strings.TrimSpace(record.Description),
		strings.TrimSpace(record.PaymentMethod),
	), nil
}
