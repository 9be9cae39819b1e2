// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"io"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ExpenseRecord is one raw, unvalidated row read from an import file.
type ExpenseRecord struct {
	Line          int // 1-based, header excluded
	Date          string
	Category      string
	Amount        string
	Description   string
	PaymentMethod string
}

// ExpenseCodec converts expenses to and from a tabular file format.
type ExpenseCodec interface {
	// Encode writes the expenses, header first.
	Encode(w io.Writer, expenses []*entity.Expense) error

	// Decode reads every data row of an import file.
	Decode(r io.Reader) ([]ExpenseRecord, error)

	// ContentType is the MIME type of the encoded output.
	ContentType() string
}
