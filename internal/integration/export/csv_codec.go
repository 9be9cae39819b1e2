// Package export implements file codecs for moving expenses in and out of
// the ledger.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// DefaultDelimiter is the field separator used when none is configured.
const DefaultDelimiter = ','

// csvRow is the on-disk layout of one expense. The id column is written on
// export and ignored on import.
type csvRow struct {
	ID            string `csv:"id,omitempty"`
	Date          string `csv:"date"`
	Category      string `csv:"category"`
	Amount        string `csv:"amount"`
	Description   string `csv:"description"`
	PaymentMethod string `csv:"payment_method"`
}

// CSVCodec implements adapter.ExpenseCodec with gocsv.
type CSVCodec struct {
	delimiter rune
}

// NewCSVCodec creates a codec using the given field delimiter.
func NewCSVCodec(delimiter rune) adapter.ExpenseCodec {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &CSVCodec{
		delimiter: delimiter,
	}
}

// ContentType returns the MIME type of CSV documents.
func (c *CSVCodec) ContentType() string {
	return "text/csv"
}

// Encode writes the header and one row per expense.
func (c *CSVCodec) Encode(w io.Writer, expenses []*entity.Expense) error {
	rows := make([]*csvRow, len(expenses))
	for i, e := range expenses {
		rows[i] = &csvRow{
			ID:            strconv.FormatInt(e.ID, 10),
			Date:          dateutil.FormatDate(e.Date),
			Category:      e.Category,
			Amount:        e.Amount.StringFixed(2),
			Description:   e.Description,
			PaymentMethod: e.PaymentMethod,
		}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = c.delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// Decode reads every data row. Unknown columns are ignored and missing
// optional columns are left empty.
func (c *CSVCodec) Decode(r io.Reader) ([]adapter.ExpenseRecord, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = c.delimiter
	csvReader.TrimLeadingSpace = true

	var rows []*csvRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return []adapter.ExpenseRecord{}, nil
		}
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}

	records := make([]adapter.ExpenseRecord, len(rows))
	for i, row := range rows {
		records[i] = adapter.ExpenseRecord{
			Line:          i + 1,
			Date:          row.Date,
			Category:      row.Category,
			Amount:        row.Amount,
			Description:   row.Description,
			PaymentMethod: row.PaymentMethod,
		}
	}
	return records, nil
}
