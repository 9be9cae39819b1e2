package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

func newAddCommand(s *session) *cobra.Command {
	var (
		amount        string
		category      string
		date          string
		description   string
		paymentMethod string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Example: `  expense-tracker add --amount 12.50 --category "Food & Dining" -d "Lunch"
  expense-tracker add --amount 900 --category Rent --date 2025-10-01 -p "Debit Card"`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "amount spent (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category name (required)")
	cmd.Flags().StringVar(&date, "date", "", "expense date YYYY-MM-DD (default: reference date)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "free-text description")
	cmd.Flags().StringVarP(&paymentMethod, "payment", "p", "", "payment method (default: Cash)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("category")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		value, err := parseAmount(amount)
		if err != nil {
			return err
		}

		input := expense.AddExpenseInput{
			Category:      category,
			Amount:        value,
			Description:   description,
			PaymentMethod: paymentMethod,
			ReferenceDate: s.ref,
		}
		if date != "" {
			d, err := parseExpenseDate(date)
			if err != nil {
				return err
			}
			input.Date = d
		}

		output, err := s.useCases().AddExpense.Execute(cmd.Context(), input)
		if err != nil {
			return err
		}

		response := dto.ToCreateExpenseResponse(output)
		return s.printer.print(response, func(tw *tabwriter.Writer) {
			e := response.Expense
			fmt.Fprintf(tw, "Added expense #%d: $%.2f in %s on %s\n", e.ID, e.Amount, e.Category, e.Date)
			if w := response.BudgetWarning; w != nil {
				fmt.Fprintf(tw, "%s\n", w.Message)
			}
		})
	})

	return cmd
}

func newListCommand(s *session) *cobra.Command {
	var (
		start    string
		end      string
		category string
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&start, "start", "", "first date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date YYYY-MM-DD")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of expenses (0 for all)")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		startDate, err := optionalDate(start)
		if err != nil {
			return err
		}
		endDate, err := optionalDate(end)
		if err != nil {
			return err
		}

		output, err := s.useCases().ListExpenses.Execute(cmd.Context(), expense.ListExpensesInput{
			StartDate: startDate,
			EndDate:   endDate,
			Category:  category,
			Limit:     limit,
		})
		if err != nil {
			return err
		}
		return s.printExpenses(output)
	})

	return cmd
}

func newRecentCommand(s *session) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List expenses of the last N days",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().IntVar(&days, "days", expense.DefaultRecentDays, "number of days to look back")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		output, err := s.useCases().RecentExpenses.Execute(cmd.Context(), expense.GetRecentExpensesInput{
			Days:          days,
			ReferenceDate: s.ref,
		})
		if err != nil {
			return err
		}
		return s.printExpenses(output)
	})

	return cmd
}

func newSearchCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <keyword>",
		Short: "Find expenses whose description or category contains a keyword",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = s.run(func(cmd *cobra.Command, args []string) error {
		output, err := s.useCases().SearchExpenses.Execute(cmd.Context(), expense.SearchExpensesInput{
			Keyword: args[0],
		})
		if err != nil {
			return err
		}
		return s.printExpenses(output)
	})

	return cmd
}

func newEditCommand(s *session) *cobra.Command {
	var (
		amount        string
		category      string
		date          string
		description   string
		paymentMethod string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of an existing expense",
		Args:  cobra.ExactArgs(1),
	}

	cmd.Flags().StringVarP(&amount, "amount", "a", "", "new amount")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category")
	cmd.Flags().StringVar(&date, "date", "", "new date YYYY-MM-DD")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVarP(&paymentMethod, "payment", "p", "", "new payment method")

	cmd.RunE = s.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		input := expense.UpdateExpenseInput{ID: id}
		flags := cmd.Flags()
		if flags.Changed("amount") {
			value, err := parseAmount(amount)
			if err != nil {
				return err
			}
			input.Amount = &value
		}
		if flags.Changed("category") {
			input.Category = &category
		}
		if flags.Changed("date") {
			d, err := parseExpenseDate(date)
			if err != nil {
				return err
			}
			input.Date = &d
		}
		if flags.Changed("description") {
			input.Description = &description
		}
		if flags.Changed("payment") {
			input.PaymentMethod = &paymentMethod
		}

		output, err := s.useCases().UpdateExpense.Execute(cmd.Context(), input)
		if err != nil {
			return err
		}

		response := dto.ToExpenseResponse(output.Expense)
		return s.printer.print(response, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Updated expense #%d: $%.2f in %s on %s\n",
				response.ID, response.Amount, response.Category, response.Date)
		})
	})

	return cmd
}

func newDeleteCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = s.run(func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := s.useCases().DeleteExpense.Execute(cmd.Context(), expense.DeleteExpenseInput{ID: id}); err != nil {
			return err
		}

		response := dto.MessageResponse{Message: fmt.Sprintf("Deleted expense #%d", id)}
		return s.printer.print(response, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, response.Message)
		})
	})

	return cmd
}

func (s *session) printExpenses(output *expense.ListExpensesOutput) error {
	response := dto.ToExpenseListResponse(output)
	return s.printer.print(response, func(tw *tabwriter.Writer) {
		if response.Total == 0 {
			fmt.Fprintln(tw, "No expenses found.")
			return
		}

		fmt.Fprintln(tw, "ID\tDATE\tCATEGORY\tAMOUNT\tPAYMENT\tDESCRIPTION")
		var total float64
		for _, e := range response.Expenses {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.2f\t%s\t%s\n",
				e.ID, e.Date, e.Category, e.Amount, e.PaymentMethod, e.Description)
			total += e.Amount
		}
		fmt.Fprintf(tw, "\t\tTOTAL (%d)\t%.2f\t\t\n", response.Total, total)
	})
}

func parseAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidAmount,
			fmt.Sprintf("invalid amount %q", raw),
			domainerror.ErrInvalidAmount,
		)
	}
	return value, nil
}

func parseExpenseDate(raw string) (time.Time, error) {
	d, err := dateutil.ParseDate(raw)
	if err != nil {
		return time.Time{}, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", raw),
			domainerror.ErrInvalidExpenseDate,
		)
	}
	return d, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseRequest,
			fmt.Sprintf("invalid expense id %q", raw),
			err,
		)
	}
	return id, nil
}

func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := analytics.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
