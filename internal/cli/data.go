package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// defaultSampleSeed keeps `seed` reproducible unless another seed is asked for.
const defaultSampleSeed = 42

func newExportCommand(s *session) *cobra.Command {
	var (
		file     string
		start    string
		end      string
		category string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write expenses as CSV",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVarP(&file, "file", "f", "-", "destination file, - for stdout")
	cmd.Flags().StringVar(&start, "start", "", "first date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date YYYY-MM-DD")
	cmd.Flags().StringVarP(&category, "category", "c", "", "only this category")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		startDate, err := optionalDate(start)
		if err != nil {
			return err
		}
		endDate, err := optionalDate(end)
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if file != "-" {
			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			defer f.Close()
			w = f
		}

		output, err := s.useCases().ExportExpenses.Execute(cmd.Context(), expense.ExportExpensesInput{
			StartDate: startDate,
			EndDate:   endDate,
			Category:  category,
			Writer:    w,
		})
		if err != nil {
			return err
		}

		if file != "-" {
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d expenses to %s\n", output.Count, file)
		}
		return nil
	})

	return cmd
}

func newImportCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load expenses from a CSV file (- for stdin)",
		Long: `Load expenses from a CSV file with the columns
date,category,amount,description,payment_method. Invalid rows are reported
and skipped; valid rows are stored together.`,
		Args: cobra.ExactArgs(1),
	}

	cmd.RunE = s.run(func(cmd *cobra.Command, args []string) error {
		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer f.Close()
			r = f
		}

		output, err := s.useCases().ImportExpenses.Execute(cmd.Context(), expense.ImportExpensesInput{Reader: r})
		if err != nil {
			return err
		}

		response := dto.ToImportExpensesResponse(output)
		return s.printer.print(response, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Imported %d expenses\n", response.Imported)
			if len(response.Rejected) > 0 {
				fmt.Fprintf(tw, "Rejected %d rows:\n", len(response.Rejected))
				fmt.Fprintln(tw, "ROW\tREASON")
				for _, row := range response.Rejected {
					fmt.Fprintf(tw, "%d\t%s\n", row.Line, row.Reason)
				}
			}
		})
	})

	return cmd
}

// seedResponse reports the outcome of the seed command.
type seedResponse struct {
	Created int `json:"created"`
	Months  int `json:"months"`
}

func newSeedCommand(s *session) *cobra.Command {
	var (
		months int
		seed   uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the ledger with generated sample expenses",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().IntVar(&months, "months", expense.DefaultSampleMonths, "number of months to generate, ending at the reference date")
	cmd.Flags().Uint64Var(&seed, "seed", defaultSampleSeed, "random seed; the same seed yields the same data")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		output, err := s.useCases().SeedSampleData.Execute(cmd.Context(), expense.SeedSampleDataInput{
			Months:        months,
			Seed:          seed,
			ReferenceDate: s.ref,
		})
		if err != nil {
			return err
		}

		r := seedResponse{Created: output.Created, Months: output.Months}
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Generated %d sample expenses over %d months\n", r.Created, r.Months)
		})
	})

	return cmd
}
