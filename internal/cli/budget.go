package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/category"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

func newBudgetCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly category budgets",
	}

	set := &cobra.Command{
		Use:     "set <category> <monthly-limit>",
		Short:   "Create or replace the monthly budget of a category",
		Example: `  expense-tracker budget set Groceries 400`,
		Args:    cobra.ExactArgs(2),
	}
	set.RunE = s.run(func(cmd *cobra.Command, args []string) error {
		limit, err := parseAmount(args[1])
		if err != nil {
			return err
		}

		output, err := s.useCases().SetBudget.Execute(cmd.Context(), budget.SetBudgetInput{
			Category:     args[0],
			MonthlyLimit: limit,
		})
		if err != nil {
			return err
		}

		r := dto.ToBudgetResponse(output.Budget)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Budget for %s set to $%.2f per month\n", r.Category, r.MonthlyLimit)
		})
	})

	list := &cobra.Command{
		Use:   "list",
		Short: "List configured budgets",
		Args:  cobra.NoArgs,
	}
	list.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		output, err := s.useCases().ListBudgets.Execute(cmd.Context())
		if err != nil {
			return err
		}

		r := dto.ToBudgetListResponse(output.Budgets)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			if len(r.Budgets) == 0 {
				fmt.Fprintln(tw, "No budgets configured.")
				return
			}
			fmt.Fprintln(tw, "CATEGORY\tMONTHLY LIMIT")
			for _, b := range r.Budgets {
				fmt.Fprintf(tw, "%s\t$%.2f\n", b.Category, b.MonthlyLimit)
			}
		})
	})

	var statusCategory string
	status := &cobra.Command{
		Use:   "status",
		Short: "Show month-to-date usage of every budget",
		Args:  cobra.NoArgs,
	}
	status.Flags().StringVarP(&statusCategory, "category", "c", "", "only show the budget of this category")
	status.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		output, err := s.useCases().BudgetStatus.Execute(cmd.Context(), analytics.GetBudgetStatusInput{
			ReferenceDate: s.ref,
			Category:      statusCategory,
		})
		if err != nil {
			return err
		}

		r := dto.ToBudgetStatusListResponse(output)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Budgets for %s to %s\n", r.MonthStart, r.MonthEnd)
			if len(r.Budgets) == 0 {
				if statusCategory != "" {
					fmt.Fprintf(tw, "No budget set for %s.\n", statusCategory)
					return
				}
				fmt.Fprintln(tw, "No budgets configured.")
				return
			}
			fmt.Fprintln(tw, "CATEGORY\tLIMIT\tSPENT\tREMAINING\tUSED\tSTATUS")
			for _, b := range r.Budgets {
				fmt.Fprintf(tw, "%s\t$%.2f\t$%.2f\t$%.2f\t%.1f%%\t%s\n",
					b.Category, b.Limit, b.Spent, b.Remaining, b.Percentage, b.Status)
			}
		})
	})

	remove := &cobra.Command{
		Use:   "delete <category>",
		Short: "Remove the budget of a category",
		Args:  cobra.ExactArgs(1),
	}
	remove.RunE = s.run(func(cmd *cobra.Command, args []string) error {
		if err := s.useCases().DeleteBudget.Execute(cmd.Context(), budget.DeleteBudgetInput{Category: args[0]}); err != nil {
			return err
		}

		r := dto.MessageResponse{Message: "Deleted budget for " + args[0]}
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, r.Message)
		})
	})

	cmd.AddCommand(set, list, status, remove)
	return cmd
}

func newCategoryCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category",
		Short: "Manage expense categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Args:  cobra.NoArgs,
	}
	list.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		output, err := s.useCases().ListCategories.Execute(cmd.Context())
		if err != nil {
			return err
		}

		r := dto.ToCategoryListResponse(output.Categories)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, "ICON\tNAME")
			for _, c := range r.Categories {
				fmt.Fprintf(tw, "%s\t%s\n", c.Icon, c.Name)
			}
		})
	})

	var icon string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
	}
	add.Flags().StringVar(&icon, "icon", "", "display icon (default 📌)")
	add.RunE = s.run(func(cmd *cobra.Command, args []string) error {
		output, err := s.useCases().AddCategory.Execute(cmd.Context(), category.AddCategoryInput{
			Name: args[0],
			Icon: icon,
		})
		if err != nil {
			return err
		}

		r := dto.ToCategoryResponse(output.Category)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Added category %s %s\n", r.Icon, r.Name)
		})
	})

	cmd.AddCommand(list, add)
	return cmd
}
