package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

func newSummaryCommand(s *session) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show total and average spending for a period",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&period, "period", string(analytics.PeriodMonth), "week, month, year or all")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		p, err := analytics.ParsePeriod(period)
		if err != nil {
			return err
		}

		output, err := s.useCases().SpendingSummary.Execute(cmd.Context(), analytics.GetSpendingSummaryInput{
			Period:        p,
			ReferenceDate: s.ref,
		})
		if err != nil {
			return err
		}

		r := dto.ToSpendingSummaryResponse(output)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			start := "beginning"
			if r.StartDate != nil {
				start = *r.StartDate
			}
			fmt.Fprintf(tw, "%s (%s to %s, %d days)\n", r.PeriodName, start, r.EndDate, r.Days)
			fmt.Fprintf(tw, "Total spent:\t$%.2f\n", r.TotalSpent)
			fmt.Fprintf(tw, "Transactions:\t%d\n", r.TransactionCount)
			fmt.Fprintf(tw, "Avg per transaction:\t$%.2f\n", r.AvgPerTransaction)
			fmt.Fprintf(tw, "Avg per day:\t$%.2f\n", r.AvgPerDay)
			if len(r.TopCategories) > 0 {
				fmt.Fprintln(tw, "\nTOP CATEGORY\tAMOUNT\tCOUNT\tSHARE")
				for _, c := range r.TopCategories {
					fmt.Fprintf(tw, "%s\t$%.2f\t%d\t%.1f%%\n", c.Category, c.Amount, c.Count, c.Percentage)
				}
			}
		})
	})

	return cmd
}

func newBreakdownCommand(s *session) *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Break spending down by category (default: current month)",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().StringVar(&start, "start", "", "first date YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last date YYYY-MM-DD")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		startDate, err := optionalDate(start)
		if err != nil {
			return err
		}
		endDate, err := optionalDate(end)
		if err != nil {
			return err
		}

		output, err := s.useCases().CategoryBreakdown.Execute(cmd.Context(), analytics.GetCategoryBreakdownInput{
			StartDate:     startDate,
			EndDate:       endDate,
			ReferenceDate: s.ref,
		})
		if err != nil {
			return err
		}

		r := dto.ToCategoryBreakdownResponse(output)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Spending by category, %s to %s\n", r.StartDate, r.EndDate)
			if len(r.Categories) == 0 {
				fmt.Fprintln(tw, "No expenses in this range.")
				return
			}
			fmt.Fprintln(tw, "CATEGORY\tTOTAL\tCOUNT\tSHARE\tAVG")
			for _, c := range r.Categories {
				fmt.Fprintf(tw, "%s\t$%.2f\t%d\t%.1f%%\t$%.2f\n",
					c.Category, c.Total, c.Count, c.Percentage, c.AvgPerTransaction)
			}
			fmt.Fprintf(tw, "TOTAL\t$%.2f\t\t\t\n", r.Total)
		})
	})

	return cmd
}

func newTrendsCommand(s *session) *cobra.Command {
	var months int

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Analyze month-over-month spending",
		Args:  cobra.NoArgs,
	}

	cmd.Flags().IntVar(&months, "months", 0, "number of months to analyze (default from ANALYTICS_TREND_MONTHS)")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		if !cmd.Flags().Changed("months") {
			months = s.cfg.Analytics.TrendMonths
		}

		output, err := s.useCases().TrendAnalysis.Execute(cmd.Context(), analytics.GetTrendAnalysisInput{
			Months:        months,
			ReferenceDate: s.ref,
		})
		if err != nil {
			return err
		}

		r := dto.ToTrendAnalysisResponse(output)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Trend:\t%s\n", r.Trend)
			if r.Message != "" {
				fmt.Fprintln(tw, r.Message)
			}
			if output.Trend != analytics.TrendInsufficientData {
				fmt.Fprintf(tw, "Avg monthly spending:\t$%.2f\n", r.AvgMonthlySpending)
				fmt.Fprintf(tw, "Current month:\t$%.2f\n", r.CurrentMonthSpending)
				fmt.Fprintf(tw, "Month over month:\t%+.1f%%\n", r.MonthOverMonthChange)
				fmt.Fprintf(tw, "Consistency:\t%s\n", r.Consistency)
			}
			if len(r.MonthlyData) > 0 {
				fmt.Fprintln(tw, "\nMONTH\tTOTAL\tCOUNT")
				for _, m := range r.MonthlyData {
					fmt.Fprintf(tw, "%s\t$%.2f\t%d\n", m.Month, m.Total, m.Count)
				}
			}
		})
	})

	return cmd
}

func newPredictCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Project this month's total from the spending so far",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		output, err := s.useCases().PredictSpending.Execute(cmd.Context(), analytics.PredictMonthlySpendingInput{
			ReferenceDate: s.ref,
		})
		if err != nil {
			return err
		}

		r := dto.ToPredictionResponse(output)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintf(tw, "Spent so far:\t$%.2f (%d of %d days)\n", r.CurrentSpending, r.DaysPassed, r.TotalDays)
			fmt.Fprintf(tw, "Daily average:\t$%.2f\n", r.DailyAverage)
			fmt.Fprintf(tw, "Projected total:\t$%.2f\n", r.ProjectedMonthlyTotal)
			fmt.Fprintf(tw, "Last month:\t$%.2f\n", r.LastMonthTotal)
			fmt.Fprintf(tw, "Difference:\t%+.2f\n", r.ComparisonWithLastMonth)
		})
	})

	return cmd
}

func newInsightsCommand(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show observations about recent spending",
		Args:  cobra.NoArgs,
	}

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		seq, err := s.useCases().GenerateInsights.Execute(cmd.Context(), analytics.GenerateInsightsInput{
			ReferenceDate: s.ref,
		})
		if err != nil {
			return err
		}

		// Table output streams insights as the rules produce them.
		if s.printer.format == OutputTable {
			for insight, err := range seq {
				if err != nil {
					return err
				}
				fmt.Fprintf(s.printer.w, "[%s] %s\n", insight.Severity, insight.Message)
			}
			return nil
		}

		insights, err := analytics.CollectInsights(seq)
		if err != nil {
			return err
		}
		return s.printer.print(dto.ToInsightListResponse(insights), nil)
	})

	return cmd
}

func newCompareCommand(s *session) *cobra.Command {
	var p1Start, p1End, p2Start, p2End string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare total spending of two date ranges",
		Example: `  expense-tracker compare --period1-start 2025-09-01 --period1-end 2025-09-30 \
    --period2-start 2025-10-01 --period2-end 2025-10-31`,
		Args: cobra.NoArgs,
	}

	cmd.Flags().StringVar(&p1Start, "period1-start", "", "first range start YYYY-MM-DD")
	cmd.Flags().StringVar(&p1End, "period1-end", "", "first range end YYYY-MM-DD")
	cmd.Flags().StringVar(&p2Start, "period2-start", "", "second range start YYYY-MM-DD")
	cmd.Flags().StringVar(&p2End, "period2-end", "", "second range end YYYY-MM-DD")

	cmd.RunE = s.run(func(cmd *cobra.Command, _ []string) error {
		var missing []string
		for _, f := range []struct{ name, value string }{
			{"--period1-start", p1Start}, {"--period1-end", p1End},
			{"--period2-start", p2Start}, {"--period2-end", p2End},
		} {
			if f.value == "" {
				missing = append(missing, f.name)
			}
		}
		if len(missing) > 0 {
			return domainerror.NewAnalyticsError(
				domainerror.ErrCodeMissingComparisonPeriod,
				"missing "+strings.Join(missing, ", "),
				domainerror.ErrInvalidDateRange,
			)
		}

		period1, err := analytics.ParseDateRange(p1Start, p1End)
		if err != nil {
			return err
		}
		period2, err := analytics.ParseDateRange(p2Start, p2End)
		if err != nil {
			return err
		}

		output, err := s.useCases().ComparePeriods.Execute(cmd.Context(), analytics.ComparePeriodsInput{
			Period1: period1,
			Period2: period2,
		})
		if err != nil {
			return err
		}

		r := dto.ToComparePeriodsResponse(output)
		return s.printer.print(r, func(tw *tabwriter.Writer) {
			fmt.Fprintln(tw, "PERIOD\tRANGE\tTOTAL\tCOUNT")
			fmt.Fprintf(tw, "1\t%s to %s\t$%.2f\t%d\n", r.Period1.StartDate, r.Period1.EndDate, r.Period1.Total, r.Period1.Count)
			fmt.Fprintf(tw, "2\t%s to %s\t$%.2f\t%d\n", r.Period2.StartDate, r.Period2.EndDate, r.Period2.Total, r.Period2.Count)
			fmt.Fprintf(tw, "\nChange: %+.2f (%+.1f%%) %s\n",
				r.ChangeAmount, r.ChangePercentage, strings.ToLower(r.Direction))
		})
	})

	return cmd
}
