// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
)

// CategoryShareResponse is one category's slice of a period.
type CategoryShareResponse struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// SpendingSummaryResponse represents the response for GET /analytics/summary.
type SpendingSummaryResponse struct {
	Period            string                  `json:"period"`
	PeriodName        string                  `json:"period_name"`
	StartDate         *string                 `json:"start_date"`
	EndDate           string                  `json:"end_date"`
	Days              int                     `json:"days"`
	TotalSpent        float64                 `json:"total_spent"`
	TransactionCount  int                     `json:"transaction_count"`
	AvgPerTransaction float64                 `json:"avg_per_transaction"`
	AvgPerDay         float64                 `json:"avg_per_day"`
	TopCategories     []CategoryShareResponse `json:"top_categories"`
}

// BreakdownItemResponse is one row of a category breakdown.
type BreakdownItemResponse struct {
	Category          string  `json:"category"`
	Total             float64 `json:"total"`
	Count             int     `json:"count"`
	Percentage        float64 `json:"percentage"`
	AvgPerTransaction float64 `json:"avg_per_transaction"`
}

// CategoryBreakdownResponse represents the response for GET /analytics/breakdown.
type CategoryBreakdownResponse struct {
	StartDate  string                  `json:"start_date"`
	EndDate    string                  `json:"end_date"`
	Total      float64                 `json:"total"`
	Categories []BreakdownItemResponse `json:"categories"`
}

// MonthlyDataResponse is one month of spending history.
type MonthlyDataResponse struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// TrendAnalysisResponse represents the response for GET /analytics/trends.
type TrendAnalysisResponse struct {
	Trend                string                `json:"trend"`
	Message              string                `json:"message,omitempty"`
	AvgMonthlySpending   float64               `json:"avg_monthly_spending"`
	CurrentMonthSpending float64               `json:"current_month_spending"`
	MonthOverMonthChange float64               `json:"month_over_month_change"`
	Consistency          string                `json:"consistency,omitempty"`
	MonthlyData          []MonthlyDataResponse `json:"monthly_data"`
}

// PredictionResponse represents the response for GET /analytics/prediction.
type PredictionResponse struct {
	CurrentSpending            float64 `json:"current_spending"`
	ProjectedMonthlyTotal      float64 `json:"projected_monthly_total"`
	DaysPassed                 int     `json:"days_passed"`
	DaysRemaining              int     `json:"days_remaining"`
	TotalDays                  int     `json:"total_days"`
	DailyAverage               float64 `json:"daily_average"`
	LastMonthTotal             float64 `json:"last_month_total"`
	ComparisonWithLastMonth    float64 `json:"comparison_with_last_month"`
	ComparisonWithLastMonthRaw float64 `json:"comparison_with_last_month_raw"`
}

// InsightResponse is a single spending observation.
type InsightResponse struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// InsightListResponse represents the response for GET /analytics/insights.
type InsightListResponse struct {
	Insights []InsightResponse `json:"insights"`
}

// PeriodTotalsResponse is the total of one side of a comparison.
type PeriodTotalsResponse struct {
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Total     float64 `json:"total"`
	Count     int     `json:"count"`
}

// ComparePeriodsResponse represents the response for GET /analytics/compare.
type ComparePeriodsResponse struct {
	Period1          PeriodTotalsResponse `json:"period1"`
	Period2          PeriodTotalsResponse `json:"period2"`
	ChangeAmount     float64              `json:"change_amount"`
	ChangePercentage float64              `json:"change_percentage"`
	Direction        string               `json:"direction"`
}

// BudgetStatusResponse is the month-to-date usage of one budget.
type BudgetStatusResponse struct {
	Category   string  `json:"category"`
	Limit      float64 `json:"limit"`
	Spent      float64 `json:"spent"`
	Remaining  float64 `json:"remaining"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// BudgetStatusListResponse represents the response for GET /budgets/status.
type BudgetStatusListResponse struct {
	MonthStart string                 `json:"month_start"`
	MonthEnd   string                 `json:"month_end"`
	Budgets    []BudgetStatusResponse `json:"budgets"`
}

// ToSpendingSummaryResponse converts a GetSpendingSummaryOutput to its response DTO.
func ToSpendingSummaryResponse(output *analytics.GetSpendingSummaryOutput) SpendingSummaryResponse {
	var start *string
	if output.StartDate != nil {
		s := dateutil.FormatDate(*output.StartDate)
		start = &s
	}

	top := make([]CategoryShareResponse, len(output.TopCategories))
	for i, c := range output.TopCategories {
		top[i] = CategoryShareResponse{
			Category:   c.Category,
			Amount:     money(c.Amount),
			Count:      c.Count,
			Percentage: percent(c.Percentage),
		}
	}

	return SpendingSummaryResponse{
		Period:            string(output.Period),
		PeriodName:        output.PeriodName,
		StartDate:         start,
		EndDate:           dateutil.FormatDate(output.EndDate),
		Days:              output.Days,
		TotalSpent:        money(output.TotalSpent),
		TransactionCount:  output.TransactionCount,
		AvgPerTransaction: money(output.AvgPerTransaction),
		AvgPerDay:         money(output.AvgPerDay),
		TopCategories:     top,
	}
}

// ToCategoryBreakdownResponse converts a GetCategoryBreakdownOutput to its response DTO.
func ToCategoryBreakdownResponse(output *analytics.GetCategoryBreakdownOutput) CategoryBreakdownResponse {
	items := make([]BreakdownItemResponse, len(output.Categories))
	for i, c := range output.Categories {
		items[i] = BreakdownItemResponse{
			Category:          c.Category,
			Total:             money(c.Total),
			Count:             c.Count,
			Percentage:        percent(c.Percentage),
			AvgPerTransaction: money(c.AvgPerTransaction),
		}
	}

	return CategoryBreakdownResponse{
		StartDate:  dateutil.FormatDate(output.StartDate),
		EndDate:    dateutil.FormatDate(output.EndDate),
		Total:      money(output.Total),
		Categories: items,
	}
}

// ToTrendAnalysisResponse converts a GetTrendAnalysisOutput to its response DTO.
func ToTrendAnalysisResponse(output *analytics.GetTrendAnalysisOutput) TrendAnalysisResponse {
	months := make([]MonthlyDataResponse, len(output.MonthlyData))
	for i, m := range output.MonthlyData {
		months[i] = MonthlyDataResponse{
			Month: m.Month,
			Total: money(m.Total),
			Count: m.Count,
		}
	}

	return TrendAnalysisResponse{
		Trend:                string(output.Trend),
		Message:              output.Message,
		AvgMonthlySpending:   money(output.AvgMonthlySpending),
		CurrentMonthSpending: money(output.CurrentMonthSpending),
		MonthOverMonthChange: percent(output.MonthOverMonthChange),
		Consistency:          string(output.Consistency),
		MonthlyData:          months,
	}
}

// ToPredictionResponse converts a PredictMonthlySpendingOutput to its response DTO.
func ToPredictionResponse(output *analytics.PredictMonthlySpendingOutput) PredictionResponse {
	return PredictionResponse{
		CurrentSpending:            money(output.CurrentSpending),
		ProjectedMonthlyTotal:      money(output.ProjectedMonthlyTotal),
		DaysPassed:                 output.DaysPassed,
		DaysRemaining:              output.DaysRemaining,
		TotalDays:                  output.TotalDays,
		DailyAverage:               money(output.DailyAverage),
		LastMonthTotal:             money(output.LastMonthTotal),
		ComparisonWithLastMonth:    money(output.ComparisonWithLastMonth),
		ComparisonWithLastMonthRaw: money(output.ComparisonWithLastMonthRaw),
	}
}

// ToInsightListResponse converts collected insights to their response DTO.
func ToInsightListResponse(insights []analytics.Insight) InsightListResponse {
	items := make([]InsightResponse, len(insights))
	for i, in := range insights {
		items[i] = InsightResponse{
			Severity: string(in.Severity),
			Message:  in.Message,
		}
	}
	return InsightListResponse{Insights: items}
}

// ToComparePeriodsResponse converts a ComparePeriodsOutput to its response DTO.
func ToComparePeriodsResponse(output *analytics.ComparePeriodsOutput) ComparePeriodsResponse {
	return ComparePeriodsResponse{
		Period1:          toPeriodTotalsResponse(output.Period1),
		Period2:          toPeriodTotalsResponse(output.Period2),
		ChangeAmount:     money(output.ChangeAmount),
		ChangePercentage: percent(output.ChangePercentage),
		Direction:        string(output.Direction),
	}
}

func toPeriodTotalsResponse(p analytics.PeriodTotals) PeriodTotalsResponse {
	return PeriodTotalsResponse{
		StartDate: dateutil.FormatDate(p.Range.Start),
		EndDate:   dateutil.FormatDate(p.Range.End),
		Total:     money(p.Total),
		Count:     p.Count,
	}
}

// ToBudgetStatusListResponse converts a GetBudgetStatusOutput to its response DTO.
func ToBudgetStatusListResponse(output *analytics.GetBudgetStatusOutput) BudgetStatusListResponse {
	items := make([]BudgetStatusResponse, len(output.Budgets))
	for i, b := range output.Budgets {
		items[i] = BudgetStatusResponse{
			Category:   b.Category,
			Limit:      money(b.Limit),
			Spent:      money(b.Spent),
			Remaining:  money(b.Remaining),
			Percentage: percent(b.Percentage),
			Status:     string(b.Status),
		}
	}

	return BudgetStatusListResponse{
		MonthStart: dateutil.FormatDate(output.MonthStart),
		MonthEnd:   dateutil.FormatDate(output.MonthEnd),
		Budgets:    items,
	}
}
