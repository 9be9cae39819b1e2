package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// AnalyticsController handles analytics endpoints. Every handler accepts an
// optional as_of reference date.
type AnalyticsController struct {
	summaryUseCase   *analytics.GetSpendingSummaryUseCase
	breakdownUseCase *analytics.GetCategoryBreakdownUseCase
	trendUseCase     *analytics.GetTrendAnalysisUseCase
	predictUseCase   *analytics.PredictMonthlySpendingUseCase
	insightsUseCase  *analytics.GenerateInsightsUseCase
	compareUseCase   *analytics.ComparePeriodsUseCase
	defaultMonths    int
	now              Clock
}

// NewAnalyticsController creates a new analytics controller instance.
func NewAnalyticsController(
	summaryUseCase *analytics.GetSpendingSummaryUseCase,
	breakdownUseCase *analytics.GetCategoryBreakdownUseCase,
	trendUseCase *analytics.GetTrendAnalysisUseCase,
	predictUseCase *analytics.PredictMonthlySpendingUseCase,
	insightsUseCase *analytics.GenerateInsightsUseCase,
	compareUseCase *analytics.ComparePeriodsUseCase,
	defaultMonths int,
	now Clock,
) *AnalyticsController {
	return &AnalyticsController{
		summaryUseCase:   summaryUseCase,
		breakdownUseCase: breakdownUseCase,
		trendUseCase:     trendUseCase,
		predictUseCase:   predictUseCase,
		insightsUseCase:  insightsUseCase,
		compareUseCase:   compareUseCase,
		defaultMonths:    defaultMonths,
		now:              now,
	}
}

// Summary handles GET /analytics/summary requests.
func (c *AnalyticsController) Summary(ctx *gin.Context) {
	ref, ok := c.reference(ctx)
	if !ok {
		return
	}

	period, err := analytics.ParsePeriod(ctx.Query("period"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), analytics.GetSpendingSummaryInput{
		Period:        period,
		ReferenceDate: ref,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSpendingSummaryResponse(output))
}

// Breakdown handles GET /analytics/breakdown requests.
func (c *AnalyticsController) Breakdown(ctx *gin.Context) {
	ref, ok := c.reference(ctx)
	if !ok {
		return
	}

	startDate, err := optionalDate(ctx, "start_date")
	if err != nil {
		handleError(ctx, err)
		return
	}
	endDate, err := optionalDate(ctx, "end_date")
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.breakdownUseCase.Execute(ctx.Request.Context(), analytics.GetCategoryBreakdownInput{
		StartDate:     startDate,
		EndDate:       endDate,
		ReferenceDate: ref,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryBreakdownResponse(output))
}

// Trends handles GET /analytics/trends requests.
func (c *AnalyticsController) Trends(ctx *gin.Context) {
	ref, ok := c.reference(ctx)
	if !ok {
		return
	}

	months, ok := intQuery(ctx, "months")
	if !ok {
		badRequest(ctx, "months must be a number", string(domainerror.ErrCodeInvalidMonthWindow))
		return
	}
	if months == 0 {
		months = c.defaultMonths
	}

	output, err := c.trendUseCase.Execute(ctx.Request.Context(), analytics.GetTrendAnalysisInput{
		Months:        months,
		ReferenceDate: ref,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTrendAnalysisResponse(output))
}

// Prediction handles GET /analytics/prediction requests.
func (c *AnalyticsController) Prediction(ctx *gin.Context) {
	ref, ok := c.reference(ctx)
	if !ok {
		return
	}

	output, err := c.predictUseCase.Execute(ctx.Request.Context(), analytics.PredictMonthlySpendingInput{
		ReferenceDate: ref,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPredictionResponse(output))
}

// Insights handles GET /analytics/insights requests.
func (c *AnalyticsController) Insights(ctx *gin.Context) {
	ref, ok := c.reference(ctx)
	if !ok {
		return
	}

	seq, err := c.insightsUseCase.Execute(ctx.Request.Context(), analytics.GenerateInsightsInput{
		ReferenceDate: ref,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	insights, err := analytics.CollectInsights(seq)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToInsightListResponse(insights))
}

// Compare handles GET /analytics/compare requests.
func (c *AnalyticsController) Compare(ctx *gin.Context) {
	for _, name := range []string{"period1_start", "period1_end", "period2_start", "period2_end"} {
		if ctx.Query(name) == "" {
			badRequest(ctx, name+" is required", string(domainerror.ErrCodeMissingComparisonPeriod))
			return
		}
	}

	period1, err := analytics.ParseDateRange(ctx.Query("period1_start"), ctx.Query("period1_end"))
	if err != nil {
		handleError(ctx, err)
		return
	}
	period2, err := analytics.ParseDateRange(ctx.Query("period2_start"), ctx.Query("period2_end"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.compareUseCase.Execute(ctx.Request.Context(), analytics.ComparePeriodsInput{
		Period1: period1,
		Period2: period2,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToComparePeriodsResponse(output))
}

func (c *AnalyticsController) reference(ctx *gin.Context) (time.Time, bool) {
	ref, err := referenceDate(ctx, c.now)
	if err != nil {
		handleError(ctx, err)
		return ref, false
	}
	return ref, true
}
