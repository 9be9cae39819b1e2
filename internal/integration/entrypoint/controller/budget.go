package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	setUseCase    *budget.SetBudgetUseCase
	listUseCase   *budget.ListBudgetsUseCase
	deleteUseCase *budget.DeleteBudgetUseCase
	statusUseCase *analytics.GetBudgetStatusUseCase
	now           Clock
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	setUseCase *budget.SetBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	statusUseCase *analytics.GetBudgetStatusUseCase,
	now Clock,
) *BudgetController {
	return &BudgetController{
		setUseCase:    setUseCase,
		listUseCase:   listUseCase,
		deleteUseCase: deleteUseCase,
		statusUseCase: statusUseCase,
		now:           now,
	}
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Set handles PUT /budgets/:category requests.
func (c *BudgetController) Set(ctx *gin.Context) {
	var req dto.SetBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidRequestBody))
		return
	}

	output, err := c.setUseCase.Execute(ctx.Request.Context(), budget.SetBudgetInput{
		Category:     ctx.Param("category"),
		MonthlyLimit: req.MonthlyLimit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Delete handles DELETE /budgets/:category requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		Category: ctx.Param("category"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Status handles GET /budgets/status requests. The optional category query
// parameter restricts the result to one budget.
func (c *BudgetController) Status(ctx *gin.Context) {
	ref, err := referenceDate(ctx, c.now)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.statusUseCase.Execute(ctx.Request.Context(), analytics.GetBudgetStatusInput{
		ReferenceDate: ref,
		Category:      ctx.Query("category"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetStatusListResponse(output))
}
