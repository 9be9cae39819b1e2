// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

// maxImportSize bounds the size of an uploaded CSV document.
const maxImportSize = 10 << 20

// ExpenseController handles expense endpoints.
type ExpenseController struct {
	addUseCase    *expense.AddExpenseUseCase
	updateUseCase *expense.UpdateExpenseUseCase
	deleteUseCase *expense.DeleteExpenseUseCase
	getUseCase    *expense.GetExpenseUseCase
	listUseCase   *expense.ListExpensesUseCase
	recentUseCase *expense.GetRecentExpensesUseCase
	searchUseCase *expense.SearchExpensesUseCase
	exportUseCase *expense.ExportExpensesUseCase
	importUseCase *expense.ImportExpensesUseCase
	now           Clock
}

// NewExpenseController creates a new expense controller instance.
func NewExpenseController(
	addUseCase *expense.AddExpenseUseCase,
	updateUseCase *expense.UpdateExpenseUseCase,
	deleteUseCase *expense.DeleteExpenseUseCase,
	getUseCase *expense.GetExpenseUseCase,
	listUseCase *expense.ListExpensesUseCase,
	recentUseCase *expense.GetRecentExpensesUseCase,
	searchUseCase *expense.SearchExpensesUseCase,
	exportUseCase *expense.ExportExpensesUseCase,
	importUseCase *expense.ImportExpensesUseCase,
	now Clock,
) *ExpenseController {
	return &ExpenseController{
		addUseCase:    addUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		getUseCase:    getUseCase,
		listUseCase:   listUseCase,
		recentUseCase: recentUseCase,
		searchUseCase: searchUseCase,
		exportUseCase: exportUseCase,
		importUseCase: importUseCase,
		now:           now,
	}
}

// List handles GET /expenses requests.
func (c *ExpenseController) List(ctx *gin.Context) {
	startDate, endDate, ok := c.parseRange(ctx)
	if !ok {
		return
	}

	limit, ok := intQuery(ctx, "limit")
	if !ok {
		badRequest(ctx, "limit must be a number", string(domainerror.ErrCodeInvalidExpenseRequest))
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), expense.ListExpensesInput{
		StartDate: startDate,
		EndDate:   endDate,
		Category:  ctx.Query("category"),
		Limit:     limit,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Create handles POST /expenses requests.
func (c *ExpenseController) Create(ctx *gin.Context) {
	var req dto.CreateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidRequestBody))
		return
	}

	input := expense.AddExpenseInput{
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		ReferenceDate: dateutil.Truncate(c.now().UTC()),
	}

	if req.Date != "" {
		date, err := dateutil.ParseDate(req.Date)
		if err != nil {
			badRequest(ctx, "Invalid date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidExpenseDate))
			return
		}
		input.Date = date
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreateExpenseResponse(output))
}

// Get handles GET /expenses/:id requests.
func (c *ExpenseController) Get(ctx *gin.Context) {
	id, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	found, err := c.getUseCase.Execute(ctx.Request.Context(), expense.GetExpenseInput{ID: id})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(found))
}

// Update handles PATCH /expenses/:id requests.
func (c *ExpenseController) Update(ctx *gin.Context) {
	id, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Invalid request body", string(domainerror.ErrCodeInvalidRequestBody))
		return
	}

	input := expense.UpdateExpenseInput{
		ID:            id,
		Category:      req.Category,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}

	if req.Date != nil {
		date, err := dateutil.ParseDate(*req.Date)
		if err != nil {
			badRequest(ctx, "Invalid date format, expected YYYY-MM-DD", string(domainerror.ErrCodeInvalidExpenseDate))
			return
		}
		input.Date = &date
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseResponse(output.Expense))
}

// Delete handles DELETE /expenses/:id requests.
func (c *ExpenseController) Delete(ctx *gin.Context) {
	id, ok := parseExpenseID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), expense.DeleteExpenseInput{ID: id}); err != nil {
		handleError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Recent handles GET /expenses/recent requests.
func (c *ExpenseController) Recent(ctx *gin.Context) {
	days, ok := intQuery(ctx, "days")
	if !ok {
		badRequest(ctx, "days must be a number", string(domainerror.ErrCodeInvalidExpenseRequest))
		return
	}

	ref, err := referenceDate(ctx, c.now)
	if err != nil {
		handleError(ctx, err)
		return
	}

	output, err := c.recentUseCase.Execute(ctx.Request.Context(), expense.GetRecentExpensesInput{
		Days:          days,
		ReferenceDate: ref,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Search handles GET /expenses/search requests.
func (c *ExpenseController) Search(ctx *gin.Context) {
	output, err := c.searchUseCase.Execute(ctx.Request.Context(), expense.SearchExpensesInput{
		Keyword: ctx.Query("q"),
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToExpenseListResponse(output))
}

// Export handles GET /expenses/export requests.
func (c *ExpenseController) Export(ctx *gin.Context) {
	startDate, endDate, ok := c.parseRange(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	output, err := c.exportUseCase.Execute(ctx.Request.Context(), expense.ExportExpensesInput{
		StartDate: startDate,
		EndDate:   endDate,
		Category:  ctx.Query("category"),
		Writer:    &buf,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	filename := "expenses_" + c.now().UTC().Format("20060102") + ".csv"
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Header("X-Export-Count", strconv.Itoa(output.Count))
	ctx.Data(http.StatusOK, c.exportUseCase.ContentType(), buf.Bytes())
}

// Import handles POST /expenses/import requests. The CSV document is read
// from a multipart "file" field or, failing that, from the raw body.
func (c *ExpenseController) Import(ctx *gin.Context) {
	var reader io.Reader
	if fileHeader, err := ctx.FormFile("file"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			badRequest(ctx, "Unable to read uploaded file", string(domainerror.ErrCodeInvalidImportFile))
			return
		}
		defer file.Close()
		reader = file
	} else {
		reader = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, maxImportSize)
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), expense.ImportExpensesInput{
		Reader: reader,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToImportExpensesResponse(output))
}

func (c *ExpenseController) parseRange(ctx *gin.Context) (*time.Time, *time.Time, bool) {
	startDate, err := optionalDate(ctx, "start_date")
	if err != nil {
		handleError(ctx, err)
		return nil, nil, false
	}
	endDate, err := optionalDate(ctx, "end_date")
	if err != nil {
		handleError(ctx, err)
		return nil, nil, false
	}
	return startDate, endDate, true
}

func parseExpenseID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequest(ctx, "Invalid expense ID", string(domainerror.ErrCodeInvalidPathParam))
		return 0, false
	}
	return id, true
}
