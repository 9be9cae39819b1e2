// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expense-tracker/backend/internal/application/usecase/analytics"
	"github.com/expense-tracker/backend/internal/domain/dateutil"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
)

// Clock returns the current time. Controllers resolve a missing as_of
// reference date against it.
type Clock func() time.Time

// handleError maps domain errors onto HTTP responses.
func handleError(ctx *gin.Context, err error) {
	var (
		expErr *domainerror.ExpenseError
		bdgErr *domainerror.BudgetError
		catErr *domainerror.CategoryError
		anlErr *domainerror.AnalyticsError
	)

	switch {
	case errors.As(err, &expErr):
		respondError(ctx, statusForExpenseError(expErr.Code), expErr.Message, string(expErr.Code))
	case errors.As(err, &bdgErr):
		respondError(ctx, statusForBudgetError(bdgErr.Code), bdgErr.Message, string(bdgErr.Code))
	case errors.As(err, &catErr):
		respondError(ctx, statusForCategoryError(catErr.Code), catErr.Message, string(catErr.Code))
	case errors.As(err, &anlErr):
		respondError(ctx, statusForAnalyticsError(anlErr.Code), anlErr.Message, string(anlErr.Code))
	default:
		slog.Error("Unhandled request error",
			"path", ctx.FullPath(),
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

func respondError(ctx *gin.Context, status int, message, code string) {
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "path", ctx.FullPath(), "code", code, "error", message)
	}
	ctx.JSON(status, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func badRequest(ctx *gin.Context, message, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

func statusForExpenseError(code domainerror.ExpenseErrorCode) int {
	switch code {
	case domainerror.ErrCodeExpenseNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidAmount,
		domainerror.ErrCodeMissingCategory,
		domainerror.ErrCodeUnknownCategory,
		domainerror.ErrCodeInvalidExpenseDate,
		domainerror.ErrCodeEmptySearchKeyword,
		domainerror.ErrCodeNoFieldsToUpdate,
		domainerror.ErrCodeInvalidImportFile,
		domainerror.ErrCodeInvalidExpenseRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForBudgetError(code domainerror.BudgetErrorCode) int {
	switch code {
	case domainerror.ErrCodeBudgetNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidBudgetLimit,
		domainerror.ErrCodeBudgetCategoryNotFound,
		domainerror.ErrCodeMissingBudgetCategory:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists:
		return http.StatusConflict
	case domainerror.ErrCodeCategoryNameRequired,
		domainerror.ErrCodeCategoryNameTooLong:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func statusForAnalyticsError(code domainerror.AnalyticsErrorCode) int {
	switch code {
	case domainerror.ErrCodeInvalidDateFormat,
		domainerror.ErrCodeInvalidDateRange,
		domainerror.ErrCodeInvalidPeriod,
		domainerror.ErrCodeInvalidMonthWindow,
		domainerror.ErrCodeMissingReferenceDate,
		domainerror.ErrCodeMissingComparisonPeriod:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// referenceDate resolves the optional as_of query parameter, defaulting to
// the clock's current calendar date.
func referenceDate(ctx *gin.Context, now Clock) (time.Time, error) {
	if asOf := ctx.Query("as_of"); asOf != "" {
		return analytics.ParseDate(asOf)
	}
	return dateutil.Truncate(now().UTC()), nil
}

// optionalDate parses a YYYY-MM-DD query parameter, returning nil when it is
// absent.
func optionalDate(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := analytics.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// intQuery parses an optional integer query parameter. Absent values yield
// zero so use cases apply their defaults.
func intQuery(ctx *gin.Context, name string) (int, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
