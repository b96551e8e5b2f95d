// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
	"github.com/bookkeeping/backend/internal/application/usecase/report"
	"github.com/bookkeeping/backend/internal/domain/entity"
	domainerror "github.com/bookkeeping/backend/internal/domain/error"
	"github.com/bookkeeping/backend/internal/domain/valueobject"
	"github.com/bookkeeping/backend/internal/integration/entrypoint/dto"
	"github.com/bookkeeping/backend/internal/integration/entrypoint/middleware"
)

const queryDateLayout = "2006-01-02"

// ReportController handles financial report endpoints.
type ReportController struct {
	getCashflowUseCase      *report.GetCashflowUseCase
	getBddsUseCase          *report.GetBddsUseCase
	getPlanFactUseCase      *report.GetPlanFactUseCase
	clearReportCacheUseCase *report.ClearReportCacheUseCase
	clock                   adapter.Clock
}

// NewReportController creates a new report controller instance.
func NewReportController(
	getCashflowUseCase *report.GetCashflowUseCase,
	getBddsUseCase *report.GetBddsUseCase,
	getPlanFactUseCase *report.GetPlanFactUseCase,
	clearReportCacheUseCase *report.ClearReportCacheUseCase,
	clock adapter.Clock,
) *ReportController {
	return &ReportController{
		getCashflowUseCase:      getCashflowUseCase,
		getBddsUseCase:          getBddsUseCase,
		getPlanFactUseCase:      getPlanFactUseCase,
		clearReportCacheUseCase: clearReportCacheUseCase,
		clock:                   clock,
	}
}

// GetCashflow handles GET /reports/cashflow requests.
func (c *ReportController) GetCashflow(ctx *gin.Context) {
	companyID, ok := c.companyFromContext(ctx)
	if !ok {
		return
	}

	periodFrom, periodTo, err := c.parsePeriod(ctx)
	if err != nil {
		c.handleReportError(ctx, "cashflow", companyID, err)
		return
	}

	input := report.GetCashflowInput{
		CompanyID:  companyID,
		PeriodFrom: periodFrom,
		PeriodTo:   periodTo,
	}

	if value := ctx.Query("activity"); value != "" {
		activity := entity.Activity(value)
		if !activity.IsValid() {
			c.handleReportError(ctx, "cashflow", companyID, domainerror.NewReportError(
				domainerror.ErrCodeInvalidActivity, domainerror.ErrInvalidActivity.Error(), domainerror.ErrInvalidActivity))
			return
		}
		input.Activity = &activity
	}

	if value := ctx.Query("rounding"); value != "" {
		rounding, parseErr := strconv.ParseInt(value, 10, 64)
		if parseErr != nil || rounding < 0 {
			c.handleReportError(ctx, "cashflow", companyID, domainerror.NewReportError(
				domainerror.ErrCodeInvalidRounding, domainerror.ErrInvalidRounding.Error(), domainerror.ErrInvalidRounding))
			return
		}
		input.Rounding = valueobject.Rounding(rounding)
	}

	input.ParentArticleID, err = parseOptionalID(ctx, "parentArticleId",
		domainerror.ErrCodeInvalidArticleID, domainerror.ErrInvalidArticleID)
	if err != nil {
		c.handleReportError(ctx, "cashflow", companyID, err)
		return
	}

	output, err := c.getCashflowUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleReportError(ctx, "cashflow", companyID, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCashflowResponse(output))
}

// GetBdds handles GET /reports/bdds requests.
func (c *ReportController) GetBdds(ctx *gin.Context) {
	companyID, ok := c.companyFromContext(ctx)
	if !ok {
		return
	}

	periodFrom, periodTo, err := c.parsePeriod(ctx)
	if err != nil {
		c.handleReportError(ctx, "bdds", companyID, err)
		return
	}

	budgetID, err := parseOptionalID(ctx, "budgetId",
		domainerror.ErrCodeInvalidBudgetID, domainerror.ErrInvalidBudgetID)
	if err != nil {
		c.handleReportError(ctx, "bdds", companyID, err)
		return
	}

	parentArticleID, err := parseOptionalID(ctx, "parentArticleId",
		domainerror.ErrCodeInvalidArticleID, domainerror.ErrInvalidArticleID)
	if err != nil {
		c.handleReportError(ctx, "bdds", companyID, err)
		return
	}

	output, err := c.getBddsUseCase.Execute(ctx.Request.Context(), report.GetBddsInput{
		CompanyID:       companyID,
		PeriodFrom:      periodFrom,
		PeriodTo:        periodTo,
		BudgetID:        budgetID,
		ParentArticleID: parentArticleID,
	})
	if err != nil {
		c.handleReportError(ctx, "bdds", companyID, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToActivityGroupResponses(output))
}

// GetPlanFact handles GET /reports/planfact requests.
func (c *ReportController) GetPlanFact(ctx *gin.Context) {
	companyID, ok := c.companyFromContext(ctx)
	if !ok {
		return
	}

	periodFrom, periodTo, err := c.parsePeriod(ctx)
	if err != nil {
		c.handleReportError(ctx, "planfact", companyID, err)
		return
	}

	level := report.ReportLevel(ctx.DefaultQuery("level", string(report.ReportLevelArticle)))
	if !level.IsValid() {
		c.handleReportError(ctx, "planfact", companyID, domainerror.NewReportError(
			domainerror.ErrCodeInvalidLevel, domainerror.ErrInvalidReportLevel.Error(), domainerror.ErrInvalidReportLevel))
		return
	}

	output, err := c.getPlanFactUseCase.Execute(ctx.Request.Context(), report.GetPlanFactInput{
		CompanyID:  companyID,
		PeriodFrom: periodFrom,
		PeriodTo:   periodTo,
		Level:      level,
	})
	if err != nil {
		c.handleReportError(ctx, "planfact", companyID, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPlanFactResponse(output))
}

// ClearCache handles POST /reports/cache/clear requests.
func (c *ReportController) ClearCache(ctx *gin.Context) {
	companyID, ok := c.companyFromContext(ctx)
	if !ok {
		return
	}

	output, err := c.clearReportCacheUseCase.Execute(ctx.Request.Context(), companyID)
	if err != nil {
		slog.Error("failed to clear report cache",
			slog.String("company_id", companyID.String()),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: domainerror.ErrCacheInvalidationFailed.Error(),
			Code:  string(domainerror.ErrCodeCacheInvalidationFailed),
		})
		return
	}

	userID, _ := middleware.GetUserIDFromContext(ctx)
	slog.Info("report cache cleared",
		slog.String("company_id", companyID.String()),
		slog.String("user_id", userID.String()),
		slog.Int64("cleared", output.Cleared))

	ctx.JSON(http.StatusOK, dto.ClearCacheResponse{Cleared: output.Cleared})
}

func (c *ReportController) companyFromContext(ctx *gin.Context) (uuid.UUID, bool) {
	companyID, ok := middleware.GetCompanyIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error: "User not authenticated",
			Code:  string(domainerror.ErrCodeMissingToken),
		})
		return uuid.Nil, false
	}
	return companyID, true
}

// parsePeriod reads periodFrom and periodTo, defaulting to January 1 of the current year and today.
func (c *ReportController) parsePeriod(ctx *gin.Context) (time.Time, time.Time, error) {
	now := c.clock.Now().UTC()
	periodFrom := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	periodTo := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	invalidFormat := domainerror.NewReportError(
		domainerror.ErrCodeInvalidDateFormat, domainerror.ErrInvalidDateFormat.Error(), domainerror.ErrInvalidDateFormat)

	if value := ctx.Query("periodFrom"); value != "" {
		parsed, err := time.Parse(queryDateLayout, value)
		if err != nil {
			return time.Time{}, time.Time{}, invalidFormat
		}
		periodFrom = parsed
	}

	if value := ctx.Query("periodTo"); value != "" {
		parsed, err := time.Parse(queryDateLayout, value)
		if err != nil {
			return time.Time{}, time.Time{}, invalidFormat
		}
		periodTo = parsed
	}

	if periodTo.Before(periodFrom) {
		return time.Time{}, time.Time{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange, domainerror.ErrInvalidDateRange.Error(), domainerror.ErrInvalidDateRange)
	}

	return periodFrom, periodTo, nil
}

func parseOptionalID(ctx *gin.Context, name string, code domainerror.ReportErrorCode, sentinel error) (*uuid.UUID, error) {
	value := ctx.Query(name)
	if value == "" {
		return nil, nil
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return nil, domainerror.NewReportError(code, sentinel.Error(), sentinel)
	}
	return &id, nil
}

// handleReportError converts validation errors to 400 responses and hides everything else behind an opaque 500.
func (c *ReportController) handleReportError(ctx *gin.Context, reportName string, companyID uuid.UUID, err error) {
	var reportErr *domainerror.ReportError
	if errors.As(err, &reportErr) && reportErr.Code.IsValidation() {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: reportErr.Message,
			Code:  string(reportErr.Code),
		})
		return
	}

	slog.Error("report generation failed",
		slog.String("report", reportName),
		slog.String("company_id", companyID.String()),
		slog.String("error", err.Error()))

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: domainerror.ErrReportGenerationFailed.Error(),
		Code:  string(domainerror.ErrCodeReportGenerationFailed),
	})
}
