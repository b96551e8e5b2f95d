// Package messaging consumes the plan-change events that invalidate cached reports.
package messaging

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/usecase/report"
)

// cacheClearer clears every cached report of a company.
type cacheClearer interface {
	Execute(ctx context.Context, companyID uuid.UUID) (*report.ClearReportCacheOutput, error)
}

// NewInvalidationHandler returns a handler that drops the cached reports of the message's company.
func NewInvalidationHandler(clearReportCache cacheClearer) MessageHandler {
	return func(ctx context.Context, msg *PlanItemChangedMessage) error {
		output, err := clearReportCache.Execute(ctx, msg.CompanyID)
		if err != nil {
			return err
		}

		slog.InfoContext(ctx, "Invalidated report cache",
			"company_id", msg.CompanyID.String(),
			"plan_item_id", msg.PlanItemID.String(),
			"action", msg.Action,
			"cleared", output.Cleared)
		return nil
	}
}
