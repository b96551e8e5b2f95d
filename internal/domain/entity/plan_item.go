// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RepeatType represents how often a plan item recurs.
type RepeatType string

const (
	RepeatNone       RepeatType = "none"
	RepeatDaily      RepeatType = "daily"
	RepeatWeekly     RepeatType = "weekly"
	RepeatMonthly    RepeatType = "monthly"
	RepeatQuarterly  RepeatType = "quarterly"
	RepeatSemiannual RepeatType = "semiannual"
	RepeatAnnual     RepeatType = "annual"
)

// PlanItemStatus represents the lifecycle state of a plan item.
type PlanItemStatus string

const (
	PlanItemStatusActive   PlanItemStatus = "active"
	PlanItemStatusPaused   PlanItemStatus = "paused"
	PlanItemStatusArchived PlanItemStatus = "archived"
)

// PlanItem represents a recurring or one-off planned amount.
// Amount is signed and applies to every occurrence.
type PlanItem struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	Type         ArticleType
	StartDate    time.Time
	EndDate      *time.Time
	Amount       decimal.Decimal
	Repeat       RepeatType
	Status       PlanItemStatus
	ArticleID    *uuid.UUID
	DealID       *uuid.UUID
	DepartmentID *uuid.UUID
	BudgetID     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive reports whether the plan item participates in reports.
func (p *PlanItem) IsActive() bool {
	return p.Status == PlanItemStatusActive
}
