// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BudgetStatus represents the lifecycle state of a budget.
type BudgetStatus string

const (
	BudgetStatusDraft    BudgetStatus = "draft"
	BudgetStatusActive   BudgetStatus = "active"
	BudgetStatusArchived BudgetStatus = "archived"
)

// Budget is a named collection of plan items.
type Budget struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Status    BudgetStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogEntry is an id/name pair from a catalog such as departments or deals.
type CatalogEntry struct {
	ID   uuid.UUID
	Name string
}
