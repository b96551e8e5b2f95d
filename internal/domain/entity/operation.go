// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OperationType represents the type of a ledger operation.
type OperationType string

const (
	OperationTypeIncome   OperationType = "income"
	OperationTypeExpense  OperationType = "expense"
	OperationTypeTransfer OperationType = "transfer"
)

// Operation represents an actual financial transaction of a company.
// Amount is unsigned; Type carries the direction.
type Operation struct {
	ID            uuid.UUID
	CompanyID     uuid.UUID
	Type          OperationType
	OperationDate time.Time
	Amount        decimal.Decimal
	ArticleID     *uuid.UUID
	DealID        *uuid.UUID
	DepartmentID  *uuid.UUID
	IsConfirmed   bool
	IsTemplate    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsReportVisible reports whether the operation may appear in a financial report.
// Only confirmed, non-template income or expense rows qualify.
func (o *Operation) IsReportVisible() bool {
	if !o.IsConfirmed || o.IsTemplate {
		return false
	}
	return o.Type == OperationTypeIncome || o.Type == OperationTypeExpense
}
