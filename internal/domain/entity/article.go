// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ArticleType represents the direction of money booked against an article.
type ArticleType string

const (
	ArticleTypeIncome  ArticleType = "income"
	ArticleTypeExpense ArticleType = "expense"
)

// Activity represents the top-level cash-flow classification of an article.
type Activity string

const (
	ActivityOperating Activity = "operating"
	ActivityInvesting Activity = "investing"
	ActivityFinancing Activity = "financing"
)

// Activities lists every activity in report order.
var Activities = []Activity{ActivityOperating, ActivityInvesting, ActivityFinancing}

// IsValid reports whether the activity is one of the known classifications.
func (a Activity) IsValid() bool {
	switch a {
	case ActivityOperating, ActivityInvesting, ActivityFinancing:
		return true
	}
	return false
}

// Article represents a hierarchical income/expense category of a company.
// Articles form a forest per company through ParentID.
type Article struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	ParentID  *uuid.UUID
	Type      ArticleType
	Activity  Activity
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ArticleTreeNode is the minimal projection needed to walk the article hierarchy.
type ArticleTreeNode struct {
	ID       uuid.UUID
	ParentID *uuid.UUID
}
