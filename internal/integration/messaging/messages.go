// Package messaging consumes the plan-change events that invalidate cached reports.
package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrMissingCompany is returned for events that do not name a company.
var ErrMissingCompany = errors.New("message carries no company_id")

// PlanItemChangedMessage announces that a plan item of a company was created, updated or deleted.
type PlanItemChangedMessage struct {
	CompanyID  uuid.UUID `json:"company_id"`
	PlanItemID uuid.UUID `json:"plan_item_id"`
	Action     string    `json:"action"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewPlanItemChangedMessage creates a message stamped with the current time.
func NewPlanItemChangedMessage(companyID, planItemID uuid.UUID, action string) *PlanItemChangedMessage {
	return &PlanItemChangedMessage{
		CompanyID:  companyID,
		PlanItemID: planItemID,
		Action:     action,
		Timestamp:  time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *PlanItemChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PlanItemChangedMessageFromJSON decodes a message and checks that it names a company.
func PlanItemChangedMessageFromJSON(data []byte) (*PlanItemChangedMessage, error) {
	var msg PlanItemChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	if msg.CompanyID == uuid.Nil {
		return nil, ErrMissingCompany
	}
	return &msg, nil
}
