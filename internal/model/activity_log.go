package model

import (
	"time"

	"tradeflow-service/internal/workflow"
)

// ActivityLog is one immutable audit record per mutation. Rows are never
// updated or deleted; they survive soft deletion of the entity they describe.
type ActivityLog struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	CompanyID  uint              `json:"company_id" gorm:"index;not null"`
	DealID     *uint             `json:"deal_id,omitempty" gorm:"index"`
	UserID     *uint             `json:"user_id,omitempty"`
	Action     string            `json:"action" gorm:"type:varchar(50);not null"`
	EntityType string            `json:"entity_type" gorm:"type:varchar(50);index;not null"`
	EntityID   uint              `json:"entity_id" gorm:"index;not null"`
	Changes    []workflow.Change `json:"changes" gorm:"serializer:json"`
	CreatedAt  time.Time         `json:"created_at" gorm:"index"`
}
