package model

import (
	"time"

	"tradeflow-service/internal/workflow"
)

// LineItem is one requested or quoted position on a deal document.
type LineItem struct {
	Description  string   `json:"description"`
	MaterialSpec string   `json:"material_spec,omitempty"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit"`
	UnitPrice    *float64 `json:"unit_price,omitempty"`
}

// LineItems is stored as a JSON column.
type LineItems []LineItem

// Deal is the internal root document tracking one trade from RFQ to payment.
type Deal struct {
	ID             uint                `json:"id" gorm:"primaryKey"`
	CompanyID      uint                `json:"company_id" gorm:"index;not null"`
	DealNumber     string              `json:"deal_number" gorm:"type:varchar(50);index;not null"`
	Status         workflow.DealStatus `json:"status" gorm:"type:varchar(30);index;not null;default:'rfq_received'"`
	CustomerID     *uint               `json:"customer_id,omitempty" gorm:"index"`
	CustomerRFQRef string              `json:"customer_rfq_ref" gorm:"type:varchar(200)"`
	Description    string              `json:"description" gorm:"type:text;not null"`
	Currency       string              `json:"currency" gorm:"type:varchar(3);not null;default:'AED'"`
	LineItems      LineItems           `json:"line_items" gorm:"serializer:json"`
	TotalValue     *float64            `json:"total_value,omitempty"`
	TotalCost      *float64            `json:"total_cost,omitempty"`
	MarginPct      *float64            `json:"estimated_margin_pct,omitempty"`
	Notes          string              `json:"notes" gorm:"type:text"`
	CreatedByID    *uint               `json:"created_by_id,omitempty"`
	CreatedAt      time.Time           `json:"created_at" gorm:"index"`
	UpdatedAt      time.Time           `json:"updated_at"`
	DeletedAt      *time.Time          `json:"-" gorm:"index"`
}
