package model

import (
	"time"

	"tradeflow-service/internal/workflow"
)

// CustomerPO is a purchase order received from a customer, optionally linked
// to the deal and quote it answers. InternalRef is our tenant-scoped number;
// PONumber is the customer's own reference.
type CustomerPO struct {
	ID           uint                      `json:"id" gorm:"primaryKey"`
	CompanyID    uint                      `json:"company_id" gorm:"index;not null"`
	InternalRef  string                    `json:"internal_ref" gorm:"type:varchar(50);index;not null"`
	PONumber     string                    `json:"po_number" gorm:"type:varchar(100);index;not null"`
	CustomerID   uint                      `json:"customer_id" gorm:"index;not null"`
	DealID       *uint                     `json:"deal_id,omitempty" gorm:"index"`
	QuoteID      *uint                     `json:"quote_id,omitempty" gorm:"index"`
	Status       workflow.CustomerPOStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'received'"`
	LineItems    LineItems                 `json:"line_items" gorm:"serializer:json"`
	TotalAmount  float64                   `json:"total_amount" gorm:"not null"`
	Currency     string                    `json:"currency" gorm:"type:varchar(3);not null;default:'AED'"`
	PODate       time.Time                 `json:"po_date" gorm:"not null"`
	DeliveryDate *time.Time                `json:"delivery_date,omitempty"`
	Notes        string                    `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time                 `json:"created_at" gorm:"index"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	DeletedAt    *time.Time                `json:"-" gorm:"index"`
}
