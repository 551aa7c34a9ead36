package model

import (
	"time"

	"tradeflow-service/internal/workflow"
)

// Quote is the customer-facing price quotation, optionally linked to a deal.
type Quote struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	CompanyID     uint                 `json:"company_id" gorm:"index;not null"`
	QuoteNumber   string               `json:"quote_number" gorm:"type:varchar(50);index;not null"`
	CustomerID    uint                 `json:"customer_id" gorm:"index;not null"`
	DealID        *uint                `json:"deal_id,omitempty" gorm:"index"`
	Status        workflow.QuoteStatus `json:"status" gorm:"type:varchar(20);index;not null;default:'draft'"`
	Title         string               `json:"title" gorm:"type:varchar(200);not null"`
	Description   string               `json:"description" gorm:"type:text"`
	LineItems     LineItems            `json:"line_items" gorm:"serializer:json"`
	TotalAmount   float64              `json:"total_amount" gorm:"not null"`
	Currency      string               `json:"currency" gorm:"type:varchar(3);not null;default:'AED'"`
	PaymentTerms  string               `json:"payment_terms" gorm:"type:varchar(200)"`
	DeliveryTerms string               `json:"delivery_terms" gorm:"type:varchar(200)"`
	ValidityDays  int                  `json:"validity_days" gorm:"not null;default:30"`
	IssueDate     *time.Time           `json:"issue_date,omitempty"`
	ExpiryDate    *time.Time           `json:"expiry_date,omitempty"`
	Notes         string               `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time            `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time            `json:"updated_at"`
	DeletedAt     *time.Time           `json:"-" gorm:"index"`
}
