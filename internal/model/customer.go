package model

import "time"

// Customer is a company's trading counterparty referenced by quotes and POs.
// Soft delete uses an explicit timestamp so deleted rows stay visible to the
// activity trail and the number sequences.
type Customer struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	CompanyID     uint       `json:"company_id" gorm:"index;not null"`
	Name          string     `json:"name" gorm:"type:varchar(200);not null"`
	ContactPerson string     `json:"contact_person" gorm:"type:varchar(200)"`
	Email         string     `json:"email" gorm:"type:varchar(100)"`
	Phone         string     `json:"phone" gorm:"type:varchar(50)"`
	Address       string     `json:"address" gorm:"type:text"`
	Country       string     `json:"country" gorm:"type:varchar(100)"`
	PaymentTerms  string     `json:"payment_terms" gorm:"type:varchar(200)"`
	Notes         string     `json:"notes" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"-" gorm:"index"`
}
