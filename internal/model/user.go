package model

import (
	"time"

	"gorm.io/gorm"
)

// User represents an authenticated account belonging to one company.
type User struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	Password  string         `json:"-" gorm:"type:varchar(255);not null"`
	FullName  string         `json:"full_name" gorm:"type:varchar(200)"`
	CompanyID *uint          `json:"company_id,omitempty" gorm:"index"`
	Role      string         `json:"role" gorm:"type:varchar(50);default:'member'"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
