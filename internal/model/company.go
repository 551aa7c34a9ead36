package model

import (
	"time"

	"gorm.io/gorm"
)

// Company is the tenant boundary. Every business document carries its id and
// every query is scoped by it; no relationship ever crosses companies.
type Company struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"type:varchar(200);not null;uniqueIndex"`
	Country   string         `json:"country" gorm:"type:varchar(100)"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
