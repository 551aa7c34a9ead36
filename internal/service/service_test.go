package service

import (
	"testing"

	"tradeflow-service/internal/model"
	"tradeflow-service/internal/workflow"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory store with the full schema. The pool is
// pinned to one connection so every query sees the same memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Company{},
		&model.User{},
		&model.Customer{},
		&model.Deal{},
		&model.Quote{},
		&model.CustomerPO{},
		&model.ActivityLog{},
		&model.NumberSequence{},
	))
	return db
}

func asUser(companyID, userID uint) workflow.TenantContext {
	return workflow.TenantContext{CompanyID: companyID, Actor: workflow.UserActor(userID)}
}

func seedCustomer(t *testing.T, db *gorm.DB, companyID uint) *model.Customer {
	t.Helper()
	customer := model.Customer{CompanyID: companyID, Name: "Al Futtaim Steel"}
	require.NoError(t, db.Create(&customer).Error)
	return &customer
}

func activityRows(t *testing.T, db *gorm.DB, companyID uint, entityType workflow.EntityKind, entityID uint) []model.ActivityLog {
	t.Helper()
	var logs []model.ActivityLog
	require.NoError(t, db.
		Where("company_id = ? AND entity_type = ? AND entity_id = ?", companyID, string(entityType), entityID).
		Order("id ASC").
		Find(&logs).Error)
	return logs
}
