package service

import (
	"tradeflow-service/internal/model"
	"tradeflow-service/internal/workflow"

	"gorm.io/gorm"
)

// ActivityService reads the audit trail. Writes happen through logActivity
// inside the mutating unit of work, never through a separate path.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// ListForDeal returns a deal's audit entries, newest first. Entries survive
// soft deletion of the deal itself.
func (s *ActivityService) ListForDeal(tc workflow.TenantContext, dealID uint, skip, limit int) ([]model.ActivityLog, int64, error) {
	query := s.db.Model(&model.ActivityLog{}).
		Where("company_id = ? AND deal_id = ?", tc.CompanyID, dealID)
	return listActivity(query, skip, limit)
}

// ListForEntity returns audit entries for one entity, newest first.
func (s *ActivityService) ListForEntity(tc workflow.TenantContext, entityType workflow.EntityKind, entityID uint, skip, limit int) ([]model.ActivityLog, int64, error) {
	query := s.db.Model(&model.ActivityLog{}).
		Where("company_id = ? AND entity_type = ? AND entity_id = ?", tc.CompanyID, string(entityType), entityID)
	return listActivity(query, skip, limit)
}

func listActivity(query *gorm.DB, skip, limit int) ([]model.ActivityLog, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []model.ActivityLog
	err := query.Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// logActivity appends one immutable audit row within the caller's unit of
// work, so the row commits or rolls back with the mutation it describes.
func logActivity(tx *gorm.DB, companyID uint, dealID *uint, actor workflow.Actor, action string, entityType workflow.EntityKind, entityID uint, changes []workflow.Change) error {
	entry := model.ActivityLog{
		CompanyID:  companyID,
		DealID:     dealID,
		UserID:     actor.UserID(),
		Action:     action,
		EntityType: string(entityType),
		EntityID:   entityID,
		Changes:    changes,
	}
	return tx.Create(&entry).Error
}

func statusChange(old, new string) []workflow.Change {
	return []workflow.Change{{Field: "status", OldValue: &old, NewValue: &new}}
}
