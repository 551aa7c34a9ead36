package service

import (
	"errors"

	"tradeflow-service/internal/model"
	"tradeflow-service/internal/workflow"
	"tradeflow-service/prometheus"

	"gorm.io/gorm"
)

// cascadeDeal applies the one-hop status cascade onto a linked deal inside
// the triggering mutation's transaction. The deal lookup is scoped to the
// trigger's company, so cross-tenant cascades are impossible by construction.
// A missing deal or an inapplicable rule is skipped silently; a failed write
// aborts the whole unit of work.
func cascadeDeal(tx *gorm.DB, companyID, dealID uint, trigger workflow.EntityKind, event string) error {
	var deal model.Deal
	err := tx.Where("id = ? AND company_id = ? AND deleted_at IS NULL", dealID, companyID).
		First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	target, ok := workflow.CascadeTarget(trigger, event, deal.Status)
	if !ok {
		return nil
	}

	old := deal.Status
	deal.Status = target
	if err := tx.Save(&deal).Error; err != nil {
		return err
	}

	prometheus.RecordCascade(string(trigger))

	// Cascades are attributed to the system, not the acting user.
	return logActivity(tx, companyID, &deal.ID, workflow.SystemActor(),
		workflow.ActionAutoStatusChanged, workflow.EntityDeal, deal.ID,
		statusChange(string(old), string(target)))
}
