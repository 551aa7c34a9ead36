// Package sequence issues tenant-scoped, human-readable document numbers.
// The counter lives in its own row per (company, kind, year) and is bumped
// with a single UPDATE, so two concurrent creators for the same scope can
// never compute the same number; within a transaction the incremented row
// stays locked until commit.
package sequence

import (
	"fmt"
	"time"

	"tradeflow-service/internal/model"
	"tradeflow-service/internal/workflow"

	"gorm.io/gorm"
)

// Next reserves and formats the next number for the entity kind under the
// given company. Deals use a year-less running counter (DEAL-001); quotes and
// customer POs are numbered per calendar year (QT-2025-001, CPO-2025-001).
// The tx is expected to be the unit of work of the creating mutation, so a
// rolled-back create releases the reserved number's row lock with it.
func Next(tx *gorm.DB, companyID uint, kind workflow.EntityKind, now time.Time) (string, error) {
	year := 0
	if kind != workflow.EntityDeal {
		year = now.Year()
	}

	value, err := increment(tx, companyID, string(kind), year)
	if err != nil {
		return "", err
	}

	switch kind {
	case workflow.EntityDeal:
		return fmt.Sprintf("DEAL-%03d", value), nil
	case workflow.EntityQuote:
		return fmt.Sprintf("QT-%04d-%03d", year, value), nil
	case workflow.EntityCustomerPO:
		return fmt.Sprintf("CPO-%04d-%03d", year, value), nil
	}
	return "", fmt.Errorf("no number format for entity kind %q", kind)
}

func increment(tx *gorm.DB, companyID uint, kind string, year int) (int64, error) {
	res := tx.Model(&model.NumberSequence{}).
		Where("company_id = ? AND kind = ? AND year = ?", companyID, kind, year).
		UpdateColumn("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return 0, res.Error
	}

	if res.RowsAffected == 0 {
		seq := model.NumberSequence{CompanyID: companyID, Kind: kind, Year: year, Value: 1}
		if err := tx.Create(&seq).Error; err == nil {
			return 1, nil
		}
		// Lost the first-use race: another transaction created the row.
		res = tx.Model(&model.NumberSequence{}).
			Where("company_id = ? AND kind = ? AND year = ?", companyID, kind, year).
			UpdateColumn("value", gorm.Expr("value + 1"))
		if res.Error != nil {
			return 0, res.Error
		}
	}

	var seq model.NumberSequence
	if err := tx.Where("company_id = ? AND kind = ? AND year = ?", companyID, kind, year).
		First(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}
