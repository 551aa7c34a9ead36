package service

import (
	"errors"
	"time"

	"tradeflow-service/internal/model"
	"tradeflow-service/internal/sequence"
	"tradeflow-service/internal/workflow"

	"gorm.io/gorm"
)

// CustomerPOService owns customer purchase order CRUD, the PO state machine,
// and the deal progression cascades PO milestones drive.
type CustomerPOService struct {
	db *gorm.DB
}

func NewCustomerPOService(db *gorm.DB) *CustomerPOService {
	return &CustomerPOService{db: db}
}

// CustomerPOCreate is the payload for recording a received PO.
type CustomerPOCreate struct {
	InternalRef  string          `json:"internal_ref"`
	PONumber     string          `json:"po_number"`
	CustomerID   uint            `json:"customer_id"`
	DealID       *uint           `json:"deal_id"`
	QuoteID      *uint           `json:"quote_id"`
	LineItems    model.LineItems `json:"line_items"`
	TotalAmount  float64         `json:"total_amount"`
	Currency     string          `json:"currency"`
	PODate       time.Time       `json:"po_date"`
	DeliveryDate *time.Time      `json:"delivery_date"`
	Notes        string          `json:"notes"`
}

// CustomerPOUpdate is a partial update; nil fields are left untouched.
type CustomerPOUpdate struct {
	PONumber     *string          `json:"po_number"`
	CustomerID   *uint            `json:"customer_id"`
	DealID       *uint            `json:"deal_id"`
	QuoteID      *uint            `json:"quote_id"`
	LineItems    *model.LineItems `json:"line_items"`
	TotalAmount  *float64         `json:"total_amount"`
	Currency     *string          `json:"currency"`
	PODate       *time.Time       `json:"po_date"`
	DeliveryDate *time.Time       `json:"delivery_date"`
	Notes        *string          `json:"notes"`
}

// CustomerPOListOptions filters List.
type CustomerPOListOptions struct {
	Skip       int
	Limit      int
	Status     string
	CustomerID *uint
	DealID     *uint
	QuoteID    *uint
}

// Create records a newly received customer PO.
func (s *CustomerPOService) Create(tc workflow.TenantContext, in CustomerPOCreate) (*model.CustomerPO, error) {
	if in.CustomerID == 0 {
		return nil, workflow.Validationf("customer_id is required")
	}
	if in.PONumber == "" {
		return nil, workflow.Validationf("po_number is required")
	}
	if in.PODate.IsZero() {
		return nil, workflow.Validationf("po_date is required")
	}
	if in.Currency == "" {
		in.Currency = "AED"
	}
	if in.LineItems == nil {
		in.LineItems = model.LineItems{}
	}

	var po model.CustomerPO
	err := s.db.Transaction(func(tx *gorm.DB) error {
		ref := in.InternalRef
		if ref == "" {
			var err error
			ref, err = sequence.Next(tx, tc.CompanyID, workflow.EntityCustomerPO, time.Now())
			if err != nil {
				return err
			}
		} else {
			var count int64
			if err := tx.Model(&model.CustomerPO{}).
				Where("company_id = ? AND internal_ref = ? AND deleted_at IS NULL", tc.CompanyID, ref).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return workflow.Validationf("internal ref %s already exists", ref)
			}
		}

		po = model.CustomerPO{
			CompanyID:    tc.CompanyID,
			InternalRef:  ref,
			PONumber:     in.PONumber,
			CustomerID:   in.CustomerID,
			DealID:       in.DealID,
			QuoteID:      in.QuoteID,
			Status:       workflow.POReceived,
			LineItems:    in.LineItems,
			TotalAmount:  in.TotalAmount,
			Currency:     in.Currency,
			PODate:       in.PODate,
			DeliveryDate: in.DeliveryDate,
			Notes:        in.Notes,
		}
		if err := tx.Create(&po).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, po.DealID, tc.Actor,
			workflow.ActionCreated, workflow.EntityCustomerPO, po.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// Get returns a live customer PO for the caller's company.
func (s *CustomerPOService) Get(tc workflow.TenantContext, id uint) (*model.CustomerPO, error) {
	return getCustomerPO(s.db, tc.CompanyID, id)
}

func getCustomerPO(db *gorm.DB, companyID, id uint) (*model.CustomerPO, error) {
	var po model.CustomerPO
	err := db.Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&po).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &po, nil
}

// List returns the company's live POs, newest first, with the total count.
func (s *CustomerPOService) List(tc workflow.TenantContext, opts CustomerPOListOptions) ([]model.CustomerPO, int64, error) {
	query := s.db.Model(&model.CustomerPO{}).
		Where("company_id = ? AND deleted_at IS NULL", tc.CompanyID)
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.CustomerID != nil {
		query = query.Where("customer_id = ?", *opts.CustomerID)
	}
	if opts.DealID != nil {
		query = query.Where("deal_id = ?", *opts.DealID)
	}
	if opts.QuoteID != nil {
		query = query.Where("quote_id = ?", *opts.QuoteID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var pos []model.CustomerPO
	err := query.Order("created_at DESC, id DESC").
		Offset(opts.Skip).Limit(listLimit(opts.Limit)).
		Find(&pos).Error
	if err != nil {
		return nil, 0, err
	}
	return pos, total, nil
}

// Update applies a partial update and records the resulting field diff.
func (s *CustomerPOService) Update(tc workflow.TenantContext, id uint, in CustomerPOUpdate) (*model.CustomerPO, error) {
	var po *model.CustomerPO
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		po, err = getCustomerPO(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		before := customerPOSnapshot(po)

		if in.PONumber != nil {
			po.PONumber = *in.PONumber
		}
		if in.CustomerID != nil {
			po.CustomerID = *in.CustomerID
		}
		if in.DealID != nil {
			po.DealID = in.DealID
		}
		if in.QuoteID != nil {
			po.QuoteID = in.QuoteID
		}
		if in.LineItems != nil {
			po.LineItems = *in.LineItems
		}
		if in.TotalAmount != nil {
			po.TotalAmount = *in.TotalAmount
		}
		if in.Currency != nil {
			po.Currency = *in.Currency
		}
		if in.PODate != nil {
			po.PODate = *in.PODate
		}
		if in.DeliveryDate != nil {
			po.DeliveryDate = in.DeliveryDate
		}
		if in.Notes != nil {
			po.Notes = *in.Notes
		}

		if err := tx.Save(po).Error; err != nil {
			return err
		}

		changes := workflow.Diff(before, customerPOSnapshot(po))
		if len(changes) == 0 {
			return nil
		}
		return logActivity(tx, tc.CompanyID, po.DealID, tc.Actor,
			workflow.ActionUpdated, workflow.EntityCustomerPO, po.ID, changes)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// ChangeStatus moves the PO through its state machine. Acknowledging,
// starting, and fulfilling a PO each advance the linked deal one stage where
// its own state machine allows, within the same transaction.
func (s *CustomerPOService) ChangeStatus(tc workflow.TenantContext, id uint, newStatus workflow.CustomerPOStatus) (*model.CustomerPO, error) {
	var po *model.CustomerPO
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		po, err = getCustomerPO(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		if err := workflow.Validate(workflow.EntityCustomerPO, string(po.Status), string(newStatus)); err != nil {
			return err
		}

		old := po.Status
		po.Status = newStatus
		if err := tx.Save(po).Error; err != nil {
			return err
		}

		if err := logActivity(tx, tc.CompanyID, po.DealID, tc.Actor,
			workflow.ActionStatusChanged, workflow.EntityCustomerPO, po.ID,
			statusChange(string(old), string(newStatus))); err != nil {
			return err
		}

		if po.DealID != nil {
			return cascadeDeal(tx, tc.CompanyID, *po.DealID, workflow.EntityCustomerPO, string(newStatus))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Delete soft-deletes the PO, keeping its audit trail readable.
func (s *CustomerPOService) Delete(tc workflow.TenantContext, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		po, err := getCustomerPO(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		now := time.Now()
		po.DeletedAt = &now
		if err := tx.Save(po).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, po.DealID, tc.Actor,
			workflow.ActionDeleted, workflow.EntityCustomerPO, po.ID, nil)
	})
}

func customerPOSnapshot(p *model.CustomerPO) map[string]any {
	return map[string]any{
		"po_number":     p.PONumber,
		"customer_id":   p.CustomerID,
		"deal_id":       p.DealID,
		"quote_id":      p.QuoteID,
		"total_amount":  p.TotalAmount,
		"currency":      p.Currency,
		"po_date":       p.PODate.Format("2006-01-02"),
		"delivery_date": formatDate(p.DeliveryDate),
		"notes":         p.Notes,
	}
}

func formatDate(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format("2006-01-02")
}
