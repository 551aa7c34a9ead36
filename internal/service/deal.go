package service

import (
	"errors"
	"time"

	"tradeflow-service/internal/model"
	"tradeflow-service/internal/sequence"
	"tradeflow-service/internal/workflow"

	"gorm.io/gorm"
)

// DealService owns deal CRUD and the deal status state machine. Every
// mutation runs as one transaction: read, validate, write, diff, audit.
type DealService struct {
	db *gorm.DB
}

func NewDealService(db *gorm.DB) *DealService {
	return &DealService{db: db}
}

// DealCreate is the payload for creating a deal.
type DealCreate struct {
	DealNumber     string          `json:"deal_number"`
	CustomerID     *uint           `json:"customer_id"`
	CustomerRFQRef string          `json:"customer_rfq_ref"`
	Description    string          `json:"description"`
	Currency       string          `json:"currency"`
	LineItems      model.LineItems `json:"line_items"`
	TotalValue     *float64        `json:"total_value"`
	TotalCost      *float64        `json:"total_cost"`
	MarginPct      *float64        `json:"estimated_margin_pct"`
	Notes          string          `json:"notes"`
}

// DealUpdate is a partial update; nil fields are left untouched.
type DealUpdate struct {
	CustomerID     *uint            `json:"customer_id"`
	CustomerRFQRef *string          `json:"customer_rfq_ref"`
	Description    *string          `json:"description"`
	Currency       *string          `json:"currency"`
	LineItems      *model.LineItems `json:"line_items"`
	TotalValue     *float64         `json:"total_value"`
	TotalCost      *float64         `json:"total_cost"`
	MarginPct      *float64         `json:"estimated_margin_pct"`
	Notes          *string          `json:"notes"`
}

// DealListOptions filters List.
type DealListOptions struct {
	Skip       int
	Limit      int
	Status     string
	CustomerID *uint
}

// Create inserts a new deal in RFQ_RECEIVED. When no explicit number is
// given one is drawn from the company's sequence; explicit numbers must be
// unique among the company's live deals.
func (s *DealService) Create(tc workflow.TenantContext, in DealCreate) (*model.Deal, error) {
	if in.Description == "" {
		return nil, workflow.Validationf("description is required")
	}
	if in.Currency == "" {
		in.Currency = "AED"
	}
	if in.LineItems == nil {
		in.LineItems = model.LineItems{}
	}

	var deal model.Deal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		number := in.DealNumber
		if number == "" {
			var err error
			number, err = sequence.Next(tx, tc.CompanyID, workflow.EntityDeal, time.Now())
			if err != nil {
				return err
			}
		} else {
			var count int64
			if err := tx.Model(&model.Deal{}).
				Where("company_id = ? AND deal_number = ? AND deleted_at IS NULL", tc.CompanyID, number).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return workflow.Validationf("deal number %s already exists", number)
			}
		}

		deal = model.Deal{
			CompanyID:      tc.CompanyID,
			DealNumber:     number,
			Status:         workflow.DealRFQReceived,
			CustomerID:     in.CustomerID,
			CustomerRFQRef: in.CustomerRFQRef,
			Description:    in.Description,
			Currency:       in.Currency,
			LineItems:      in.LineItems,
			TotalValue:     in.TotalValue,
			TotalCost:      in.TotalCost,
			MarginPct:      in.MarginPct,
			Notes:          in.Notes,
			CreatedByID:    tc.Actor.UserID(),
		}
		if err := tx.Create(&deal).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, &deal.ID, tc.Actor,
			workflow.ActionCreated, workflow.EntityDeal, deal.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// Get returns a live deal for the caller's company.
func (s *DealService) Get(tc workflow.TenantContext, id uint) (*model.Deal, error) {
	return getDeal(s.db, tc.CompanyID, id)
}

func getDeal(db *gorm.DB, companyID, id uint) (*model.Deal, error) {
	var deal model.Deal
	err := db.Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&deal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

// List returns the company's live deals, newest first, with the total count.
func (s *DealService) List(tc workflow.TenantContext, opts DealListOptions) ([]model.Deal, int64, error) {
	query := s.db.Model(&model.Deal{}).
		Where("company_id = ? AND deleted_at IS NULL", tc.CompanyID)
	if opts.Status != "" {
		query = query.Where("status = ?", opts.Status)
	}
	if opts.CustomerID != nil {
		query = query.Where("customer_id = ?", *opts.CustomerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var deals []model.Deal
	err := query.Order("created_at DESC, id DESC").
		Offset(opts.Skip).Limit(listLimit(opts.Limit)).
		Find(&deals).Error
	if err != nil {
		return nil, 0, err
	}
	return deals, total, nil
}

// Update applies a partial update and records the resulting field diff. An
// update that changes nothing writes no audit row.
func (s *DealService) Update(tc workflow.TenantContext, id uint, in DealUpdate) (*model.Deal, error) {
	var deal *model.Deal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		deal, err = getDeal(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		before := dealSnapshot(deal)

		if in.CustomerID != nil {
			deal.CustomerID = in.CustomerID
		}
		if in.CustomerRFQRef != nil {
			deal.CustomerRFQRef = *in.CustomerRFQRef
		}
		if in.Description != nil {
			deal.Description = *in.Description
		}
		if in.Currency != nil {
			deal.Currency = *in.Currency
		}
		if in.LineItems != nil {
			deal.LineItems = *in.LineItems
		}
		if in.TotalValue != nil {
			deal.TotalValue = in.TotalValue
		}
		if in.TotalCost != nil {
			deal.TotalCost = in.TotalCost
		}
		if in.MarginPct != nil {
			deal.MarginPct = in.MarginPct
		}
		if in.Notes != nil {
			deal.Notes = *in.Notes
		}

		if err := tx.Save(deal).Error; err != nil {
			return err
		}

		changes := workflow.Diff(before, dealSnapshot(deal))
		if len(changes) == 0 {
			return nil
		}
		return logActivity(tx, tc.CompanyID, &deal.ID, tc.Actor,
			workflow.ActionUpdated, workflow.EntityDeal, deal.ID, changes)
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

// ChangeStatus moves the deal through its state machine. An illegal edge
// returns InvalidTransitionError with nothing written. Deals never trigger
// cascades of their own.
func (s *DealService) ChangeStatus(tc workflow.TenantContext, id uint, newStatus workflow.DealStatus) (*model.Deal, error) {
	var deal *model.Deal
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		deal, err = getDeal(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		if err := workflow.Validate(workflow.EntityDeal, string(deal.Status), string(newStatus)); err != nil {
			return err
		}

		old := deal.Status
		deal.Status = newStatus
		if err := tx.Save(deal).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, &deal.ID, tc.Actor,
			workflow.ActionStatusChanged, workflow.EntityDeal, deal.ID,
			statusChange(string(old), string(newStatus)))
	})
	if err != nil {
		return nil, err
	}
	return deal, nil
}

// Delete soft-deletes the deal. The row and its audit trail remain; reads
// stop returning it.
func (s *DealService) Delete(tc workflow.TenantContext, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		deal, err := getDeal(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		now := time.Now()
		deal.DeletedAt = &now
		if err := tx.Save(deal).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, &deal.ID, tc.Actor,
			workflow.ActionDeleted, workflow.EntityDeal, deal.ID, nil)
	})
}

func dealSnapshot(d *model.Deal) map[string]any {
	return map[string]any{
		"customer_id":          d.CustomerID,
		"customer_rfq_ref":     d.CustomerRFQRef,
		"description":          d.Description,
		"currency":             d.Currency,
		"total_value":          d.TotalValue,
		"total_cost":           d.TotalCost,
		"estimated_margin_pct": d.MarginPct,
		"notes":                d.Notes,
	}
}

func listLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	return limit
}
