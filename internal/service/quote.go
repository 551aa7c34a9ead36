package service

import (
	"errors"
	"time"

	"tradeflow-service/internal/model"
	"tradeflow-service/internal/sequence"
	"tradeflow-service/internal/workflow"

	"gorm.io/gorm"
)

// QuoteService owns quote CRUD, the quote state machine, and the cascades a
// quote applies to its linked deal.
type QuoteService struct {
	db *gorm.DB
}

func NewQuoteService(db *gorm.DB) *QuoteService {
	return &QuoteService{db: db}
}

// QuoteCreate is the payload for creating a quote.
type QuoteCreate struct {
	QuoteNumber   string          `json:"quote_number"`
	CustomerID    uint            `json:"customer_id"`
	DealID        *uint           `json:"deal_id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	LineItems     model.LineItems `json:"line_items"`
	TotalAmount   float64         `json:"total_amount"`
	Currency      string          `json:"currency"`
	PaymentTerms  string          `json:"payment_terms"`
	DeliveryTerms string          `json:"delivery_terms"`
	ValidityDays  int             `json:"validity_days"`
	IssueDate     *time.Time      `json:"issue_date"`
	ExpiryDate    *time.Time      `json:"expiry_date"`
	Notes         string          `json:"notes"`
}

// QuoteUpdate is a partial update; nil fields are left untouched.
type QuoteUpdate struct {
	CustomerID    *uint            `json:"customer_id"`
	DealID        *uint            `json:"deal_id"`
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	LineItems     *model.LineItems `json:"line_items"`
	TotalAmount   *float64         `json:"total_amount"`
	Currency      *string          `json:"currency"`
	PaymentTerms  *string          `json:"payment_terms"`
	DeliveryTerms *string          `json:"delivery_terms"`
	ValidityDays  *int             `json:"validity_days"`
	IssueDate     *time.Time       `json:"issue_date"`
	ExpiryDate    *time.Time       `json:"expiry_date"`
	Notes         *string          `json:"notes"`
}

// QuoteListOptions filters List.
type QuoteListOptions struct {
	Skip       int
	Limit      int
	Status     string
	CustomerID *uint
	DealID     *uint
}

// Create inserts a new draft quote. A quote created against a deal marks the
// deal as quoted when its state machine allows it, in the same transaction.
func (s *QuoteService) Create(tc workflow.TenantContext, in QuoteCreate) (*model.Quote, error) {
	if in.CustomerID == 0 {
		return nil, workflow.Validationf("customer_id is required")
	}
	if in.Title == "" {
		return nil, workflow.Validationf("title is required")
	}
	if in.Currency == "" {
		in.Currency = "AED"
	}
	if in.ValidityDays == 0 {
		in.ValidityDays = 30
	}
	if in.LineItems == nil {
		in.LineItems = model.LineItems{}
	}

	var quote model.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		number := in.QuoteNumber
		if number == "" {
			var err error
			number, err = sequence.Next(tx, tc.CompanyID, workflow.EntityQuote, time.Now())
			if err != nil {
				return err
			}
		} else {
			var count int64
			if err := tx.Model(&model.Quote{}).
				Where("company_id = ? AND quote_number = ? AND deleted_at IS NULL", tc.CompanyID, number).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return workflow.Validationf("quote number %s already exists", number)
			}
		}

		quote = model.Quote{
			CompanyID:     tc.CompanyID,
			QuoteNumber:   number,
			CustomerID:    in.CustomerID,
			DealID:        in.DealID,
			Status:        workflow.QuoteDraft,
			Title:         in.Title,
			Description:   in.Description,
			LineItems:     in.LineItems,
			TotalAmount:   in.TotalAmount,
			Currency:      in.Currency,
			PaymentTerms:  in.PaymentTerms,
			DeliveryTerms: in.DeliveryTerms,
			ValidityDays:  in.ValidityDays,
			IssueDate:     in.IssueDate,
			ExpiryDate:    in.ExpiryDate,
			Notes:         in.Notes,
		}
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}

		if quote.DealID != nil {
			if err := cascadeDeal(tx, tc.CompanyID, *quote.DealID, workflow.EntityQuote, workflow.EventCreated); err != nil {
				return err
			}
		}

		return logActivity(tx, tc.CompanyID, quote.DealID, tc.Actor,
			workflow.ActionCreated, workflow.EntityQuote, quote.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// Get returns a live quote for the caller's company.
func (s *QuoteService) Get(tc workflow.TenantContext, id uint) (*model.Quote, error) {
	return getQuote(s.db, tc.CompanyID, id)
}

func getQuote(db *gorm.DB, companyID, id uint) (*model.Quote, error) {
	var quote model.Quote
	err := db.Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&quote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// List returns the company's live quotes, newest first, with the total count.
func (s *QuoteService) List(tc workflow.TenantContext, opts QuoteListOptions) ([]model.Quote, int64, error) {
	query := s.db.Model(&model.Quote{}).
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

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotes []model.Quote
	err := query.Order("created_at DESC, id DESC").
		Offset(opts.Skip).Limit(listLimit(opts.Limit)).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// Update applies a partial update and records the resulting field diff.
func (s *QuoteService) Update(tc workflow.TenantContext, id uint, in QuoteUpdate) (*model.Quote, error) {
	var quote *model.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		quote, err = getQuote(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		before := quoteSnapshot(quote)

		if in.CustomerID != nil {
			quote.CustomerID = *in.CustomerID
		}
		if in.DealID != nil {
			quote.DealID = in.DealID
		}
		if in.Title != nil {
			quote.Title = *in.Title
		}
		if in.Description != nil {
			quote.Description = *in.Description
		}
		if in.LineItems != nil {
			quote.LineItems = *in.LineItems
		}
		if in.TotalAmount != nil {
			quote.TotalAmount = *in.TotalAmount
		}
		if in.Currency != nil {
			quote.Currency = *in.Currency
		}
		if in.PaymentTerms != nil {
			quote.PaymentTerms = *in.PaymentTerms
		}
		if in.DeliveryTerms != nil {
			quote.DeliveryTerms = *in.DeliveryTerms
		}
		if in.ValidityDays != nil {
			quote.ValidityDays = *in.ValidityDays
		}
		if in.IssueDate != nil {
			quote.IssueDate = in.IssueDate
		}
		if in.ExpiryDate != nil {
			quote.ExpiryDate = in.ExpiryDate
		}
		if in.Notes != nil {
			quote.Notes = *in.Notes
		}

		if err := tx.Save(quote).Error; err != nil {
			return err
		}

		changes := workflow.Diff(before, quoteSnapshot(quote))
		if len(changes) == 0 {
			return nil
		}
		return logActivity(tx, tc.CompanyID, quote.DealID, tc.Actor,
			workflow.ActionUpdated, workflow.EntityQuote, quote.ID, changes)
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// ChangeStatus moves the quote through its state machine and cascades onto
// the linked deal where a rule applies, all in one transaction.
func (s *QuoteService) ChangeStatus(tc workflow.TenantContext, id uint, newStatus workflow.QuoteStatus) (*model.Quote, error) {
	var quote *model.Quote
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		quote, err = getQuote(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		if err := workflow.Validate(workflow.EntityQuote, string(quote.Status), string(newStatus)); err != nil {
			return err
		}

		old := quote.Status
		quote.Status = newStatus
		if err := tx.Save(quote).Error; err != nil {
			return err
		}

		if err := logActivity(tx, tc.CompanyID, quote.DealID, tc.Actor,
			workflow.ActionStatusChanged, workflow.EntityQuote, quote.ID,
			statusChange(string(old), string(newStatus))); err != nil {
			return err
		}

		if quote.DealID != nil {
			return cascadeDeal(tx, tc.CompanyID, *quote.DealID, workflow.EntityQuote, string(newStatus))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return quote, nil
}

// Delete soft-deletes the quote, keeping its audit trail readable.
func (s *QuoteService) Delete(tc workflow.TenantContext, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		quote, err := getQuote(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		now := time.Now()
		quote.DeletedAt = &now
		if err := tx.Save(quote).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, quote.DealID, tc.Actor,
			workflow.ActionDeleted, workflow.EntityQuote, quote.ID, nil)
	})
}

func quoteSnapshot(q *model.Quote) map[string]any {
	return map[string]any{
		"customer_id":    q.CustomerID,
		"deal_id":        q.DealID,
		"title":          q.Title,
		"description":    q.Description,
		"total_amount":   q.TotalAmount,
		"currency":       q.Currency,
		"payment_terms":  q.PaymentTerms,
		"delivery_terms": q.DeliveryTerms,
		"validity_days":  q.ValidityDays,
		"notes":          q.Notes,
	}
}
