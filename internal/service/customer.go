package service

import (
	"errors"
	"time"

	"tradeflow-service/internal/model"
	"tradeflow-service/internal/workflow"

	"gorm.io/gorm"
)

// CustomerService owns customer CRUD. Customers have no state machine, but
// their mutations feed the same audit trail as the workflow documents.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// CustomerCreate is the payload for creating a customer.
type CustomerCreate struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Country       string `json:"country"`
	PaymentTerms  string `json:"payment_terms"`
	Notes         string `json:"notes"`
}

// CustomerUpdate is a partial update; nil fields are left untouched.
type CustomerUpdate struct {
	Name          *string `json:"name"`
	ContactPerson *string `json:"contact_person"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
	Country       *string `json:"country"`
	PaymentTerms  *string `json:"payment_terms"`
	Notes         *string `json:"notes"`
}

// Create inserts a new customer for the caller's company.
func (s *CustomerService) Create(tc workflow.TenantContext, in CustomerCreate) (*model.Customer, error) {
	if in.Name == "" {
		return nil, workflow.Validationf("name is required")
	}

	var customer model.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		customer = model.Customer{
			CompanyID:     tc.CompanyID,
			Name:          in.Name,
			ContactPerson: in.ContactPerson,
			Email:         in.Email,
			Phone:         in.Phone,
			Address:       in.Address,
			Country:       in.Country,
			PaymentTerms:  in.PaymentTerms,
			Notes:         in.Notes,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, nil, tc.Actor,
			workflow.ActionCreated, workflow.EntityCustomer, customer.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// Get returns a live customer for the caller's company.
func (s *CustomerService) Get(tc workflow.TenantContext, id uint) (*model.Customer, error) {
	return getCustomer(s.db, tc.CompanyID, id)
}

func getCustomer(db *gorm.DB, companyID, id uint) (*model.Customer, error) {
	var customer model.Customer
	err := db.Where("id = ? AND company_id = ? AND deleted_at IS NULL", id, companyID).
		First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, workflow.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

// List returns the company's live customers, newest first, with the total.
func (s *CustomerService) List(tc workflow.TenantContext, skip, limit int) ([]model.Customer, int64, error) {
	query := s.db.Model(&model.Customer{}).
		Where("company_id = ? AND deleted_at IS NULL", tc.CompanyID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []model.Customer
	err := query.Order("created_at DESC, id DESC").
		Offset(skip).Limit(listLimit(limit)).
		Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// Update applies a partial update and records the resulting field diff.
func (s *CustomerService) Update(tc workflow.TenantContext, id uint, in CustomerUpdate) (*model.Customer, error) {
	var customer *model.Customer
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = getCustomer(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		before := customerSnapshot(customer)

		if in.Name != nil {
			customer.Name = *in.Name
		}
		if in.ContactPerson != nil {
			customer.ContactPerson = *in.ContactPerson
		}
		if in.Email != nil {
			customer.Email = *in.Email
		}
		if in.Phone != nil {
			customer.Phone = *in.Phone
		}
		if in.Address != nil {
			customer.Address = *in.Address
		}
		if in.Country != nil {
			customer.Country = *in.Country
		}
		if in.PaymentTerms != nil {
			customer.PaymentTerms = *in.PaymentTerms
		}
		if in.Notes != nil {
			customer.Notes = *in.Notes
		}

		if err := tx.Save(customer).Error; err != nil {
			return err
		}

		changes := workflow.Diff(before, customerSnapshot(customer))
		if len(changes) == 0 {
			return nil
		}
		return logActivity(tx, tc.CompanyID, nil, tc.Actor,
			workflow.ActionUpdated, workflow.EntityCustomer, customer.ID, changes)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete soft-deletes the customer.
func (s *CustomerService) Delete(tc workflow.TenantContext, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		customer, err := getCustomer(tx, tc.CompanyID, id)
		if err != nil {
			return err
		}

		now := time.Now()
		customer.DeletedAt = &now
		if err := tx.Save(customer).Error; err != nil {
			return err
		}

		return logActivity(tx, tc.CompanyID, nil, tc.Actor,
			workflow.ActionDeleted, workflow.EntityCustomer, customer.ID, nil)
	})
}

func customerSnapshot(c *model.Customer) map[string]any {
	return map[string]any{
		"name":           c.Name,
		"contact_person": c.ContactPerson,
		"email":          c.Email,
		"phone":          c.Phone,
		"address":        c.Address,
		"country":        c.Country,
		"payment_terms":  c.PaymentTerms,
		"notes":          c.Notes,
	}
}
