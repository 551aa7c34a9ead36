package handler

import (
	"net/http"

	"tradeflow-service/internal/service"
	"tradeflow-service/pkg/database"
	"tradeflow-service/pkg/logger"
	"tradeflow-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateCustomer handles POST /api/customers
func CreateCustomer(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	var req service.CustomerCreate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	customer, err := service.NewCustomerService(database.GetDB()).Create(tc, req)
	if err != nil {
		return serviceError(c, "customer", err)
	}

	logger.FromEcho(c).Info("Customer created",
		zap.Uint("customer_id", customer.ID),
		zap.Uint("company_id", tc.CompanyID))
	prometheus.RecordOperation("customer", "create")

	return c.JSON(http.StatusCreated, customer)
}

// GetCustomer handles GET /api/customers/:id
func GetCustomer(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	customer, err := service.NewCustomerService(database.GetDB()).Get(tc, id)
	if err != nil {
		return serviceError(c, "customer", err)
	}
	return c.JSON(http.StatusOK, customer)
}

// ListCustomers handles GET /api/customers
func ListCustomers(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	skip, limit := pagination(c)
	customers, total, err := service.NewCustomerService(database.GetDB()).List(tc, skip, limit)
	if err != nil {
		return serviceError(c, "customer", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": customers,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// UpdateCustomer handles PUT /api/customers/:id
func UpdateCustomer(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	var req service.CustomerUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	customer, err := service.NewCustomerService(database.GetDB()).Update(tc, id, req)
	if err != nil {
		return serviceError(c, "customer", err)
	}

	prometheus.RecordOperation("customer", "update")
	return c.JSON(http.StatusOK, customer)
}

// DeleteCustomer handles DELETE /api/customers/:id
func DeleteCustomer(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer id"})
	}

	if err := service.NewCustomerService(database.GetDB()).Delete(tc, id); err != nil {
		return serviceError(c, "customer", err)
	}

	prometheus.RecordOperation("customer", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "customer deleted"})
}
