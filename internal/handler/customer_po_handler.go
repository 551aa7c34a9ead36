package handler

import (
	"net/http"

	"tradeflow-service/internal/service"
	"tradeflow-service/internal/workflow"
	"tradeflow-service/pkg/database"
	"tradeflow-service/pkg/logger"
	"tradeflow-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CreateCustomerPO handles POST /api/customer-pos
func CreateCustomerPO(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	var req service.CustomerPOCreate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	po, err := service.NewCustomerPOService(database.GetDB()).Create(tc, req)
	if err != nil {
		return serviceError(c, "customer_po", err)
	}

	logger.FromEcho(c).Info("Customer PO recorded",
		zap.Uint("po_id", po.ID),
		zap.String("internal_ref", po.InternalRef),
		zap.Uint("company_id", tc.CompanyID))
	prometheus.RecordOperation("customer_po", "create")

	return c.JSON(http.StatusCreated, po)
}

// GetCustomerPO handles GET /api/customer-pos/:id
func GetCustomerPO(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer po id"})
	}

	po, err := service.NewCustomerPOService(database.GetDB()).Get(tc, id)
	if err != nil {
		return serviceError(c, "customer_po", err)
	}
	return c.JSON(http.StatusOK, po)
}

// ListCustomerPOs handles GET /api/customer-pos
func ListCustomerPOs(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	skip, limit := pagination(c)
	opts := service.CustomerPOListOptions{
		Skip:       skip,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		CustomerID: queryUint(c, "customer_id"),
		DealID:     queryUint(c, "deal_id"),
		QuoteID:    queryUint(c, "quote_id"),
	}

	pos, total, err := service.NewCustomerPOService(database.GetDB()).List(tc, opts)
	if err != nil {
		return serviceError(c, "customer_po", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": pos,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// UpdateCustomerPO handles PUT /api/customer-pos/:id
func UpdateCustomerPO(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer po id"})
	}

	var req service.CustomerPOUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	po, err := service.NewCustomerPOService(database.GetDB()).Update(tc, id, req)
	if err != nil {
		return serviceError(c, "customer_po", err)
	}

	prometheus.RecordOperation("customer_po", "update")
	return c.JSON(http.StatusOK, po)
}

// ChangeCustomerPOStatus handles PATCH /api/customer-pos/:id/status
func ChangeCustomerPOStatus(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer po id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	po, err := service.NewCustomerPOService(database.GetDB()).
		ChangeStatus(tc, id, workflow.CustomerPOStatus(req.Status))
	if err != nil {
		return serviceError(c, "customer_po", err)
	}

	logger.FromEcho(c).Info("Customer PO status changed",
		zap.Uint("po_id", po.ID),
		zap.String("status", string(po.Status)))
	prometheus.RecordOperation("customer_po", "status_change")

	return c.JSON(http.StatusOK, po)
}

// DeleteCustomerPO handles DELETE /api/customer-pos/:id
func DeleteCustomerPO(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid customer po id"})
	}

	if err := service.NewCustomerPOService(database.GetDB()).Delete(tc, id); err != nil {
		return serviceError(c, "customer_po", err)
	}

	prometheus.RecordOperation("customer_po", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "customer po deleted"})
}
