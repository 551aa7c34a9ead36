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

// CreateDeal handles POST /api/deals
func CreateDeal(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	var req service.DealCreate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	deal, err := service.NewDealService(database.GetDB()).Create(tc, req)
	if err != nil {
		return serviceError(c, "deal", err)
	}

	logger.FromEcho(c).Info("Deal created",
		zap.Uint("deal_id", deal.ID),
		zap.String("deal_number", deal.DealNumber),
		zap.Uint("company_id", tc.CompanyID))
	prometheus.RecordOperation("deal", "create")

	return c.JSON(http.StatusCreated, deal)
}

// GetDeal handles GET /api/deals/:id
func GetDeal(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deal id"})
	}

	deal, err := service.NewDealService(database.GetDB()).Get(tc, id)
	if err != nil {
		return serviceError(c, "deal", err)
	}
	return c.JSON(http.StatusOK, deal)
}

// ListDeals handles GET /api/deals
func ListDeals(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	skip, limit := pagination(c)
	opts := service.DealListOptions{
		Skip:       skip,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		CustomerID: queryUint(c, "customer_id"),
	}

	deals, total, err := service.NewDealService(database.GetDB()).List(tc, opts)
	if err != nil {
		return serviceError(c, "deal", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": deals,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// UpdateDeal handles PUT /api/deals/:id
func UpdateDeal(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deal id"})
	}

	var req service.DealUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	deal, err := service.NewDealService(database.GetDB()).Update(tc, id, req)
	if err != nil {
		return serviceError(c, "deal", err)
	}

	prometheus.RecordOperation("deal", "update")
	return c.JSON(http.StatusOK, deal)
}

// ChangeDealStatus handles PATCH /api/deals/:id/status
func ChangeDealStatus(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deal id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	deal, err := service.NewDealService(database.GetDB()).
		ChangeStatus(tc, id, workflow.DealStatus(req.Status))
	if err != nil {
		return serviceError(c, "deal", err)
	}

	logger.FromEcho(c).Info("Deal status changed",
		zap.Uint("deal_id", deal.ID),
		zap.String("status", string(deal.Status)))
	prometheus.RecordOperation("deal", "status_change")

	return c.JSON(http.StatusOK, deal)
}

// DeleteDeal handles DELETE /api/deals/:id
func DeleteDeal(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deal id"})
	}

	if err := service.NewDealService(database.GetDB()).Delete(tc, id); err != nil {
		return serviceError(c, "deal", err)
	}

	prometheus.RecordOperation("deal", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "deal deleted"})
}

// ListDealActivity handles GET /api/deals/:id/activity
func ListDealActivity(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid deal id"})
	}

	skip, limit := pagination(c)
	logs, total, err := service.NewActivityService(database.GetDB()).
		ListForDeal(tc, id, skip, limit)
	if err != nil {
		return serviceError(c, "activity", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": logs,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}
