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

// CreateQuote handles POST /api/quotes
func CreateQuote(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	var req service.QuoteCreate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	quote, err := service.NewQuoteService(database.GetDB()).Create(tc, req)
	if err != nil {
		return serviceError(c, "quote", err)
	}

	logger.FromEcho(c).Info("Quote created",
		zap.Uint("quote_id", quote.ID),
		zap.String("quote_number", quote.QuoteNumber),
		zap.Uint("company_id", tc.CompanyID))
	prometheus.RecordOperation("quote", "create")

	return c.JSON(http.StatusCreated, quote)
}

// GetQuote handles GET /api/quotes/:id
func GetQuote(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quote id"})
	}

	quote, err := service.NewQuoteService(database.GetDB()).Get(tc, id)
	if err != nil {
		return serviceError(c, "quote", err)
	}
	return c.JSON(http.StatusOK, quote)
}

// ListQuotes handles GET /api/quotes
func ListQuotes(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	skip, limit := pagination(c)
	opts := service.QuoteListOptions{
		Skip:       skip,
		Limit:      limit,
		Status:     c.QueryParam("status"),
		CustomerID: queryUint(c, "customer_id"),
		DealID:     queryUint(c, "deal_id"),
	}

	quotes, total, err := service.NewQuoteService(database.GetDB()).List(tc, opts)
	if err != nil {
		return serviceError(c, "quote", err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": quotes,
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// UpdateQuote handles PUT /api/quotes/:id
func UpdateQuote(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quote id"})
	}

	var req service.QuoteUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request payload"})
	}

	quote, err := service.NewQuoteService(database.GetDB()).Update(tc, id, req)
	if err != nil {
		return serviceError(c, "quote", err)
	}

	prometheus.RecordOperation("quote", "update")
	return c.JSON(http.StatusOK, quote)
}

// ChangeQuoteStatus handles PATCH /api/quotes/:id/status
func ChangeQuoteStatus(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quote id"})
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}

	quote, err := service.NewQuoteService(database.GetDB()).
		ChangeStatus(tc, id, workflow.QuoteStatus(req.Status))
	if err != nil {
		return serviceError(c, "quote", err)
	}

	logger.FromEcho(c).Info("Quote status changed",
		zap.Uint("quote_id", quote.ID),
		zap.String("status", string(quote.Status)))
	prometheus.RecordOperation("quote", "status_change")

	return c.JSON(http.StatusOK, quote)
}

// DeleteQuote handles DELETE /api/quotes/:id
func DeleteQuote(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid quote id"})
	}

	if err := service.NewQuoteService(database.GetDB()).Delete(tc, id); err != nil {
		return serviceError(c, "quote", err)
	}

	prometheus.RecordOperation("quote", "delete")
	return c.JSON(http.StatusOK, echo.Map{"message": "quote deleted"})
}
