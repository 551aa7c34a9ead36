package handler

import (
	"errors"
	"net/http"
	"strconv"

	"tradeflow-service/internal/workflow"
	"tradeflow-service/pkg/logger"
	"tradeflow-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// tenantContext builds the engine's tenant context from the claims the auth
// middleware stored on the request.
func tenantContext(c echo.Context) (workflow.TenantContext, bool) {
	companyID, ok := c.Get("company_id").(uint)
	if !ok {
		return workflow.TenantContext{}, false
	}

	actor := workflow.UnknownActor()
	if userID, ok := c.Get("user_id").(uint); ok && userID != 0 {
		actor = workflow.UserActor(userID)
	}

	return workflow.TenantContext{CompanyID: companyID, Actor: actor}, true
}

func missingTenant(c echo.Context) error {
	logger.FromEcho(c).Warn("Missing company_id in context")
	prometheus.RecordTenantContextMissing()
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "company context required"})
}

// serviceError maps engine errors onto HTTP responses. NotFound deliberately
// covers foreign-tenant and soft-deleted rows as well.
func serviceError(c echo.Context, entity string, err error) error {
	log := logger.FromEcho(c)

	var invalid *workflow.InvalidTransitionError
	var validation *workflow.ValidationError
	switch {
	case errors.Is(err, workflow.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": entity + " not found"})
	case errors.As(err, &invalid):
		log.Warn("Rejected status transition",
			zap.String("entity", entity),
			zap.String("current", invalid.Current),
			zap.String("requested", invalid.Requested))
		prometheus.RecordInvalidTransition(entity)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.As(err, &validation):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	log.Error("Service call failed", zap.String("entity", entity), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// pagination parses skip/limit query params with the engine's defaults.
func pagination(c echo.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.QueryParam("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	return skip, limit
}

func queryUint(c echo.Context, name string) *uint {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	u := uint(v)
	return &u
}
