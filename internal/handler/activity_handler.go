package handler

import (
	"net/http"
	"strconv"

	"tradeflow-service/internal/service"
	"tradeflow-service/internal/workflow"
	"tradeflow-service/pkg/database"

	"github.com/labstack/echo/v4"
)

// ListActivity handles GET /api/activity?entity_type=&entity_id=
func ListActivity(c echo.Context) error {
	tc, ok := tenantContext(c)
	if !ok {
		return missingTenant(c)
	}

	entityType := c.QueryParam("entity_type")
	if !workflow.KnownEntity(entityType) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown entity_type"})
	}

	entityID, err := strconv.ParseUint(c.QueryParam("entity_id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "entity_id is required"})
	}

	skip, limit := pagination(c)
	logs, total, err := service.NewActivityService(database.GetDB()).
		ListForEntity(tc, workflow.EntityKind(entityType), uint(entityID), skip, limit)
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
