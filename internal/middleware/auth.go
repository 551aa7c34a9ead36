package middleware

import (
	"net/http"
	"strings"

	"tradeflow-service/pkg/jwtutil"
	"tradeflow-service/pkg/logger"
	"tradeflow-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthMiddleware validates the JWT token and extracts company context
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromEcho(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		claims, err := jwtutil.ValidateToken(parts[1])
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		if claims.CompanyID == nil {
			log.Warn("JWT token does not contain company_id")
			prometheus.RecordTenantContextMissing()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "company_id is required in the token"})
		}

		c.Set("company_id", *claims.CompanyID)
		c.Set("company_name", claims.CompanyName)
		c.Set("user_role", claims.Role)
		log.Debug("Request authenticated with company context",
			zap.Uint("user_id", claims.UserID),
			zap.Uint("company_id", *claims.CompanyID))

		return next(c)
	}
}

// GetCompanyIDFromContext retrieves the company ID from the context.
// Returns 0, false if company ID is not found.
func GetCompanyIDFromContext(c echo.Context) (uint, bool) {
	companyID, ok := c.Get("company_id").(uint)
	return companyID, ok
}
