package middleware

import (
	"net/http"
	"strings"

	"fleet-service/internal/authz"
	"fleet-service/pkg/jwtutil"
	"fleet-service/pkg/logger"
	"fleet-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Auth builds the per-route identity resolver for one operation. The rule
// comes from the policy table resolved at startup: public operations skip
// resolution entirely, everything else requires a valid bearer token and,
// when the rule names roles, a matching role. Failure is terminal for the
// request; no business logic runs after a rejection.
func Auth(jwt *jwtutil.JWTUtil, policy authz.Policy, operation string) echo.MiddlewareFunc {
	rule := policy.Rule(operation)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if rule.Public {
				return next(c)
			}

			log := logger.FromContext(c)

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				log.Error("Missing Authorization header", zap.String("operation", operation))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "AUTH.UNAUTHORIZED",
				})
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				log.Error("Invalid Authorization header format", zap.String("operation", operation))
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "AUTH.UNAUTHORIZED",
				})
			}

			claims, err := jwt.ValidateToken(parts[1])
			if err != nil {
				log.Error("Invalid JWT token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"statusCode": http.StatusUnauthorized,
					"message":    "AUTH.UNAUTHORIZED",
				})
			}

			if err := authz.CheckRole(claims, rule); err != nil {
				log.Error("Role not allowed for operation",
					zap.String("operation", operation),
					zap.String("role", claims.Role),
					zap.String("user", claims.Name))
				prometheus.RecordAuthError("forbidden")
				return c.JSON(http.StatusForbidden, echo.Map{
					"statusCode": http.StatusForbidden,
					"message":    "AUTH.FORBIDDEN",
				})
			}

			authz.SetClaims(c, claims)

			return next(c)
		}
	}
}
