package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"studie-planner/pkg/jwt"
	"studie-planner/pkg/response"
)

// Context keys set by JWTAuth.
const (
	CtxUserID      = "user_id"
	CtxRole        = "role"
	CtxHouseholdID = "household_id"
)

// JWTAuth verifies the bearer token from the Authorization header. Calendar
// clients cannot send headers, so an access_token query parameter is
// accepted when the header is absent.
func JWTAuth(jwtMgr *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				response.Unauthorized(c, 10002, "ongeldige Authorization-header")
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			token = c.Query("access_token")
		}
		if token == "" {
			response.Unauthorized(c, 10002, "niet ingelogd")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(token)
		if err != nil {
			response.Unauthorized(c, 10002, "token ongeldig of verlopen")
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxHouseholdID, claims.HouseholdID)

		c.Next()
	}
}

// RoleAuth only lets the given roles through.
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(CtxRole)
		if userRole == "" {
			response.Unauthorized(c, 10002, "niet ingelogd")
			c.Abort()
			return
		}

		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "geen toegang")
		c.Abort()
	}
}
