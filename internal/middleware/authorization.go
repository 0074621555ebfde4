// Package middleware provides role-based authorization middleware.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
	"github.com/parceltrack/parcel-service/internal/i18n"
)

// GetClaims returns the authenticated user's claims set by JWTAuth.
func GetClaims(c *gin.Context) *dto.Claims {
	claimsInterface, exists := c.Get("user_claims")
	if !exists {
		return nil
	}
	claims, ok := claimsInterface.(*dto.Claims)
	if !ok {
		return nil
	}
	return claims
}

// RequireRole returns a middleware that checks if the user holds one of
// the given roles. Roles are a closed set; there is no per-role
// permission configuration. This middleware must be used after JWTAuth.
func RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := i18n.GetLocale(c)
		requestID := GetRequestID(c)

		claims := GetClaims(c)
		if claims == nil {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyUnauthorized, locale)
			errorResp := dto.NewError(dto.ErrCodeUnauthorized, message).
				WithRequestID(requestID)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResp)
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		message := i18n.GetTranslator().Translate(i18n.ErrKeyForbidden, locale)
		errorResp := dto.NewError(dto.ErrCodeForbidden, message).
			WithRequestID(requestID)
		c.AbortWithStatusJSON(http.StatusForbidden, errorResp)
	}
}
