package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parceltrack/parcel-service/internal/domain/dto"
	"github.com/parceltrack/parcel-service/internal/domain/model"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func requireRoleRouter(claims *dto.Claims, roles ...model.UserRole) *gin.Engine {
	router := gin.New()
	router.GET("/protected", func(c *gin.Context) {
		if claims != nil {
			c.Set("user_claims", claims)
		}
		c.Next()
	}, RequireRole(roles...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireRole(t *testing.T) {
	operator := &dto.Claims{
		UserID: primitive.NewObjectID(),
		Role:   model.RoleOperator,
		HubID:  "hub-1",
	}

	tests := []struct {
		name     string
		claims   *dto.Claims
		roles    []model.UserRole
		wantCode int
	}{
		{"matching role", operator, []model.UserRole{model.RoleOperator}, http.StatusOK},
		{"one of several roles", operator, []model.UserRole{model.RoleOperator, model.RoleAdmin}, http.StatusOK},
		{"wrong role", operator, []model.UserRole{model.RoleAdmin}, http.StatusForbidden},
		{"no claims", nil, []model.UserRole{model.RoleOperator}, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := requireRoleRouter(tt.claims, tt.roles...)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestGetClaims(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, GetClaims(c))

	c.Set("user_claims", "not claims")
	assert.Nil(t, GetClaims(c))

	claims := &dto.Claims{Role: model.RoleAdmin}
	c.Set("user_claims", claims)
	assert.Equal(t, claims, GetClaims(c))
}
