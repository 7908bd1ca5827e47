package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tienda/backend/internal/domain/identity"
	"github.com/tienda/backend/internal/infrastructure/auth"
)

func newPermissionTestContext(t *testing.T, claims *auth.Claims) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if claims != nil {
		c.Set(JWTClaimsKey, claims)
	}
	return c, w
}

func TestRequireManagement_AllowsManagementCaller(t *testing.T) {
	claims := &auth.Claims{
		UserID:       "00000000-0000-0000-0000-000000000001",
		Role:         identity.RoleManagement,
		Capabilities: []string{identity.CapabilityCustomer, identity.CapabilityManagement},
	}
	c, w := newPermissionTestContext(t, claims)

	RequireManagement()(c)

	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireManagement_RejectsCustomer(t *testing.T) {
	claims := &auth.Claims{
		UserID:       "00000000-0000-0000-0000-000000000002",
		Role:         identity.RoleCustomer,
		Capabilities: []string{identity.CapabilityCustomer},
	}
	c, w := newPermissionTestContext(t, claims)

	RequireManagement()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
}

func TestRequireManagement_RejectsUnauthenticated(t *testing.T) {
	c, w := newPermissionTestContext(t, nil)

	RequireManagement()(c)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAnyCapability(t *testing.T) {
	claims := &auth.Claims{
		UserID:       "00000000-0000-0000-0000-000000000003",
		Capabilities: []string{identity.CapabilityCustomer},
	}

	c, w := newPermissionTestContext(t, claims)
	RequireAnyCapability(identity.CapabilityManagement, identity.CapabilityCustomer)(c)
	assert.False(t, c.IsAborted())
	assert.Equal(t, http.StatusOK, w.Code)

	c, w = newPermissionTestContext(t, claims)
	RequireAnyCapability(identity.CapabilityManagement)(c)
	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestIsManagement(t *testing.T) {
	mgmt, _ := newPermissionTestContext(t, &auth.Claims{
		Capabilities: []string{identity.CapabilityCustomer, identity.CapabilityManagement},
	})
	assert.True(t, IsManagement(mgmt))

	customer, _ := newPermissionTestContext(t, &auth.Claims{
		Capabilities: []string{identity.CapabilityCustomer},
	})
	assert.False(t, IsManagement(customer))

	anon, _ := newPermissionTestContext(t, nil)
	assert.False(t, IsManagement(anon))
}
