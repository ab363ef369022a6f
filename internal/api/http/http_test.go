package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/technovapc/store-manager/internal/analytics"
	"github.com/technovapc/store-manager/internal/apisrv/financial"
	"github.com/technovapc/store-manager/internal/auth/jwt"
	"github.com/technovapc/store-manager/internal/entity"
)

type emptyOrderSource struct{}

func (emptyOrderSource) GetOrdersInRange(_ context.Context, _, _ time.Time, _ ...entity.OrderStatus) ([]entity.OrderRecord, error) {
	return nil, nil
}

func (emptyOrderSource) GetRecentQualifyingOrders(_ context.Context, _ int) ([]entity.OrderRecord, error) {
	return nil, nil
}

func (emptyOrderSource) GetMonthlyRevenueHistory(_ context.Context, _, _ time.Time) ([]entity.MonthlyRevenue, error) {
	return nil, nil
}

func newTestHandler(t *testing.T) (http.Handler, *jwtauth.JWTAuth) {
	t.Helper()
	auth := jwtauth.New("HS256", []byte("test-secret"), nil)
	s := New(&Config{Port: "0", RequestsPerMinute: 1000}, auth)
	svc := analytics.New(emptyOrderSource{}, analytics.Config{})
	return s.router(financial.New(svc), nil), auth
}

func TestFinancialRequiresToken(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/financial/revenue", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFinancialRejectsGarbageToken(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/financial/revenue", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFinancialRequiresAdminRole(t *testing.T) {
	handler, auth := newTestHandler(t)

	token, err := jwt.NewTokenWithSubject(auth, time.Hour, "viewer", "")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/financial/revenue", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFinancialAdminAllowed(t *testing.T) {
	handler, auth := newTestHandler(t)

	token, err := jwt.NewTokenWithSubject(auth, time.Hour, "boss", jwt.RoleAdmin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/financial/revenue?period=week", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthIsPublic(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
