// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookkeeping/backend/internal/application/adapter"
	domainerror "github.com/bookkeeping/backend/internal/domain/error"
)

type stubTokenService struct {
	claims *adapter.TokenClaims
	err    error
}

func (s stubTokenService) ValidateAccessToken(context.Context, string) (*adapter.TokenClaims, error) {
	return s.claims, s.err
}

func newTestEngine(tokens adapter.TokenService, limiter *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	handlers := []gin.HandlerFunc{NewAuthMiddleware(tokens).Authenticate()}
	if limiter != nil {
		handlers = append(handlers, limiter.Middleware())
	}
	handlers = append(handlers, func(c *gin.Context) {
		companyID, ok := GetCompanyIDFromContext(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, companyID.String())
	})
	engine.GET("/protected", handlers...)
	return engine
}

func doRequest(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestAuthenticate(t *testing.T) {
	companyID := uuid.New()
	valid := stubTokenService{claims: &adapter.TokenClaims{UserID: uuid.New(), CompanyID: companyID}}

	tests := []struct {
		name           string
		tokens         adapter.TokenService
		authorization  string
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "valid token",
			tokens:         valid,
			authorization:  "Bearer token",
			expectedStatus: http.StatusOK,
			expectedBody:   companyID.String(),
		},
		{
			name:           "missing header",
			tokens:         valid,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   string(domainerror.ErrCodeMissingToken),
		},
		{
			name:           "not a bearer token",
			tokens:         valid,
			authorization:  "Basic abc",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   string(domainerror.ErrCodeInvalidToken),
		},
		{
			name:           "expired token",
			tokens:         stubTokenService{err: domainerror.ErrExpiredToken},
			authorization:  "Bearer token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   string(domainerror.ErrCodeExpiredToken),
		},
		{
			name:           "token without company",
			tokens:         stubTokenService{err: domainerror.ErrMissingTenant},
			authorization:  "Bearer token",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   string(domainerror.ErrCodeMissingTenant),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(newTestEngine(tt.tokens, nil), tt.authorization)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %q, got %s", tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestRateLimiter_PerCompany(t *testing.T) {
	companyID := uuid.New()
	otherCompanyID := uuid.New()
	limiter := NewRateLimiterWithConfig(2, time.Minute)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	engine := newTestEngine(stubTokenService{claims: &adapter.TokenClaims{CompanyID: companyID}}, limiter)
	otherEngine := newTestEngine(stubTokenService{claims: &adapter.TokenClaims{CompanyID: otherCompanyID}}, limiter)

	for i := 0; i < 2; i++ {
		if rec := doRequest(engine, "Bearer token"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
	if rec := doRequest(engine, "Bearer token"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429 after the limit, got %d", rec.Code)
	}
	if rec := doRequest(otherEngine, "Bearer token"); rec.Code != http.StatusOK {
		t.Errorf("other companies have their own budget, got %d", rec.Code)
	}

	now = now.Add(2 * time.Minute)
	if rec := doRequest(engine, "Bearer token"); rec.Code != http.StatusOK {
		t.Errorf("expected the window to reset, got %d", rec.Code)
	}

	limiter.Cleanup()
	if len(limiter.entries) != 1 {
		t.Errorf("expected expired entries to be removed, %d left", len(limiter.entries))
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiterWithConfig(0, time.Minute)
	engine := newTestEngine(stubTokenService{claims: &adapter.TokenClaims{CompanyID: uuid.New()}}, limiter)

	for i := 0; i < 20; i++ {
		if rec := doRequest(engine, "Bearer token"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, rec.Code)
		}
	}
}
