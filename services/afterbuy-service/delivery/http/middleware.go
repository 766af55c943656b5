// Package http contains HTTP delivery implementations for the application
package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ahhussein/afterbuy-sdk/pkg/api"
	"github.com/ahhussein/afterbuy-sdk/pkg/jwt"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/metrics"
)

// Scopes granted to API clients
const (
	ScopeCatalogRead  = "catalog:read"
	ScopeOrdersRead   = "orders:read"
	ScopeOrdersWrite  = "orders:write"
	ScopeOrdersSync   = "orders:sync"
	ScopeTokensRevoke = "tokens:revoke"
)

// AllScopes lists every scope, e.g. for operator tokens
var AllScopes = []string{ScopeCatalogRead, ScopeOrdersRead, ScopeOrdersWrite, ScopeOrdersSync, ScopeTokensRevoke}

type claimsKey struct{}

// ClaimsFromContext returns the claims stored by JWTMiddleware
func ClaimsFromContext(ctx context.Context) (*jwt.TokenClaims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwt.TokenClaims)
	return claims, ok
}

type bearerKey struct{}

func bearerFromContext(ctx context.Context) string {
	token, _ := ctx.Value(bearerKey{}).(string)
	return token
}

// LoggingMiddleware adds detailed request logging
// The middleware logs method, path, status, duration and client information of each request
func LoggingMiddleware(logger logger.LoggerInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.InfoContext(r.Context(), "HTTP request completed",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start).String(),
				"remote_addr", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		})
	}
}

// MetricsMiddleware records request counts and latency by route pattern
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveHTTP(r.Method, route, status, time.Since(start))
		})
	}
}

// JWTMiddleware validates JWT tokens for protected routes
// It extracts the Authorization header, validates the token, and adds the claims to the request context
// Returns a 401 status code for missing, invalid or revoked tokens
func JWTMiddleware(jwtClient jwt.JWTClient, appLogger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				appLogger.WarnContext(ctx, "Missing Authorization header")
				apiClient.Unauthorized(ctx, w, "Missing Authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if len(authHeader) <= len(bearerPrefix) || !strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
				appLogger.WarnContext(ctx, "Invalid Authorization header format")
				apiClient.Unauthorized(ctx, w, "Invalid Authorization header format")
				return
			}

			tokenString := strings.TrimSpace(authHeader[len(bearerPrefix):])

			claims, err := jwtClient.ValidateAccessToken(ctx, tokenString)
			if err != nil {
				appLogger.WarnContext(ctx, "Invalid access token", "error", err)
				apiClient.Unauthorized(ctx, w, "Invalid access token")
				return
			}

			ctx = context.WithValue(ctx, claimsKey{}, claims)
			ctx = context.WithValue(ctx, bearerKey{}, tokenString)
			ctx = logger.ContextWithAttrs(ctx, "client_id", claims.ClientID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireScope rejects requests whose token lacks scope
// It should be used after JWTMiddleware
// Returns a 403 status code if the scope is missing
func RequireScope(scope string, appLogger logger.LoggerInterface, apiClient api.Api) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			claims, ok := ClaimsFromContext(ctx)
			if !ok || !claims.HasScope(scope) {
				appLogger.WarnContext(ctx, "Access denied: missing scope", "required_scope", scope)
				apiClient.Forbidden(ctx, w, "Access denied: token lacks scope "+scope)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
