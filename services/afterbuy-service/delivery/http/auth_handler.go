package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ahhussein/afterbuy-sdk/contracts/afterbuy_service"
	"github.com/ahhussein/afterbuy-sdk/pkg/api"
	"github.com/ahhussein/afterbuy-sdk/pkg/jwt"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/pkg/validator"
)

// AuthHandler handles token administration
type AuthHandler struct {
	// JWTClient validates and revokes tokens
	JWTClient jwt.JWTClient
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
}

// NewAuthHandler creates a new instance of AuthHandler
func NewAuthHandler(jwtClient jwt.JWTClient, appLogger logger.LoggerInterface) *AuthHandler {
	return &AuthHandler{
		JWTClient: jwtClient,
		Logger:    appLogger,
		API:       api.New(),
	}
}

// RevokeHandler revokes the token in the body, or the caller's own token
// when the body is empty. Revoking another token requires the tokens:revoke scope.
func (h *AuthHandler) RevokeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req afterbuy_service.RevokeTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.API.BadRequest(ctx, w, "Invalid request body")
		return
	}
	if validationFailed(ctx, w, h.API, h.Logger, validator.ValidateStruct(&req)) {
		return
	}

	token := bearerFromContext(ctx)
	if req.Token != "" && req.Token != token {
		claims, ok := ClaimsFromContext(ctx)
		if !ok || !claims.HasScope(ScopeTokensRevoke) {
			h.API.Forbidden(ctx, w, "Access denied: token lacks scope "+ScopeTokensRevoke)
			return
		}
		token = req.Token
	}

	if err := h.JWTClient.RevokeToken(ctx, token); err != nil {
		switch {
		case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrInvalidTokenType):
			h.API.BadRequest(ctx, w, "Token cannot be revoked")
		case errors.Is(err, jwt.ErrNoStoreConfigured):
			h.API.Error(ctx, w, http.StatusNotImplemented, &api.Error{Code: api.CodeInternal, Message: "Token revocation is disabled"})
		default:
			h.Logger.ErrorContext(ctx, "Failed to revoke token", "error", err)
			h.API.InternalServerError(ctx, w, "Failed to revoke token")
		}
		return
	}

	h.Logger.InfoContext(ctx, "Token revoked")
	h.API.Success(ctx, w, map[string]bool{"revoked": true})
}
