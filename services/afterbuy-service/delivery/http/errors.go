package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/ahhussein/afterbuy-sdk/pkg/api"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain"
)

// writeError maps domain errors to API responses consistently
func writeError(ctx context.Context, w http.ResponseWriter, apiClient api.Api, appLogger logger.LoggerInterface, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		appLogger.ErrorContext(ctx, "Unexpected error", "error", err)
		apiClient.InternalServerError(ctx, w, "An unexpected error occurred")
		return
	}

	switch appErr.Code {
	case http.StatusUnprocessableEntity:
		apiClient.Error(ctx, w, appErr.Code, &api.Error{
			Code:    api.CodeValidation,
			Message: appErr.Message,
			Details: api.DetailsFromMap(appErr.Details),
		})
	case http.StatusBadGateway:
		appLogger.WarnContext(ctx, "Upstream call failed", "error", err)
		apiClient.Error(ctx, w, appErr.Code, &api.Error{
			Code:    api.CodeUpstreamUnavailable,
			Message: appErr.Message,
			Details: api.DetailsFromMap(appErr.Details),
		})
	case http.StatusNotFound:
		apiClient.NotFound(ctx, w, appErr.Message)
	case http.StatusConflict:
		apiClient.Error(ctx, w, appErr.Code, &api.Error{Code: api.CodeConflict, Message: appErr.Message})
	default:
		appLogger.ErrorContext(ctx, "Unhandled application error", "code", appErr.Code, "error", err)
		apiClient.InternalServerError(ctx, w, "An unexpected error occurred")
	}
}

// validationFailed writes a 422 response when fields is not empty
func validationFailed(ctx context.Context, w http.ResponseWriter, apiClient api.Api, appLogger logger.LoggerInterface, fields map[string]string) bool {
	if len(fields) == 0 {
		return false
	}
	appLogger.WarnContext(ctx, "Validation failed", "errors", fields)
	apiClient.ValidationError(ctx, w, api.DetailsFromMap(fields))
	return true
}
