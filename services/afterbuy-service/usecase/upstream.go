package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahhussein/afterbuy-sdk/pkg/afterbuy"
	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/metrics"
)

// Outcomes recorded for upstream calls
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
	OutcomeRejected = "rejected"
)

// upstream turns afterbuy results into domain errors and records the outcome
type upstream struct {
	metrics *metrics.Metrics
	logger  logger.LoggerInterface
}

// unwrap returns the decoded response or the domain error describing why
// there is none. remote exposes the error list of the response body.
func unwrap[T any, PT interface {
	*T
	afterbuy.Response
}](ctx context.Context, u upstream, operation string, res afterbuy.Result[T], err error, remote func(*T) afterbuy.ResultErrors) (*T, error) {
	var invalid *afterbuy.InvalidArgumentError
	if errors.As(err, &invalid) {
		u.metrics.IncUpstreamCall(operation, OutcomeInvalid)
		u.logger.WarnContext(ctx, "Afterbuy call rejected before sending", "operation", operation, "fields", invalid.Fields)
		return nil, domain.NewInvalidQueryError(invalid.Fields)
	}
	if err != nil {
		u.metrics.IncUpstreamCall(operation, OutcomeFailed)
		return nil, fmt.Errorf("failed to build %s request: %w", operation, err)
	}

	if !res.OK() {
		u.metrics.IncUpstreamCall(operation, OutcomeFailed)
		kind := "unknown"
		if res.Failure != nil {
			kind = res.Failure.Kind.String()
		}
		u.logger.WarnContext(ctx, "Afterbuy call returned no response", "operation", operation, "failure", kind)
		return nil, fmt.Errorf("%s %s failure: %w", operation, kind, domain.ErrUpstreamUnavailable)
	}

	if PT(res.Response).Header().Failed() {
		u.metrics.IncUpstreamCall(operation, OutcomeRejected)
		apiErrors := remote(res.Response).Errors
		messages := make([]string, 0, len(apiErrors))
		for _, e := range apiErrors {
			messages = append(messages, fmt.Sprintf("%d: %s", e.Code, e.Description))
		}
		u.logger.WarnContext(ctx, "Afterbuy rejected the call", "operation", operation, "errors", messages)
		return nil, domain.NewUpstreamRejectedError(messages)
	}

	u.metrics.IncUpstreamCall(operation, OutcomeOK)
	return res.Response, nil
}
