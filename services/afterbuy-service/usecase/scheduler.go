package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/ahhussein/afterbuy-sdk/pkg/logger"
	"github.com/ahhussein/afterbuy-sdk/services/afterbuy-service/domain"
)

// maxDrainPasses bounds the passes run back to back while Afterbuy reports more items
const maxDrainPasses = 20

// RunPeriodicSync runs a sync pass every interval until ctx is done. When a
// pass reports more items, further passes follow immediately.
func RunPeriodicSync(ctx context.Context, uc OrderUseCase, interval time.Duration, appLogger logger.LoggerInterface) {
	if interval <= 0 {
		appLogger.InfoContext(ctx, "Periodic sync disabled")
		return
	}

	appLogger.InfoContext(ctx, "Periodic sync started", "interval", interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			appLogger.InfoContext(ctx, "Periodic sync stopped")
			return
		case <-ticker.C:
			drain(ctx, uc, appLogger)
		}
	}
}

func drain(ctx context.Context, uc OrderUseCase, appLogger logger.LoggerInterface) {
	for pass := 0; pass < maxDrainPasses && ctx.Err() == nil; pass++ {
		report, err := uc.SyncSoldItems(ctx)
		if errors.Is(err, domain.ErrSyncInProgress) {
			return
		}
		if err != nil {
			appLogger.WarnContext(ctx, "Periodic sync pass failed", "error", err)
			return
		}
		if !report.HasMore {
			return
		}
	}
}
