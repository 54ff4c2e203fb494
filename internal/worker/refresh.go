package worker

import (
	"context"
	"time"

	"github.com/Mester2001/portfolio/internal/models"
	"github.com/Mester2001/portfolio/pkg/logger"
)

type Refresher interface {
	Refresh(ctx context.Context) (models.ProfileView, error)
}

// RefreshWorker keeps the profile snapshot warm: one refresh at start, then
// one per interval until ctx is cancelled.
type RefreshWorker struct {
	refresher Refresher
	interval  time.Duration
}

func NewRefreshWorker(refresher Refresher, interval time.Duration) *RefreshWorker {
	return &RefreshWorker{
		refresher: refresher,
		interval:  interval,
	}
}

func (w *RefreshWorker) Run(ctx context.Context) {
	if _, err := w.refresher.Refresh(ctx); err != nil {
		logger.Error("initial profile refresh failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			view, err := w.refresher.Refresh(ctx)
			if err != nil {
				logger.Error("profile refresh failed: %v", err)
				continue
			}
			logger.Info("successfully refreshed profile %s (%d activity rows)", view.Username, len(view.Activity))

		case <-ctx.Done():
			logger.Info("stopping refresh worker")
			return
		}
	}
}
