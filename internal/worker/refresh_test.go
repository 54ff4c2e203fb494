package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Mester2001/portfolio/internal/models"
	"github.com/stretchr/testify/assert"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) (models.ProfileView, error) {
	r.calls.Add(1)
	return models.ProfileView{Username: "Mester2001"}, r.err
}

func TestRefreshWorker_RunsAtStartAndOnTick(t *testing.T) {
	refresher := &countingRefresher{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		NewRefreshWorker(refresher, 10*time.Millisecond).Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}

func TestRefreshWorker_KeepsGoingAfterFailure(t *testing.T) {
	refresher := &countingRefresher{err: errors.New("github down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go NewRefreshWorker(refresher, 10*time.Millisecond).Run(ctx)

	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestRefreshWorker_StopsWhenCancelledUpFront(t *testing.T) {
	refresher := &countingRefresher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	NewRefreshWorker(refresher, time.Hour).Run(ctx)

	assert.EqualValues(t, 1, refresher.calls.Load())
}
