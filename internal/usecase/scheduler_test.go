package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ReviewScanner/internal/domain"
)

// manualDriver runs the job synchronously once per call to fire.
type manualDriver struct {
	job func(time.Time)
}

func (d *manualDriver) Start(ctx context.Context, job func(time.Time)) error {
	d.job = job
	return nil
}

func (d *manualDriver) Stop(ctx context.Context) error {
	d.job = nil
	return nil
}

func (d *manualDriver) fire() { d.job(time.Now()) }

func TestSchedulerHandlesEachRun(t *testing.T) {
	f := &stubFetcher{html: `<div data-hook="review"><span data-hook="review-title">Nice</span></div>`}
	driver := &manualDriver{}

	var (
		mu     sync.Mutex
		tables []domain.ReviewTable
	)
	s := NewScheduler(driver, newPipeline(t, f), productURL, func(ctx context.Context, r Result) error {
		mu.Lock()
		defer mu.Unlock()
		tables = append(tables, r.Table)
		return nil
	}, nil)

	require.NoError(t, s.Start(context.Background()))
	driver.fire()
	driver.fire()
	require.NoError(t, s.Stop(context.Background()))

	require.Len(t, tables, 2)
	require.Equal(t, domain.ReviewTable{{Review: "Nice "}}, tables[1])
	require.Equal(t, int32(2), f.calls.Load())
}

func TestSchedulerRejectsInvalidURL(t *testing.T) {
	driver := &manualDriver{}
	s := NewScheduler(driver, newPipeline(t, &stubFetcher{}), "https://example.com/item", nil, nil)

	require.ErrorIs(t, s.Start(context.Background()), domain.ErrInvalidURL)
	require.Nil(t, driver.job)
}
