package usecase

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/riskibarqy/cricket-league/internal/platform/logging"
)

type fakeSource struct {
	mu      sync.Mutex
	entries map[string][]map[string]any
	errs    map[string]error
	calls   map[string]int
	queries map[string]ContentQuery
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		entries: map[string][]map[string]any{},
		errs:    map[string]error{},
		calls:   map[string]int{},
		queries: map[string]ContentQuery{},
	}
}

func (f *fakeSource) Entries(_ context.Context, contentType string, q ContentQuery) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[contentType]++
	f.queries[contentType] = q
	if err := f.errs[contentType]; err != nil {
		return nil, err
	}
	return f.entries[contentType], nil
}

func (f *fakeSource) callCount(contentType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[contentType]
}

func (f *fakeSource) query(contentType string) ContentQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[contentType]
}

type fakeNews struct {
	mu     sync.Mutex
	items  []map[string]any
	err    error
	limits []int
}

func (f *fakeNews) Latest(_ context.Context, limit int) ([]map[string]any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	return f.items, f.err
}

type fakeStats struct {
	mu    sync.Mutex
	stats map[string]VideoStats
	err   error
	calls int
}

func (f *fakeStats) Stats(_ context.Context, _ []string) (map[string]VideoStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.stats, f.err
}

type fakeSender struct {
	mu   sync.Mutex
	sent []Email
	id   string
	err  error
}

func (f *fakeSender) Send(_ context.Context, email Email) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, email)
	return f.id, nil
}

type enqueuedJob struct {
	path    string
	payload any
	delay   time.Duration
	dedupID string
}

type fakeJobs struct {
	jobs []enqueuedJob
	err  error
}

func (f *fakeJobs) Enqueue(_ context.Context, path string, payload any, delay time.Duration, dedupID string) error {
	f.jobs = append(f.jobs, enqueuedJob{path: path, payload: payload, delay: delay, dedupID: dedupID})
	return f.err
}

func observedLogger() (*logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(logging.LevelDebug)
	return logging.FromZap(zap.New(core)), logs
}
