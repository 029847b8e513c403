package usecase

import (
	"context"
	"sync"

	"github.com/devricklin/teleport/internal/biz/domain"
)

// Mock implementations

type mockMessageRepo struct {
	records    []domain.MessageRecord
	latest     int64
	err        error
	connectErr error
	latestErr  error
	calls      []int64
	closed     int
}

func (m *mockMessageRepo) Connect(ctx context.Context) error {
	if m.connectErr != nil {
		return &domain.ConnectionError{Path: m.Path(), Err: m.connectErr}
	}
	return nil
}

func (m *mockMessageRepo) LatestTimestamp(ctx context.Context) (int64, error) {
	return m.latest, m.latestErr
}

func (m *mockMessageRepo) Since(ctx context.Context, watermarkMs int64) ([]domain.MessageRecord, error) {
	m.calls = append(m.calls, watermarkMs)
	if m.err != nil {
		return nil, &domain.QueryError{Since: watermarkMs, Err: m.err}
	}
	var out []domain.MessageRecord
	for _, r := range m.records {
		if r.TimestampMs > watermarkMs && !r.FromSelf {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) Path() string { return "mock.db" }

func (m *mockMessageRepo) Close() error {
	m.closed++
	return nil
}

type mockPreferenceRepo struct {
	mu      sync.Mutex
	prefs   domain.Preferences
	loadErr error
	saves   []domain.PreferenceFlag
}

func (m *mockPreferenceRepo) Load(ctx context.Context) (domain.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return domain.Preferences{}, m.loadErr
	}
	return m.prefs, nil
}

func (m *mockPreferenceRepo) Save(ctx context.Context, flag domain.PreferenceFlag, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = m.prefs.With(flag, value)
	m.saves = append(m.saves, flag)
	return nil
}

func (m *mockPreferenceRepo) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = domain.Preferences{}
	return nil
}

func (m *mockPreferenceRepo) Close() error { return nil }

type mockClipboard struct {
	writes []string
	err    error
}

func (m *mockClipboard) WriteText(text string) error {
	if m.err != nil {
		return m.err
	}
	m.writes = append(m.writes, text)
	return nil
}

type mockNotifier struct {
	granted   bool
	authErr   error
	notifyErr error
	authCalls int
	sent      []domain.Notification
}

func (m *mockNotifier) RequestAuthorization(ctx context.Context) (bool, error) {
	m.authCalls++
	return m.granted, m.authErr
}

func (m *mockNotifier) Notify(ctx context.Context, n domain.Notification) error {
	if m.notifyErr != nil {
		return m.notifyErr
	}
	m.sent = append(m.sent, n)
	return nil
}

func strPtr(s string) *string { return &s }
