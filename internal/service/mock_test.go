package service

import (
	"context"
	"sync"

	"github.com/devricklin/teleport/internal/biz/domain"
)

// Mock implementations

type mockMessageRepo struct {
	mu         sync.Mutex
	records    []domain.MessageRecord
	queryErr   error
	connectErr error
	connects   int
	closes     int
	polls      []int64
}

func (m *mockMessageRepo) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.connectErr != nil {
		return &domain.ConnectionError{Path: "chat.db", Err: m.connectErr}
	}
	m.connects++
	return nil
}

func (m *mockMessageRepo) LatestTimestamp(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest int64
	for _, r := range m.records {
		if r.TimestampMs > latest {
			latest = r.TimestampMs
		}
	}
	return latest, nil
}

func (m *mockMessageRepo) Since(ctx context.Context, watermarkMs int64) ([]domain.MessageRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.polls = append(m.polls, watermarkMs)
	if m.queryErr != nil {
		return nil, &domain.QueryError{Since: watermarkMs, Err: m.queryErr}
	}
	var out []domain.MessageRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		r := m.records[i]
		if r.TimestampMs > watermarkMs && !r.FromSelf {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockMessageRepo) Path() string { return "chat.db" }

func (m *mockMessageRepo) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closes++
	return nil
}

// add appends a message; records are kept oldest first
func (m *mockMessageRepo) add(ts int64, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, domain.MessageRecord{
		RowID:       int64(len(m.records) + 1),
		TimestampMs: ts,
		Text:        &text,
		SenderID:    "+15550001",
	})
}

func (m *mockMessageRepo) setQueryErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryErr = err
}

func (m *mockMessageRepo) pollCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.polls)
}

func (m *mockMessageRepo) counts() (connects, closes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connects, m.closes
}

type mockPreferenceRepo struct {
	mu    sync.Mutex
	prefs domain.Preferences
}

func (m *mockPreferenceRepo) Load(ctx context.Context) (domain.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs, nil
}

func (m *mockPreferenceRepo) Save(ctx context.Context, flag domain.PreferenceFlag, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = m.prefs.With(flag, value)
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
	mu     sync.Mutex
	writes []string
}

func (m *mockClipboard) WriteText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, text)
	return nil
}

func (m *mockClipboard) all() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []domain.Notification
}

func (m *mockNotifier) RequestAuthorization(ctx context.Context) (bool, error) {
	return true, nil
}

func (m *mockNotifier) Notify(ctx context.Context, n domain.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return nil
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type mockAccess struct {
	readable bool
}

func (m *mockAccess) Readable(path string) bool { return m.readable }
