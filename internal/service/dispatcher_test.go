package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/usecase"
)

func TestDispatcher_DispatchesInOrder(t *testing.T) {
	clip := &mockClipboard{}
	notifier := &mockNotifier{}
	prefs := &mockPreferenceRepo{}
	d := NewDispatcher(usecase.NewDispatchUsecase(clip, notifier, prefs, domain.DefaultNotificationTexts), 4)
	d.Start(context.Background())
	defer d.Stop()

	assert.True(t, d.Submit(&domain.ExtractedCode{Value: "1111", SenderID: "a"}))
	assert.True(t, d.Submit(&domain.ExtractedCode{Value: "2222", SenderID: "b"}))

	assert.Eventually(t, func() bool { return d.Stats().Notified == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"1111", "2222"}, clip.all())
	assert.Equal(t, uint64(2), d.Stats().Copied)
	assert.Zero(t, d.Stats().Failed)
}

func TestDispatcher_NotificationsDisabledStillCopies(t *testing.T) {
	clip := &mockClipboard{}
	notifier := &mockNotifier{}
	prefs := &mockPreferenceRepo{prefs: domain.Preferences{NotificationsDisabled: true}}
	d := NewDispatcher(usecase.NewDispatchUsecase(clip, notifier, prefs, domain.DefaultNotificationTexts), 4)
	d.Start(context.Background())
	defer d.Stop()

	d.Submit(&domain.ExtractedCode{Value: "8080"})

	assert.Eventually(t, func() bool { return d.Stats().Copied == 1 }, time.Second, 5*time.Millisecond)
	assert.Zero(t, notifier.count())
}

func TestDispatcher_SubmitNeverBlocks(t *testing.T) {
	d := NewDispatcher(usecase.NewDispatchUsecase(&mockClipboard{}, nil, &mockPreferenceRepo{}, domain.DefaultNotificationTexts), 1)

	// Not started: the queue fills and further codes are dropped
	assert.True(t, d.Submit(&domain.ExtractedCode{Value: "1234"}))
	assert.False(t, d.Submit(&domain.ExtractedCode{Value: "5678"}))
	assert.Equal(t, uint64(1), d.Stats().Dropped)
}
