package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"
	"github.com/devricklin/teleport/internal/pkg/logger"
)

// ErrNotificationsDenied is returned when notification permission was refused
var ErrNotificationsDenied = errors.New("notification permission denied")

// DispatchResult reports which side effects happened
type DispatchResult struct {
	Copied   bool
	Notified bool
}

// DispatchUsecase performs the clipboard write and the optional notification for a code
type DispatchUsecase struct {
	clipboardRepo  repo.ClipboardRepo
	notifierRepo   repo.NotifierRepo
	preferenceRepo repo.PreferenceRepo
	texts          domain.NotificationTexts
	newID          func() string
}

// NewDispatchUsecase creates a new dispatch usecase
func NewDispatchUsecase(
	clipboardRepo repo.ClipboardRepo,
	notifierRepo repo.NotifierRepo,
	preferenceRepo repo.PreferenceRepo,
	texts domain.NotificationTexts,
) *DispatchUsecase {
	return &DispatchUsecase{
		clipboardRepo:  clipboardRepo,
		notifierRepo:   notifierRepo,
		preferenceRepo: preferenceRepo,
		texts:          texts,
		newID:          uuid.NewString,
	}
}

// Dispatch copies the code to the clipboard and, unless disabled, posts a notification.
// The notification is skipped when the clipboard write fails.
func (uc *DispatchUsecase) Dispatch(ctx context.Context, code *domain.ExtractedCode) (*DispatchResult, error) {
	result := &DispatchResult{}

	if err := uc.clipboardRepo.WriteText(code.Value); err != nil {
		return result, fmt.Errorf("write clipboard: %w", err)
	}
	result.Copied = true

	if uc.notifierRepo == nil {
		return result, nil
	}

	prefs, err := uc.preferenceRepo.Load(ctx)
	if err != nil {
		return result, fmt.Errorf("load preferences: %w", err)
	}
	if prefs.NotificationsDisabled {
		return result, nil
	}

	if err := uc.ensureAuthorized(ctx, prefs); err != nil {
		return result, err
	}

	n := domain.BuildNotification(uc.newID(), code, prefs, uc.texts)
	if err := uc.notifierRepo.Notify(ctx, n); err != nil {
		return result, &domain.NotificationError{Op: "deliver", Err: err}
	}
	result.Notified = true
	return result, nil
}

// ensureAuthorized requests notification permission once and records the grant
func (uc *DispatchUsecase) ensureAuthorized(ctx context.Context, prefs domain.Preferences) error {
	if prefs.NotificationsRequested {
		return nil
	}

	granted, err := uc.notifierRepo.RequestAuthorization(ctx)
	if err != nil {
		return &domain.NotificationError{Op: "authorize", Err: err}
	}
	if !granted {
		return &domain.NotificationError{Op: "authorize", Err: ErrNotificationsDenied}
	}

	if err := uc.preferenceRepo.Save(ctx, domain.PrefNotificationsRequested, true); err != nil {
		logger.Named("Dispatch").Warn().Err(err).Msg("failed to record notification permission")
	}
	return nil
}
