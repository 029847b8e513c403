package usecase

import (
	"context"
	"fmt"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"
)

// PreferenceUsecase exposes explicit load/save of user settings
type PreferenceUsecase struct {
	preferenceRepo repo.PreferenceRepo
}

// NewPreferenceUsecase creates a new preference usecase
func NewPreferenceUsecase(preferenceRepo repo.PreferenceRepo) *PreferenceUsecase {
	return &PreferenceUsecase{preferenceRepo: preferenceRepo}
}

// Load returns the current preferences snapshot
func (uc *PreferenceUsecase) Load(ctx context.Context) (domain.Preferences, error) {
	prefs, err := uc.preferenceRepo.Load(ctx)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("load preferences: %w", err)
	}
	return prefs, nil
}

// Set updates one flag by name and returns the new snapshot
func (uc *PreferenceUsecase) Set(ctx context.Context, name string, value bool) (domain.Preferences, error) {
	flag, err := domain.ParsePreferenceFlag(name)
	if err != nil {
		return domain.Preferences{}, err
	}
	if err := uc.preferenceRepo.Save(ctx, flag, value); err != nil {
		return domain.Preferences{}, fmt.Errorf("save %s: %w", flag, err)
	}
	return uc.Load(ctx)
}

// SetPaused records the user's explicit pause choice
func (uc *PreferenceUsecase) SetPaused(ctx context.Context, paused bool) error {
	if err := uc.preferenceRepo.Save(ctx, domain.PrefPaused, paused); err != nil {
		return fmt.Errorf("save %s: %w", domain.PrefPaused, err)
	}
	return nil
}

// IsPaused reports whether the user paused watching. Errors read as not paused.
func (uc *PreferenceUsecase) IsPaused(ctx context.Context) bool {
	prefs, err := uc.preferenceRepo.Load(ctx)
	if err != nil {
		return false
	}
	return prefs.Paused
}

// Reset restores every flag to its default
func (uc *PreferenceUsecase) Reset(ctx context.Context) (domain.Preferences, error) {
	if err := uc.preferenceRepo.Reset(ctx); err != nil {
		return domain.Preferences{}, fmt.Errorf("reset preferences: %w", err)
	}
	return uc.Load(ctx)
}
