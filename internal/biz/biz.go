package biz

import (
	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"
	"github.com/devricklin/teleport/internal/biz/usecase"
)

// Usecases contains all usecases
type Usecases struct {
	Watch      *usecase.WatchUsecase
	Dispatch   *usecase.DispatchUsecase
	Preference *usecase.PreferenceUsecase
}

// NewUsecases builds every usecase over the given repositories.
// notifierRepo may be nil to copy codes without notifying.
func NewUsecases(
	messageRepo repo.MessageRepo,
	preferenceRepo repo.PreferenceRepo,
	clipboardRepo repo.ClipboardRepo,
	notifierRepo repo.NotifierRepo,
	texts domain.NotificationTexts,
) *Usecases {
	return &Usecases{
		Watch:      usecase.NewWatchUsecase(messageRepo),
		Dispatch:   usecase.NewDispatchUsecase(clipboardRepo, notifierRepo, preferenceRepo, texts),
		Preference: usecase.NewPreferenceUsecase(preferenceRepo),
	}
}
