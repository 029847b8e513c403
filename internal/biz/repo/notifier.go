package repo

import (
	"context"

	"github.com/devricklin/teleport/internal/biz/domain"
)

// NotifierRepo is the local notification service interface
type NotifierRepo interface {
	// RequestAuthorization asks the OS for permission to post notifications.
	// Returns false when the user or the platform refused.
	RequestAuthorization(ctx context.Context) (bool, error)

	// Notify posts a notification to be shown immediately
	Notify(ctx context.Context, n domain.Notification) error
}
