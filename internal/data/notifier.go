package data

import (
	"context"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/repo"
	"github.com/devricklin/teleport/internal/infra/notify"
	"github.com/devricklin/teleport/internal/pkg/logger"
)

type notificationSender interface {
	ServerInformation(ctx context.Context) (*notify.ServerInfo, error)
	Send(ctx context.Context, msg notify.Message) (uint32, error)
}

// notifierRepo implements the notification repository on the desktop notification server
type notifierRepo struct {
	client notificationSender
}

// NewNotifierRepo creates a new notifier repository
func NewNotifierRepo(client notificationSender) repo.NotifierRepo {
	return &notifierRepo{client: client}
}

// RequestAuthorization treats a reachable notification server as a grant.
// Absence of a server is a refusal, not an error.
func (r *notifierRepo) RequestAuthorization(ctx context.Context) (bool, error) {
	info, err := r.client.ServerInformation(ctx)
	if err != nil {
		logger.Named("Notifier").Debug().Err(err).Msg("notification server unavailable")
		return false, nil
	}
	logger.Named("Notifier").Debug().
		Str("server", info.Name).
		Str("vendor", info.Vendor).
		Str("spec", info.SpecVersion).
		Msg("notification server available")
	return true, nil
}

// Notify posts the notification immediately
func (r *notifierRepo) Notify(ctx context.Context, n domain.Notification) error {
	id, err := r.client.Send(ctx, notify.Message{
		Title:    n.Title,
		Body:     n.Body,
		Category: n.Category,
	})
	if err != nil {
		return err
	}
	logger.Named("Notifier").Debug().
		Str("request_id", n.ID).
		Uint32("server_id", id).
		Msg("notification posted")
	return nil
}
