package repo

import (
	"context"

	"github.com/devricklin/teleport/internal/biz/domain"
)

// PreferenceRepo is the preference persistence interface
// Each flag is stored independently
type PreferenceRepo interface {
	// Load returns a snapshot of all flags; missing flags read as false
	Load(ctx context.Context) (domain.Preferences, error)

	// Save persists a single flag
	Save(ctx context.Context, flag domain.PreferenceFlag, value bool) error

	// Reset removes every stored flag, restoring defaults
	Reset(ctx context.Context) error

	Close() error
}
