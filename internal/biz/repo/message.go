package repo

import (
	"context"

	"github.com/devricklin/teleport/internal/biz/domain"
)

// MessageRepo is the message store interface
// Read-only access to the local Messages database
type MessageRepo interface {
	// Connect opens the store. Returns *domain.ConnectionError when the store
	// cannot be opened or does not look like a message store.
	Connect(ctx context.Context) error

	// LatestTimestamp returns the timestamp of the newest message, 0 when empty
	LatestTimestamp(ctx context.Context) (int64, error)

	// Since returns messages from other senders newer than watermark, newest first.
	// Returns *domain.QueryError on failure.
	Since(ctx context.Context, watermarkMs int64) ([]domain.MessageRecord, error)

	// Path returns the location of the store
	Path() string

	// Close releases the connection. Safe to call when not connected.
	Close() error
}

// AccessChecker is the capability query for the message store
type AccessChecker interface {
	// Readable reports whether the process may read the store at path
	Readable(path string) bool
}
