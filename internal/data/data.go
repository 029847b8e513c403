package data

import (
	"github.com/devricklin/teleport/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	Message    repo.MessageRepo
	Preference repo.PreferenceRepo
}

// NewRepositories creates all repositories
func NewRepositories(storePath, stateDBPath string) (*Repositories, error) {
	preferenceRepo, err := NewPreferenceRepo(stateDBPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Message:    NewChatDBRepo(storePath),
		Preference: preferenceRepo,
	}, nil
}

// Close releases every repository
func (r *Repositories) Close() error {
	msgErr := r.Message.Close()
	if err := r.Preference.Close(); err != nil {
		return err
	}
	return msgErr
}
