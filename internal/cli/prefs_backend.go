package cli

import (
	"context"

	"github.com/devricklin/teleport/internal/api"
	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/biz/usecase"
)

type apiPrefs struct {
	client *api.Client
}

func (p *apiPrefs) list() (*domain.Preferences, error) {
	return p.client.Preferences()
}

func (p *apiPrefs) set(flag domain.PreferenceFlag, value bool) (*domain.Preferences, error) {
	return p.client.SetPreference(string(flag), value)
}

func (p *apiPrefs) reset() (*domain.Preferences, error) {
	return p.client.ResetPreferences()
}

func (p *apiPrefs) close() error { return nil }

type localPrefs struct {
	ctx    context.Context
	uc     *usecase.PreferenceUsecase
	closer func() error
}

func (p *localPrefs) list() (*domain.Preferences, error) {
	prefs, err := p.uc.Load(p.ctx)
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (p *localPrefs) set(flag domain.PreferenceFlag, value bool) (*domain.Preferences, error) {
	prefs, err := p.uc.Set(p.ctx, string(flag), value)
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (p *localPrefs) reset() (*domain.Preferences, error) {
	prefs, err := p.uc.Reset(p.ctx)
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

func (p *localPrefs) close() error { return p.closer() }
