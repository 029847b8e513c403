package domain

import (
	"errors"
	"fmt"
)

// PreferenceFlag names a persisted boolean preference
type PreferenceFlag string

const (
	PrefNotificationsDisabled  PreferenceFlag = "notificationsDisabled"
	PrefHideAuthCode           PreferenceFlag = "hideAuthCode"
	PrefHideSenderID           PreferenceFlag = "hideSenderID"
	PrefNotificationsRequested PreferenceFlag = "notificationsRequested"
	PrefPaused                 PreferenceFlag = "paused"
)

// ErrUnknownPreference is returned for a flag name that is not recognized
var ErrUnknownPreference = errors.New("unknown preference")

// AllPreferenceFlags lists every known flag in display order
var AllPreferenceFlags = []PreferenceFlag{
	PrefNotificationsDisabled,
	PrefHideAuthCode,
	PrefHideSenderID,
	PrefNotificationsRequested,
	PrefPaused,
}

// ParsePreferenceFlag validates a flag name
func ParsePreferenceFlag(name string) (PreferenceFlag, error) {
	for _, f := range AllPreferenceFlags {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownPreference, name)
}

// Preferences is a read-only snapshot of the user's settings.
// The zero value holds the defaults.
type Preferences struct {
	NotificationsDisabled  bool `json:"notificationsDisabled"`
	HideAuthCode           bool `json:"hideAuthCode"`
	HideSenderID           bool `json:"hideSenderID"`
	NotificationsRequested bool `json:"notificationsRequested"`
	Paused                 bool `json:"paused"`
}

// Get returns the value of a single flag
func (p Preferences) Get(flag PreferenceFlag) bool {
	switch flag {
	case PrefNotificationsDisabled:
		return p.NotificationsDisabled
	case PrefHideAuthCode:
		return p.HideAuthCode
	case PrefHideSenderID:
		return p.HideSenderID
	case PrefNotificationsRequested:
		return p.NotificationsRequested
	case PrefPaused:
		return p.Paused
	}
	return false
}

// With returns a copy with one flag changed
func (p Preferences) With(flag PreferenceFlag, value bool) Preferences {
	switch flag {
	case PrefNotificationsDisabled:
		p.NotificationsDisabled = value
	case PrefHideAuthCode:
		p.HideAuthCode = value
	case PrefHideSenderID:
		p.HideSenderID = value
	case PrefNotificationsRequested:
		p.NotificationsRequested = value
	case PrefPaused:
		p.Paused = value
	}
	return p
}
