// Package power reports system sleep and wake through logind
package power

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"

	"github.com/devricklin/teleport/internal/pkg/logger"
)

const (
	login1Path      = dbus.ObjectPath("/org/freedesktop/login1")
	login1Manager   = "org.freedesktop.login1.Manager"
	prepareForSleep = "PrepareForSleep"
)

// Event is a power state transition
type Event int

const (
	Sleep Event = iota + 1
	Wake
)

func (e Event) String() string {
	switch e {
	case Sleep:
		return "sleep"
	case Wake:
		return "wake"
	}
	return "unknown"
}

// ParseSignal converts a logind PrepareForSleep signal into an Event
func ParseSignal(sig *dbus.Signal) (Event, bool) {
	if sig == nil || sig.Name != login1Manager+"."+prepareForSleep || len(sig.Body) == 0 {
		return 0, false
	}
	sleeping, ok := sig.Body[0].(bool)
	if !ok {
		return 0, false
	}
	if sleeping {
		return Sleep, true
	}
	return Wake, true
}

// Monitor listens for sleep and wake on the system bus
type Monitor struct{}

// NewMonitor creates a power monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// Run delivers events to handle until ctx is cancelled
func (m *Monitor) Run(ctx context.Context, handle func(Event)) error {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return fmt.Errorf("connect system bus: %w", err)
	}
	defer conn.Close()

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(login1Path),
		dbus.WithMatchInterface(login1Manager),
		dbus.WithMatchMember(prepareForSleep),
	)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", prepareForSleep, err)
	}

	signals := make(chan *dbus.Signal, 4)
	conn.Signal(signals)
	defer conn.RemoveSignal(signals)

	log := logger.Named("Power")
	log.Debug().Msg("listening for sleep/wake")

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig, ok := <-signals:
			if !ok {
				return nil
			}
			if ev, ok := ParseSignal(sig); ok {
				log.Info().Stringer("event", ev).Msg("power state changed")
				handle(ev)
			}
		}
	}
}
