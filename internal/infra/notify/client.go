// Package notify posts desktop notifications through the freedesktop
// notification service on the session bus.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	busName    = "org.freedesktop.Notifications"
	objectPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	iface      = "org.freedesktop.Notifications"
)

// Message is a notification to show
type Message struct {
	Title    string
	Body     string
	Category string
	Icon     string
}

// ServerInfo identifies the running notification server
type ServerInfo struct {
	Name        string
	Vendor      string
	Version     string
	SpecVersion string
}

// Client talks to the notification server
type Client struct {
	appName string

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewClient creates a notification client. The bus is dialed lazily.
func NewClient(appName string) *Client {
	return &Client{appName: appName}
}

func (c *Client) object() (dbus.BusObject, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || !c.conn.Connected() {
		conn, err := dbus.ConnectSessionBus()
		if err != nil {
			return nil, fmt.Errorf("connect session bus: %w", err)
		}
		c.conn = conn
	}
	return c.conn.Object(busName, objectPath), nil
}

// ServerInformation asks the notification server to identify itself.
// A reply means notifications can be delivered.
func (c *Client) ServerInformation(ctx context.Context) (*ServerInfo, error) {
	obj, err := c.object()
	if err != nil {
		return nil, err
	}

	var info ServerInfo
	call := obj.CallWithContext(ctx, iface+".GetServerInformation", 0)
	if err := call.Store(&info.Name, &info.Vendor, &info.Version, &info.SpecVersion); err != nil {
		return nil, fmt.Errorf("get server information: %w", err)
	}
	return &info, nil
}

// Send posts a notification and returns the server-assigned id
func (c *Client) Send(ctx context.Context, msg Message) (uint32, error) {
	obj, err := c.object()
	if err != nil {
		return 0, err
	}

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(1)),
	}
	if msg.Category != "" {
		hints["category"] = dbus.MakeVariant(msg.Category)
	}

	var id uint32
	call := obj.CallWithContext(ctx, iface+".Notify", 0,
		c.appName,
		uint32(0), // replaces_id: always a fresh notification
		msg.Icon,
		msg.Title,
		msg.Body,
		[]string{},
		hints,
		int32(-1),
	)
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

// Close closes the bus connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
