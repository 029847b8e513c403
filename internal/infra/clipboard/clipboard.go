// Package clipboard writes to the general-purpose system text clipboard
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = errors.New("system clipboard not available")

// Client writes text to the system clipboard
type Client struct {
	unsupported bool
	write       func(string) error
}

// NewClient creates a clipboard client
func NewClient() *Client {
	return &Client{
		unsupported: clipboard.Unsupported,
		write:       clipboard.WriteAll,
	}
}

// Available reports whether the platform clipboard can be used
func (c *Client) Available() bool {
	return !c.unsupported
}

// Write replaces the clipboard contents with text
func (c *Client) Write(text string) error {
	if !c.Available() {
		return ErrUnsupported
	}
	return c.write(text)
}
