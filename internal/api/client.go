package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/devricklin/teleport/internal/biz/domain"
	"github.com/devricklin/teleport/internal/service"
)

// Client talks to a running teleport daemon
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// NewLocalClient creates a client for the daemon on the given loopback port
func NewLocalClient(port int) *Client {
	return NewClient(fmt.Sprintf("http://127.0.0.1:%d", port))
}

// ============ Engine ============

// Status gets the engine status
func (c *Client) Status() (*service.Status, error) {
	var st service.Status
	if err := c.do(http.MethodGet, "/api/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Toggle starts or stops the engine
func (c *Client) Toggle() (*service.Status, error) {
	return c.control("/api/toggle")
}

// Pause stops the engine until resumed
func (c *Client) Pause() (*service.Status, error) {
	return c.control("/api/pause")
}

// Resume clears a pause and starts the engine
func (c *Client) Resume() (*service.Status, error) {
	return c.control("/api/resume")
}

func (c *Client) control(path string) (*service.Status, error) {
	var st service.Status
	if err := c.do(http.MethodPost, path, nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ============ Preferences ============

// Preferences gets the current preferences
func (c *Client) Preferences() (*domain.Preferences, error) {
	var prefs domain.Preferences
	if err := c.do(http.MethodGet, "/api/prefs", nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SetPreference updates one flag
func (c *Client) SetPreference(name string, value bool) (*domain.Preferences, error) {
	var prefs domain.Preferences
	body := map[string]bool{"value": value}
	if err := c.do(http.MethodPut, "/api/prefs/"+name, body, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// ResetPreferences restores every flag to its default
func (c *Client) ResetPreferences() (*domain.Preferences, error) {
	var prefs domain.Preferences
	if err := c.do(http.MethodPost, "/api/prefs/reset", nil, &prefs); err != nil {
		return nil, err
	}
	return &prefs, nil
}

// ============ Helpers ============

func (c *Client) do(method, path string, body interface{}, result interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP %s failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		respBody, _ := io.ReadAll(resp.Body)
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("HTTP %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
