package cli

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"
)

// HealthcheckCommand probes a running server's /health endpoint.
type HealthcheckCommand struct {
	addr   string
	client *http.Client
}

// NewHealthcheckCommand creates a health probe for the server listening on addr.
func NewHealthcheckCommand(addr string) *HealthcheckCommand {
	return &HealthcheckCommand{
		addr:   addr,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Execute fails unless the server answers 200.
func (c *HealthcheckCommand) Execute(ctx context.Context, args []string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL(c.addr), nil)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned status %d", resp.StatusCode)
	}
	return nil
}

// healthURL turns a listen address such as ":8080" into a local URL.
func healthURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr + "/health"
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port) + "/health"
}
