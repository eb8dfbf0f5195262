package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const userAgent = "breakreminder/1.0"

// NtfyOptions tunes the ntfy transport.
type NtfyOptions struct {
	Timeout  time.Duration
	Priority string
	Tags     []string
}

// Ntfy publishes reminders to an ntfy topic URL.
type Ntfy struct {
	endpoint string
	priority string
	tags     []string
	client   *http.Client
}

// NewNtfy returns a notifier posting to endpoint, e.g. https://ntfy.sh/my-breaks.
func NewNtfy(endpoint string, opts NtfyOptions) *Ntfy {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Ntfy{
		endpoint: strings.TrimSpace(endpoint),
		priority: strings.TrimSpace(opts.Priority),
		tags:     opts.Tags,
		client:   &http.Client{Timeout: timeout},
	}
}

// Notify posts the message body with the title in the Title header.
func (n *Ntfy) Notify(ctx context.Context, title, message string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if title != "" {
		req.Header.Set("Title", title)
	}
	if len(n.tags) > 0 {
		req.Header.Set("Tags", strings.Join(n.tags, ","))
	}
	if n.priority != "" && n.priority != "default" {
		req.Header.Set("Priority", n.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
