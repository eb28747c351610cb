package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"audiobind/internal/config"
)

const userAgent = "audiobind-notify/1"

// Service defines the notification surface used by the CLI.
type Service interface {
	NotifyBookCompleted(ctx context.Context, title, output string, chapters int, elapsed time.Duration) error
	NotifyRipCompleted(ctx context.Context, discTitle string, tracks int) error
	NotifyFailure(ctx context.Context, subject string, err error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent).
		SetDisableWarn(true)
	return &ntfyService{endpoint: topic, client: client}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *resty.Client
}

func (n *ntfyService) NotifyBookCompleted(ctx context.Context, title, output string, chapters int, elapsed time.Duration) error {
	title = strings.TrimSpace(title)
	if title == "" {
		title = output
	}
	return n.send(ctx, payload{
		title:   "audiobind - Book Ready",
		message: fmt.Sprintf("📚 %s: %d chapters in %s\n%s", title, chapters, elapsed.Round(time.Second), output),
		tags:    []string{"audiobind", "book", "completed"},
	})
}

func (n *ntfyService) NotifyRipCompleted(ctx context.Context, discTitle string, tracks int) error {
	discTitle = strings.TrimSpace(discTitle)
	if discTitle == "" {
		discTitle = "unknown disc"
	}
	return n.send(ctx, payload{
		title:   "audiobind - Rip Complete",
		message: fmt.Sprintf("💿 Ripped %d tracks: %s", tracks, discTitle),
		tags:    []string{"audiobind", "rip", "completed"},
	})
}

func (n *ntfyService) NotifyFailure(ctx context.Context, subject string, err error) error {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	if subject = strings.TrimSpace(subject); subject != "" {
		message = subject + ": " + message
	}
	return n.send(ctx, payload{
		title:    "audiobind - Failed",
		message:  "❌ " + message,
		tags:     []string{"audiobind", "error"},
		priority: "high",
	})
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	return n.send(ctx, payload{
		title:    "audiobind - Test",
		message:  "🔔 Notifications are configured",
		tags:     []string{"audiobind", "test"},
		priority: "low",
	})
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req := n.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/plain; charset=utf-8").
		SetBody(data.message)
	if data.title != "" {
		req.SetHeader("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.SetHeader("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.SetHeader("Priority", data.priority)
	}

	resp, err := req.Post(n.endpoint)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	if resp.StatusCode() >= 300 {
		body := strings.TrimSpace(resp.String())
		if len(body) > 2048 {
			body = body[:2048]
		}
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode(), body)
	}
	return nil
}

type noopService struct{}

func (noopService) NotifyBookCompleted(context.Context, string, string, int, time.Duration) error {
	return nil
}
func (noopService) NotifyRipCompleted(context.Context, string, int) error { return nil }
func (noopService) NotifyFailure(context.Context, string, error) error    { return nil }
func (noopService) TestNotification(context.Context) error                { return nil }
