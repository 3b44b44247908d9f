package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"
)

// Poster delivers a webhook message. The Slack webhook client satisfies it;
// tests substitute a recorder.
type Poster interface {
	Post(ctx context.Context, msg *slack.WebhookMessage) error
}

type webhookPoster struct {
	url string
}

func (p webhookPoster) Post(ctx context.Context, msg *slack.WebhookMessage) error {
	return slack.PostWebhookContext(ctx, p.url, msg)
}

// Notifier sends digests through a Poster.
type Notifier struct {
	poster Poster
	log    *slog.Logger
}

// NewSlackNotifier posts to a Slack incoming webhook URL.
func NewSlackNotifier(webhookURL string, log *slog.Logger) (*Notifier, error) {
	if webhookURL == "" {
		return nil, errors.New("notify: webhook url is required")
	}
	return NewNotifier(webhookPoster{url: webhookURL}, log), nil
}

// NewNotifier sends through poster.
func NewNotifier(poster Poster, log *slog.Logger) *Notifier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Notifier{poster: poster, log: log}
}

// SendDigest posts d unless it is empty. It reports whether anything was
// sent.
func (n *Notifier) SendDigest(ctx context.Context, d Digest) (bool, error) {
	if d.Empty() {
		n.log.Debug("digest empty, nothing sent", "owner", d.Owner)
		return false, nil
	}
	if err := n.poster.Post(ctx, d.Message()); err != nil {
		return false, fmt.Errorf("notify: posting digest: %w", err)
	}
	n.log.Info("digest sent", "owner", d.Owner, "overdue", len(d.Overdue), "due_soon", len(d.DueSoon))
	return true, nil
}
