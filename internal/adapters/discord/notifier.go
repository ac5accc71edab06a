package discord

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"localefinder/internal/domain/entities"
	"localefinder/internal/ports/output"
	pkgdiscord "localefinder/pkg/discord"
)

var _ output.Notifier = (*Notifier)(nil)

// webhookExecutor is the part of *discordgo.Session the notifier uses.
type webhookExecutor interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts run reports to a Discord webhook.
type Notifier struct {
	session   webhookExecutor
	webhookID string
	token     string
	location  *time.Location
	username  string
}

// NewNotifier creates a Notifier for a webhook URL of the form
// https://discord.com/api/webhooks/<id>/<token>. Times in the report are
// shown in loc.
func NewNotifier(webhookURL string, loc *time.Location) (*Notifier, error) {
	id, token, err := ParseWebhookURL(webhookURL)
	if err != nil {
		return nil, err
	}
	// Webhook execution is authenticated by the token in the URL.
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	return &Notifier{session: s, webhookID: id, token: token, location: loc, username: "localefinder"}, nil
}

// ParseWebhookURL extracts the webhook id and token.
func ParseWebhookURL(raw string) (id, token string, err error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", fmt.Errorf("discord: invalid webhook url: %w", err)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+2 < len(parts); i++ {
		if parts[i] == "webhooks" && parts[i+1] != "" && parts[i+2] != "" {
			return parts[i+1], parts[i+2], nil
		}
	}
	return "", "", fmt.Errorf("discord: webhook url %q must end with /webhooks/<id>/<token>", raw)
}

func (n *Notifier) Notify(ctx context.Context, report *entities.Report) error {
	params := &discordgo.WebhookParams{
		Username: n.username,
		Embeds:   []*discordgo.MessageEmbed{pkgdiscord.BuildReportEmbed(report, n.location)},
	}
	if _, err := n.session.WebhookExecute(n.webhookID, n.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("discord: execute webhook: %w", err)
	}
	return nil
}
