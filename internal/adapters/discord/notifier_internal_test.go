package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localefinder/internal/domain/entities"
)

type fakeWebhook struct {
	id, token string
	params    *discordgo.WebhookParams
	err       error
}

func (f *fakeWebhook) WebhookExecute(id, token string, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.id, f.token, f.params = id, token, data
	return nil, f.err
}

func TestParseWebhookURL(t *testing.T) {
	t.Parallel()

	id, token, err := ParseWebhookURL("https://discord.com/api/webhooks/123456/abc-DEF_ghi")
	require.NoError(t, err)
	assert.Equal(t, "123456", id)
	assert.Equal(t, "abc-DEF_ghi", token)

	id, token, err = ParseWebhookURL(" https://discordapp.com/api/v10/webhooks/9/tok/ ")
	require.NoError(t, err)
	assert.Equal(t, "9", id)
	assert.Equal(t, "tok", token)

	for _, bad := range []string{"", "https://discord.com/api/webhooks/123", "https://example.com/hook", "::"} {
		_, _, err := ParseWebhookURL(bad)
		assert.Error(t, err, bad)
	}
}

func TestNotifierSendsEmbed(t *testing.T) {
	t.Parallel()

	fake := &fakeWebhook{}
	n := &Notifier{session: fake, webhookID: "1", token: "t", location: time.UTC, username: "localefinder"}
	report := &entities.Report{RunID: "r", Locales: []string{"en"}, StartedAt: time.Now()}

	require.NoError(t, n.Notify(context.Background(), report))
	assert.Equal(t, "1", fake.id)
	assert.Equal(t, "t", fake.token)
	require.Len(t, fake.params.Embeds, 1)
	assert.Equal(t, "Translation catalogs updated", fake.params.Embeds[0].Title)

	fake.err = errors.New("404 unknown webhook")
	require.ErrorContains(t, n.Notify(context.Background(), report), "unknown webhook")
}

func TestNewNotifier(t *testing.T) {
	t.Parallel()

	n, err := NewNotifier("https://discord.com/api/webhooks/1/t", nil)
	require.NoError(t, err)
	assert.Equal(t, "1", n.webhookID)

	_, err = NewNotifier("https://discord.com/", nil)
	require.Error(t, err)
}
