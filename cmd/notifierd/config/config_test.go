package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	c := &Config{}
	defaults(c)

	assert.Equal(t, "sqlite", c.Database.Driver)
	assert.Equal(t, "notifier.sqlite", c.Database.Config)
	assert.Equal(t, 8888, c.Port)
	assert.Equal(t, 8889, c.MetricsPort)
	assert.Equal(t, 10*time.Second, c.RocketChat.DeliveryTimeout)
}

func TestEnviron(t *testing.T) {
	os.Setenv("WEBHOOK_URL", "https://chat.mycompany.com/hooks/abc/xyz")
	os.Setenv("CHANNEL", "#builds")
	os.Setenv("NOTIFY_BACK_TO_NORMAL_ONLY", "true")
	os.Setenv("DELIVERY_TIMEOUT", "3s")
	defer func() {
		os.Unsetenv("WEBHOOK_URL")
		os.Unsetenv("CHANNEL")
		os.Unsetenv("NOTIFY_BACK_TO_NORMAL_ONLY")
		os.Unsetenv("DELIVERY_TIMEOUT")
	}()

	c, err := Environ()
	assert.Nil(t, err)
	assert.Equal(t, "https://chat.mycompany.com/hooks/abc/xyz", c.RocketChat.WebhookURL)
	assert.Equal(t, "#builds", c.RocketChat.Channel)
	assert.True(t, c.RocketChat.NotifyBackToNormalOnly)
	assert.False(t, c.RocketChat.ShowTestSummary)
	assert.Equal(t, 3*time.Second, c.RocketChat.DeliveryTimeout)
}

func TestStringHidesWebhook(t *testing.T) {
	c := &Config{RocketChat: RocketChat{WebhookURL: "https://chat.mycompany.com/hooks/secret", Channel: "#builds"}}
	out := c.String()
	assert.NotContains(t, out, "secret")
	assert.Contains(t, out, "#builds")
}
