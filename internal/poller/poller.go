package poller

import (
	tele "gopkg.in/telebot.v4"

	"github.com/agentloop/consult/internal/infra/config"
)

// New picks the update delivery mechanism from configuration: webhook
// when configured, long-polling otherwise. Config validation has
// already guaranteed a webhook URL in webhook mode.
func New(cfg *config.Config) tele.Poller {
	if cfg.Mode == "webhook" {
		return &tele.Webhook{
			Listen: cfg.ListenAddr,
			Endpoint: &tele.WebhookEndpoint{
				PublicURL: cfg.WebhookURL,
			},
		}
	}
	return &tele.LongPoller{Timeout: cfg.PollInterval.AsDuration()}
}
