package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// SlackProvider sends notifications directly to a Slack incoming
// webhook, bypassing the SNS relay. Intended for lab setups where no
// forwarding topic exists.
type SlackProvider struct {
	config map[string]string
	client *http.Client
}

type slackPayload struct {
	Channel  string `json:"channel,omitempty"`
	Username string `json:"username"`
	Text     string `json:"text"`
}

// Name returns the name of the notification endpoint in a lowercase,
// human readable format.
func (p *SlackProvider) Name() string {
	return "slack"
}

// NewSlackProvider creates the Slack webhook notification provider.
func NewSlackProvider(c map[string]string) (Notifier, error) {
	if c["WebhookURL"] == "" {
		return nil, fmt.Errorf("the slack notification provider requires a webhook URL")
	}

	p := &SlackProvider{
		config: c,
		client: &http.Client{Timeout: 10 * time.Second},
	}

	return p, nil
}

// SendNotification posts the failover message to the configured
// incoming webhook, overriding the channel with the destination carried
// on the event.
func (p *SlackProvider) SendNotification(message FailoverMessage) error {

	payload := slackPayload{
		Channel:  message.SlackChannel,
		Username: message.ClusterIdentifier,
		Text:     formatMessage(message),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := p.client.Post(p.config["WebhookURL"], "application/json",
		bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("slack webhook returned status %v", resp.StatusCode)
	}

	return nil
}
