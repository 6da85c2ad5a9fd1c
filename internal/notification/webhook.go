package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bher20/evtariff/internal/tariff"
)

// Webhook posts notifications to Slack, Discord or a generic JSON endpoint.
type Webhook struct {
	URL    string
	Type   string
	client *http.Client
}

// NewWebhook creates a webhook channel. An empty kind is detected from the
// URL.
func NewWebhook(url, kind string, timeout time.Duration) *Webhook {
	if kind == "" {
		switch {
		case strings.Contains(url, "slack.com"):
			kind = "slack"
		case strings.Contains(url, "discord.com"):
			kind = "discord"
		default:
			kind = "generic"
		}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Webhook{URL: url, Type: kind, client: &http.Client{Timeout: timeout}}
}

func (w *Webhook) Name() string { return "webhook:" + w.Type }

func (w *Webhook) Send(ctx context.Context, e CheapestChanged) error {
	var payload []byte
	var err error

	switch w.Type {
	case "slack":
		payload, err = buildSlackPayload(e)
	case "discord":
		payload, err = buildDiscordPayload(e)
	default:
		payload, err = buildGenericPayload(e)
	}
	if err != nil {
		return fmt.Errorf("build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

func buildSlackPayload(e CheapestChanged) ([]byte, error) {
	var ranking strings.Builder
	for i, t := range e.Ranking {
		fmt.Fprintf(&ranking, "%d. *%s*: %s\n", i+1, t.Name, tariff.FormatCurrency(t.AnnualCost))
	}

	payload := map[string]interface{}{
		"blocks": []map[string]interface{}{
			{
				"type": "header",
				"text": map[string]string{
					"type": "plain_text",
					"text": ":zap: " + e.Subject(),
				},
			},
			{
				"type": "section",
				"text": map[string]string{
					"type": "mrkdwn",
					"text": fmt.Sprintf("*Ranking:*\n%s", ranking.String()),
				},
			},
		},
	}
	return json.Marshal(payload)
}

func buildDiscordPayload(e CheapestChanged) ([]byte, error) {
	fields := make([]map[string]interface{}, 0, len(e.Ranking))
	for _, t := range e.Ranking {
		fields = append(fields, map[string]interface{}{
			"name":   t.Name,
			"value":  tariff.FormatCurrency(t.AnnualCost),
			"inline": true,
		})
	}

	payload := map[string]interface{}{
		"embeds": []map[string]interface{}{
			{
				"title":     e.Subject(),
				"color":     3066993, // Green
				"fields":    fields,
				"timestamp": e.Timestamp.Format(time.RFC3339),
			},
		},
	}
	return json.Marshal(payload)
}

type genericTariff struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	AnnualCost float64 `json:"annual_cost"`
}

func buildGenericPayload(e CheapestChanged) ([]byte, error) {
	ranking := make([]genericTariff, 0, len(e.Ranking))
	for _, t := range e.Ranking {
		ranking = append(ranking, genericTariff{ID: t.ID, Name: t.Name, AnnualCost: t.AnnualCost})
	}
	payload := map[string]interface{}{
		"alert_type": "cheapest_tariff_changed",
		"current":    genericTariff{ID: e.Current.ID, Name: e.Current.Name, AnnualCost: e.Current.AnnualCost},
		"ranking":    ranking,
		"timestamp":  e.Timestamp.Format(time.RFC3339),
	}
	if e.Previous != nil {
		payload["previous"] = genericTariff{ID: e.Previous.ID, Name: e.Previous.Name, AnnualCost: e.Previous.AnnualCost}
	}
	return json.Marshal(payload)
}
