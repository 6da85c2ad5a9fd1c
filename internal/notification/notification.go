package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bher20/evtariff/internal/config"
	"github.com/bher20/evtariff/internal/tariff"
)

// CheapestChanged reports that a different tariff now has the lowest
// estimated annual cost.
type CheapestChanged struct {
	Previous  *tariff.TariffWithCost
	Current   tariff.TariffWithCost
	Ranking   []tariff.TariffWithCost
	Timestamp time.Time
}

// Subject is a one-line summary used for email subjects and webhook titles.
func (e CheapestChanged) Subject() string {
	return fmt.Sprintf("Cheapest tariff is now %s (%s/year)", e.Current.Name, tariff.FormatCurrency(e.Current.AnnualCost))
}

// Text renders the full ranking as plain text.
func (e CheapestChanged) Text() string {
	var b strings.Builder
	if e.Previous != nil {
		saving := e.Previous.AnnualCost - e.Current.AnnualCost
		fmt.Fprintf(&b, "%s replaces %s as the cheapest tariff", e.Current.Name, e.Previous.Name)
		if saving > 0 {
			fmt.Fprintf(&b, ", saving %s a year", tariff.FormatCurrency(saving))
		}
		b.WriteString(".\n\n")
	} else {
		fmt.Fprintf(&b, "%s is the cheapest tariff.\n\n", e.Current.Name)
	}
	for i, t := range e.Ranking {
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, t.Name, tariff.FormatCurrency(t.AnnualCost))
	}
	return b.String()
}

// Channel delivers a notification somewhere.
type Channel interface {
	Name() string
	Send(ctx context.Context, e CheapestChanged) error
}

// Notifier fans a notification out to every configured channel.
type Notifier struct {
	channels []Channel
	log      *zap.Logger
}

func NewNotifier(log *zap.Logger, channels ...Channel) *Notifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notifier{channels: channels, log: log}
}

// Enabled reports whether any channel is configured.
func (n *Notifier) Enabled() bool { return len(n.channels) > 0 }

// Notify sends e on every channel, continuing past failures. The returned
// error joins the failures of all channels.
func (n *Notifier) Notify(ctx context.Context, e CheapestChanged) error {
	if !n.Enabled() {
		n.log.Debug("notification: no channels configured, skipping")
		return nil
	}
	var errs []error
	for _, ch := range n.channels {
		if err := ch.Send(ctx, e); err != nil {
			n.log.Warn("notification: send failed", zap.String("channel", ch.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", ch.Name(), err))
			continue
		}
		n.log.Info("notification: sent", zap.String("channel", ch.Name()), zap.String("tariff", e.Current.Name))
	}
	return errors.Join(errs...)
}

func formatCost(v float64) string { return tariff.FormatCurrency(v) + "/year" }

// FromConfig builds a Notifier with every channel cfg enables.
func FromConfig(cfg config.NotifyConfig, log *zap.Logger) (*Notifier, error) {
	var channels []Channel
	if cfg.WebhookURL != "" {
		channels = append(channels, NewWebhook(cfg.WebhookURL, cfg.WebhookType, 0))
	}
	email, err := NewEmail(cfg.Email)
	if err != nil {
		return nil, err
	}
	if email != nil {
		channels = append(channels, email)
	}
	return NewNotifier(log, channels...), nil
}
