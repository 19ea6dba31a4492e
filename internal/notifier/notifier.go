package notifier

import (
	"context"
	"errors"

	"salon-booking/config"

	"github.com/sirupsen/logrus"
)

// Channel is the transport a message is sent over
type Channel string

const (
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
)

var (
	ErrDisabled          = errors.New("notifier disabled")
	ErrChannelNotEnabled = errors.New("channel not configured")
	ErrEmptyDestination  = errors.New("destination is empty")
)

// Notifier delivers a rendered message to a phone number. Send returns the
// provider message id on success.
type Notifier interface {
	Enabled(channel Channel) bool
	Send(ctx context.Context, to string, channel Channel, body string) (string, error)
}

// NewFromConfig returns a Twilio notifier, or a disabled one when the
// credentials are missing.
func NewFromConfig(cfg config.TwilioConfig, log *logrus.Logger) Notifier {
	if !cfg.Configured() {
		log.Warn("Twilio credentials missing, notifications disabled")
		return Disabled{}
	}
	return NewTwilioNotifier(cfg, log)
}
