package notifier

import (
	"context"
	"fmt"
	"strings"

	"salon-booking/config"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

const whatsappPrefix = "whatsapp:"

type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioNotifier sends SMS and WhatsApp messages through one Twilio account
type TwilioNotifier struct {
	api          messageCreator
	log          *logrus.Logger
	smsFrom      string
	whatsappFrom string
}

func NewTwilioNotifier(cfg config.TwilioConfig, log *logrus.Logger) *TwilioNotifier {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioNotifier(client.Api, cfg, log)
}

func newTwilioNotifier(api messageCreator, cfg config.TwilioConfig, log *logrus.Logger) *TwilioNotifier {
	return &TwilioNotifier{
		api:          api,
		log:          log,
		smsFrom:      cfg.SMSFrom,
		whatsappFrom: strings.TrimPrefix(cfg.WhatsAppFrom, whatsappPrefix),
	}
}

func (n *TwilioNotifier) Enabled(channel Channel) bool {
	switch channel {
	case ChannelSMS:
		return n.smsFrom != ""
	case ChannelWhatsApp:
		return n.whatsappFrom != ""
	}
	return false
}

// Send does not observe ctx; the SDK call is synchronous. Callers bound it
// with their own timeout.
func (n *TwilioNotifier) Send(_ context.Context, to string, channel Channel, body string) (string, error) {
	if to == "" {
		return "", ErrEmptyDestination
	}
	if !n.Enabled(channel) {
		return "", fmt.Errorf("%w: %s", ErrChannelNotEnabled, channel)
	}

	from, dest := n.smsFrom, to
	if channel == ChannelWhatsApp {
		from, dest = whatsappPrefix+n.whatsappFrom, whatsappPrefix+to
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(dest)
	params.SetFrom(from)
	params.SetBody(body)

	resp, err := n.api.CreateMessage(params)
	if err != nil {
		n.log.Warnf("Twilio %s send to %s failed: %+v", channel, to, err)
		return "", err
	}

	var sid string
	if resp != nil && resp.Sid != nil {
		sid = *resp.Sid
	}
	n.log.Infof("Twilio %s message sent: sid=%s", channel, sid)
	return sid, nil
}
