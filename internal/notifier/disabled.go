package notifier

import "context"

// Disabled is used when no transport is configured. Every send reports
// ErrDisabled so callers can tell the customer messaging is off.
type Disabled struct{}

func (Disabled) Enabled(Channel) bool {
	return false
}

func (Disabled) Send(context.Context, string, Channel, string) (string, error) {
	return "", ErrDisabled
}
