package service

import (
	"fmt"
	"strings"

	"salon-booking/internal/domain/entity"
)

// MessageData fills the placeholders of a template: {name}, {date}, {time},
// {treatment} and {salon}.
type MessageData struct {
	Name      string
	Date      string
	Time      string
	Treatment string
	Salon     string
}

// MessageTemplates holds one template per notification action
type MessageTemplates map[entity.NotificationAction]string

func DefaultMessageTemplates() MessageTemplates {
	return MessageTemplates{
		entity.NotificationActionConfirmed: "Hi {name}, your appointment for {treatment} at {salon} on {date} at {time} is confirmed.",
		entity.NotificationActionMoved:     "Hi {name}, your appointment for {treatment} at {salon} has been moved to {date} at {time}.",
		entity.NotificationActionCancelled: "Hi {name}, your appointment at {salon} on {date} at {time} has been cancelled.",
		entity.NotificationActionReminder:  "Hi {name}, a reminder of your appointment at {salon} on {date} at {time}. See you then!",
	}
}

// NewMessageTemplates starts from the defaults and applies overrides keyed
// by action name. Unknown actions are rejected.
func NewMessageTemplates(overrides map[string]string) (MessageTemplates, error) {
	templates := DefaultMessageTemplates()
	for name, tpl := range overrides {
		action := entity.NotificationAction(strings.ToLower(name))
		if !action.IsValid() {
			return nil, fmt.Errorf("unknown notification action %q", name)
		}
		templates[action] = tpl
	}
	return templates, nil
}

func (t MessageTemplates) Render(action entity.NotificationAction, data MessageData) (string, error) {
	tpl, ok := t[action]
	if !ok {
		return "", fmt.Errorf("no template for action %q", action)
	}

	treatment := data.Treatment
	if treatment == "" {
		treatment = "your treatment"
	}

	replacer := strings.NewReplacer(
		"{name}", data.Name,
		"{date}", data.Date,
		"{time}", data.Time,
		"{treatment}", treatment,
		"{salon}", data.Salon,
	)
	return replacer.Replace(tpl), nil
}
