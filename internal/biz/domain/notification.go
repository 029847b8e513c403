package domain

import "strings"

// NotificationCategory is attached to every code notification
const NotificationCategory = "teleportStandardNotification"

// NotificationTexts holds the templates used to render code notifications.
// "{sender}" and "{code}" are substituted.
type NotificationTexts struct {
	AppName     string
	Title       string
	HiddenTitle string
	Body        string
	HiddenBody  string
}

// DefaultNotificationTexts matches the strings the app has always shown
var DefaultNotificationTexts = NotificationTexts{
	AppName:     "Teleport",
	Title:       "{sender} via Teleport",
	HiddenTitle: "Teleport",
	Body:        "Authentication code {code} copied to clipboard",
	HiddenBody:  "Authentication code copied to clipboard",
}

// Notification is a request to the local notification service
type Notification struct {
	ID       string
	Title    string
	Body     string
	Category string
}

// BuildNotification renders title and body for a code, redacted per preferences
func BuildNotification(id string, code *ExtractedCode, prefs Preferences, texts NotificationTexts) Notification {
	r := strings.NewReplacer("{sender}", code.SenderID, "{code}", code.Value)

	title := texts.Title
	if prefs.HideSenderID {
		title = texts.HiddenTitle
	}
	body := texts.Body
	if prefs.HideAuthCode {
		body = texts.HiddenBody
	}

	return Notification{
		ID:       id,
		Title:    r.Replace(title),
		Body:     r.Replace(body),
		Category: NotificationCategory,
	}
}
