package mail

import "strings"

// OutreachEmail is one message to a property owner.
type OutreachEmail struct {
	To      string
	Subject string
	Text    string
}

// HTML renders the plain body with line breaks kept.
func (e OutreachEmail) HTML() string {
	return HTMLBody(e.Text)
}

func HTMLBody(text string) string {
	return strings.ReplaceAll(text, "\n", "<br>")
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string

	dialer dialer
}
