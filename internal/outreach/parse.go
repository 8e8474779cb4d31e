package outreach

import (
	"regexp"
	"strings"
)

const (
	FallbackEmail = "Unable to generate email content."
	FallbackSMS   = "Hi, interested in your property. Can we chat?"
)

var (
	emailSection = regexp.MustCompile(`(?is)EMAIL:\s*(.*?)(?:SMS:|\z)`)
	smsSection   = regexp.MustCompile(`(?is)SMS:\s*(.*)\z`)
)

// ParseResponse splits the model answer into its email and SMS sections.
// A missing marker or an empty section yields the literal fallback text.
func ParseResponse(text string) Messages {
	return Messages{
		EmailContent: section(emailSection, text, FallbackEmail),
		SMSContent:   section(smsSection, text, FallbackSMS),
	}
}

func section(re *regexp.Regexp, text, fallback string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return fallback
	}
	if s := strings.TrimSpace(m[1]); s != "" {
		return s
	}
	return fallback
}
