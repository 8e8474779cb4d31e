package outreach

import (
	"fmt"
	"strings"
)

// Facts describe the owner and property the messages are written for.
type Facts struct {
	OwnerName     string
	Address       string
	EquityPercent int
	YearsOwned    int
}

// Messages are the two artifacts requested from the model.
type Messages struct {
	EmailContent string
	SMSContent   string
}

// BuildPrompt renders the instruction sent to the language model. The answer
// is expected in two sections introduced by "EMAIL:" and "SMS:".
func BuildPrompt(f Facts) string {
	var b strings.Builder
	b.WriteString("You are a real estate investor's outreach assistant. Generate a personalized cold email and SMS for a potential seller.\n\n")
	b.WriteString("Property details:\n")
	fmt.Fprintf(&b, "- Owner: %s\n", f.OwnerName)
	fmt.Fprintf(&b, "- Address: %s\n", f.Address)
	fmt.Fprintf(&b, "- Equity: %d%%\n", f.EquityPercent)
	fmt.Fprintf(&b, "- Years owned: %d\n\n", f.YearsOwned)
	b.WriteString("Generate TWO messages:\n\n")
	b.WriteString("1. EMAIL: A professional but warm cold email (3-4 paragraphs) expressing interest in purchasing their property. ")
	b.WriteString("Mention specific details about ownership duration and equity position. Include a clear call-to-action.\n\n")
	b.WriteString("2. SMS: A brief, friendly text message (under 160 characters) introducing yourself as an interested buyer.\n\n")
	b.WriteString("Format your response as:\n")
	b.WriteString("EMAIL:\n[email content]\n\n")
	b.WriteString("SMS:\n[sms content]")
	return b.String()
}
