package entity

import "fmt"

// Channel is an outreach medium. Each one has its own content field,
// contact field and sent flag on the leads table.
type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Columns names the leads table columns backing a channel.
type Columns struct {
	Sent    string
	Content string
	Contact string
}

func (c Channel) Columns() Columns {
	if c == ChannelSMS {
		return Columns{Sent: "sms_sent", Content: "sms_content", Contact: "owner_phone"}
	}
	return Columns{Sent: "email_sent", Content: "email_content", Contact: "owner_email"}
}

func (c Channel) Validate() error {
	switch c {
	case ChannelEmail, ChannelSMS:
		return nil
	}
	return fmt.Errorf("unknown channel %q", string(c))
}

// Label is the human name used in messages ("email", "SMS").
func (c Channel) Label() string {
	if c == ChannelSMS {
		return "SMS"
	}
	return "email"
}
