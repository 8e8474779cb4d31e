package entity

import (
	"time"
)

type Lead struct {
	ID            string    `json:"id,omitempty" db:"id"`
	ZipCode       string    `json:"zip_code" db:"zip_code"`
	Address       string    `json:"address" db:"address"`
	OwnerName     string    `json:"owner_name" db:"owner_name"`
	OwnerPhone    *string   `json:"owner_phone" db:"owner_phone"`
	OwnerEmail    *string   `json:"owner_email" db:"owner_email"`
	EquityPercent int       `json:"equity_percent" db:"equity_percent"`
	YearsOwned    int       `json:"years_owned" db:"years_owned"`
	IntentScore   int       `json:"intent_score" db:"intent_score"`
	EmailContent  *string   `json:"email_content" db:"email_content"`
	SMSContent    *string   `json:"sms_content" db:"sms_content"`
	EmailSent     bool      `json:"email_sent" db:"email_sent"`
	SMSSent       bool      `json:"sms_sent" db:"sms_sent"`
	CreatedAt     time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// NewLead builds an unsent lead for a property. The intent score is fixed here
// and never recomputed afterwards.
func NewLead(zipCode string, p Property, emailContent, smsContent *string) Lead {
	return Lead{
		ZipCode:       zipCode,
		Address:       p.Address,
		OwnerName:     p.OwnerName,
		OwnerPhone:    p.OwnerPhone,
		OwnerEmail:    p.OwnerEmail,
		EquityPercent: p.EquityPercent,
		YearsOwned:    p.YearsOwned,
		IntentScore:   IntentScore(float64(p.EquityPercent), float64(p.YearsOwned)),
		EmailContent:  emailContent,
		SMSContent:    smsContent,
	}
}

// Content returns the generated body for the channel, nil until generation succeeded.
func (l *Lead) Content(ch Channel) *string {
	if ch == ChannelSMS {
		return l.SMSContent
	}
	return l.EmailContent
}

// Contact returns the owner's address on the channel.
func (l *Lead) Contact(ch Channel) *string {
	if ch == ChannelSMS {
		return l.OwnerPhone
	}
	return l.OwnerEmail
}

func (l *Lead) Sent(ch Channel) bool {
	if ch == ChannelSMS {
		return l.SMSSent
	}
	return l.EmailSent
}

// MarkSent flips the channel flag. Flags never go back to false.
func (l *Lead) MarkSent(ch Channel, at time.Time) {
	if ch == ChannelSMS {
		l.SMSSent = true
	} else {
		l.EmailSent = true
	}
	l.UpdatedAt = at
}

// Eligible reports whether the lead can be picked by a bulk send on ch.
func (l *Lead) Eligible(ch Channel) bool {
	return !l.Sent(ch) && l.Content(ch) != nil && l.Contact(ch) != nil
}

// StringPtr returns nil for an empty string.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
