package outreach

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCompleter struct {
	mock.Mock
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		email string
		sms   string
	}{
		{
			name:  "both sections",
			text:  "EMAIL:\nfoo\n\nSMS:\nbar",
			email: "foo",
			sms:   "bar",
		},
		{
			name:  "missing sms marker",
			text:  "EMAIL:\nDear owner,\n\nLet's talk.",
			email: "Dear owner,\n\nLet's talk.",
			sms:   FallbackSMS,
		},
		{
			name:  "missing email marker",
			text:  "SMS: quick note",
			email: FallbackEmail,
			sms:   "quick note",
		},
		{
			name:  "lower case markers with preamble",
			text:  "Sure! Here you go.\nemail: hello there\nsms: hi",
			email: "hello there",
			sms:   "hi",
		},
		{
			name:  "empty sections",
			text:  "EMAIL:\n\nSMS:\n   ",
			email: FallbackEmail,
			sms:   FallbackSMS,
		},
		{
			name:  "no markers",
			text:  "I cannot help with that.",
			email: FallbackEmail,
			sms:   FallbackSMS,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseResponse(tt.text)
			assert.Equal(t, tt.email, got.EmailContent)
			assert.Equal(t, tt.sms, got.SMSContent)
		})
	}
}

func TestBuildPromptMentionsFacts(t *testing.T) {
	prompt := BuildPrompt(Facts{OwnerName: "Smith, James", Address: "1 Oak St, Atlanta", EquityPercent: 72, YearsOwned: 14})

	assert.Contains(t, prompt, "- Owner: Smith, James")
	assert.Contains(t, prompt, "- Address: 1 Oak St, Atlanta")
	assert.Contains(t, prompt, "- Equity: 72%")
	assert.Contains(t, prompt, "- Years owned: 14")
	assert.Contains(t, prompt, "under 160 characters")
	assert.Contains(t, prompt, "EMAIL:\n[email content]\n\nSMS:\n[sms content]")
}

func TestGeneratorParsesCompletion(t *testing.T) {
	c := new(mockCompleter)
	c.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.ObjectsAreEqual(BuildPrompt(Facts{OwnerName: "Lee", Address: "2 Elm St", EquityPercent: 60, YearsOwned: 9}), p)
	})).Return("EMAIL:\nHello Lee\nSMS:\nHi Lee", nil)

	g, err := NewGenerator(c)
	require.NoError(t, err)

	msgs, err := g.Generate(context.Background(), Facts{OwnerName: "Lee", Address: "2 Elm St", EquityPercent: 60, YearsOwned: 9})
	require.NoError(t, err)
	assert.Equal(t, Messages{EmailContent: "Hello Lee", SMSContent: "Hi Lee"}, msgs)
	c.AssertExpectations(t)
}

func TestGeneratorReturnsCompleterError(t *testing.T) {
	boom := errors.New("boom")
	c := new(mockCompleter)
	c.On("Complete", mock.Anything, mock.Anything).Return("", boom)

	g, err := NewGenerator(c)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), Facts{Address: "3 Pine St"})
	assert.ErrorIs(t, err, boom)
}

func TestNewGeneratorRequiresCompleter(t *testing.T) {
	_, err := NewGenerator(nil)
	assert.Error(t, err)
}
