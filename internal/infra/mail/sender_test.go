package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-prospector/internal/entity"
)

type recordingDialer struct {
	messages []*gomail.Message
	err      error
}

func (d *recordingDialer) DialAndSend(m ...*gomail.Message) error {
	d.messages = append(d.messages, m...)
	return d.err
}

func TestNewEmailSenderRequiresHostAndFrom(t *testing.T) {
	_, err := NewEmailSender("", 587, "", "", "me@example.com")
	assert.ErrorIs(t, err, entity.ErrConfigurationMissing)

	_, err = NewEmailSender("smtp.example.com", 587, "", "", "")
	assert.ErrorIs(t, err, entity.ErrConfigurationMissing)
}

func TestSendBuildsMessage(t *testing.T) {
	s, err := NewEmailSender("smtp.example.com", 587, "u", "p", "investor@example.com")
	require.NoError(t, err)
	d := &recordingDialer{}
	s.dialer = d

	err = s.Send(context.Background(), "owner@example.com", "Interested in your property at 1 Oak St", "Hello\nthere")
	require.NoError(t, err)
	require.Len(t, d.messages, 1)

	m := d.messages[0]
	assert.Equal(t, []string{"investor@example.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"owner@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Interested in your property at 1 Oak St"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err = m.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Hello<br>there")
}

func TestSendWrapsDialError(t *testing.T) {
	s, err := NewEmailSender("smtp.example.com", 587, "", "", "investor@example.com")
	require.NoError(t, err)
	s.dialer = &recordingDialer{err: errors.New("connection refused")}

	err = s.Send(context.Background(), "owner@example.com", "subj", "body")
	assert.ErrorIs(t, err, entity.ErrUpstreamRequestFailed)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestHTMLBody(t *testing.T) {
	assert.Equal(t, "a<br><br>b", HTMLBody("a\n\nb"))
}
