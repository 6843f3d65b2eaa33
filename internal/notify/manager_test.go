package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	kind      string
	available bool
	sentTo    []string
}

func (f *fakeChannel) Type() string    { return f.kind }
func (f *fakeChannel) Available() bool { return f.available }
func (f *fakeChannel) Send(to, subject, body string) bool {
	f.sentTo = append(f.sentTo, to)
	return true
}

func TestBookingConfirmationFanOut(t *testing.T) {
	email := &fakeChannel{kind: TypeEmail, available: true}
	sms := &fakeChannel{kind: TypeSMS, available: true}
	push := &fakeChannel{kind: TypePush, available: false}

	m := NewManager(email, sms, push)
	m.BookingConfirmation("rider@example.com", "0812345678", "P0005", "Green Line", "3A")

	require.Equal(t, []string{"rider@example.com"}, email.sentTo)
	require.Equal(t, []string{"0812345678"}, sms.sentTo)
	require.Empty(t, push.sentTo, "unavailable channels are skipped")
}

func TestBroadcastSkipsEmptyRecipients(t *testing.T) {
	email := &fakeChannel{kind: TypeEmail, available: true}
	sms := &fakeChannel{kind: TypeSMS, available: true}

	m := NewManager(email, sms)
	m.Cancellation("rider@example.com", "", "P0005")

	require.Len(t, email.sentTo, 1)
	require.Empty(t, sms.sentTo, "no phone on record means no SMS")
}

func TestSendByType(t *testing.T) {
	email := &fakeChannel{kind: TypeEmail, available: true}
	push := &fakeChannel{kind: TypePush, available: false}
	m := NewManager(email, push)

	require.True(t, m.Send(TypeEmail, "rider@example.com", "s", "b"))
	require.False(t, m.Send(TypePush, "device-token", "s", "b"), "unavailable channel reports failure")
	require.False(t, m.Send("FAX", "x", "s", "b"), "unknown channel reports failure")
}
