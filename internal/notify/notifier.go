// Package notify delivers booking notifications to passengers over a set
// of independent channels.  Channels implement the small Notifier
// capability interface; the Manager fans a message out to every channel
// that reports itself available.  Delivery is best-effort by contract:
// a failed send is logged and never propagates back into the booking
// flow, which has already committed by the time a notification exists.
package notify

import "fmt"

// Channel types.
const (
	TypeEmail = "EMAIL"
	TypeSMS   = "SMS"
	TypePush  = "PUSH"
)

// Notifier is one delivery channel.
type Notifier interface {
	// Type identifies the channel (EMAIL, SMS, PUSH).
	Type() string
	// Available reports whether the channel can currently deliver.
	Available() bool
	// Send delivers one message and reports success.
	Send(to, subject, body string) bool
}

// Manager fans notifications out across channels.  Email channels get
// the passenger's email address, everything else the phone number,
// mirroring how contact details are stored on the user record.
type Manager struct {
	channels []Notifier
}

// NewManager builds a Manager over the given channels.
func NewManager(channels ...Notifier) *Manager {
	return &Manager{channels: channels}
}

// Channels returns the configured channel set.
func (m *Manager) Channels() []Notifier { return m.channels }

// Send delivers through the single channel of the given type.  It
// returns false for unknown or unavailable channels.
func (m *Manager) Send(channelType, to, subject, body string) bool {
	for _, ch := range m.channels {
		if ch.Type() == channelType {
			return ch.Available() && ch.Send(to, subject, body)
		}
	}
	return false
}

// BookingConfirmation notifies every available channel about a confirmed
// seat.
func (m *Manager) BookingConfirmation(email, phone, code, routeName, seat string) {
	subject := "Booking confirmed - " + code
	body := fmt.Sprintf("Your booking is confirmed.\n\nBooking code: %s\nRoute: %s\nSeat: %s\n\nThank you for riding with YeEP.",
		code, routeName, seat)
	m.broadcast(email, phone, subject, body)
}

// Cancellation notifies every available channel about a cancelled
// booking.
func (m *Manager) Cancellation(email, phone, code string) {
	subject := "Booking cancelled - " + code
	body := fmt.Sprintf("Your booking has been cancelled.\n\nBooking code: %s\n\nContact staff if you did not request this.", code)
	m.broadcast(email, phone, subject, body)
}

func (m *Manager) broadcast(email, phone, subject, body string) {
	for _, ch := range m.channels {
		if !ch.Available() {
			continue
		}
		to := phone
		if ch.Type() == TypeEmail {
			to = email
		}
		if to == "" {
			continue
		}
		ch.Send(to, subject, body)
	}
}
