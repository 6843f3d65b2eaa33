package notify

import "log"

// The three concrete channels write to the process log.  Hooking a real
// SMTP relay or SMS gateway in means swapping the body of Send; the
// fan-out contract stays the same.

// EmailNotifier delivers over email.
type EmailNotifier struct{}

func (EmailNotifier) Type() string    { return TypeEmail }
func (EmailNotifier) Available() bool { return true }
func (EmailNotifier) Send(to, subject, body string) bool {
	log.Printf("notify: email to=%s subject=%q", to, subject)
	return true
}

// SMSNotifier delivers over SMS.
type SMSNotifier struct{}

func (SMSNotifier) Type() string    { return TypeSMS }
func (SMSNotifier) Available() bool { return true }
func (SMSNotifier) Send(to, subject, body string) bool {
	log.Printf("notify: sms to=%s subject=%q", to, subject)
	return true
}

// PushNotifier delivers over mobile push.  No push provider is
// configured in this deployment, so the channel reports unavailable and
// the Manager skips it.
type PushNotifier struct{}

func (PushNotifier) Type() string    { return TypePush }
func (PushNotifier) Available() bool { return false }
func (PushNotifier) Send(to, subject, body string) bool {
	log.Printf("notify: push to=%s subject=%q", to, subject)
	return false
}
