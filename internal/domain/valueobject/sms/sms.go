package sms

// Message is an outbound SMS. To must be an E.164 number.
type Message struct {
	To   string
	Body string
}
