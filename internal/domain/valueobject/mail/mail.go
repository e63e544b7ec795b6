package mail

// Payload is an outbound email message.
type Payload struct {
	To      string
	Subject string
	Body    string
}
