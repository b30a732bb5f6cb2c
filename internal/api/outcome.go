package api

// Outcome is the server's verdict on one action: accepted or rejected, always
// carrying a user-facing message. Transport and decoding failures are ordinary
// errors, never Outcomes, so the caller cannot confuse the two tiers.
type Outcome struct {
	accepted bool
	message  string
}

func Accepted(msg string) Outcome { return Outcome{accepted: true, message: msg} }
func Rejected(msg string) Outcome { return Outcome{accepted: false, message: msg} }

func (o Outcome) Accepted() bool  { return o.accepted }
func (o Outcome) Message() string { return o.message }
