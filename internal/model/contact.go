package model

// ContactMessage is a validated contact form submission. It is never stored.
type ContactMessage struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot,omitempty"`
}

// IsSpam reports whether the hidden honeypot field was filled in.
func (m *ContactMessage) IsSpam() bool { return m.Honeypot != "" }
