package mailer

// EmailJob is the JSON payload put on the queue for sending email.
// HTML is optional; Text is recommended as fallback.
// You can also use a template by specifying Template and Data.
type EmailJob struct {
	To          string         `json:"to"`
	Subject     string         `json:"subject,omitempty"`
	Text        string         `json:"text,omitempty"`
	HTML        string         `json:"html,omitempty"`
	Template    string         `json:"template,omitempty"` // e.g. "otp_verification", "welcome", "password_reset"
	Data        map[string]any `json:"data,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
}

// Attachment is sent inline with the message body. Content is base64 in JSON.
type Attachment struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}
