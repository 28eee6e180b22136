package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending
// email. Template selects one of the registered template names; Data
// feeds its placeholders. Text and HTML override the template when set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "welcome" or "password_reset"
	Data     map[string]any `json:"data,omitempty"`
}
