package services

// Config carries the process configuration the services need. It is built
// once in main from the environment and injected, so handlers can be
// exercised in tests without touching the process environment.
type Config struct {
	// JWTSecret verifies inbound session tokens.
	JWTSecret []byte

	// SenderName and SenderEmail form the From header of outbound
	// notification emails (SenderEmail comes from RESEND_EMAIL).
	SenderName  string
	SenderEmail string

	// ResendAPIKey authenticates against the Resend API.
	ResendAPIKey string

	// WebhookURL is the outbound target every listing update is posted to
	// (ZAPIER_BOUNTY_WEBHOOK).
	WebhookURL string

	// FrontendBaseURL is used to build listing links in notification emails,
	// e.g. https://example.com -> https://example.com/listings/bounty/slug/
	FrontendBaseURL string

	// Airtable unsubscribe-list source.
	AirtableToken    string
	AirtableUnsubURL string
}
