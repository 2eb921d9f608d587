package services

import (
	"fmt"

	"github.com/resend/resend-go/v2"
)

// EmailSender sends one rendered email to one recipient.
type EmailSender interface {
	Send(to, subject, html string) error
}

// ResendMailer sends notification emails through the Resend API.
type ResendMailer struct {
	client *resend.Client
	from   string
}

func NewResendMailer(cfg Config) *ResendMailer {
	return &ResendMailer{
		client: resend.NewClient(cfg.ResendAPIKey),
		from:   fmt.Sprintf("%s <%s>", cfg.SenderName, cfg.SenderEmail),
	}
}

func (m *ResendMailer) Send(to, subject, html string) error {
	_, err := m.client.Emails.Send(&resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("resend send to %s failed: %w", to, err)
	}
	return nil
}

// deadlineExtendedEmail renders the body of the deadline-extended
// notification. Template engines are deliberately out of scope; the body is
// a plain HTML snippet.
func deadlineExtendedEmail(listingName, link string) (subject, html string) {
	subject = "Listing Deadline Extended!"
	html = fmt.Sprintf(
		`<p>The deadline for <strong>%s</strong> has been extended.</p>`+
			`<p><a href="%s">View the listing</a> to submit before the new deadline.</p>`,
		listingName, link,
	)
	return subject, html
}
