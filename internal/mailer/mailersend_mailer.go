package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromName, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  fromName,
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendRecommendationEmail(toEmail, senderEmail, propertyTitle, message string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := fmt.Sprintf("%s recommended a property for you", senderEmail)
	html := fmt.Sprintf(`
		<h2>You have a new property recommendation!</h2>
		<p><strong>%s</strong> thinks you might like:</p>
		<p style="font-size: 18px;"><strong>%s</strong></p>
		<p>%s</p>
		<p>Log in to your account to view the full listing.</p>
	`, senderEmail, propertyTitle, message)

	text := fmt.Sprintf("%s recommended a property for you: %s\n\n%s\n\nLog in to your account to view the full listing.",
		senderEmail, propertyTitle, message)

	return m.sendEmail(toEmail, subject, text, html)
}

func (m *MailerSendClient) sendEmail(toEmail, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
