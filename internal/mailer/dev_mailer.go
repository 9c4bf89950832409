package mailer

import (
	"fmt"

	"github.com/dwellio/dwellio-api/pkg/logger"
)

type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendRecommendationEmail(toEmail, senderEmail, propertyTitle, message string) error {
	logger.Info("📧 [DEV MAIL] Recommendation Email",
		"to", toEmail,
		"from", senderEmail,
		"property", propertyTitle,
	)

	fmt.Printf("\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"📧 RECOMMENDATION EMAIL (DEV MODE)\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n"+
		"To: %s\n"+
		"Subject: %s recommended a property for you\n"+
		"\n"+
		"Property: %s\n"+
		"Message: %s\n"+
		"━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n",
		toEmail, senderEmail, propertyTitle, message)

	return nil
}
