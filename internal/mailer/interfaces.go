package mailer

type Service interface {
	SendRecommendationEmail(toEmail, senderEmail, propertyTitle, message string) error
}
