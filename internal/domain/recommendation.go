package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type RecommendationStatus string

// Any status in the set may be overwritten with any other; there is no
// transition matrix.
const (
	RecommendationPending  RecommendationStatus = "pending"
	RecommendationViewed   RecommendationStatus = "viewed"
	RecommendationSaved    RecommendationStatus = "saved"
	RecommendationRejected RecommendationStatus = "rejected"
)

func ParseRecommendationStatus(s string) (RecommendationStatus, bool) {
	switch RecommendationStatus(s) {
	case RecommendationPending, RecommendationViewed, RecommendationSaved, RecommendationRejected:
		return RecommendationStatus(s), true
	default:
		return "", false
	}
}

type Recommendation struct {
	ID            int64                `json:"id"`
	SenderID      int64                `json:"senderId"`
	ReceiverID    int64                `json:"receiverId"`
	PropertyID    int64                `json:"propertyId"`
	Message       string               `json:"message,omitempty"`
	Status        RecommendationStatus `json:"status"`
	SenderEmail   string               `json:"senderEmail,omitempty"`
	ReceiverEmail string               `json:"receiverEmail,omitempty"`
	Property      *PropertySummary     `json:"property,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// IsReceiver is the authorization check for status updates.
func (r *Recommendation) IsReceiver(userID int64) bool {
	return r.ReceiverID == userID
}

type RecommendRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	PropertyID     int64  `json:"propertyId"`
	Message        string `json:"message"`
}

func (r RecommendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.RecipientEmail, validation.Required, is.Email),
		validation.Field(&r.PropertyID, validation.Required),
		validation.Field(&r.Message, validation.Length(0, 1000)),
	)
}

type UpdateRecommendationStatusRequest struct {
	Status string `json:"status"`
}
