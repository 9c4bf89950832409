package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/mailer"
	"github.com/dwellio/dwellio-api/internal/repository"
	"github.com/dwellio/dwellio-api/pkg/cache"
	"github.com/dwellio/dwellio-api/pkg/events"
	"github.com/dwellio/dwellio-api/pkg/logger"
)

type RecommendationService struct {
	recommendations repository.RecommendationRepository
	properties      repository.PropertyRepository
	users           repository.UserRepository
	store           cache.Store
	bus             events.Publisher
	mail            mailer.Service
}

func NewRecommendationService(
	recommendations repository.RecommendationRepository,
	properties repository.PropertyRepository,
	users repository.UserRepository,
	store cache.Store,
	bus events.Publisher,
	mail mailer.Service,
) *RecommendationService {
	return &RecommendationService{
		recommendations: recommendations,
		properties:      properties,
		users:           users,
		store:           store,
		bus:             bus,
		mail:            mail,
	}
}

func (s *RecommendationService) Recommend(ctx context.Context, sender *domain.User, req *domain.RecommendRequest) (*domain.Recommendation, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.Invalid(err.Error())
	}

	property, err := s.properties.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.NotFound("Property not found")
	}

	recipient, err := s.users.FindByEmail(ctx, req.RecipientEmail)
	if err != nil {
		return nil, err
	}
	if recipient == nil {
		return nil, domain.NotFound("Recipient not found")
	}

	existing, err := s.recommendations.FindByTriple(ctx, sender.ID, recipient.ID, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Invalid("Property already recommended to this user")
	}

	rec, err := s.recommendations.Create(ctx, sender.ID, recipient.ID, req.PropertyID, req.Message)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Invalid("Property already recommended to this user")
		}
		return nil, err
	}
	rec.SenderEmail = sender.Email
	rec.ReceiverEmail = recipient.Email

	s.invalidate(ctx, cache.RecommendationsKey(recipient.ID))
	s.publish(ctx, events.RecommendationCreated, rec)

	if err := s.mail.SendRecommendationEmail(recipient.Email, sender.Email, property.Title, req.Message); err != nil {
		logger.WarnContext(ctx, "Failed to send recommendation email", "to", recipient.Email, "error", err)
	}

	return rec, nil
}

// ListReceived is the inbox read and the only cached recommendation path;
// creation and status changes invalidate the receiver's key.
func (s *RecommendationService) ListReceived(ctx context.Context, userID int64) ([]domain.Recommendation, error) {
	key := cache.RecommendationsKey(userID)
	if cached, err := s.store.Get(ctx, key); err == nil {
		var recs []domain.Recommendation
		if err := json.Unmarshal([]byte(cached), &recs); err == nil {
			return recs, nil
		}
	}

	recs, err := s.recommendations.ListReceived(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}

	if data, err := json.Marshal(recs); err == nil {
		if err := s.store.Set(ctx, key, string(data), cache.EntityTTL); err != nil {
			logger.WarnContext(ctx, "Failed to cache recommendations", "key", key, "error", err)
		}
	}

	return recs, nil
}

func (s *RecommendationService) ListSent(ctx context.Context, userID int64) ([]domain.Recommendation, error) {
	recs, err := s.recommendations.ListSent(ctx, userID)
	if err != nil {
		return nil, err
	}
	if recs == nil {
		recs = []domain.Recommendation{}
	}
	return recs, nil
}

func (s *RecommendationService) UpdateStatus(ctx context.Context, user *domain.User, id int64, status string) (*domain.Recommendation, error) {
	parsed, ok := domain.ParseRecommendationStatus(status)
	if !ok {
		return nil, domain.Invalid("Invalid status")
	}

	rec, err := s.recommendations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.NotFound("Recommendation not found")
	}
	if !rec.IsReceiver(user.ID) {
		return nil, domain.Forbidden("Only the recipient can update a recommendation")
	}

	updated, err := s.recommendations.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound("Recommendation not found")
	}

	s.invalidate(ctx, cache.RecommendationsKey(user.ID))
	s.publish(ctx, events.RecommendationStatusChanged, updated)

	return updated, nil
}

func (s *RecommendationService) invalidate(ctx context.Context, keys ...string) {
	if err := s.store.Delete(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate cache", "keys", keys, "error", err)
	}
}

func (s *RecommendationService) publish(ctx context.Context, subject string, rec *domain.Recommendation) {
	event := events.RecommendationEvent{
		RecommendationID: rec.ID,
		SenderID:         rec.SenderID,
		ReceiverID:       rec.ReceiverID,
		PropertyID:       rec.PropertyID,
		Status:           string(rec.Status),
		OccurredAt:       time.Now().UTC(),
	}
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
