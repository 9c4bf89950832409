package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/repository"
	"github.com/dwellio/dwellio-api/pkg/cache"
	"github.com/dwellio/dwellio-api/pkg/events"
	"github.com/dwellio/dwellio-api/pkg/logger"
)

type PropertyService struct {
	properties repository.PropertyRepository
	store      cache.Store
	bus        events.Publisher
}

func NewPropertyService(properties repository.PropertyRepository, store cache.Store, bus events.Publisher) *PropertyService {
	return &PropertyService{properties: properties, store: store, bus: bus}
}

func (s *PropertyService) Create(ctx context.Context, user *domain.User, req *domain.CreatePropertyRequest) (*domain.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.Invalid(err.Error())
	}

	propertyUID := req.PropertyUID
	if propertyUID == "" {
		propertyUID = uuid.NewString()
	}

	property, err := s.properties.Create(ctx, user.ID, req, propertyUID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Invalid("Property ID already exists")
		}
		return nil, err
	}

	s.publish(ctx, events.ListingCreated, property)

	return property, nil
}

// GetByID serves reads through the property entity cache; writes invalidate
// the same key, so a hit is never older than the last write plus TTL.
func (s *PropertyService) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	key := cache.PropertyKey(id)
	if cached, err := s.store.Get(ctx, key); err == nil {
		var property domain.Property
		if err := json.Unmarshal([]byte(cached), &property); err == nil {
			return &property, nil
		}
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.NotFound("Property not found")
	}

	if data, err := json.Marshal(property); err == nil {
		if err := s.store.Set(ctx, key, string(data), cache.EntityTTL); err != nil {
			logger.WarnContext(ctx, "Failed to cache property", "key", key, "error", err)
		}
	}

	return property, nil
}

func (s *PropertyService) List(ctx context.Context, filter domain.PropertyFilter) (*domain.PropertyPage, error) {
	repository.NormalizePagination(&filter)

	properties, total, err := s.properties.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if properties == nil {
		properties = []domain.Property{}
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))

	return &domain.PropertyPage{
		Properties: properties,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *PropertyService) Update(ctx context.Context, user *domain.User, id int64, req *domain.UpdatePropertyRequest) (*domain.Property, error) {
	if err := req.Validate(); err != nil {
		return nil, domain.Invalid(err.Error())
	}

	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.NotFound("Property not found")
	}
	if !property.IsOwner(user.ID) {
		return nil, domain.Forbidden("You can only update your own properties")
	}

	updated, err := s.properties.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.NotFound("Property not found")
	}

	s.invalidate(ctx, cache.PropertyKey(id))
	s.publish(ctx, events.ListingUpdated, updated)

	return updated, nil
}

func (s *PropertyService) Delete(ctx context.Context, user *domain.User, id int64) error {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if property == nil {
		return domain.NotFound("Property not found")
	}
	if !property.IsOwner(user.ID) {
		return domain.Forbidden("You can only delete your own properties")
	}

	deleted, err := s.properties.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound("Property not found")
	}

	s.invalidate(ctx, cache.PropertyKey(id))
	s.publish(ctx, events.ListingDeleted, property)

	return nil
}

func (s *PropertyService) invalidate(ctx context.Context, keys ...string) {
	if err := s.store.Delete(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate cache", "keys", keys, "error", err)
	}
}

func (s *PropertyService) publish(ctx context.Context, subject string, property *domain.Property) {
	event := events.ListingEvent{
		PropertyID:  property.ID,
		PropertyUID: property.PropertyUID,
		OwnerID:     property.CreatedBy,
		Title:       property.Title,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
