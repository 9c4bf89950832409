package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dwellio/dwellio-api/internal/domain"
	"github.com/dwellio/dwellio-api/internal/repository"
	"github.com/dwellio/dwellio-api/pkg/cache"
	"github.com/dwellio/dwellio-api/pkg/events"
	"github.com/dwellio/dwellio-api/pkg/logger"
)

type FavoriteService struct {
	favorites  repository.FavoriteRepository
	properties repository.PropertyRepository
	store      cache.Store
	bus        events.Publisher
}

func NewFavoriteService(
	favorites repository.FavoriteRepository,
	properties repository.PropertyRepository,
	store cache.Store,
	bus events.Publisher,
) *FavoriteService {
	return &FavoriteService{favorites: favorites, properties: properties, store: store, bus: bus}
}

func (s *FavoriteService) Add(ctx context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error) {
	property, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.NotFound("Property not found")
	}

	existing, err := s.favorites.FindByUserAndProperty(ctx, userID, propertyID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Invalid("Property already in favorites")
	}

	favorite, err := s.favorites.Create(ctx, userID, propertyID, notes)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, domain.Invalid("Property already in favorites")
		}
		return nil, err
	}

	s.invalidate(ctx, cache.FavoritesKey(userID))
	s.publish(ctx, events.FavoriteAdded, userID, propertyID)

	return favorite, nil
}

func (s *FavoriteService) List(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	key := cache.FavoritesKey(userID)
	if cached, err := s.store.Get(ctx, key); err == nil {
		var favorites []domain.Favorite
		if err := json.Unmarshal([]byte(cached), &favorites); err == nil {
			return favorites, nil
		}
	}

	favorites, err := s.favorites.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []domain.Favorite{}
	}

	if data, err := json.Marshal(favorites); err == nil {
		if err := s.store.Set(ctx, key, string(data), cache.EntityTTL); err != nil {
			logger.WarnContext(ctx, "Failed to cache favorites", "key", key, "error", err)
		}
	}

	return favorites, nil
}

func (s *FavoriteService) UpdateNotes(ctx context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error) {
	favorite, err := s.favorites.UpdateNotes(ctx, userID, propertyID, notes)
	if err != nil {
		return nil, err
	}
	if favorite == nil {
		return nil, domain.NotFound("Favorite not found")
	}

	s.invalidate(ctx, cache.FavoritesKey(userID))

	return favorite, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, propertyID int64) error {
	deleted, err := s.favorites.Delete(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.NotFound("Favorite not found")
	}

	s.invalidate(ctx, cache.FavoritesKey(userID))
	s.publish(ctx, events.FavoriteRemoved, userID, propertyID)

	return nil
}

func (s *FavoriteService) invalidate(ctx context.Context, keys ...string) {
	if err := s.store.Delete(ctx, keys...); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate cache", "keys", keys, "error", err)
	}
}

func (s *FavoriteService) publish(ctx context.Context, subject string, userID, propertyID int64) {
	event := events.FavoriteEvent{
		UserID:     userID,
		PropertyID: propertyID,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.bus.Publish(ctx, subject, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "subject", subject, "error", err)
	}
}
