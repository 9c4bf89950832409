package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwellio/dwellio-api/internal/domain"
)

type FavoriteRepository interface {
	Create(ctx context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error)
	FindByUserAndProperty(ctx context.Context, userID, propertyID int64) (*domain.Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)
	UpdateNotes(ctx context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error)
	Delete(ctx context.Context, userID, propertyID int64) (bool, error)
}

type favoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) FavoriteRepository {
	return &favoriteRepository{pool: pool}
}

const favoriteCols = `f.id, f.user_id, f.property_id, f.notes, f.created_at, f.updated_at`

func (r *favoriteRepository) Create(ctx context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error) {
	const q = `
		INSERT INTO favorites (user_id, property_id, notes)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, property_id, notes, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var f domain.Favorite
	err := r.pool.QueryRow(ctx, q, userID, propertyID, notes).Scan(
		&f.ID, &f.UserID, &f.PropertyID, &f.Notes, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *favoriteRepository) FindByUserAndProperty(ctx context.Context, userID, propertyID int64) (*domain.Favorite, error) {
	const q = `SELECT ` + favoriteCols + ` FROM favorites f WHERE f.user_id = $1 AND f.property_id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var f domain.Favorite
	err := r.pool.QueryRow(ctx, q, userID, propertyID).Scan(
		&f.ID, &f.UserID, &f.PropertyID, &f.Notes, &f.CreatedAt, &f.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &f, err
}

func (r *favoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	const q = `
		SELECT ` + favoriteCols + `,
			p.id, p.title, p.description, p.price, p.city, p.state
		FROM favorites f
		JOIN properties p ON p.id = f.property_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		var p domain.PropertySummary
		err := rows.Scan(
			&f.ID, &f.UserID, &f.PropertyID, &f.Notes, &f.CreatedAt, &f.UpdatedAt,
			&p.ID, &p.Title, &p.Description, &p.Price, &p.City, &p.State,
		)
		if err != nil {
			return nil, err
		}
		f.Property = &p
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

func (r *favoriteRepository) UpdateNotes(ctx context.Context, userID, propertyID int64, notes string) (*domain.Favorite, error) {
	const q = `
		UPDATE favorites
		SET notes = $3, updated_at = now()
		WHERE user_id = $1 AND property_id = $2
		RETURNING id, user_id, property_id, notes, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var f domain.Favorite
	err := r.pool.QueryRow(ctx, q, userID, propertyID, notes).Scan(
		&f.ID, &f.UserID, &f.PropertyID, &f.Notes, &f.CreatedAt, &f.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return &f, err
}

func (r *favoriteRepository) Delete(ctx context.Context, userID, propertyID int64) (bool, error) {
	const q = `DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, userID, propertyID)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
