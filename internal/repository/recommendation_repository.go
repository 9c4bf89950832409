package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwellio/dwellio-api/internal/domain"
)

type RecommendationRepository interface {
	Create(ctx context.Context, senderID, receiverID, propertyID int64, message string) (*domain.Recommendation, error)
	FindByTriple(ctx context.Context, senderID, receiverID, propertyID int64) (*domain.Recommendation, error)
	GetByID(ctx context.Context, id int64) (*domain.Recommendation, error)
	ListReceived(ctx context.Context, receiverID int64) ([]domain.Recommendation, error)
	ListSent(ctx context.Context, senderID int64) ([]domain.Recommendation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RecommendationStatus) (*domain.Recommendation, error)
}

type recommendationRepository struct {
	pool *pgxpool.Pool
}

func NewRecommendationRepository(pool *pgxpool.Pool) RecommendationRepository {
	return &recommendationRepository{pool: pool}
}

const recommendationCols = `r.id, r.sender_id, r.receiver_id, r.property_id, r.message, r.status, r.created_at, r.updated_at`

func scanRecommendation(row pgx.Row) (*domain.Recommendation, error) {
	var rec domain.Recommendation
	err := row.Scan(
		&rec.ID, &rec.SenderID, &rec.ReceiverID, &rec.PropertyID,
		&rec.Message, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *recommendationRepository) Create(ctx context.Context, senderID, receiverID, propertyID int64, message string) (*domain.Recommendation, error) {
	const q = `
		INSERT INTO recommendations (sender_id, receiver_id, property_id, message, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, sender_id, receiver_id, property_id, message, status, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanRecommendation(r.pool.QueryRow(ctx, q, senderID, receiverID, propertyID, message))
}

func (r *recommendationRepository) FindByTriple(ctx context.Context, senderID, receiverID, propertyID int64) (*domain.Recommendation, error) {
	const q = `SELECT ` + recommendationCols + ` FROM recommendations r
		WHERE r.sender_id = $1 AND r.receiver_id = $2 AND r.property_id = $3`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rec, err := scanRecommendation(r.pool.QueryRow(ctx, q, senderID, receiverID, propertyID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (r *recommendationRepository) GetByID(ctx context.Context, id int64) (*domain.Recommendation, error) {
	const q = `SELECT ` + recommendationCols + ` FROM recommendations r WHERE r.id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rec, err := scanRecommendation(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return rec, err
}

func (r *recommendationRepository) listWith(ctx context.Context, q string, id int64) ([]domain.Recommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, q, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.Recommendation
	for rows.Next() {
		var rec domain.Recommendation
		var p domain.PropertySummary
		err := rows.Scan(
			&rec.ID, &rec.SenderID, &rec.ReceiverID, &rec.PropertyID,
			&rec.Message, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.SenderEmail, &rec.ReceiverEmail,
			&p.ID, &p.Title, &p.Description, &p.Price, &p.City, &p.State,
		)
		if err != nil {
			return nil, err
		}
		rec.Property = &p
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *recommendationRepository) ListReceived(ctx context.Context, receiverID int64) ([]domain.Recommendation, error) {
	const q = `
		SELECT ` + recommendationCols + `,
			s.email, rcv.email,
			p.id, p.title, p.description, p.price, p.city, p.state
		FROM recommendations r
		JOIN users s ON s.id = r.sender_id
		JOIN users rcv ON rcv.id = r.receiver_id
		JOIN properties p ON p.id = r.property_id
		WHERE r.receiver_id = $1
		ORDER BY r.created_at DESC`

	return r.listWith(ctx, q, receiverID)
}

func (r *recommendationRepository) ListSent(ctx context.Context, senderID int64) ([]domain.Recommendation, error) {
	const q = `
		SELECT ` + recommendationCols + `,
			s.email, rcv.email,
			p.id, p.title, p.description, p.price, p.city, p.state
		FROM recommendations r
		JOIN users s ON s.id = r.sender_id
		JOIN users rcv ON rcv.id = r.receiver_id
		JOIN properties p ON p.id = r.property_id
		WHERE r.sender_id = $1
		ORDER BY r.created_at DESC`

	return r.listWith(ctx, q, senderID)
}

func (r *recommendationRepository) UpdateStatus(ctx context.Context, id int64, status domain.RecommendationStatus) (*domain.Recommendation, error) {
	const q = `
		UPDATE recommendations
		SET status = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, sender_id, receiver_id, property_id, message, status, created_at, updated_at`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rec, err := scanRecommendation(r.pool.QueryRow(ctx, q, id, status))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return rec, err
}
