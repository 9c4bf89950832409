package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dwellio/dwellio-api/internal/domain"
)

type PropertyRepository interface {
	Create(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest, propertyUID string) (*domain.Property, error)
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, int64, error)
	Update(ctx context.Context, id int64, req *domain.UpdatePropertyRequest) (*domain.Property, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

const propertyCols = `p.id, p.property_uid, p.title, p.description, p.property_type,
p.price, p.state, p.city, p.area_sqft, p.bedrooms, p.bathrooms,
p.amenities, p.furnished, p.available_from, p.listed_by, p.tags,
p.rating, p.is_verified, p.listing_type, p.status, p.created_by, u.email,
p.created_at, p.updated_at`

func scanProperty(row pgx.Row) (*domain.Property, error) {
	var p domain.Property
	err := row.Scan(
		&p.ID, &p.PropertyUID, &p.Title, &p.Description, &p.PropertyType,
		&p.Price, &p.State, &p.City, &p.AreaSqFt, &p.Bedrooms, &p.Bathrooms,
		&p.Amenities, &p.Furnished, &p.AvailableFrom, &p.ListedBy, &p.Tags,
		&p.Rating, &p.IsVerified, &p.ListingType, &p.Status, &p.CreatedBy, &p.OwnerEmail,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) Create(ctx context.Context, ownerID int64, req *domain.CreatePropertyRequest, propertyUID string) (*domain.Property, error) {
	const q = `
		WITH inserted AS (
			INSERT INTO properties (
				property_uid, title, description, property_type, price,
				state, city, area_sqft, bedrooms, bathrooms,
				amenities, furnished, available_from, listed_by, tags,
				rating, is_verified, listing_type, status, created_by
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,'active',$19)
			RETURNING *
		)
		SELECT ` + propertyCols + ` FROM inserted p JOIN users u ON u.id = p.created_by`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return scanProperty(r.pool.QueryRow(ctx, q,
		propertyUID, req.Title, req.Description, req.PropertyType, req.Price,
		req.State, req.City, req.AreaSqFt, req.Bedrooms, req.Bathrooms,
		req.Amenities, req.Furnished, req.AvailableFrom, req.ListedBy, req.Tags,
		req.Rating, req.IsVerified, req.ListingType, ownerID,
	))
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	const q = `SELECT ` + propertyCols + ` FROM properties p JOIN users u ON u.id = p.created_by WHERE p.id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *propertyRepository) List(ctx context.Context, filter domain.PropertyFilter) ([]domain.Property, int64, error) {
	NormalizePagination(&filter)

	where, args := BuildPropertyWhere(filter)
	order := BuildPropertyOrder(filter)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	countQuery := fmt.Sprintf(`SELECT count(*) FROM properties p %s`, where)
	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	pageArgs := append(args, filter.Limit, offset)
	listQuery := fmt.Sprintf(
		`SELECT %s FROM properties p JOIN users u ON u.id = p.created_by %s %s LIMIT $%d OFFSET $%d`,
		propertyCols, where, order, len(args)+1, len(args)+2,
	)

	rows, err := r.pool.Query(ctx, listQuery, pageArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var properties []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, 0, err
		}
		properties = append(properties, *p)
	}
	return properties, total, rows.Err()
}

func (r *propertyRepository) Update(ctx context.Context, id int64, req *domain.UpdatePropertyRequest) (*domain.Property, error) {
	const q = `
		WITH updated AS (
			UPDATE properties
			SET
				title          = COALESCE($2, title),
				description    = COALESCE($3, description),
				property_type  = COALESCE($4, property_type),
				price          = COALESCE($5, price),
				state          = COALESCE($6, state),
				city           = COALESCE($7, city),
				area_sqft      = COALESCE($8, area_sqft),
				bedrooms       = COALESCE($9, bedrooms),
				bathrooms      = COALESCE($10, bathrooms),
				amenities      = COALESCE($11, amenities),
				furnished      = COALESCE($12, furnished),
				available_from = COALESCE($13, available_from),
				listed_by      = COALESCE($14, listed_by),
				tags           = COALESCE($15, tags),
				rating         = COALESCE($16, rating),
				is_verified    = COALESCE($17, is_verified),
				listing_type   = COALESCE($18, listing_type),
				status         = COALESCE($19, status),
				updated_at     = now()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + propertyCols + ` FROM updated p JOIN users u ON u.id = p.created_by`

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProperty(r.pool.QueryRow(ctx, q,
		id,
		req.Title, req.Description, req.PropertyType, req.Price,
		req.State, req.City, req.AreaSqFt, req.Bedrooms, req.Bathrooms,
		req.Amenities, req.Furnished, req.AvailableFrom, req.ListedBy, req.Tags,
		req.Rating, req.IsVerified, req.ListingType, req.Status,
	))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM properties WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := r.pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}
