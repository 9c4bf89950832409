package domain

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type PropertyStatus string

const (
	PropertyActive   PropertyStatus = "active"
	PropertyInactive PropertyStatus = "inactive"
	PropertySold     PropertyStatus = "sold"
	PropertyRented   PropertyStatus = "rented"
)

func ParsePropertyStatus(s string) (PropertyStatus, bool) {
	switch PropertyStatus(s) {
	case PropertyActive, PropertyInactive, PropertySold, PropertyRented:
		return PropertyStatus(s), true
	default:
		return "", false
	}
}

type Property struct {
	ID            int64          `json:"id"`
	PropertyUID   string         `json:"propertyId"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	PropertyType  string         `json:"propertyType"`
	Price         float64        `json:"price"`
	State         string         `json:"state"`
	City          string         `json:"city"`
	AreaSqFt      float64        `json:"areaSqFt"`
	Bedrooms      int            `json:"bedrooms"`
	Bathrooms     float64        `json:"bathrooms"`
	Amenities     []string       `json:"amenities"`
	Furnished     string         `json:"furnished"`
	AvailableFrom time.Time      `json:"availableFrom"`
	ListedBy      string         `json:"listedBy"`
	Tags          []string       `json:"tags"`
	Rating        float64        `json:"rating"`
	IsVerified    bool           `json:"isVerified"`
	ListingType   string         `json:"listingType"`
	Status        PropertyStatus `json:"status"`
	CreatedBy     int64          `json:"createdBy"`
	OwnerEmail    string         `json:"ownerEmail,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// IsOwner is the ownership check behind update and delete.
func (p *Property) IsOwner(userID int64) bool {
	return p.CreatedBy == userID
}

// PropertySummary is the trimmed shape embedded in favorite and
// recommendation listings.
type PropertySummary struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	City        string  `json:"city"`
	State       string  `json:"state"`
}

type CreatePropertyRequest struct {
	PropertyUID   string    `json:"propertyId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PropertyType  string    `json:"propertyType"`
	Price         float64   `json:"price"`
	State         string    `json:"state"`
	City          string    `json:"city"`
	AreaSqFt      float64   `json:"areaSqFt"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     float64   `json:"bathrooms"`
	Amenities     []string  `json:"amenities"`
	Furnished     string    `json:"furnished"`
	AvailableFrom time.Time `json:"availableFrom"`
	ListedBy      string    `json:"listedBy"`
	Tags          []string  `json:"tags"`
	Rating        float64   `json:"rating"`
	IsVerified    bool      `json:"isVerified"`
	ListingType   string    `json:"listingType"`
}

func (r CreatePropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.PropertyType, validation.Required,
			validation.In("Apartment", "Villa", "Bungalow", "Studio", "Penthouse")),
		validation.Field(&r.Price, validation.Min(0.0)),
		validation.Field(&r.State, validation.Required),
		validation.Field(&r.City, validation.Required),
		validation.Field(&r.AreaSqFt, validation.Min(0.0)),
		validation.Field(&r.Bedrooms, validation.Min(0)),
		validation.Field(&r.Bathrooms, validation.Min(0.0)),
		validation.Field(&r.Furnished, validation.Required,
			validation.In("Furnished", "Semi", "Unfurnished")),
		validation.Field(&r.ListedBy, validation.Required,
			validation.In("Owner", "Agent", "Builder")),
		validation.Field(&r.Rating, validation.Min(0.0), validation.Max(5.0)),
		validation.Field(&r.ListingType, validation.Required, validation.In("sale", "rent")),
	)
}

// UpdatePropertyRequest carries a partial update; nil fields keep their
// current values.
type UpdatePropertyRequest struct {
	Title         *string    `json:"title,omitempty"`
	Description   *string    `json:"description,omitempty"`
	PropertyType  *string    `json:"propertyType,omitempty"`
	Price         *float64   `json:"price,omitempty"`
	State         *string    `json:"state,omitempty"`
	City          *string    `json:"city,omitempty"`
	AreaSqFt      *float64   `json:"areaSqFt,omitempty"`
	Bedrooms      *int       `json:"bedrooms,omitempty"`
	Bathrooms     *float64   `json:"bathrooms,omitempty"`
	Amenities     []string   `json:"amenities,omitempty"`
	Furnished     *string    `json:"furnished,omitempty"`
	AvailableFrom *time.Time `json:"availableFrom,omitempty"`
	ListedBy      *string    `json:"listedBy,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Rating        *float64   `json:"rating,omitempty"`
	IsVerified    *bool      `json:"isVerified,omitempty"`
	ListingType   *string    `json:"listingType,omitempty"`
	Status        *string    `json:"status,omitempty"`
}

func (r UpdatePropertyRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PropertyType,
			validation.In("Apartment", "Villa", "Bungalow", "Studio", "Penthouse")),
		validation.Field(&r.Furnished, validation.In("Furnished", "Semi", "Unfurnished")),
		validation.Field(&r.ListedBy, validation.In("Owner", "Agent", "Builder")),
		validation.Field(&r.ListingType, validation.In("sale", "rent")),
		validation.Field(&r.Status, validation.In("active", "inactive", "sold", "rented")),
	)
}

// PropertyFilter is the typed form of the list query string. Nil/zero fields
// are not applied. The url tags let tests round-trip a filter through
// query-string encoding.
type PropertyFilter struct {
	Search       string   `url:"search,omitempty"`
	City         string   `url:"city,omitempty"`
	State        string   `url:"state,omitempty"`
	PropertyType string   `url:"propertyType,omitempty"`
	ListingType  string   `url:"listingType,omitempty"`
	Status       string   `url:"status,omitempty"`
	MinPrice     *float64 `url:"minPrice,omitempty"`
	MaxPrice     *float64 `url:"maxPrice,omitempty"`
	MinBedrooms  *int     `url:"minBedrooms,omitempty"`
	MaxBedrooms  *int     `url:"maxBedrooms,omitempty"`
	MinBathrooms *float64 `url:"minBathrooms,omitempty"`
	MaxBathrooms *float64 `url:"maxBathrooms,omitempty"`
	MinArea      *float64 `url:"minArea,omitempty"`
	MaxArea      *float64 `url:"maxArea,omitempty"`
	SortBy       string   `url:"sortBy,omitempty"`
	SortOrder    string   `url:"sortOrder,omitempty"`
	Page         int      `url:"page,omitempty"`
	Limit        int      `url:"limit,omitempty"`
}

// PropertyPage is the paginated list envelope.
type PropertyPage struct {
	Properties []Property `json:"properties"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int64      `json:"total"`
	TotalPages int        `json:"totalPages"`
}
