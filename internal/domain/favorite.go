package domain

import "time"

type Favorite struct {
	ID         int64            `json:"id"`
	UserID     int64            `json:"userId"`
	PropertyID int64            `json:"propertyId"`
	Notes      string           `json:"notes,omitempty"`
	Property   *PropertySummary `json:"property,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

type AddFavoriteRequest struct {
	Notes string `json:"notes"`
}

type UpdateFavoriteNotesRequest struct {
	Notes string `json:"notes"`
}
