package repository

import (
	"fmt"
	"strings"

	"github.com/dwellio/dwellio-api/internal/domain"
)

// Listing sort fields are whitelisted by API name; anything else falls back
// to the default newest-first ordering.
var propertySortColumns = map[string]string{
	"price":     "p.price",
	"rating":    "p.rating",
	"areaSqFt":  "p.area_sqft",
	"bedrooms":  "p.bedrooms",
	"bathrooms": "p.bathrooms",
	"title":     "p.title",
	"createdAt": "p.created_at",
}

// BuildPropertyWhere translates a PropertyFilter into a WHERE clause and its
// positional args. Per-field semantics: search and city/state are
// case-insensitive substring matches, type/listing/status are exact, and the
// min/max pairs are inclusive ranges.
func BuildPropertyWhere(f domain.PropertyFilter) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(p.title ILIKE %s OR p.description ILIKE %s OR p.city ILIKE %s)", p, p, p))
	}
	if f.City != "" {
		conds = append(conds, fmt.Sprintf("p.city ILIKE %s", arg("%"+f.City+"%")))
	}
	if f.State != "" {
		conds = append(conds, fmt.Sprintf("p.state ILIKE %s", arg("%"+f.State+"%")))
	}
	if f.PropertyType != "" {
		conds = append(conds, fmt.Sprintf("p.property_type = %s", arg(f.PropertyType)))
	}
	if f.ListingType != "" {
		conds = append(conds, fmt.Sprintf("p.listing_type = %s", arg(f.ListingType)))
	}
	if f.Status != "" {
		conds = append(conds, fmt.Sprintf("p.status = %s", arg(f.Status)))
	}
	if f.MinPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price >= %s", arg(*f.MinPrice)))
	}
	if f.MaxPrice != nil {
		conds = append(conds, fmt.Sprintf("p.price <= %s", arg(*f.MaxPrice)))
	}
	if f.MinBedrooms != nil {
		conds = append(conds, fmt.Sprintf("p.bedrooms >= %s", arg(*f.MinBedrooms)))
	}
	if f.MaxBedrooms != nil {
		conds = append(conds, fmt.Sprintf("p.bedrooms <= %s", arg(*f.MaxBedrooms)))
	}
	if f.MinBathrooms != nil {
		conds = append(conds, fmt.Sprintf("p.bathrooms >= %s", arg(*f.MinBathrooms)))
	}
	if f.MaxBathrooms != nil {
		conds = append(conds, fmt.Sprintf("p.bathrooms <= %s", arg(*f.MaxBathrooms)))
	}
	if f.MinArea != nil {
		conds = append(conds, fmt.Sprintf("p.area_sqft >= %s", arg(*f.MinArea)))
	}
	if f.MaxArea != nil {
		conds = append(conds, fmt.Sprintf("p.area_sqft <= %s", arg(*f.MaxArea)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conds, " AND "), args
}

// BuildPropertyOrder returns the ORDER BY clause for a filter. Ascending is
// the default when a sort field is chosen; newest-first when none is.
func BuildPropertyOrder(f domain.PropertyFilter) string {
	col, ok := propertySortColumns[f.SortBy]
	if !ok {
		return "ORDER BY p.created_at DESC"
	}
	if f.SortOrder == "desc" {
		return "ORDER BY " + col + " DESC"
	}
	return "ORDER BY " + col + " ASC"
}

// NormalizePagination applies the page/limit defaults (1/10) and caps limit.
func NormalizePagination(f *domain.PropertyFilter) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
}
