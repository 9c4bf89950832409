package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEnum(t *testing.T) {
	assert.Equal(t, "Apartment", normalizeEnum("apartment", propertyTypes, "Apartment"))
	assert.Equal(t, "Villa", normalizeEnum("VILLA", propertyTypes, "Apartment"))
	assert.Equal(t, "Apartment", normalizeEnum("castle", propertyTypes, "Apartment"))
	assert.Equal(t, "sale", normalizeEnum("Sale", listingTypes, "sale"))
	assert.Equal(t, "Unfurnished", normalizeEnum("", furnishedValues, "Unfurnished"))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"pool", "gym"}, splitList("pool, gym"))
	assert.Equal(t, []string{"garden"}, splitList(" garden ,, "))
	assert.Empty(t, splitList(""))
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 0.0, clampRating(-1))
	assert.Equal(t, 5.0, clampRating(9.7))
	assert.Equal(t, 3.5, clampRating(3.5))
}
