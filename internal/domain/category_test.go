package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		location    string
		expected    Category
	}{
		{"mountain cabin in aspen", "Mountain Cabin Retreat", "cozy getaway", "Aspen, Colorado", CategoryMountains},
		{"chalet wins over ski rule", "Ski Chalet", "", "Verbier", CategoryMountains},
		{"ski weekend is arctic", "Ski Weekend", "", "Verbier", CategoryArctic},
		{"ski in aspen hits mountains by location", "Ski Weekend", "", "Aspen", CategoryMountains},
		{"retreat with mountain location", "Quiet Retreat", "", "Mountain View", CategoryMountains},
		{"banff location", "Lakeside Getaway", "", "Banff", CategoryMountains},
		{"scottish highlands", "Stone House", "", "Scottish Highlands", CategoryMountains},
		{"castle", "Historic Castle", "stay like royalty", "Scotland", CategoryCastles},
		{"historic villa is castle", "Historic Villa", "", "Tuscany", CategoryCastles},
		{"historic brownstone is castle", "Historic Brownstone", "", "Boston", CategoryCastles},
		{"pool in description", "Beach House", "with a private pool", "Malibu", CategoryAmazingPools},
		{"villa without historic", "Seaside Villa", "", "Amalfi Coast", CategoryAmazingPools},
		{"luxury penthouse", "Luxury Penthouse", "", "Dubai", CategoryAmazingPools},
		{"desert oasis", "Desert Oasis", "", "Arizona", CategoryAmazingPools},
		{"treehouse", "Secluded Treehouse", "", "Costa Rica", CategoryCamping},
		{"eco-friendly", "Eco-Friendly Hut", "", "Bali", CategoryCamping},
		{"safari lodge in serengeti", "Safari Lodge", "", "Serengeti", CategoryCamping},
		{"lodge in serengeti", "Grand Lodge", "", "Serengeti National Park", CategoryCamping},
		{"lodge elsewhere falls through", "Grand Lodge", "", "Oregon", CategoryTrending},
		{"apartment", "Cozy Apartment", "", "Paris", CategoryRooms},
		{"loft in new york", "Art Loft", "", "New York City", CategoryRooms},
		{"modern downtown", "Modern Downtown Studio", "", "Chicago", CategoryRooms},
		{"modern without downtown", "Modern Studio", "", "Chicago", CategoryTrending},
		{"island title", "Island Bungalow", "", "Caribbean", CategoryBoats},
		{"fiji", "Beach Bungalow", "", "Fiji", CategoryBoats},
		{"maldives", "Overwater Villa", "", "Maldives", CategoryAmazingPools},
		{"overwater", "Overwater Bungalow", "", "Bora Bora", CategoryBoats},
		{"cotswolds", "Stone Farmhouse", "", "Cotswolds", CategoryFarms},
		{"montana ranch", "Ranch House", "", "Montana", CategoryFarms},
		{"rustic", "Rustic Barn", "", "Vermont", CategoryFarms},
		{"cottage", "Quiet Cottage", "no remarkable amenities", "Nowhere", CategoryFarms},
		{"tokyo", "Capsule Stay", "", "Tokyo", CategoryIconicCities},
		{"los angeles", "Hillside Home", "", "Los Angeles", CategoryIconicCities},
		{"charleston", "Townhouse", "", "Charleston", CategoryIconicCities},
		{"default", "Quiet Place", "no remarkable amenities", "Nowhere", CategoryTrending},
		{"empty input", "", "", "", CategoryTrending},
		{"case insensitive", "MOUNTAIN VIEW", "", "", CategoryMountains},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.title, tt.description, tt.location))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("Historic Manor", "grand estate", "Cotswolds")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("Historic Manor", "grand estate", "Cotswolds"))
	}
	assert.Equal(t, CategoryCastles, first)
}

func TestClassify_AlwaysReturnsKnownCategory(t *testing.T) {
	inputs := [][3]string{
		{"", "", ""},
		{"Ski", "pool", "verbier"},
		{"Private Island Castle", "", "Fiji"},
		{"ÇHALET", "", ""},
	}
	for _, in := range inputs {
		assert.True(t, Classify(in[0], in[1], in[2]).IsValid())
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Iconic Cities")
	assert.True(t, ok)
	assert.Equal(t, CategoryIconicCities, c)

	_, ok = ParseCategory("iconic cities")
	assert.False(t, ok)

	_, ok = ParseCategory(CategoryFilterAll)
	assert.False(t, ok)

	assert.Len(t, AllCategories(), 10)
	assert.Equal(t, CategoryTrending, AllCategories()[0])
}
