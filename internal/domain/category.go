package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category - категория объявления (закрытый набор)
type Category string

const (
	CategoryTrending     Category = "Trending"
	CategoryRooms        Category = "Rooms"
	CategoryIconicCities Category = "Iconic Cities"
	CategoryMountains    Category = "Mountains"
	CategoryCastles      Category = "Castles"
	CategoryAmazingPools Category = "Amazing Pools"
	CategoryCamping      Category = "Camping"
	CategoryFarms        Category = "Farms"
	CategoryArctic       Category = "Arctic"
	CategoryBoats        Category = "Boats"

	// DefaultCategory - категория по умолчанию. Совпадает с реальной
	// категорией Trending, поэтому "не классифицировано" от "trending"
	// снаружи не отличить.
	DefaultCategory = CategoryTrending

	// CategoryFilterAll - значение фильтра "без фильтра по категории"
	CategoryFilterAll = "all"
)

var allCategories = []Category{
	CategoryTrending,
	CategoryRooms,
	CategoryIconicCities,
	CategoryMountains,
	CategoryCastles,
	CategoryAmazingPools,
	CategoryCamping,
	CategoryFarms,
	CategoryArctic,
	CategoryBoats,
}

// AllCategories возвращает все категории в порядке отображения
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

// ParseCategory проверяет, что строка - одна из известных категорий
func ParseCategory(s string) (Category, bool) {
	for _, c := range allCategories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// IsValid проверяет принадлежность к набору категорий
func (c Category) IsValid() bool {
	_, ok := ParseCategory(string(c))
	return ok
}

// listingText - нормализованные (lowercase) поля для классификации
type listingText struct {
	title       string
	description string
	location    string
}

type categoryRule struct {
	category Category
	match    func(t listingText) bool
}

// categoryRules - порядок важен: первое совпадение выигрывает.
// Например "Ski Chalet" в Verbier - Mountains, а не Arctic.
var categoryRules = []categoryRule{
	{CategoryMountains, func(t listingText) bool {
		return containsAny(t.title, "mountain", "cabin", "chalet") ||
			containsAny(t.location, "aspen", "banff", "verbier", "scottish highlands") ||
			(strings.Contains(t.title, "retreat") && strings.Contains(t.location, "mountain"))
	}},
	{CategoryArctic, func(t listingText) bool {
		return strings.Contains(t.title, "ski") &&
			containsAny(t.location, "verbier", "aspen")
	}},
	{CategoryCastles, func(t listingText) bool {
		return strings.Contains(t.title, "castle") ||
			(strings.Contains(t.title, "historic") &&
				containsAny(t.title, "villa", "manor", "brownstone"))
	}},
	{CategoryAmazingPools, func(t listingText) bool {
		return containsAny(t.description, "pool", "infinity pool") ||
			containsAny(t.title, "luxury", "villa", "penthouse", "desert oasis")
	}},
	{CategoryCamping, func(t listingText) bool {
		return containsAny(t.title, "treehouse", "eco-friendly", "safari") ||
			(strings.Contains(t.title, "lodge") && strings.Contains(t.location, "serengeti"))
	}},
	{CategoryRooms, func(t listingText) bool {
		return containsAny(t.title, "apartment", "loft", "brownstone") ||
			(strings.Contains(t.title, "modern") && strings.Contains(t.title, "downtown"))
	}},
	{CategoryBoats, func(t listingText) bool {
		return containsAny(t.title, "island", "overwater", "private island") ||
			containsAny(t.location, "fiji", "maldives")
	}},
	{CategoryFarms, func(t listingText) bool {
		return containsAny(t.location, "cotswolds", "montana") ||
			containsAny(t.title, "rustic", "cottage") ||
			(strings.Contains(t.title, "cabin") && strings.Contains(t.location, "lake"))
	}},
	{CategoryIconicCities, func(t listingText) bool {
		return containsAny(t.location,
			"new york", "tokyo", "amsterdam", "florence", "dubai",
			"miami", "boston", "los angeles", "charleston")
	}},
}

// Classify подбирает категорию объявления по заголовку, описанию и локации.
// Чистая функция: одинаковый вход - одинаковый результат.
func Classify(title, description, location string) Category {
	lower := cases.Lower(language.Und)
	t := listingText{
		title:       lower.String(title),
		description: lower.String(description),
		location:    lower.String(location),
	}

	for _, rule := range categoryRules {
		if rule.match(t) {
			return rule.category
		}
	}

	return DefaultCategory
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
