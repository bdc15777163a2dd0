package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrListingNotFound - объявление не найдено
	ErrListingNotFound = errors.New("listing not found")
	// ErrBlankField - обязательное поле передано пустым
	ErrBlankField = errors.New("field must not be blank")
)

const (
	DefaultImageFilename = "listingimage"
	DefaultImageURL      = "https://images.unsplash.com/photo-1625505826533-5c80aca7d157?ixlib=rb-4.0.3&ixid=M3wxMjA3fDB8MHxzZWFyY2h8MTJ8fGdvYXxlbnwwfHwwfHx8MA%3D%3D&auto=format&fit=crop&w=800&q=60"

	// MaxDescriptionLength - ограничение длины описания
	MaxDescriptionLength = 500

	pointType = "Point"
)

// Point - GeoJSON точка, координаты в порядке [lng, lat]
type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// NewPoint создает точку из долготы и широты
func NewPoint(lng, lat float64) Point {
	return Point{Type: pointType, Coordinates: [2]float64{lng, lat}}
}

// SentinelPoint - (0,0), подставляется при неудачном геокодировании в seed
func SentinelPoint() Point {
	return NewPoint(0, 0)
}

// Lng возвращает долготу
func (p Point) Lng() float64 { return p.Coordinates[0] }

// Lat возвращает широту
func (p Point) Lat() float64 { return p.Coordinates[1] }

// HasValidCoordinates - false только если обе координаты ровно 0.
// Это единственный способ отличить sentinel (0,0) от настоящих координат;
// реальная точка [0,0] в океане тоже будет считаться невалидной.
func (p Point) HasValidCoordinates() bool {
	return p.Coordinates[0] != 0 || p.Coordinates[1] != 0
}

// Image - ссылка на изображение объявления
type Image struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

// DefaultImage - изображение-заглушка
func DefaultImage() Image {
	return Image{URL: DefaultImageURL, Filename: DefaultImageFilename}
}

// withDefaults заполняет пустые поля значениями по умолчанию
func (i Image) withDefaults() Image {
	if i.URL == "" {
		i.URL = DefaultImageURL
	}
	if i.Filename == "" {
		i.Filename = DefaultImageFilename
	}
	return i
}

// ListingDraft - сырые поля объявления до геокодирования и сохранения
type ListingDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Country     string   `json:"country"`
	Price       float64  `json:"price"`
	Image       Image    `json:"image"`
	Category    Category `json:"category,omitempty"`
	Geometry    *Point   `json:"geometry,omitempty"`
}

// ApplyGeocode переписывает локацию/страну нормализованными значениями
// и прикрепляет геометрию
func (d *ListingDraft) ApplyGeocode(r *GeocodeResult) {
	d.Location = NormalizeLocation(r, d.Location)
	d.Country = NormalizeCountry(r, d.Country)
	p := r.Point()
	d.Geometry = &p
}

// ToListing собирает объявление для сохранения
func (d *ListingDraft) ToListing() *Listing {
	category := d.Category
	if category == "" {
		category = DefaultCategory
	}

	geometry := SentinelPoint()
	if d.Geometry != nil {
		geometry = *d.Geometry
	}

	now := time.Now().UTC()
	return &Listing{
		ID:          uuid.New(),
		Title:       d.Title,
		Description: d.Description,
		Image:       d.Image.withDefaults(),
		Price:       d.Price,
		Location:    d.Location,
		Country:     d.Country,
		Geometry:    geometry,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Listing - сохраненное объявление
type Listing struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       Image     `json:"image"`
	Price       float64   `json:"price"`
	Location    string    `json:"location"`
	Country     string    `json:"country"`
	Geometry    Point     `json:"geometry"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasValidCoordinates - см. Point.HasValidCoordinates
func (l *Listing) HasValidCoordinates() bool {
	return l.Geometry.HasValidCoordinates()
}

// ThumbnailURL - уменьшенное превью для формы редактирования
// (вставляет трансформацию w_250 после /upload)
func (l *Listing) ThumbnailURL() string {
	return strings.Replace(l.Image.URL, "/upload", "/upload/w_250", 1)
}

// ListingPatch - частичное обновление объявления; nil - поле не меняется
type ListingPatch struct {
	Title       *string
	Description *string
	Location    *string
	Country     *string
	Price       *float64
	Image       *Image
	Category    *Category
	Geometry    *Point
}

// Validate запрещает затирать локацию и страну пустыми строками
func (p *ListingPatch) Validate() error {
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return fmt.Errorf("location: %w", ErrBlankField)
	}
	if p.Country != nil && strings.TrimSpace(*p.Country) == "" {
		return fmt.Errorf("country: %w", ErrBlankField)
	}
	return nil
}

// LocationChanged - нужно ли перегеокодировать: локация передана и
// локация или страна отличаются от сохраненных
func (p *ListingPatch) LocationChanged(current *Listing) bool {
	if p.Location == nil || *p.Location == "" {
		return false
	}
	if *p.Location != current.Location {
		return true
	}
	country := ""
	if p.Country != nil {
		country = *p.Country
	}
	return country != current.Country
}

// ApplyGeocode записывает нормализованные значения геокодера в патч
func (p *ListingPatch) ApplyGeocode(r *GeocodeResult) {
	original := ""
	if p.Location != nil {
		original = *p.Location
	}
	location := NormalizeLocation(r, original)
	p.Location = &location

	if r.ResolvedCountry != nil && *r.ResolvedCountry != "" {
		country := *r.ResolvedCountry
		p.Country = &country
	}

	point := r.Point()
	p.Geometry = &point
}

// Apply применяет патч к объявлению
func (p *ListingPatch) Apply(l *Listing) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Country != nil {
		l.Country = *p.Country
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Image != nil {
		l.Image = p.Image.withDefaults()
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Geometry != nil {
		l.Geometry = *p.Geometry
	}
	l.UpdatedAt = time.Now().UTC()
}

// ListingFilter - параметры поиска объявлений
type ListingFilter struct {
	// Search - подстрока (без учета регистра) в title/description/location/country
	Search string
	// Category - точное совпадение; пусто или "all" - без фильтра
	Category string
}

// HasSearch - задан ли непустой поисковый запрос
func (f ListingFilter) HasSearch() bool {
	return strings.TrimSpace(f.Search) != ""
}

// HasCategory - задан ли фильтр по категории
func (f ListingFilter) HasCategory() bool {
	return f.Category != "" && f.Category != CategoryFilterAll
}
