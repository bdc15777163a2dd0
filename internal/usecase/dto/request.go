package dto

import "github.com/listings-marketplace/internal/domain"

// ImageInput - ссылка на уже загруженное изображение
type ImageInput struct {
	URL      string `json:"url" validate:"omitempty,url"`
	Filename string `json:"filename" validate:"omitempty,max=255"`
}

// CreateListingRequest - запрос на создание объявления
type CreateListingRequest struct {
	Title       string      `json:"title" validate:"required,max=200"`
	Description string      `json:"description" validate:"required,max=500"`
	Location    string      `json:"location" validate:"required"`
	Country     string      `json:"country" validate:"required"`
	Price       *float64    `json:"price" validate:"required,min=0"`
	Image       *ImageInput `json:"image,omitempty"`
	Category    string      `json:"category,omitempty" validate:"omitempty,category"`
}

// ToDraft конвертирует запрос в черновик объявления
func (r CreateListingRequest) ToDraft() domain.ListingDraft {
	draft := domain.ListingDraft{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Country:     r.Country,
		Category:    domain.Category(r.Category),
	}
	if r.Price != nil {
		draft.Price = *r.Price
	}
	if r.Image != nil {
		draft.Image = domain.Image{URL: r.Image.URL, Filename: r.Image.Filename}
	}
	return draft
}

// UpdateListingRequest - частичное обновление; отсутствующие поля не меняются
type UpdateListingRequest struct {
	Title       *string     `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string     `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Location    *string     `json:"location,omitempty" validate:"omitempty,min=1,notblank"`
	Country     *string     `json:"country,omitempty" validate:"omitempty,min=1,notblank"`
	Price       *float64    `json:"price,omitempty" validate:"omitempty,min=0"`
	Image       *ImageInput `json:"image,omitempty"`
	Category    *string     `json:"category,omitempty" validate:"omitempty,category"`
}

// ToPatch конвертирует запрос в патч
func (r UpdateListingRequest) ToPatch() domain.ListingPatch {
	patch := domain.ListingPatch{
		Title:       r.Title,
		Description: r.Description,
		Location:    r.Location,
		Country:     r.Country,
		Price:       r.Price,
	}
	if r.Image != nil {
		patch.Image = &domain.Image{URL: r.Image.URL, Filename: r.Image.Filename}
	}
	if r.Category != nil {
		c := domain.Category(*r.Category)
		patch.Category = &c
	}
	return patch
}

// ListListingsRequest - параметры поиска
type ListListingsRequest struct {
	Search   string `query:"search" validate:"max=200"`
	Category string `query:"category" validate:"omitempty,category_filter"`
}
