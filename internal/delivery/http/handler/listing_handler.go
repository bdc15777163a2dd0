package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/listings-marketplace/internal/domain"
	"github.com/listings-marketplace/internal/pkg/errors"
	"github.com/listings-marketplace/internal/pkg/utils"
	"github.com/listings-marketplace/internal/pkg/validator"
	"github.com/listings-marketplace/internal/usecase"
	"github.com/listings-marketplace/internal/usecase/dto"
)

// ListingHandler - обработчик запросов к объявлениям
type ListingHandler struct {
	listingUC *usecase.ListingUseCase
	logger    *zap.Logger
}

// NewListingHandler - создание нового ListingHandler
func NewListingHandler(listingUC *usecase.ListingUseCase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listingUC: listingUC,
		logger:    logger,
	}
}

// List godoc
// @Summary Поиск объявлений
// @Description Поиск подстроки (без учета регистра) в заголовке, описании, локации и стране. Фильтр по категории; "all" или пусто - без фильтра.
// @Tags Listings
// @Produce json
// @Param search query string false "Поисковая строка"
// @Param category query string false "Категория или all"
// @Success 200 {object} utils.SuccessResponse{data=dto.ListListingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	var req dto.ListListingsRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.listingUC.List(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// Get godoc
// @Summary Объявление по ID
// @Tags Listings
// @Produce json
// @Param id path string true "ID объявления (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ListingResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/listings/{id} [get]
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	id, err := parseListingID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.listingUC.Get(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Create godoc
// @Summary Создание объявления
// @Description Геокодирует локацию и страну; при ошибке геокодирования объявление не создается.
// @Tags Listings
// @Accept json
// @Produce json
// @Param request body dto.CreateListingRequest true "Объявление"
// @Success 201 {object} utils.SuccessResponse{data=dto.ListingResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse "Локация не найдена"
// @Failure 429 {object} utils.ErrorResponse "Лимит геокодера"
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse "Геокодер не настроен"
// @Router /api/v1/listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.listingUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, result)
}

// Update godoc
// @Summary Обновление объявления
// @Description Повторное геокодирование выполняется, только если изменились локация или страна.
// @Tags Listings
// @Accept json
// @Produce json
// @Param id path string true "ID объявления (UUID)"
// @Param request body dto.UpdateListingRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=dto.ListingResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Router /api/v1/listings/{id} [put]
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	id, err := parseListingID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.UpdateListingRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.listingUC.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// Delete godoc
// @Summary Удаление объявления
// @Tags Listings
// @Param id path string true "ID объявления (UUID)"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/listings/{id} [delete]
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, err := parseListingID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.listingUC.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// RequestGeocode godoc
// @Summary Повторное геокодирование
// @Description Ставит объявление в очередь воркера повторного геокодирования.
// @Tags Listings
// @Produce json
// @Param id path string true "ID объявления (UUID)"
// @Success 202 {object} utils.SuccessResponse{data=dto.GeocodeRequestResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/listings/{id}/geocode [post]
func (h *ListingHandler) RequestGeocode(c *fiber.Ctx) error {
	id, err := parseListingID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.listingUC.RequestGeocode(c.UserContext(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, nil)
}

// ListInvalidCoordinates godoc
// @Summary Объявления без координат
// @Description Объявления с координатами (0,0), сохраненные после неудачного геокодирования.
// @Tags Listings
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ListingResponse}
// @Router /api/v1/listings/invalid-coordinates [get]
func (h *ListingHandler) ListInvalidCoordinates(c *fiber.Ctx) error {
	result, err := h.listingUC.ListInvalidCoordinates(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: len(result),
	})
}

// Categories godoc
// @Summary Список категорий
// @Tags Listings
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Router /api/v1/categories [get]
func (h *ListingHandler) Categories(c *fiber.Ctx) error {
	categories := domain.AllCategories()
	return utils.SendSuccess(c, fiber.Map{
		"categories": categories,
		"default":    domain.DefaultCategory,
	}, &utils.Meta{
		Total: len(categories),
	})
}

func parseListingID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidListingID
	}
	return id, nil
}
