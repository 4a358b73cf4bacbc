package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/poi-microservice/internal/pkg/errors"
	"github.com/poi-microservice/internal/pkg/utils"
	"github.com/poi-microservice/internal/usecase"
	"github.com/poi-microservice/internal/usecase/dto"
	"go.uber.org/zap"
)

// POIHandler - обработчик для POI (точки интереса) запросов
type POIHandler struct {
	poiUC  *usecase.POIUseCase
	logger *zap.Logger
}

// NewPOIHandler - создание нового POIHandler
func NewPOIHandler(poiUC *usecase.POIUseCase, logger *zap.Logger) *POIHandler {
	return &POIHandler{
		poiUC:  poiUC,
		logger: logger,
	}
}

// List godoc
// @Summary Список POI
// @Description Возвращает страницу POI, новые первыми. limit больше 100 обрезается до 100.
// @Tags POI
// @Produce json
// @Param page query int false "Номер страницы" default(1)
// @Param limit query int false "Размер страницы" default(50)
// @Success 200 {object} dto.ListPOIsResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/pois [get]
func (h *POIHandler) List(c *fiber.Ctx) error {
	req := dto.ListPOIsRequest{
		Page:  c.QueryInt("page", dto.DefaultPage),
		Limit: c.QueryInt("limit", dto.DefaultLimit),
	}

	result, err := h.poiUC.List(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.JSON(result)
}

// GetByID godoc
// @Summary Получение POI по ID
// @Tags POI
// @Produce json
// @Param id path int true "ID POI"
// @Success 200 {object} utils.SuccessResponse{data=domain.POI}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/pois/{id} [get]
func (h *POIHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrPOINotFound)
	}

	poi, err := h.poiUC.Get(c.UserContext(), int64(id))
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, poi, nil)
}

// Create godoc
// @Summary Создание POI
// @Description location вычисляется из latitude и longitude, если заданы обе координаты
// @Tags POI
// @Accept json
// @Produce json
// @Param request body dto.CreatePOIRequest true "Данные POI"
// @Success 201 {object} utils.SuccessResponse{data=domain.POI}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/pois [post]
func (h *POIHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePOIRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid create POI body", zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	poi, err := h.poiUC.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, poi)
}

// Update godoc
// @Summary Частичное обновление POI
// @Description Меняются только переданные поля. location пересчитывается только если переданы обе координаты.
// @Tags POI
// @Accept json
// @Produce json
// @Param id path int true "ID POI"
// @Param request body dto.UpdatePOIRequest true "Изменяемые поля"
// @Success 200 {object} utils.SuccessResponse{data=domain.POI}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/pois/{id} [put]
func (h *POIHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrPOINotFound)
	}

	var req dto.UpdatePOIRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.Debug("Invalid update POI body", zap.Int("id", id), zap.Error(err))
		return utils.SendError(c, errors.ErrInvalidRequest)
	}

	poi, err := h.poiUC.Update(c.UserContext(), int64(id), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, poi, nil)
}

// Delete godoc
// @Summary Удаление POI
// @Tags POI
// @Param id path int true "ID POI"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/pois/{id} [delete]
func (h *POIHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return utils.SendError(c, errors.ErrPOINotFound)
	}

	if err := h.poiUC.Delete(c.UserContext(), int64(id)); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Nearby godoc
// @Summary Поиск POI в радиусе
// @Description Возвращает POI с location в радиусе от точки, ближайшие первыми, не больше 200. Расстояние в метрах.
// @Tags POI
// @Produce json
// @Param lat query number true "Широта (-90..90)"
// @Param lng query number true "Долгота (-180..180)"
// @Param radius query number false "Радиус в километрах" default(5)
// @Success 200 {object} utils.SuccessResponse{data=[]domain.NearbyPOI}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/pois/nearby [get]
func (h *POIHandler) Nearby(c *fiber.Ctx) error {
	req, err := dto.ParseNearbyRequest(c.Query("lat"), c.Query("lng"), c.Query("radius"))
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.poiUC.Nearby(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result.POIs, &utils.Meta{
		Total: result.Total,
	})
}
