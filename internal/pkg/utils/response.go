package utils

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"
	"github.com/poi-microservice/internal/pkg/errors"
)

type SuccessResponse struct {
	Data interface{} `json:"data"`
	Meta *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Error *errors.AppError `json:"error"`
}

type Meta struct {
	Total int `json:"total"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func SendCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(SuccessResponse{
		Data: data,
	})
}

// SendError отправляет AppError клиенту. Остальные ошибки возвращаются как
// есть, их обрабатывает ErrorHandler сервера.
func SendError(c *fiber.Ctx, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return c.Status(appErr.StatusCode).JSON(ErrorResponse{
			Error: appErr,
		})
	}

	return err
}

// InternalError строит ответ для необработанной ошибки. Вне production
// клиент получает текст исходной ошибки.
func InternalError(err error, production bool) *errors.AppError {
	if production || err == nil {
		return errors.ErrInternalServer
	}
	return errors.ErrInternalServer.WithMessage(err.Error())
}
