package http

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/poi-microservice/internal/config"
	"github.com/poi-microservice/internal/delivery/http/handler"
	"github.com/poi-microservice/internal/delivery/http/middleware"
	"github.com/poi-microservice/internal/pkg/errors"
	"github.com/poi-microservice/internal/pkg/utils"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	poiHandler *handler.POIHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	poiHandler *handler.POIHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "POI Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger, cfg.IsProduction()),
	})

	s := &Server{
		app:        app,
		config:     cfg,
		logger:     logger,
		poiHandler: poiHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App для тестов
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	s.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
		})
	})

	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	pois := s.app.Group("/api/pois")
	pois.Get("/", s.poiHandler.List)
	pois.Post("/", s.poiHandler.Create)
	// /nearby регистрируется раньше /:id
	pois.Get("/nearby", s.poiHandler.Nearby)
	pois.Get("/:id", s.poiHandler.GetByID)
	pois.Put("/:id", s.poiHandler.Update)
	pois.Delete("/:id", s.poiHandler.Delete)

	s.app.Use(func(c *fiber.Ctx) error {
		return utils.SendError(c, errors.ErrRouteNotFound)
	})
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ответ для ошибок, не обработанных в хендлерах.
// В production текст исходной ошибки клиенту не отдаётся.
func customErrorHandler(logger *zap.Logger, production bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return utils.SendError(c, appErr)
		}

		var fiberErr *fiber.Error
		if stderrors.As(err, &fiberErr) {
			switch fiberErr.Code {
			case fiber.StatusNotFound:
				return utils.SendError(c, errors.ErrRouteNotFound)
			case fiber.StatusMethodNotAllowed:
				return utils.SendError(c, errors.ErrRouteNotFound)
			}
			if fiberErr.Code < fiber.StatusInternalServerError {
				return utils.SendError(c, errors.New(
					"HTTP_ERROR", fiberErr.Message, fiberErr.Code,
				))
			}
		}

		logger.Error("Unhandled HTTP error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return utils.SendError(c, utils.InternalError(err, production))
	}
}
