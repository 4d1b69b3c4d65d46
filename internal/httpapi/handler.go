package httpapi

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/nguyentantai21042004/transcript-flow/internal/config"
	"github.com/nguyentantai21042004/transcript-flow/internal/logger"
	"github.com/nguyentantai21042004/transcript-flow/internal/pipeline"
	"github.com/nguyentantai21042004/transcript-flow/internal/textgen"
)

const serviceName = "transcript-flow"

// Handler serves the transcription and text endpoints
type Handler struct {
	pipeline pipeline.Pipeline
	text     textgen.Service
	validate *validator.Validate
	logger   logger.Logger
}

func NewHandler(p pipeline.Pipeline, text textgen.Service, log logger.Logger) *Handler {
	return &Handler{
		pipeline: p,
		text:     text,
		validate: validator.New(),
		logger:   log,
	}
}

// NewApp builds the fiber application with middleware and every route
func NewApp(cfg config.ServerConfig, h *Handler, log logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(RequestLogger(log))

	h.Register(app)
	return app
}

// Register mounts the routes on r
func (h *Handler) Register(r fiber.Router) {
	r.Get("/", h.root)
	r.Get("/health", h.health)

	api := r.Group("/api")
	api.Post("/transcribe-stream", h.transcribeStream)
	api.Post("/transcribe", h.transcribe)
	api.Post("/translate", h.translate)
	api.Post("/translate-stream", h.translateStream)
	api.Post("/topics", h.topics)
}

func (h *Handler) root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": serviceName})
}

func (h *Handler) health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

// bind parses and validates the JSON body into payload. When it returns
// false the error response has already been written.
func (h *Handler) bind(c *fiber.Ctx, payload interface{}) (bool, error) {
	if err := c.BodyParser(payload); err != nil {
		h.logger.Warn(c.UserContext(), "Error parsing request body: %v", err)
		return false, RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}
	if err := h.validate.Struct(payload); err != nil {
		h.logger.Warn(c.UserContext(), "Validation error: %v", err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Validation failed",
			"errors":  FormatValidationErrors(err),
		})
	}
	return true, nil
}
