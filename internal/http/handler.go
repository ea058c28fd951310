package http

import (
	"context"
	"strconv"
	"time"

	"gomoku/internal/core"
	"gomoku/internal/processor"
	"gomoku/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// HTTPHandler handles HTTP requests and routes them to the processor
type HTTPHandler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHTTPHandler(proc *processor.Processor, svc *service.Service) *HTTPHandler {
	return &HTTPHandler{proc: proc, svc: svc}
}

// NewFiberApp builds the API. X-Forwarded-For is honored only when the
// connection comes from one of trustedProxies.
func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool, trustedProxies ...string) *fiber.App {
	h := NewHTTPHandler(proc, svc)

	cfg := fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: service.WaitTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if len(trustedProxies) > 0 {
		cfg.ProxyHeader = fiber.HeaderXForwardedFor
		cfg.EnableTrustedProxyCheck = true
		cfg.TrustedProxies = trustedProxies
		cfg.EnableIPValidation = true
	}
	app := fiber.New(cfg)

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")
	api.Use(rateLimiter(devMode))
	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/games", h.CreateGame)

	games := api.Group("/games/:gameId", requireGameID)
	games.Get("/", h.GetGame)
	games.Delete("/", h.DeleteGame)
	games.Post("/moves", h.PlayMove)
	games.Post("/jump", h.JumpTo)
	games.Post("/restart", h.Restart)
	games.Get("/board", h.GetBoard)
	games.Get("/history", h.GetHistory)

	return app
}

// Health reports liveness with storage status
func (h *HTTPHandler) Health(c *fiber.Ctx) error {
	return c.JSON(core.HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Unix(),
		Storage: h.svc.GetStorageHealth(),
		Games:   h.svc.GameCount(),
	})
}

func (h *HTTPHandler) CreateGame(c *fiber.Ctx) error {
	req, ok := validatedBody[core.CreateGameRequest](c)
	if !ok {
		return validationBypass(c)
	}

	resp := h.proc.Execute(processor.NewCreateGameCommand(req))
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}

	return c.Status(fiber.StatusCreated).JSON(resp.Data)
}

// GetGame returns the game state. With wait=true it long-polls until the
// game version differs from the version query parameter.
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")

	if c.Query("wait", "false") != "true" {
		return h.respond(c, processor.NewGetGameCommand(gameID), fiber.StatusOK)
	}

	version, err := strconv.Atoi(c.Query("version", "-1"))
	if err != nil {
		version = -1
	}

	if _, err := h.svc.GetGame(gameID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "game not found",
			Code:  core.ErrGameNotFound,
		})
	}

	// The fasthttp request context outlives the handler; the waiter must not
	ctx, cancel := context.WithCancel(c.UserContext())
	defer cancel()

	// Fires at once when the game is already past version
	notify := h.svc.RegisterWait(gameID, version, ctx)

	select {
	case <-notify:
		// changed, removed or timed out; the game may be gone
		return h.respond(c, processor.NewGetGameCommand(gameID), fiber.StatusOK)
	case <-ctx.Done():
		return nil
	}
}

func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	resp := h.proc.Execute(processor.NewDeleteGameCommand(c.Params("gameId")))
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *HTTPHandler) PlayMove(c *fiber.Ctx) error {
	req, ok := validatedBody[core.MoveRequest](c)
	if !ok {
		return validationBypass(c)
	}
	return h.respond(c, processor.NewPlayMoveCommand(c.Params("gameId"), req), fiber.StatusOK)
}

func (h *HTTPHandler) JumpTo(c *fiber.Ctx) error {
	req, ok := validatedBody[core.JumpRequest](c)
	if !ok {
		return validationBypass(c)
	}
	return h.respond(c, processor.NewJumpToCommand(c.Params("gameId"), req), fiber.StatusOK)
}

func (h *HTTPHandler) Restart(c *fiber.Ctx) error {
	return h.respond(c, processor.NewRestartCommand(c.Params("gameId")), fiber.StatusOK)
}

func (h *HTTPHandler) GetBoard(c *fiber.Ctx) error {
	return h.respond(c, processor.NewGetBoardCommand(c.Params("gameId")), fiber.StatusOK)
}

func (h *HTTPHandler) GetHistory(c *fiber.Ctx) error {
	return h.respond(c, processor.NewGetHistoryCommand(c.Params("gameId")), fiber.StatusOK)
}

func (h *HTTPHandler) respond(c *fiber.Ctx, cmd processor.Command, okStatus int) error {
	resp := h.proc.Execute(cmd)
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	return c.Status(okStatus).JSON(resp.Data)
}

func validationBypass(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
		Error: "validation bypass detected",
		Code:  core.ErrInternalError,
	})
}
