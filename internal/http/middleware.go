package http

import (
	"fmt"
	"strings"
	"time"

	"gomoku/internal/core"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const rateLimitRate = 10 // req/sec

// rateLimiter limits API requests per client address
func rateLimiter(devMode bool) fiber.Handler {
	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}

	return limiter.New(limiter.Config{
		Max:          maxReq,
		Expiration:   1 * time.Second,
		KeyGenerator: clientKey,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	})
}

// clientKey is the peer address, or the forwarded client when the peer is a trusted proxy
func clientKey(c *fiber.Ctx) string {
	return c.IP()
}

// contentTypeValidator ensures POST and PUT requests carry JSON when they carry anything
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodPost || method == fiber.MethodPut {
		contentType := c.Get("Content-Type")
		if i := strings.Index(contentType, ";"); i != -1 {
			contentType = strings.TrimSpace(contentType[:i])
		}
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// requireGameID rejects malformed game IDs before they reach the processor
func requireGameID(c *fiber.Ctx) error {
	if !isValidUUID(c.Params("gameId")) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrGameNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		case fiber.StatusUnsupportedMediaType:
			response.Code = core.ErrInvalidContent
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps processor error codes to HTTP status codes
func statusFor(code string) int {
	switch code {
	case core.ErrGameNotFound:
		return fiber.StatusNotFound
	case core.ErrCellOccupied, core.ErrGameAlreadyWon:
		return fiber.StatusConflict
	case core.ErrResourceLimit:
		return fiber.StatusServiceUnavailable
	case core.ErrInternalError:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusBadRequest
	}
}
