package http

import (
	"fmt"
	"reflect"
	"strings"

	"gomoku/internal/board"
	"gomoku/internal/core"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// cell holds a coordinate name; flat indices go in the index field
	v.RegisterValidation("cell", func(fl validator.FieldLevel) bool {
		_, err := board.ParseCoord(fl.Field().String())
		return err == nil
	})
	return v
}

// validationMiddleware parses and validates request bodies by route,
// storing the result under "validatedBody" for the handler
func validationMiddleware(c *fiber.Ctx) error {
	method := c.Method()
	if method != fiber.MethodPost && method != fiber.MethodPut {
		return c.Next()
	}

	path := c.Path()
	var requestType interface{}

	switch {
	case strings.HasSuffix(path, "/games"):
		requestType = &core.CreateGameRequest{}
	case strings.HasSuffix(path, "/moves"):
		requestType = &core.MoveRequest{}
	case strings.HasSuffix(path, "/jump"):
		requestType = &core.JumpRequest{}
	default:
		return c.Next()
	}

	// An empty body validates as the zero request
	if len(c.Body()) > 0 {
		if err := c.BodyParser(requestType); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
				Error:   "invalid request body",
				Code:    core.ErrInvalidRequest,
				Details: err.Error(),
			})
		}
	}

	if errs := validate.Struct(requestType); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "validation failed",
			Code:    core.ErrInvalidRequest,
			Details: describeValidation(errs),
		})
	}

	c.Locals("validatedBody", requestType)
	c.Locals("validated", true)

	return c.Next()
}

func describeValidation(errs error) string {
	verrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		return errs.Error()
	}

	var details strings.Builder
	for _, err := range verrs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch err.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", err.Field()))
		case "required_without":
			details.WriteString(fmt.Sprintf("%s or %s is required", err.Field(), err.Param()))
		case "min":
			if err.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", err.Field(), err.Param()))
			}
		case "max":
			if err.Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at most %s", err.Field(), err.Param()))
			}
		case "cell":
			details.WriteString(fmt.Sprintf("%s must be a coordinate a1-o15", err.Field()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", err.Field(), err.Tag()))
		}
	}
	return details.String()
}

// validatedBody returns the request stored by validationMiddleware
func validatedBody[T any](c *fiber.Ctx) (T, bool) {
	var zero T
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return zero, false
	}
	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return zero, false
	}
	return *body, true
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
